// Package bridge mounts the legacy subcommands onto the cobra command tree,
// both under "anaconda org" and, for backwards compatibility, at the top level.
package bridge

import "fmt"

// AllSubcommands lists every legacy subcommand reachable through the bridge.
var AllSubcommands = []string{
	"auth",
	"channel",
	"config",
	"copy",
	"download",
	"groups",
	"label",
	"login",
	"logout",
	"move",
	"notebook",
	"notices",
	"package",
	"remove",
	"search",
	"show",
	"update",
	"upload",
	"whoami",
}

var (
	// shownOnMain are listed in the top-level help; the rest are mounted hidden.
	shownOnMain = set("upload")

	// deprecated warn on every invocation and are flagged in the help.
	deprecated = set("notebook")

	// orgOnly are mounted under "anaconda org" only.
	orgOnly = set("login", "logout", "whoami")

	// moduleAliases maps a subcommand to the module implementing it.
	moduleAliases = map[string]string{
		"label": "channel",
		"auth":  "authorizations",
	}
)

func set(names ...string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// Descriptor is the static classification of one legacy subcommand.
type Descriptor struct {
	Name         string
	Help         string
	Module       string
	Deprecated   bool
	MountToMain  bool
	HiddenOnMain bool
}

// Descriptors builds one Descriptor per entry of AllSubcommands, taking help
// text from help. Names without help text get an empty string.
func Descriptors(help map[string]string) []Descriptor {
	descriptors := make([]Descriptor, 0, len(AllSubcommands))
	for _, name := range AllSubcommands {
		descriptors = append(descriptors, Descriptor{
			Name:         name,
			Help:         help[name],
			Module:       ModuleName(name),
			Deprecated:   deprecated[name],
			MountToMain:  !orgOnly[name],
			HiddenOnMain: !shownOnMain[name],
		})
	}
	return descriptors
}

// ModuleName returns the implementation module for a subcommand name.
func ModuleName(name string) string {
	if module, ok := moduleAliases[name]; ok {
		return module
	}
	return name
}

// MainHelp is the help text of a subcommand mounted at the top level.
func (d Descriptor) MainHelp() string {
	if d.Help == "" {
		return fmt.Sprintf("anaconda.org: (alias for 'anaconda org %s')", d.Name)
	}
	return fmt.Sprintf("anaconda.org: %s (alias for 'anaconda org %s')", d.Help, d.Name)
}

// DeprecationMessage is the warning logged when a deprecated subcommand runs.
func (d Descriptor) DeprecationMessage() string {
	return fmt.Sprintf("The existing anaconda-client commands will be deprecated. "+
		"To maintain compatibility, please either pin `anaconda-client<2` or update your system call "+
		"with the `org` prefix, e.g. \"anaconda org %s ...\"", d.Name)
}
