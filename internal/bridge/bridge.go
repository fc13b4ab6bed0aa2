package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/anaconda/anaconda-client/internal/log"
)

// OrgKeyword is the name of the command group nesting every legacy subcommand.
const OrgKeyword = "org"

// MountOptions describe where and how a new-style subcommand is mounted.
type MountOptions struct {
	Name   string
	Help   string
	Hidden bool
}

// Mounter attaches a natively implemented subcommand to parent.
type Mounter func(parent *cobra.Command, opts MountOptions)

// RunFunc runs the legacy dispatcher with the given arguments.
type RunFunc func(ctx context.Context, args []string) error

// Handler is how a subcommand is served: NewStyle or Legacy.
type Handler interface {
	handler()
}

// NewStyle serves a subcommand with its native cobra implementation.
type NewStyle struct {
	Mount Mounter
}

// Legacy serves a subcommand by re-invoking the legacy dispatcher. Org runs
// the "anaconda org" mount and Main the top-level one.
type Legacy struct {
	Org  RunFunc
	Main RunFunc
}

func (NewStyle) handler() {}
func (Legacy) handler()   {}

// ErrNoDispatcher is returned by Load when no legacy RunFunc is configured.
var ErrNoDispatcher = errors.New("bridge: legacy dispatcher is required")

// Options configure Load.
type Options struct {
	// ForceNew selects native implementations where one is registered.
	ForceNew bool
	// Standalone disables the bridge entirely.
	Standalone bool
	// Help holds the legacy help text per subcommand.
	Help map[string]string
	// Mounters are the native implementations keyed by module name.
	Mounters map[string]Mounter
	// Args are the process arguments without the program name.
	Args []string
	// Dispatch runs the legacy command line.
	Dispatch RunFunc
	Logger   log.Logger
}

// Bridge holds the resolved handlers of every legacy subcommand.
type Bridge struct {
	opts        Options
	descriptors []Descriptor
}

// New creates a Bridge for opts.
func New(opts Options) (*Bridge, error) {
	if opts.Dispatch == nil {
		return nil, ErrNoDispatcher
	}
	if opts.Logger == nil {
		opts.Logger = log.GetLogger()
	}
	return &Bridge{opts: opts, descriptors: Descriptors(opts.Help)}, nil
}

// Descriptors returns the subcommand descriptors in name order.
func (b *Bridge) Descriptors() []Descriptor {
	return b.descriptors
}

// Resolve decides how d is served. The native implementation is used only
// when ForceNew is set and a Mounter is registered for d's module.
func (b *Bridge) Resolve(d Descriptor) Handler {
	if mount, ok := b.opts.Mounters[d.Module]; ok && b.opts.ForceNew {
		return NewStyle{Mount: mount}
	}

	orgRun, mainRun := b.passthrough(true), b.passthrough(false)
	if d.Deprecated {
		orgRun, mainRun = b.deprecate(d, orgRun), b.deprecate(d, mainRun)
	}
	return Legacy{Org: orgRun, Main: mainRun}
}

// Mount registers every subcommand under org and, unless it is org only,
// under root. It does nothing in standalone mode.
func (b *Bridge) Mount(root, org *cobra.Command) {
	if b.opts.Standalone {
		b.opts.Logger.Debug("Standalone mode, skipping legacy subcommands")
		return
	}

	for _, d := range b.descriptors {
		orgHelp := d.Help
		if d.Deprecated {
			orgHelp = deprecatedLabel() + " " + d.Help
		}

		switch h := b.Resolve(d).(type) {
		case NewStyle:
			h.Mount(org, MountOptions{Name: d.Name, Help: orgHelp})
			if d.MountToMain {
				h.Mount(root, MountOptions{Name: d.Name, Help: d.MainHelp(), Hidden: d.HiddenOnMain})
			}
		case Legacy:
			org.AddCommand(passthroughCommand(d.Name, orgHelp, false, h.Org))
			if d.MountToMain {
				root.AddCommand(passthroughCommand(d.Name, d.MainHelp(), d.HiddenOnMain, h.Main))
			}
		}
	}
}

// passthrough replays the process arguments to the legacy dispatcher. The
// org mount drops the nesting keyword; the top-level mount has none to drop.
func (b *Bridge) passthrough(nested bool) RunFunc {
	return func(ctx context.Context, _ []string) error {
		args := b.opts.Args
		if nested {
			args = StripOrg(args)
		}
		return b.opts.Dispatch(ctx, args)
	}
}

func (b *Bridge) deprecate(d Descriptor, run RunFunc) RunFunc {
	return func(ctx context.Context, args []string) error {
		b.opts.Logger.Warn(d.DeprecationMessage())
		return run(ctx, args)
	}
}

func deprecatedLabel() string {
	return color.New(color.FgRed, color.Bold).Sprint("(deprecated)")
}

// passthroughCommand builds a command that hands its raw arguments, flags
// included, to run.
func passthroughCommand(name, help string, hidden bool, run RunFunc) *cobra.Command {
	return &cobra.Command{
		Use:                fmt.Sprintf("%s [args...]", name),
		Short:              help,
		Hidden:             hidden,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return run(ctx, args)
		},
	}
}

// valueFlags are the global flags that consume the following argument.
var valueFlags = map[string]bool{
	"-t":      true,
	"--token": true,
	"-s":      true,
	"--site":  true,
}

// StripOrg removes OrgKeyword when it is the first positional argument, the
// command path position. Global flags before it are kept, and an OrgKeyword
// anywhere else is an argument value and survives.
func StripOrg(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(arg, "-") {
			out = append(out, arg)
			if valueFlags[arg] && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
			continue
		}
		if arg != OrgKeyword {
			out = append(out, arg)
		}
		return append(out, args[i+1:]...)
	}
	return out
}

// Load creates a Bridge for opts and mounts it onto root and org. It is
// called once while the command tree is built, before any command runs.
func Load(root, org *cobra.Command, opts Options) (*Bridge, error) {
	b, err := New(opts)
	if err != nil {
		return nil, err
	}
	b.Mount(root, org)
	return b, nil
}
