// Package legacy implements the flag based anaconda command line: its parser,
// the subcommands owned by this module and the dispatcher that runs them.
package legacy

import (
	"github.com/anaconda/anaconda-client/internal/session"
)

// Globals are the options accepted before any legacy subcommand.
type Globals struct {
	Token              string `short:"t" help:"Authentication token to use. May be a token or a path to a file containing a token."`
	Site               string `short:"s" help:"Select the anaconda-client site to use."`
	Verbose            bool   `short:"v" help:"Print debug information."`
	Quiet              bool   `short:"q" help:"Only show warnings or errors."`
	ShowTraceback      bool   `name:"show-traceback" help:"Show the full error chain when a command fails."`
	DisableSSLWarnings bool   `name:"disable-ssl-warnings" help:"Disable warnings about unverified SSL connections."`
}

// sessionOptions returns the session options for acting as user.
func (g *Globals) sessionOptions(user string) session.Options {
	return session.Options{
		Token:              g.Token,
		Site:               g.Site,
		User:               user,
		DisableSSLWarnings: g.DisableSSLWarnings,
	}
}

// CLI is the legacy command tree. Subcommands typed ExternalCmd are
// implemented outside this module and forwarded through Dispatcher.Register.
type CLI struct {
	Globals

	Auth     ExternalCmd `cmd:"" passthrough:"" help:"Manage Authorization Tokens"`
	Channel  ExternalCmd `cmd:"" passthrough:"" help:"Manage your Anaconda repository channels"`
	Config   ExternalCmd `cmd:"" passthrough:"" help:"Anaconda client configuration"`
	Copy     ExternalCmd `cmd:"" passthrough:"" help:"Copy packages from one account to another"`
	Download ExternalCmd `cmd:"" passthrough:"" help:"Download notebooks from your Anaconda repository"`
	Groups   ExternalCmd `cmd:"" passthrough:"" help:"Manage Groups"`
	Label    ExternalCmd `cmd:"" passthrough:"" help:"Manage your Anaconda repository labels"`
	Login    ExternalCmd `cmd:"" passthrough:"" help:"Authenticate a user"`
	Logout   ExternalCmd `cmd:"" passthrough:"" help:"Log out from your Anaconda repository"`
	Move     ExternalCmd `cmd:"" passthrough:"" help:"Move packages between labels"`
	Notebook ExternalCmd `cmd:"" passthrough:"" help:"Interact with notebooks in your Anaconda repository"`
	Notices  NoticesCmd  `cmd:"" help:"Create, modify and delete channels notices in your Anaconda repository"`
	Package  ExternalCmd `cmd:"" passthrough:"" help:"Anaconda repository package utilities"`
	Remove   ExternalCmd `cmd:"" passthrough:"" help:"Remove an object from your Anaconda repository"`
	Search   ExternalCmd `cmd:"" passthrough:"" help:"Search in your Anaconda repository"`
	Show     ExternalCmd `cmd:"" passthrough:"" help:"Show information about an object"`
	Update   ExternalCmd `cmd:"" passthrough:"" help:"Update public attributes of the package or public attributes of the package release"`
	Upload   ExternalCmd `cmd:"" passthrough:"" help:"Upload packages to your Anaconda repository"`
	Whoami   WhoamiCmd   `cmd:"" help:"Print the information of the current user"`
}
