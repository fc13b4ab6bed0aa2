package legacy

import (
	"context"

	"github.com/anaconda/anaconda-client/internal/api"
	"github.com/anaconda/anaconda-client/internal/session"
)

// WhoamiCmd prints the information of the current user.
type WhoamiCmd struct {
	Output string `short:"o" enum:"text,json,yaml" default:"text" help:"Output format (${enum})."`
}

// Run executes the whoami command.
func (c *WhoamiCmd) Run(ctx context.Context, globals *Globals, d *Dispatcher) error {
	return d.sessions.WithClient(globals.sessionOptions(""), func(client api.Client) error {
		return session.Whoami(ctx, client, d.stdout, c.Output)
	})
}
