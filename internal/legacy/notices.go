package legacy

import (
	"context"

	"github.com/anaconda/anaconda-client/internal/notices"
	"github.com/anaconda/anaconda-client/internal/session"
)

// NoticesCmd creates, removes or displays the notices of a channel label.
type NoticesCmd struct {
	Label string `short:"l" default:"main" help:"Label to use for channel notice."`
	User  string `short:"u" help:"User account or Organization, defaults to the current user."`

	Create notices.Payload `xor:"action" group:"actions" placeholder:"NOTICES" help:"Create notices from a JSON string or file; existing notices will be replaced."`
	Remove bool            `xor:"action" group:"actions" help:"Remove notices."`
	Get    bool            `xor:"action" group:"actions" help:"Display notices."`
}

// request converts the parsed flags into a notices.Request.
func (c *NoticesCmd) request() notices.Request {
	req := notices.Request{Label: c.Label, Payload: c.Create}
	switch {
	case !c.Create.IsZero():
		req.Action = notices.ActionCreate
	case c.Remove:
		req.Action = notices.ActionRemove
	case c.Get:
		req.Action = notices.ActionGet
	}
	return req
}

// Run executes the notices command.
func (c *NoticesCmd) Run(ctx context.Context, globals *Globals, d *Dispatcher) error {
	req := c.request()
	if req.Action == notices.ActionNone {
		return notices.ErrNoAction
	}

	run := d.sessions.Wrap(func(ctx context.Context, s *session.Session) error {
		d.logger.Debug("Running notices", "action", req.Action, "owner", s.Owner, "label", req.Label)
		return notices.Run(ctx, s, req, d.stdout)
	})
	return run(ctx, globals.sessionOptions(c.User))
}
