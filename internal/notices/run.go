package notices

import (
	"context"
	"fmt"
	"io"

	"github.com/anaconda/anaconda-client/internal/output"
	"github.com/anaconda/anaconda-client/internal/session"
)

// DefaultLabel is the label used when none is given.
const DefaultLabel = "main"

// Action selects what Run does with the notices of a label.
type Action int

// Actions are mutually exclusive.
const (
	ActionNone Action = iota
	ActionCreate
	ActionRemove
	ActionGet
)

// String returns the flag name of the action.
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionRemove:
		return "remove"
	case ActionGet:
		return "get"
	default:
		return "none"
	}
}

// Request describes one notices invocation.
type Request struct {
	Label   string
	Action  Action
	Payload Payload // Used by ActionCreate only
}

// ErrNoAction is returned when none of --create, --remove or --get was given.
var ErrNoAction = &UsageError{
	Message: "one of --create, --remove or --get is required",
	Code:    1,
}

// Run performs req against the session's owner. Notices fetched by
// ActionGet are written to w as JSON indented by two spaces.
func Run(ctx context.Context, s *session.Session, req Request, w io.Writer) error {
	label := req.Label
	if label == "" {
		label = DefaultLabel
	}

	switch req.Action {
	case ActionCreate:
		if req.Payload.IsZero() {
			return newUsageError(nil, "--create requires a notices document")
		}
		return s.Client.CreateNotices(ctx, s.Owner, label, req.Payload.Raw())

	case ActionRemove:
		return s.Client.RemoveNotices(ctx, s.Owner, label)

	case ActionGet:
		raw, err := s.Client.Notices(ctx, s.Owner, label)
		if err != nil {
			return err
		}
		if err := output.IndentJSON(w, raw); err != nil {
			return fmt.Errorf("failed to print notices for %s/%s: %w", s.Owner, label, err)
		}
		return nil

	default:
		return ErrNoAction
	}
}
