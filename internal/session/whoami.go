package session

import (
	"context"
	"errors"
	"io"

	"github.com/anaconda/anaconda-client/internal/api"
	"github.com/anaconda/anaconda-client/internal/output"
)

// ErrAnonymous is returned by Whoami when the server does not recognize the caller.
var ErrAnonymous = errors.New("Anonymous User") //nolint:staticcheck // user facing message

// Whoami prints the authenticated user in the given output format.
func Whoami(ctx context.Context, client api.Client, w io.Writer, format string) error {
	user, err := client.User(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return ErrAnonymous
		}
		return err
	}
	return PrintUser(w, user, format)
}

// PrintUser writes user as a key/value table, or as JSON or YAML.
func PrintUser(w io.Writer, user *api.User, format string) error {
	if format != "" && format != output.FormatText {
		return output.Print(w, format, user)
	}

	output.Fields(w, []output.Field{
		{Key: "login", Value: user.Login},
		{Key: "name", Value: user.Name},
		{Key: "user_type", Value: user.UserType},
		{Key: "company", Value: user.Company},
		{Key: "location", Value: user.Location},
		{Key: "url", Value: user.URL},
		{Key: "description", Value: user.Description},
		{Key: "created_at", Value: user.CreatedAt},
	})
	return nil
}
