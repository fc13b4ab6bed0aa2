// Package session resolves an authenticated API session for commands that
// act on behalf of an account.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/anaconda/anaconda-client/internal/api"
	"github.com/anaconda/anaconda-client/internal/config"
	"github.com/anaconda/anaconda-client/internal/log"
	"github.com/anaconda/anaconda-client/internal/redact"
)

// AuthenticationError reports that no account could be determined for the caller.
type AuthenticationError struct {
	Message string
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return e.Message
}

// NoOwnerMessage is the message used when the owner cannot be resolved.
const NoOwnerMessage = "Unable to determine owner in user; please make sure you are logged in"

// Session is an API client bound to the account being acted upon.
type Session struct {
	Client api.Client
	Owner  string
}

// Options are the command line values used to open a session.
type Options struct {
	Token              string
	Site               string
	User               string
	DisableSSLWarnings bool
}

// Connector creates an API client from the token and site options.
type Connector func(opts Options) (api.Client, error)

// Handler runs with a resolved session.
type Handler func(ctx context.Context, s *Session) error

// Resolver opens sessions.
type Resolver struct {
	connect Connector
	logger  log.Logger
}

// NewResolver creates a Resolver.
func NewResolver(connect Connector, logger log.Logger) *Resolver {
	return &Resolver{connect: connect, logger: logger}
}

// WithClient creates an API client without checking the server or resolving
// an owner, calls fn with it and closes it.
func (r *Resolver) WithClient(opts Options, fn func(api.Client) error) error {
	client, err := r.connect(opts)
	if err != nil {
		return err
	}
	defer r.close(client)
	return fn(client)
}

// Resolve creates a client, checks the server and determines the owner.
// Errors from the API client are returned unchanged. The caller closes the
// returned session's client.
func (r *Resolver) Resolve(ctx context.Context, opts Options) (*Session, error) {
	client, err := r.connect(opts)
	if err != nil {
		return nil, err
	}

	owner, err := r.owner(ctx, client, opts.User)
	if err != nil {
		r.close(client)
		return nil, err
	}

	return &Session{Client: client, Owner: owner}, nil
}

func (r *Resolver) owner(ctx context.Context, client api.Client, owner string) (string, error) {
	if err := client.CheckServer(ctx); err != nil {
		return "", err
	}
	if owner != "" {
		return owner, nil
	}

	user, err := client.User(ctx)
	if err != nil {
		return "", err
	}
	if user.Login == "" {
		return "", &AuthenticationError{Message: NoOwnerMessage}
	}
	r.logger.Debug("Resolved owner from token", "owner", user.Login)
	return user.Login, nil
}

func (r *Resolver) close(client api.Client) {
	if err := client.Close(); err != nil {
		r.logger.Debug("Failed to close API client", "error", err)
	}
}

// Wrap returns a function that resolves a session before calling h.
func (r *Resolver) Wrap(h Handler) func(ctx context.Context, opts Options) error {
	return func(ctx context.Context, opts Options) error {
		s, err := r.Resolve(ctx, opts)
		if err != nil {
			return err
		}
		defer r.close(s.Client)
		return h(ctx, s)
	}
}

// NewConnector returns a Connector that resolves sites and tokens from cfg
// and builds clients with factory.
func NewConnector(cfg *config.Settings, factory api.Factory, logger log.Logger) Connector {
	return func(opts Options) (api.Client, error) {
		ep, err := cfg.ForSite(opts.Site)
		if err != nil {
			if !errors.Is(err, config.ErrUnknownSite) {
				return nil, err
			}
			logger.Warn(fmt.Sprintf("Site alias %q does not exist in the config file", ep.Site))
		}

		token, err := cfg.ResolveToken(opts.Token)
		if err != nil {
			return nil, err
		}

		if !ep.SSLVerify && !opts.DisableSSLWarnings {
			logger.Warn("SSL verification is disabled", "url", ep.URL)
		}

		logger.Debug("Creating API client", redact.Args("url", ep.URL, "site", ep.Site, "token", token)...)

		return factory(api.Options{
			URL:      ep.URL,
			Token:    token,
			Insecure: !ep.SSLVerify,
			Timeout:  ep.Timeout,
		})
	}
}
