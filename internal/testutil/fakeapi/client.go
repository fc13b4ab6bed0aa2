// Package fakeapi provides a fake implementation of api.Client for testing.
package fakeapi

import (
	"context"
	"encoding/json"

	"github.com/anaconda/anaconda-client/internal/api"
)

// Method names recorded in Call.Method.
const (
	CheckServer   = "CheckServer"
	User          = "User"
	CreateNotices = "CreateNotices"
	RemoveNotices = "RemoveNotices"
	Notices       = "Notices"
)

// Client is a fake implementation of api.Client for testing.
type Client struct {
	user    *api.User
	notices map[string]json.RawMessage
	errors  map[string]error
	calls   []Call
	closed  bool
}

// Call represents a captured API call.
type Call struct {
	Method  string
	Owner   string
	Label   string
	Payload json.RawMessage
}

// Ensure Client implements api.Client.
var _ api.Client = (*Client)(nil)

// New creates a new fake client authenticated as login. An empty login
// simulates a token without an associated account.
func New(login string) *Client {
	return &Client{
		user:    &api.User{Login: login},
		notices: make(map[string]json.RawMessage),
		errors:  make(map[string]error),
		calls:   []Call{},
	}
}

// SetUser sets the user returned by User.
func (c *Client) SetUser(u *api.User) {
	c.user = u
}

// SetNotices sets the notices returned for owner/label.
func (c *Client) SetNotices(owner, label string, raw string) {
	c.notices[key(owner, label)] = json.RawMessage(raw)
}

// SetError makes every call of method fail with err.
func (c *Client) SetError(method string, err error) {
	c.errors[method] = err
}

// Close implements api.Client. It is not recorded in Calls.
func (c *Client) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *Client) Closed() bool {
	return c.closed
}

// CheckServer implements api.Client.
func (c *Client) CheckServer(_ context.Context) error {
	c.calls = append(c.calls, Call{Method: CheckServer})
	return c.errors[CheckServer]
}

// User implements api.Client.
func (c *Client) User(_ context.Context) (*api.User, error) {
	c.calls = append(c.calls, Call{Method: User})
	if err := c.errors[User]; err != nil {
		return nil, err
	}
	return c.user, nil
}

// CreateNotices implements api.Client.
func (c *Client) CreateNotices(_ context.Context, owner, label string, notices json.RawMessage) error {
	c.calls = append(c.calls, Call{Method: CreateNotices, Owner: owner, Label: label, Payload: notices})
	if err := c.errors[CreateNotices]; err != nil {
		return err
	}
	c.notices[key(owner, label)] = notices
	return nil
}

// RemoveNotices implements api.Client.
func (c *Client) RemoveNotices(_ context.Context, owner, label string) error {
	c.calls = append(c.calls, Call{Method: RemoveNotices, Owner: owner, Label: label})
	if err := c.errors[RemoveNotices]; err != nil {
		return err
	}
	delete(c.notices, key(owner, label))
	return nil
}

// Notices implements api.Client.
func (c *Client) Notices(_ context.Context, owner, label string) (json.RawMessage, error) {
	c.calls = append(c.calls, Call{Method: Notices, Owner: owner, Label: label})
	if err := c.errors[Notices]; err != nil {
		return nil, err
	}
	raw, ok := c.notices[key(owner, label)]
	if !ok {
		return nil, &api.Error{Method: "GET", URL: "/channels/" + key(owner, label) + "/notices", StatusCode: 404}
	}
	return raw, nil
}

// GetCalls returns all captured calls.
func (c *Client) GetCalls() []Call {
	return c.calls
}

// Methods returns the method names of all captured calls in order.
func (c *Client) Methods() []string {
	methods := make([]string, 0, len(c.calls))
	for _, call := range c.calls {
		methods = append(methods, call.Method)
	}
	return methods
}

// Reset clears recorded calls and errors.
func (c *Client) Reset() {
	c.errors = make(map[string]error)
	c.calls = []Call{}
}

// Factory returns an api.Factory that always yields c and records the options it was given.
func (c *Client) Factory(seen *api.Options) api.Factory {
	return func(opts api.Options) (api.Client, error) {
		if seen != nil {
			*seen = opts
		}
		return c, nil
	}
}

func key(owner, label string) string {
	return owner + "/" + label
}
