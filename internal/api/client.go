// Package api defines the anaconda.org API operations used by the client
// and an HTTP implementation of them.
package api

import (
	"context"
	"encoding/json"
	"time"
)

// User is the account information returned for the authenticated caller.
type User struct {
	Login       string `json:"login" yaml:"login"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	UserType    string `json:"user_type,omitempty" yaml:"user_type,omitempty"`
	Company     string `json:"company,omitempty" yaml:"company,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Client is the set of API operations the commands depend on.
type Client interface {
	// CheckServer verifies the server is reachable.
	CheckServer(ctx context.Context) error
	// User returns the authenticated caller.
	User(ctx context.Context) (*User, error)
	// CreateNotices replaces the notices of owner/label.
	CreateNotices(ctx context.Context, owner, label string, notices json.RawMessage) error
	// RemoveNotices deletes the notices of owner/label.
	RemoveNotices(ctx context.Context, owner, label string) error
	// Notices fetches the notices of owner/label.
	Notices(ctx context.Context, owner, label string) (json.RawMessage, error)
	// Close releases the client's connections.
	Close() error
}

// Options configures a Client.
type Options struct {
	URL       string
	Token     string
	Insecure  bool
	Timeout   time.Duration
	UserAgent string
}

// Factory creates a Client for the given options.
type Factory func(opts Options) (Client, error)
