package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resty.dev/v3"
)

const (
	noticesPath = "/channels/{owner}/{label}/notices"

	// DefaultUserAgent is sent when Options.UserAgent is empty.
	DefaultUserAgent = "anaconda-client-go"
)

// HTTPClient implements Client on top of the anaconda.org REST API.
type HTTPClient struct {
	rc  *resty.Client
	url string
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// New creates an HTTPClient for the given options.
func New(opts Options) *HTTPClient {
	url := strings.TrimRight(opts.URL, "/")
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	rc := resty.New().
		SetBaseURL(url).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	if opts.Token != "" {
		rc.SetHeader("Authorization", "token "+opts.Token)
	}
	if opts.Insecure {
		rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // ssl_verify: false
	}

	return &HTTPClient{rc: rc, url: url}
}

// NewClient is a Factory returning an HTTPClient.
func NewClient(opts Options) (Client, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("api url must not be empty")
	}
	return New(opts), nil
}

// CheckServer verifies the server answers at the base URL.
func (c *HTTPClient) CheckServer(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodHead, "/", nil, nil)
	if err != nil {
		return fmt.Errorf("unable to connect to server %s: %w", c.url, err)
	}
	return nil
}

// User returns the account the token belongs to.
func (c *HTTPClient) User(ctx context.Context) (*User, error) {
	body, err := c.do(ctx, http.MethodGet, "/user", nil, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// CreateNotices replaces the notices of owner/label.
func (c *HTTPClient) CreateNotices(ctx context.Context, owner, label string, notices json.RawMessage) error {
	_, err := c.do(ctx, http.MethodPost, noticesPath, channelParams(owner, label), notices)
	return err
}

// RemoveNotices deletes the notices of owner/label.
func (c *HTTPClient) RemoveNotices(ctx context.Context, owner, label string) error {
	_, err := c.do(ctx, http.MethodDelete, noticesPath, channelParams(owner, label), nil)
	return err
}

// Notices fetches the notices of owner/label.
func (c *HTTPClient) Notices(ctx context.Context, owner, label string) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, noticesPath, channelParams(owner, label), nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("server returned invalid JSON for %s/%s notices", owner, label)
	}
	return json.RawMessage(body), nil
}

// Close releases the idle connections held by the underlying resty client.
func (c *HTTPClient) Close() error {
	return c.rc.Close()
}

func channelParams(owner, label string) map[string]string {
	return map[string]string{"owner": owner, "label": label}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params map[string]string, body []byte) ([]byte, error) {
	req := c.rc.R().SetContext(ctx)
	if params != nil {
		req.SetPathParams(params)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		return nil, &Error{Method: method, URL: c.url + path, Cause: err}
	}

	data := []byte(res.String())
	if status := res.StatusCode(); status >= http.StatusBadRequest {
		return nil, &Error{
			Method:     method,
			URL:        c.url + path,
			StatusCode: status,
			Message:    errorMessage(data, status),
		}
	}
	return data, nil
}

// errorMessage extracts the server's "error" field, falling back to the status text.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return http.StatusText(status)
}
