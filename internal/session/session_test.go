package session

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/anaconda/anaconda-client/internal/api"
	"github.com/anaconda/anaconda-client/internal/config"
	"github.com/anaconda/anaconda-client/internal/testutil"
	"github.com/anaconda/anaconda-client/internal/testutil/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T, client *fakeapi.Client) *Resolver {
	t.Helper()
	return NewResolver(func(Options) (api.Client, error) {
		return client, nil
	}, testutil.NewTestLogger(t))
}

func TestResolve_DefaultsOwnerToLogin(t *testing.T) {
	client := fakeapi.New("alice")

	s, err := newResolver(t, client).Resolve(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "alice", s.Owner)
	assert.Same(t, client, s.Client)
	assert.Equal(t, []string{fakeapi.CheckServer, fakeapi.User}, client.Methods())
}

func TestResolve_ExplicitUserSkipsLookup(t *testing.T) {
	client := fakeapi.New("alice")

	s, err := newResolver(t, client).Resolve(context.Background(), Options{User: "some-org"})
	require.NoError(t, err)

	assert.Equal(t, "some-org", s.Owner)
	assert.Equal(t, []string{fakeapi.CheckServer}, client.Methods())
}

func TestResolve_NoIdentity(t *testing.T) {
	client := fakeapi.New("")

	_, err := newResolver(t, client).Resolve(context.Background(), Options{})
	require.Error(t, err)

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, NoOwnerMessage, err.Error())
}

func TestResolve_CheckServerErrorPropagates(t *testing.T) {
	client := fakeapi.New("alice")
	serverErr := &api.Error{Method: "HEAD", URL: "/", Cause: errors.New("connection refused")}
	client.SetError(fakeapi.CheckServer, serverErr)

	_, err := newResolver(t, client).Resolve(context.Background(), Options{})
	assert.Same(t, serverErr, err)
	assert.Equal(t, []string{fakeapi.CheckServer}, client.Methods())
	assert.True(t, client.Closed())
}

func TestResolve_ConnectError(t *testing.T) {
	connectErr := errors.New("bad url")
	r := NewResolver(func(Options) (api.Client, error) {
		return nil, connectErr
	}, testutil.NewTestLogger(t))

	_, err := r.Resolve(context.Background(), Options{})
	assert.ErrorIs(t, err, connectErr)
}

func TestWrap(t *testing.T) {
	client := fakeapi.New("alice")
	var got *Session

	run := newResolver(t, client).Wrap(func(_ context.Context, s *Session) error {
		got = s
		return nil
	})

	require.NoError(t, run(context.Background(), Options{Token: "tok"}))
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Owner)
	assert.True(t, client.Closed())
}

func TestWrap_ClosesClientOnHandlerError(t *testing.T) {
	client := fakeapi.New("alice")
	handlerErr := errors.New("boom")

	run := newResolver(t, client).Wrap(func(context.Context, *Session) error {
		assert.False(t, client.Closed())
		return handlerErr
	})

	assert.ErrorIs(t, run(context.Background(), Options{}), handlerErr)
	assert.True(t, client.Closed())
}

func TestWithClient(t *testing.T) {
	client := fakeapi.New("alice")

	err := newResolver(t, client).WithClient(Options{}, func(c api.Client) error {
		assert.Same(t, client, c)
		assert.False(t, client.Closed())
		return nil
	})

	require.NoError(t, err)
	assert.True(t, client.Closed())
	assert.Empty(t, client.Methods())
}

func TestWrap_HandlerNotCalledOnFailure(t *testing.T) {
	client := fakeapi.New("")
	called := false

	run := newResolver(t, client).Wrap(func(context.Context, *Session) error {
		called = true
		return nil
	})

	assert.Error(t, run(context.Background(), Options{}))
	assert.False(t, called)
	assert.True(t, client.Closed())
}

func TestNewConnector(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("from-file\n"), 0o600))

	noVerify := false
	cfg := testutil.NewMockConfig(t,
		testutil.WithToken("env-token"),
		testutil.WithSite("alpha", config.Site{URL: "https://alpha.example.org/api", SSLVerify: &noVerify}),
	).GetConfig()

	tests := []struct {
		name         string
		opts         Options
		wantURL      string
		wantToken    string
		wantInsecure bool
		wantWarnings []string
	}{
		{
			name:      "defaults",
			wantURL:   config.DefaultURL,
			wantToken: "env-token",
		},
		{
			name:         "token file and site",
			opts:         Options{Token: tokenFile, Site: "alpha"},
			wantURL:      "https://alpha.example.org/api",
			wantToken:    "from-file",
			wantInsecure: true,
			wantWarnings: []string{"SSL verification is disabled"},
		},
		{
			name:         "ssl warning disabled",
			opts:         Options{Site: "alpha", DisableSSLWarnings: true},
			wantURL:      "https://alpha.example.org/api",
			wantToken:    "env-token",
			wantInsecure: true,
		},
		{
			name:         "unknown site",
			opts:         Options{Token: "literal", Site: "nowhere"},
			wantURL:      config.DefaultURL,
			wantToken:    "literal",
			wantWarnings: []string{`Site alias "nowhere" does not exist in the config file`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := testutil.NewRecordingLogger()
			var seen api.Options
			connect := NewConnector(cfg, fakeapi.New("alice").Factory(&seen), logger)

			client, err := connect(tt.opts)
			require.NoError(t, err)
			require.NotNil(t, client)

			assert.Equal(t, tt.wantURL, seen.URL)
			assert.Equal(t, tt.wantToken, seen.Token)
			assert.Equal(t, tt.wantInsecure, seen.Insecure)
			assert.Equal(t, config.DefaultTimeout, seen.Timeout)
			assert.Equal(t, tt.wantWarnings, logger.AtLevel(slog.LevelWarn))
		})
	}
}

func TestNewConnector_RedactsTokenInDebugLog(t *testing.T) {
	cfg := testutil.NewMockConfig(t).GetConfig()
	logger := testutil.NewRecordingLogger()

	_, err := NewConnector(cfg, fakeapi.New("alice").Factory(nil), logger)(Options{Token: "supersecret"})
	require.NoError(t, err)

	require.NotEmpty(t, logger.Records)
	for _, r := range logger.Records {
		for _, arg := range r.Args {
			assert.NotEqual(t, "supersecret", arg)
		}
	}
	assert.Contains(t, logger.AtLevel(slog.LevelDebug), "Creating API client")
}
