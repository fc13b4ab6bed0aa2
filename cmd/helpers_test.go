package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/anaconda/anaconda-client/internal/api"
	"github.com/anaconda/anaconda-client/internal/log"
	"github.com/anaconda/anaconda-client/internal/testutil"
	"github.com/anaconda/anaconda-client/internal/testutil/fakeapi"
)

// AppBuilder assembles an App backed by a fake API client.
type AppBuilder struct {
	client *fakeapi.Client
	logger log.Logger
	opts   []testutil.ConfigOption
	args   []string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	seen   *api.Options
}

// NewAppBuilder creates a builder authenticated as "alice".
func NewAppBuilder(t *testing.T) *AppBuilder {
	t.Helper()
	return &AppBuilder{
		client: fakeapi.New("alice"),
		logger: testutil.NewTestLogger(t),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
}

// WithClient replaces the fake API client.
func (b *AppBuilder) WithClient(c *fakeapi.Client) *AppBuilder {
	b.client = c
	return b
}

// WithSeenOptions records the options the App passes to the API client factory.
func (b *AppBuilder) WithSeenOptions(seen *api.Options) *AppBuilder {
	b.seen = seen
	return b
}

// WithLogger replaces the test logger.
func (b *AppBuilder) WithLogger(l log.Logger) *AppBuilder {
	b.logger = l
	return b
}

// WithConfig applies config options.
func (b *AppBuilder) WithConfig(opts ...testutil.ConfigOption) *AppBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// WithArgs sets the process arguments the App replays to the legacy dispatcher.
func (b *AppBuilder) WithArgs(args ...string) *AppBuilder {
	b.args = args
	return b
}

// Build creates the App.
func (b *AppBuilder) Build(t *testing.T) *App {
	t.Helper()
	provider := testutil.NewMockConfig(t, b.opts...)
	require.NotNil(t, provider.GetConfig())
	return NewApp(b.logger, provider, b.client.Factory(b.seen), b.args, b.stdout, b.stderr)
}

// Stdout returns everything commands wrote to standard output.
func (b *AppBuilder) Stdout() string {
	return b.stdout.String()
}

// ExecuteCommandWithCapture executes a cobra command and returns what it wrote
// through cobra's output streams.
func ExecuteCommandWithCapture(t *testing.T, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// SetupCommandContext creates a command with app context for testing.
func SetupCommandContext(cmd *cobra.Command, app *App) {
	ctx := context.WithValue(context.Background(), appContextKey, app)
	cmd.SetContext(ctx)
}
