package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anaconda/anaconda-client/internal/api"
	"github.com/anaconda/anaconda-client/internal/bridge"
	"github.com/anaconda/anaconda-client/internal/testutil"
	"github.com/anaconda/anaconda-client/internal/testutil/fakeapi"
)

func findCommand(t *testing.T, root *cobra.Command, path ...string) *cobra.Command {
	t.Helper()
	cmd, _, err := root.Find(path)
	require.NoError(t, err)
	require.Equal(t, path[len(path)-1], cmd.Name())
	return cmd
}

// TestRootCommandFlags verifies flag parsing.
func TestRootCommandFlags(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	cmd, err := NewRootCommand(app).GetCobraCommand()
	require.NoError(t, err)

	for _, name := range []string{"token", "site", "verbose", "quiet", "show-traceback", "disable-ssl-warnings"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "t", cmd.PersistentFlags().Lookup("token").Shorthand)
	assert.Equal(t, "false", cmd.PersistentFlags().Lookup("verbose").DefValue)

	org := findCommand(t, cmd, "org")
	assert.Equal(t, "Interact with anaconda.org", org.Short)
	assert.True(t, org.PersistentFlags().Lookup("token").Hidden)
	assert.True(t, org.PersistentFlags().Lookup("site").Hidden)
}

func TestRootCommand_MountsLegacySubcommands(t *testing.T) {
	app := NewAppBuilder(t).Build(t)
	cmd, err := NewRootCommand(app).GetCobraCommand()
	require.NoError(t, err)

	for _, name := range bridge.AllSubcommands {
		sub := findCommand(t, cmd, "org", name)
		assert.True(t, sub.DisableFlagParsing, name)
	}

	upload := findCommand(t, cmd, "upload")
	assert.False(t, upload.Hidden)
	assert.Equal(t, "anaconda.org: Upload packages to your Anaconda repository (alias for 'anaconda org upload')", upload.Short)

	assert.True(t, findCommand(t, cmd, "notices").Hidden)

	_, _, err = cmd.Find([]string{"whoami"})
	assert.Error(t, err)
}

func TestRootCommand_Standalone(t *testing.T) {
	app := NewAppBuilder(t).WithConfig(testutil.WithStandalone(true)).Build(t)
	cmd, err := NewRootCommand(app).GetCobraCommand()
	require.NoError(t, err)

	assert.Empty(t, findCommand(t, cmd, "org").Commands())
	findCommand(t, cmd, "version")
}

func TestRootCommand_ForceNewMountsNativeWhoami(t *testing.T) {
	app := NewAppBuilder(t).WithConfig(testutil.WithForceNewCLI(true)).Build(t)
	cmd, err := NewRootCommand(app).GetCobraCommand()
	require.NoError(t, err)

	whoami := findCommand(t, cmd, "org", "whoami")
	assert.False(t, whoami.DisableFlagParsing)
	assert.NotNil(t, whoami.Flags().Lookup("output"))

	upload := findCommand(t, cmd, "org", "upload")
	assert.True(t, upload.DisableFlagParsing)
}

func TestExecuteApp_NoticesThroughOrg(t *testing.T) {
	client := fakeapi.New("alice")
	client.SetNotices("alice", "main", `{"notices":[]}`)
	b := NewAppBuilder(t).WithClient(client).WithArgs("org", "notices", "--get")

	code := ExecuteApp(context.Background(), b.Build(t))

	assert.Equal(t, 0, code)
	assert.Equal(t, "{\n  \"notices\": []\n}\n", b.Stdout())
}

func TestExecuteApp_NoticesCreateAtTopLevel(t *testing.T) {
	client := fakeapi.New("alice")
	b := NewAppBuilder(t).WithClient(client).WithArgs("notices", "--label", "beta", "--create", `{"a":1}`)

	code := ExecuteApp(context.Background(), b.Build(t))

	require.Equal(t, 0, code)
	calls := client.GetCalls()
	require.NotEmpty(t, calls)
	last := calls[len(calls)-1]
	assert.Equal(t, fakeapi.CreateNotices, last.Method)
	assert.Equal(t, "beta", last.Label)
	assert.JSONEq(t, `{"a":1}`, string(last.Payload))
}

func TestExecuteApp_KeepsOrgLabel(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "top level", args: []string{"notices", "--label", "org", "--remove"}},
		{name: "org tree", args: []string{"org", "notices", "--label", "org", "--remove"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := fakeapi.New("alice")
			b := NewAppBuilder(t).WithClient(client).WithArgs(tt.args...)

			code := ExecuteApp(context.Background(), b.Build(t))

			require.Equal(t, 0, code)
			calls := client.GetCalls()
			require.NotEmpty(t, calls)
			last := calls[len(calls)-1]
			assert.Equal(t, fakeapi.RemoveNotices, last.Method)
			assert.Equal(t, "org", last.Label)
		})
	}
}

func TestExecuteApp_ParseErrorExitCode(t *testing.T) {
	b := NewAppBuilder(t).WithArgs("org", "notices", "--get", "--remove")

	assert.Equal(t, 2, ExecuteApp(context.Background(), b.Build(t)))
}

func TestExecuteApp_DeprecatedSubcommandWarnsOnce(t *testing.T) {
	logger := testutil.NewRecordingLogger()
	b := NewAppBuilder(t).WithLogger(logger).WithArgs("notebook", "download", "alice/nb")

	code := ExecuteApp(context.Background(), b.Build(t))

	// notebook is not implemented in this module
	assert.Equal(t, 1, code)
	warnings := logger.AtLevel(slog.LevelWarn)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"anaconda org notebook ..."`)
}

func TestExecuteApp_NativeWhoami(t *testing.T) {
	var seen api.Options
	b := NewAppBuilder(t).
		WithConfig(testutil.WithForceNewCLI(true)).
		WithSeenOptions(&seen).
		WithArgs("org", "-t", "secret", "whoami", "-o", "json")

	code := ExecuteApp(context.Background(), b.Build(t))

	require.Equal(t, 0, code)
	var user api.User
	require.NoError(t, json.Unmarshal([]byte(b.Stdout()), &user))
	assert.Equal(t, "alice", user.Login)
	assert.Equal(t, "secret", seen.Token)
	assert.True(t, b.client.Closed())
}

func TestExecuteApp_NativeWhoamiRejectsUnknownFormat(t *testing.T) {
	logger := testutil.NewRecordingLogger()
	b := NewAppBuilder(t).
		WithLogger(logger).
		WithConfig(testutil.WithForceNewCLI(true)).
		WithArgs("org", "whoami", "-o", "xml")

	assert.Equal(t, 1, ExecuteApp(context.Background(), b.Build(t)))
	assert.True(t, logger.Contains("must be one of text, json, yaml"))
}

func TestExecuteApp_ShowTraceback(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantErrors int
	}{
		{name: "default", args: []string{"org", "whoami"}, wantErrors: 1},
		{name: "with traceback", args: []string{"org", "whoami", "--show-traceback"}, wantErrors: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := fakeapi.New("alice")
			client.SetError(fakeapi.User, &api.Error{Method: "GET", URL: "https://api.anaconda.org/user", Cause: errors.New("connection refused")})
			logger := testutil.NewRecordingLogger()
			b := NewAppBuilder(t).
				WithClient(client).
				WithLogger(logger).
				WithConfig(testutil.WithForceNewCLI(true)).
				WithArgs(tt.args...)

			assert.Equal(t, 1, ExecuteApp(context.Background(), b.Build(t)))

			errs := logger.AtLevel(slog.LevelError)
			require.Len(t, errs, tt.wantErrors)
			assert.Contains(t, errs[0], "connection refused")
		})
	}
}

func TestExecuteApp_UnknownCommand(t *testing.T) {
	b := NewAppBuilder(t).WithConfig(testutil.WithStandalone(true)).WithArgs("upload", "pkg.tar.bz2")

	assert.Equal(t, 1, ExecuteApp(context.Background(), b.Build(t)))
}
