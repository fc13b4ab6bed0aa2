// Package cmd provides the command line interface for the anaconda client
/*
Copyright © 2026 Anaconda, Inc.

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anaconda/anaconda-client/internal/api"
	"github.com/anaconda/anaconda-client/internal/bridge"
	"github.com/anaconda/anaconda-client/internal/config"
	"github.com/anaconda/anaconda-client/internal/legacy"
	"github.com/anaconda/anaconda-client/internal/log"
)

// RootOptions holds the global flags the root command acts on. The token,
// site and SSL flags are read by the subcommands that open a session.
type RootOptions struct {
	Verbose       bool
	Quiet         bool
	ShowTraceback bool
}

// RootCommand represents the root command for the anaconda CLI.
type RootCommand struct {
	app  *App
	opts RootOptions
}

// NewRootCommand creates a new RootCommand for app.
func NewRootCommand(app *App) *RootCommand {
	return &RootCommand{app: app}
}

// Mounters returns the natively implemented subcommands, keyed by module name.
func Mounters() map[string]bridge.Mounter {
	return map[string]bridge.Mounter{
		"whoami": NewWhoamiCommand().Mount,
	}
}

// GetCobraCommand returns the cobra root command with every subcommand mounted.
func (c *RootCommand) GetCobraCommand() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   legacy.Name,
		Short: "Command line client for anaconda.org",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetVerbosity(c.opts.Verbose, c.opts.Quiet)
			c.app.Logger.Debug("Running command", "command", cmd.CommandPath())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringP("token", "t", "", "Authentication token to use. May be a token or a path to a file containing a token")
	flags.StringP("site", "s", "", "Select the anaconda-client site to use")
	flags.BoolVarP(&c.opts.Verbose, "verbose", "v", false, "Print debug information")
	flags.BoolVarP(&c.opts.Quiet, "quiet", "q", false, "Only show warnings or errors")
	flags.BoolVar(&c.opts.ShowTraceback, "show-traceback", false, "Show the full error chain when a command fails")
	flags.Bool("disable-ssl-warnings", false, "Disable warnings about unverified SSL connections")

	orgCmd := NewOrgCommand().GetCobraCommand()
	rootCmd.AddCommand(
		orgCmd,
		NewVersionCommand().GetCobraCommand(),
	)

	help, err := legacy.HelpTexts()
	if err != nil {
		return nil, err
	}

	_, err = bridge.Load(rootCmd, orgCmd, bridge.Options{
		ForceNew:   c.app.Config.ForceNewCLI,
		Standalone: c.app.Config.Standalone,
		Help:       help,
		Mounters:   Mounters(),
		Args:       c.app.Args,
		Dispatch:   c.app.Dispatcher.Main,
		Logger:     c.app.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mount legacy subcommands: %w", err)
	}

	return rootCmd, nil
}

// Execute runs the anaconda command line and returns the process exit code.
func Execute() int {
	log.Init(false)
	logger := log.GetLogger()

	configProv := config.NewDefaultConfigProvider()
	if _, err := configProv.InitConfig(); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return 1
	}

	app := NewApp(logger, configProv, api.NewClient, os.Args[1:], os.Stdout, os.Stderr)
	return ExecuteApp(context.Background(), app)
}

// ExecuteApp runs the command tree built for app with app.Args.
func ExecuteApp(ctx context.Context, app *App) int {
	rc := NewRootCommand(app)
	rootCmd, err := rc.GetCobraCommand()
	if err != nil {
		app.Logger.Error(err.Error())
		return 1
	}

	rootCmd.SetArgs(app.Args)
	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	err = rootCmd.ExecuteContext(context.WithValue(ctx, appContextKey, app))
	return exitCode(app.Logger, err, rc.opts.ShowTraceback)
}

// exitCode maps a command error to a process exit status. Errors from the
// legacy dispatcher have already been logged. With traceback set, each
// wrapped cause is logged after the error itself.
func exitCode(logger log.Logger, err error, traceback bool) int {
	if err == nil {
		return 0
	}

	var exitErr *legacy.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	logger.Error(err.Error())
	if traceback {
		for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
			logger.Error("Caused by", "error", cause.Error(), "type", fmt.Sprintf("%T", cause))
		}
	}
	return 1
}
