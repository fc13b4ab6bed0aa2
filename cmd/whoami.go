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
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/anaconda/anaconda-client/internal/api"
	"github.com/anaconda/anaconda-client/internal/bridge"
	"github.com/anaconda/anaconda-client/internal/output"
	"github.com/anaconda/anaconda-client/internal/session"
)

// outputFormat is a pflag.Value restricted to output.Formats.
type outputFormat string

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(v string) error {
	if !slices.Contains(output.Formats, v) {
		return fmt.Errorf("must be one of %s", strings.Join(output.Formats, ", "))
	}
	*f = outputFormat(v)
	return nil
}

func (f *outputFormat) Type() string { return "format" }

// WhoamiOptions holds whoami command options.
type WhoamiOptions struct {
	Output  string
	Session session.Options
}

// WhoamiDeps holds whoami dependencies.
type WhoamiDeps struct {
	CommonDeps
	Sessions *session.Resolver
}

// WhoamiCommand represents the native whoami command.
type WhoamiCommand struct{}

// NewWhoamiCommand creates a new WhoamiCommand.
func NewWhoamiCommand() *WhoamiCommand {
	return &WhoamiCommand{}
}

// getApp retrieves the App from the command context.
func (c *WhoamiCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// Mount adds the whoami command to parent.
func (c *WhoamiCommand) Mount(parent *cobra.Command, opts bridge.MountOptions) {
	parent.AddCommand(c.GetCobraCommand(opts))
}

// GetCobraCommand returns the cobra command for whoami.
func (c *WhoamiCommand) GetCobraCommand(mount bridge.MountOptions) *cobra.Command {
	format := outputFormat(output.FormatText)

	name := mount.Name
	if name == "" {
		name = "whoami"
	}
	help := mount.Help
	if help == "" {
		help = "Print the information of the current user"
	}

	whoamiCmd := &cobra.Command{
		Use:    name,
		Short:  help,
		Hidden: mount.Hidden,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			opts := WhoamiOptions{
				Output:  format.String(),
				Session: sessionOptions(cmd),
			}
			return c.Run(cmd.Context(), app, opts, c.buildDeps(app))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	whoamiCmd.Flags().VarP(&format, "output", "o", "Output format (text, json, yaml)")

	return whoamiCmd
}

// buildDeps creates production dependencies for the whoami command.
func (c *WhoamiCommand) buildDeps(app *App) WhoamiDeps {
	return WhoamiDeps{
		CommonDeps: NewRootDeps(app),
		Sessions:   app.Sessions,
	}
}

// Run executes the whoami command with injected dependencies.
func (c *WhoamiCommand) Run(ctx context.Context, _ *App, opts WhoamiOptions, deps WhoamiDeps) error {
	return deps.Sessions.WithClient(opts.Session, func(client api.Client) error {
		deps.Logger.Debug("Fetching current user")
		return session.Whoami(ctx, client, deps.Stdout, opts.Output)
	})
}

// sessionOptions reads the session flags visible to cmd. Flags missing from
// the tree are left empty.
func sessionOptions(cmd *cobra.Command) session.Options {
	token, _ := cmd.Flags().GetString("token")
	site, _ := cmd.Flags().GetString("site")
	noWarnings, _ := cmd.Flags().GetBool("disable-ssl-warnings")
	return session.Options{
		Token:              token,
		Site:               site,
		DisableSSLWarnings: noWarnings,
	}
}
