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
	"github.com/spf13/cobra"

	"github.com/anaconda/anaconda-client/internal/bridge"
)

// OrgCommand groups every anaconda.org subcommand under "anaconda org".
type OrgCommand struct{}

// NewOrgCommand creates a new OrgCommand.
func NewOrgCommand() *OrgCommand {
	return &OrgCommand{}
}

// GetCobraCommand returns the cobra command for the org group.
func (c *OrgCommand) GetCobraCommand() *cobra.Command {
	orgCmd := &cobra.Command{
		Use:           bridge.OrgKeyword,
		Short:         "Interact with anaconda.org",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	orgCmd.PersistentFlags().StringP("token", "t", "", "Authentication token to use. A token string or path to a file containing a token")
	orgCmd.PersistentFlags().StringP("site", "s", "", "Select the anaconda-client site to use")
	_ = orgCmd.PersistentFlags().MarkHidden("token")
	_ = orgCmd.PersistentFlags().MarkHidden("site")

	return orgCmd
}
