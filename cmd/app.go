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
	"io"
	"os"

	"github.com/anaconda/anaconda-client/internal/api"
	"github.com/anaconda/anaconda-client/internal/config"
	"github.com/anaconda/anaconda-client/internal/legacy"
	"github.com/anaconda/anaconda-client/internal/log"
	"github.com/anaconda/anaconda-client/internal/session"
)

type contextKey string

const appContextKey contextKey = "app"

// App holds the application dependencies for command line interface.
type App struct {
	Logger         log.Logger
	Config         *config.Settings
	ConfigProvider config.Provider
	Sessions       *session.Resolver
	Dispatcher     *legacy.Dispatcher
	// Args are the process arguments without the program name.
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

// NewApp creates a new App with all dependencies initialized.
// Command output goes to stdout; nil writers default to the process streams.
func NewApp(logger log.Logger, configProv config.Provider, factory api.Factory, args []string, stdout, stderr io.Writer) *App {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg := configProv.GetConfig()
	sessions := session.NewResolver(session.NewConnector(cfg, factory, logger), logger)

	return &App{
		Logger:         logger,
		Config:         cfg,
		ConfigProvider: configProv,
		Sessions:       sessions,
		Dispatcher:     legacy.NewDispatcher(sessions, logger, stdout, stderr),
		Args:           args,
		Stdout:         stdout,
		Stderr:         stderr,
	}
}
