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

	"github.com/anaconda/anaconda-client/internal/log"
)

// CommonDeps provides dependencies common across commands.
type CommonDeps struct {
	Logger log.Logger
	Stdout io.Writer
}

// NewCommonDeps creates production common dependencies.
func NewCommonDeps(logger log.Logger, stdout io.Writer) CommonDeps {
	return CommonDeps{
		Logger: logger,
		Stdout: stdout,
	}
}

// NewRootDeps creates common root dependencies for all commands.
func NewRootDeps(app *App) CommonDeps {
	return NewCommonDeps(app.Logger, app.Stdout)
}
