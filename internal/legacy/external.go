package legacy

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
)

// Invocation is a forwarded call to an externally implemented subcommand.
type Invocation struct {
	Name    string
	Args    []string
	Globals Globals
	Stdout  io.Writer
	Stderr  io.Writer
}

// ExternalFunc implements a legacy subcommand outside this module.
type ExternalFunc func(ctx context.Context, inv Invocation) error

// UnavailableError is returned for a subcommand with no registered implementation.
type UnavailableError struct {
	Name string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("the %q subcommand is not available in this build", e.Name)
}

// ExternalCmd receives every argument after the subcommand name unparsed.
type ExternalCmd struct {
	Args []string `arg:"" optional:"" help:"Arguments passed to the subcommand."`
}

// Run forwards the call to the registered ExternalFunc.
func (c *ExternalCmd) Run(ctx context.Context, kctx *kong.Context, globals *Globals, d *Dispatcher) error {
	name := kctx.Selected().Name

	fn, ok := d.external[name]
	if !ok {
		if wantsHelp(c.Args) {
			return kctx.PrintUsage(false)
		}
		return &UnavailableError{Name: name}
	}

	return fn(ctx, Invocation{
		Name:    name,
		Args:    c.Args,
		Globals: *globals,
		Stdout:  d.stdout,
		Stderr:  d.stderr,
	})
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}
