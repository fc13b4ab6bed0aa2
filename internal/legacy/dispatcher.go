package legacy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/anaconda/anaconda-client/internal/log"
	"github.com/anaconda/anaconda-client/internal/notices"
	"github.com/anaconda/anaconda-client/internal/session"
)

const (
	// Name is the program name shown in legacy usage output.
	Name = "anaconda"

	description = "Command line client for anaconda.org."

	// parseErrorCode is the exit status for arguments the parser rejects.
	parseErrorCode = 2
)

// ExitError is a terminal error that has already been reported to the user.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit status.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// exitSignal carries a kong exit request out of Parse.
type exitSignal struct {
	code int
}

// Dispatcher parses legacy command lines and runs the selected subcommand.
type Dispatcher struct {
	sessions *session.Resolver
	logger   log.Logger
	stdout   io.Writer
	stderr   io.Writer
	external map[string]ExternalFunc
}

// NewDispatcher creates a Dispatcher writing command output to stdout and
// parser messages to stderr.
func NewDispatcher(sessions *session.Resolver, logger log.Logger, stdout, stderr io.Writer) *Dispatcher {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Dispatcher{
		sessions: sessions,
		logger:   logger,
		stdout:   stdout,
		stderr:   stderr,
		external: make(map[string]ExternalFunc),
	}
}

// Register installs the implementation of an externally provided subcommand.
func (d *Dispatcher) Register(name string, fn ExternalFunc) {
	d.external[name] = fn
}

func newParser(cli *CLI, stdout, stderr io.Writer, exit func(int)) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name(Name),
		kong.Description(description),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
}

// Main parses args and runs the selected subcommand. Failures are logged once
// and returned as *ExitError. Printing help returns nil.
func (d *Dispatcher) Main(ctx context.Context, args []string) (err error) {
	if len(args) == 0 {
		args = []string{"--help"}
	}

	var cli CLI
	parser, err := newParser(&cli, d.stdout, d.stderr, func(code int) {
		panic(exitSignal{code: code})
	})
	if err != nil {
		return fmt.Errorf("failed to build legacy parser: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(exitSignal)
			if !ok {
				panic(r)
			}
			err = nil
			if sig.code != 0 {
				err = &ExitError{Code: sig.code, Err: fmt.Errorf("exit status %d", sig.code)}
			}
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		return d.fail(&cli.Globals, err, parseErrorCode, true)
	}

	log.SetVerbosity(cli.Verbose, cli.Quiet)
	d.logger.Debug("Dispatching legacy subcommand", "command", kctx.Command())

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(&cli.Globals, d); err != nil {
		return d.fail(&cli.Globals, err, 1, false)
	}
	return nil
}

// fail logs err as a single line and wraps it in an ExitError. A
// notices.UsageError anywhere in the chain supplies the message and status;
// otherwise a run error may carry its own status through ExitCode.
func (d *Dispatcher) fail(globals *Globals, err error, code int, parsing bool) error {
	msg := err.Error()

	var usage *notices.UsageError
	var coder interface{ ExitCode() int }
	switch {
	case errors.As(err, &usage):
		msg = usage.Error()
		code = usage.ExitCode()
	case !parsing && errors.As(err, &coder):
		code = coder.ExitCode()
	}

	d.logger.Error(msg)
	if globals.ShowTraceback {
		for i, e := range errorChain(err) {
			d.logger.Error(fmt.Sprintf("  #%d %T: %v", i, e, e))
		}
	}

	return &ExitError{Code: code, Err: err}
}

// errorChain lists err and every error it wraps.
func errorChain(err error) []error {
	var chain []error
	for err != nil {
		chain = append(chain, err)
		err = errors.Unwrap(err)
	}
	return chain
}

// HelpTexts returns the help text of every legacy subcommand, keyed by name.
// The parser it builds is never used to run anything.
func HelpTexts() (map[string]string, error) {
	var cli CLI
	parser, err := newParser(&cli, io.Discard, io.Discard, func(int) {})
	if err != nil {
		return nil, fmt.Errorf("failed to build legacy parser: %w", err)
	}

	texts := make(map[string]string)
	for _, node := range parser.Model.Children {
		if node.Type != kong.CommandNode {
			continue
		}
		texts[node.Name] = strings.TrimSpace(node.Help)
	}
	return texts, nil
}
