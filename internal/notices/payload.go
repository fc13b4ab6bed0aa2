// Package notices implements the channel notices subcommand: parsing a
// notices document and creating, removing or displaying the notices of a label.
package notices

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// UsageError reports invalid command line input.
type UsageError struct {
	Message string
	Code    int   // Process exit status
	Cause   error // The underlying error, if any
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *UsageError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit status for the error.
func (e *UsageError) ExitCode() int {
	return e.Code
}

func newUsageError(cause error, format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...), Code: 1, Cause: cause}
}

// Payload is a notices document: any valid JSON value, kept as compact JSON text.
type Payload struct {
	raw json.RawMessage
}

// Parse normalizes a --create argument. An argument naming an existing file
// is replaced by the file's contents; the result must be valid JSON.
func Parse(arg string) (Payload, error) {
	text := []byte(arg)

	if _, err := os.Stat(arg); err == nil {
		data, err := os.ReadFile(arg)
		if err != nil {
			return Payload{}, newUsageError(err, "Unable to read provided JSON file: %v", err)
		}
		text = data
	}

	return ParseJSON(text)
}

// ParseJSON validates and compacts a JSON document.
func ParseJSON(text []byte) (Payload, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, text); err != nil {
		return Payload{}, newUsageError(err, "Unable to parse provided JSON; please make sure it is valid JSON")
	}
	return Payload{raw: buf.Bytes()}, nil
}

// Raw returns the compact JSON text of the payload.
func (p Payload) Raw() json.RawMessage {
	return p.raw
}

// IsZero reports whether no payload was set.
func (p Payload) IsZero() bool {
	return len(p.raw) == 0
}

// Value decodes the payload into generic Go values.
func (p Payload) Value() (any, error) {
	var v any
	if err := json.Unmarshal(p.raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// MarshalJSON implements json.Marshaler.
func (p Payload) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// String returns the compact JSON text.
func (p Payload) String() string {
	return string(p.raw)
}

// Decode implements kong.MapperValue so a Payload flag is normalized while
// the command line is parsed.
func (p *Payload) Decode(ctx *kong.DecodeContext) error {
	var arg string
	if err := ctx.Scan.PopValueInto("notices", &arg); err != nil {
		return err
	}

	parsed, err := Parse(arg)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
