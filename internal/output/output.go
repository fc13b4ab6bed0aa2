// Package output provides output formatting utilities for the anaconda CLI.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted values of an --output flag.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Print formats and writes data according to the specified output format.
func Print(w io.Writer, format string, data interface{}) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return printJSON(w, data)
	case FormatYAML, "yml":
		return printYAML(w, data)
	case FormatText, "":
		return printText(w, data)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// printJSON outputs data as JSON indented by two spaces.
func printJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printYAML outputs data as YAML.
func printYAML(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	defer func() {
		_ = encoder.Close()
	}()
	return encoder.Encode(data)
}

// printText is a fallback; callers normally format text themselves.
func printText(w io.Writer, data interface{}) error {
	_, err := fmt.Fprintf(w, "%+v\n", data)
	return err
}

// IndentJSON writes raw JSON re-indented by two spaces, preserving key order.
func IndentJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

// Field is one row of a key/value listing.
type Field struct {
	Key   string
	Value string
}

// Fields writes a two column key/value table. Empty values are skipped and
// snake_case keys are rendered as title-cased words.
func Fields(w io.Writer, fields []Field) {
	title := cases.Title(language.English)
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("Field", "Value").WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		tbl.AddRow(title.String(strings.ReplaceAll(f.Key, "_", " ")), f.Value)
	}
	tbl.Print()
}
