package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how a command prints its result.
type OutputFormat string

const (
	// FormatText prints through fmt, so fmt.Stringer values control
	// their own layout.
	FormatText OutputFormat = "text"
	// FormatJSON prints indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatYAML prints YAML using the same field names as JSON.
	FormatYAML OutputFormat = "yaml"
)

// OutputFormats lists the accepted --output values.
var OutputFormats = []OutputFormat{FormatText, FormatJSON, FormatYAML}

// ParseOutputFormat parses an --output flag value. The empty string
// selects text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	}
	for _, known := range OutputFormats {
		if f == known {
			return f, nil
		}
	}
	return "", NewConfigError("output", fmt.Sprintf("unknown format %q (expected text, json or yaml)", s))
}

// Formatter renders command results.
type Formatter interface {
	Format(data any) ([]byte, error)
	FormatTo(w io.Writer, data any) error
}

// NewFormatter returns the formatter for format. Unknown formats fall
// back to text.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TextFormatter{}
	}
}

// TextFormatter prints data with %v and a trailing newline.
type TextFormatter struct{}

func (f *TextFormatter) Format(data any) ([]byte, error) {
	return fmt.Appendf(nil, "%v\n", data), nil
}

func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	return writeFormatted(w, f, data)
}

// JSONFormatter prints data as JSON, one document per call.
type JSONFormatter struct {
	Indent bool
}

func (f *JSONFormatter) Format(data any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	if !f.Indent {
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	}
	return buf.Bytes(), nil
}

func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	return writeFormatted(w, f, data)
}

// YAMLFormatter prints data as YAML. Values are first round-tripped
// through JSON so that json struct tags name the keys in both formats.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *YAMLFormatter) FormatTo(w io.Writer, data any) error {
	return writeFormatted(w, f, data)
}

func writeFormatted(w io.Writer, f Formatter, data any) error {
	out, err := f.Format(data)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
