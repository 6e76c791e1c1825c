package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"gopkg.in/yaml.v3"
)

type versionStub struct {
	Version string `json:"version"`
}

func (v versionStub) String() string {
	return "nginx-exporter " + v.Version
}

func TestTextFormatter(t *testing.T) {
	formatter := &TextFormatter{}

	output, err := formatter.Format(versionStub{Version: "1.2.3"})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	expected := "nginx-exporter 1.2.3\n"
	if string(output) != expected {
		t.Errorf("Format() = %q, want %q", string(output), expected)
	}

	buf := &bytes.Buffer{}
	if err := formatter.FormatTo(buf, "config OK"); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "config OK\n" {
		t.Errorf("FormatTo() = %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	tests := []struct {
		name   string
		indent bool
	}{
		{"compact", false},
		{"indented", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &JSONFormatter{Indent: tt.indent}
			output, err := formatter.Format(versionStub{Version: "1.2.3"})
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			var result versionStub
			if err := json.Unmarshal(output, &result); err != nil {
				t.Fatalf("Format() produced invalid JSON: %v", err)
			}
			if result.Version != "1.2.3" {
				t.Errorf("version = %q", result.Version)
			}
			if hasNewline := bytes.Contains(output, []byte("\n")); hasNewline != tt.indent {
				t.Errorf("indentation = %v, want %v", hasNewline, tt.indent)
			}
		})
	}
}

func TestJSONFormatterWriter(t *testing.T) {
	formatter := &JSONFormatter{Indent: true}
	buf := &bytes.Buffer{}

	if err := formatter.FormatTo(buf, map[string]string{"test": "value"}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var result map[string]string
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("FormatTo() produced invalid JSON: %v", err)
	}
	if result["test"] != "value" {
		t.Errorf("FormatTo() = %v", result)
	}
}

func TestYAMLFormatter(t *testing.T) {
	report := struct {
		LogPath      string   `json:"log_path"`
		MatchedFiles []string `json:"matched_files"`
		SelfMetrics  bool     `json:"self_metrics"`
	}{
		LogPath:      "/var/log/nginx/*.log",
		MatchedFiles: []string{"/var/log/nginx/access.log"},
		SelfMetrics:  true,
	}

	buf := &bytes.Buffer{}
	if err := (&YAMLFormatter{}).FormatTo(buf, report); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML %q: %v", buf.String(), err)
	}
	if got["log_path"] != "/var/log/nginx/*.log" || got["self_metrics"] != true {
		t.Errorf("decoded = %v", got)
	}
	if files, ok := got["matched_files"].([]any); !ok || len(files) != 1 {
		t.Errorf("matched_files = %#v", got["matched_files"])
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatText, "*cli.TextFormatter"},
		{FormatJSON, "*cli.JSONFormatter"},
		{FormatYAML, "*cli.YAMLFormatter"},
		{"unknown", "*cli.TextFormatter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := fmt.Sprintf("%T", NewFormatter(tt.format)); got != tt.want {
				t.Errorf("NewFormatter(%q) type = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{" yml ", FormatYAML, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if err != nil && ExitCode(err) != ExitConfigError {
			t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitConfigError)
		}
	}
}
