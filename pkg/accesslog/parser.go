package accesslog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Fields maps each request attribute onto a dotted JSON path. A path such
// as "nginx.time.request" matches either nested objects or a literal key
// containing dots.
type Fields struct {
	Method      string
	Path        string
	Host        string
	StatusCode  string
	RequestTime string
}

// DefaultFields matches the nested layout produced by the common nginx
// JSON log_format used with ECS-style field names.
var DefaultFields = Fields{
	Method:      "nginx.access.method",
	Path:        "nginx.access.url",
	Host:        "nginx.access.host",
	StatusCode:  "http.response.status_code",
	RequestTime: "nginx.time.request",
}

// Parser turns raw log lines into validated records. It holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	fields Fields
}

// NewParser creates a parser for the given field layout. Empty paths fall
// back to DefaultFields.
func NewParser(fields Fields) *Parser {
	if fields.Method == "" {
		fields.Method = DefaultFields.Method
	}
	if fields.Path == "" {
		fields.Path = DefaultFields.Path
	}
	if fields.Host == "" {
		fields.Host = DefaultFields.Host
	}
	if fields.StatusCode == "" {
		fields.StatusCode = DefaultFields.StatusCode
	}
	if fields.RequestTime == "" {
		fields.RequestTime = DefaultFields.RequestTime
	}
	return &Parser{fields: fields}
}

// Fields returns the field layout in use.
func (p *Parser) Fields() Fields {
	return p.fields
}

// IsBlank reports whether line holds only whitespace. Blank lines are
// skipped rather than treated as parse errors.
func IsBlank(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0
}

// Parse decodes one line. Every failure is a *ParseError.
func (p *Parser) Parse(line []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return Record{}, &ParseError{Kind: ErrInvalidJSON, Err: err}
	}
	if obj == nil {
		return Record{}, &ParseError{Kind: ErrInvalidJSON, Err: fmt.Errorf("not an object")}
	}
	// More reports false ahead of a stray '}' or ']', so require EOF.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Record{}, &ParseError{Kind: ErrInvalidJSON, Err: fmt.Errorf("trailing data after object")}
	}

	var (
		rec Record
		err error
	)
	if rec.Method, err = p.stringField(obj, p.fields.Method); err != nil {
		return Record{}, err
	}
	if rec.Path, err = p.stringField(obj, p.fields.Path); err != nil {
		return Record{}, err
	}
	if rec.Host, err = p.stringField(obj, p.fields.Host); err != nil {
		return Record{}, err
	}
	if rec.StatusCode, err = p.statusField(obj, p.fields.StatusCode); err != nil {
		return Record{}, err
	}
	if rec.RequestTime, err = p.durationField(obj, p.fields.RequestTime); err != nil {
		return Record{}, err
	}

	return rec, nil
}

func (p *Parser) stringField(obj map[string]any, path string) (string, error) {
	v, ok := lookup(obj, path)
	if !ok {
		return "", &ParseError{Field: path, Kind: ErrMissingField}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ParseError{Field: path, Kind: ErrInvalidField, Err: fmt.Errorf("expected string, got %s", jsonType(v))}
	}
	return s, nil
}

func (p *Parser) statusField(obj map[string]any, path string) (int, error) {
	v, ok := lookup(obj, path)
	if !ok {
		return 0, &ParseError{Field: path, Kind: ErrMissingField}
	}

	var raw string
	switch t := v.(type) {
	case json.Number:
		raw = t.String()
	case string:
		raw = strings.TrimSpace(t)
	default:
		return 0, &ParseError{Field: path, Kind: ErrInvalidField, Err: fmt.Errorf("expected number, got %s", jsonType(v))}
	}

	code, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParseError{Field: path, Kind: ErrInvalidField, Err: err}
	}
	if code < 100 || code > 599 {
		return 0, &ParseError{Field: path, Kind: ErrInvalidField, Err: fmt.Errorf("status code %d out of range", code)}
	}
	return code, nil
}

func (p *Parser) durationField(obj map[string]any, path string) (float64, error) {
	v, ok := lookup(obj, path)
	if !ok {
		return 0, &ParseError{Field: path, Kind: ErrMissingField}
	}

	var raw string
	switch t := v.(type) {
	case json.Number:
		raw = t.String()
	case string:
		raw = strings.TrimSpace(t)
	default:
		return 0, &ParseError{Field: path, Kind: ErrInvalidField, Err: fmt.Errorf("expected number, got %s", jsonType(v))}
	}

	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ParseError{Field: path, Kind: ErrInvalidField, Err: err}
	}
	if secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, &ParseError{Field: path, Kind: ErrInvalidField, Err: fmt.Errorf("request time %v out of range", secs)}
	}
	return secs, nil
}

// lookup resolves a dotted path. A literal key wins over nesting at each
// level, so both {"a.b":1} and {"a":{"b":1}} resolve "a.b".
func lookup(obj map[string]any, path string) (any, bool) {
	if v, ok := obj[path]; ok {
		return v, true
	}
	for i := 0; i < len(path); i++ {
		if path[i] != '.' {
			continue
		}
		sub, ok := obj[path[:i]].(map[string]any)
		if !ok {
			continue
		}
		if v, ok := lookup(sub, path[i+1:]); ok {
			return v, true
		}
	}
	return nil, false
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
