package accesslog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidJSON indicates a line that is not a single JSON object.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrMissingField indicates a required field is absent.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidField indicates a field with the wrong JSON type or an
	// out-of-range value.
	ErrInvalidField = errors.New("invalid field")
)

// ParseError describes why a line was rejected. It wraps one of the
// sentinel errors above.
type ParseError struct {
	// Field is the configured JSON path of the offending field, empty for
	// ErrInvalidJSON.
	Field string

	// Kind is ErrInvalidJSON, ErrMissingField, or ErrInvalidField.
	Kind error

	// Err is the underlying cause, if any.
	Err error
}

func (e *ParseError) Error() string {
	switch {
	case e.Field == "" && e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	case e.Field == "":
		return e.Kind.Error()
	case e.Err != nil:
		return fmt.Sprintf("%v %q: %v", e.Kind, e.Field, e.Err)
	default:
		return fmt.Sprintf("%v %q", e.Kind, e.Field)
	}
}

// Is reports whether target is the error's kind.
func (e *ParseError) Is(target error) bool {
	return target == e.Kind
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reason returns a short label for the error kind, suitable as a metric
// label value.
func (e *ParseError) Reason() string {
	switch e.Kind {
	case ErrInvalidJSON:
		return "invalid_json"
	case ErrMissingField:
		return "missing_field"
	case ErrInvalidField:
		return "invalid_field"
	default:
		return "unknown"
	}
}

// Reason returns the label of err when it is a *ParseError, and "unknown"
// otherwise.
func Reason(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Reason()
	}
	return "unknown"
}
