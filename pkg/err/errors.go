// Package err defines common errors for the verischema project.
package err

import (
	"errors"
	"fmt"
	"strings"

	jptr "github.com/qri-io/jsonpointer"
)

var (
	// ErrValidation is matched by every failure reported by the validator.
	ErrValidation = errors.New("validation failed")
	// ErrExtendsCycle reports a schema that reaches itself through "extends".
	ErrExtendsCycle = errors.New("extends cycle")
	// ErrDepthExceeded reports a value/schema tree nested beyond the configured limit.
	ErrDepthExceeded = errors.New("maximum validation depth exceeded")
	// ErrInvalidSchemaDocument reports a schema document the linter cannot read.
	ErrInvalidSchemaDocument = errors.New("invalid schema document")
)

// ValidationError describes the first constraint violated by a value.
//
// Fields:
//
//	Path jptr.Pointer: Location of the offending value inside the validated document.
//	Keyword string: Schema keyword that failed (e.g. "maximum", "required").
//	Message string: Human readable description of the violation.
type ValidationError struct {
	Path    jptr.Pointer
	Keyword string
	Message string

	cause error
}

// NewValidationError builds a ValidationError for the keyword at path.
//
// Parameters:
//
//	path jptr.Pointer: Location of the offending value.
//	keyword string: The failing schema keyword.
//	format string: fmt-style message format.
//	args ...any: Message arguments.
//
// Returns:
//
//	*ValidationError: The error, with a private copy of path.
func NewValidationError(path jptr.Pointer, keyword string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Path:    append(jptr.Pointer(nil), path...),
		Keyword: keyword,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithCause attaches an additional sentinel (or underlying error) that
// errors.Is should match besides ErrValidation.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Location renders Path as a JSON pointer fragment ("#" for the document root).
func (e *ValidationError) Location() string {
	return "#" + e.Path.String()
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Location())
	b.WriteString(": ")
	if e.Keyword != "" {
		b.WriteString(e.Keyword)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap exposes ErrValidation and the optional cause to errors.Is/As.
func (e *ValidationError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrValidation, e.cause}
	}
	return []error{ErrValidation}
}

// IsValidationError reports whether err is, or wraps, a validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ErrLint returns an error for a schema document that could not be linted.
//
// Parameters:
//
//	cause error: The underlying error.
//
// Returns:
//
//	error: The formatted error.
func ErrLint(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidSchemaDocument, cause)
}
