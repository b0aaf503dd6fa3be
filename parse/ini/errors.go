package ini

import (
	"errors"
	"fmt"
)

// Errors reported by strict parsing. Best-effort parsing drops the offending
// line instead.
var (
	// ErrMalformedLine indicates a non-blank line that is neither a section
	// header nor a key/value pair.
	ErrMalformedLine = errors.New("malformed line")

	// ErrOrphanKey indicates a key/value pair before the first section header.
	ErrOrphanKey = errors.New("key outside of any section")

	// ErrEmptyKey indicates a key/value pair with nothing before the `=`.
	ErrEmptyKey = errors.New("empty key")

	// ErrDuplicateKey indicates a key that already exists in its table under
	// case-insensitive comparison.
	ErrDuplicateKey = errors.New("duplicate key")
)

// ParseError describes a rejected line.
type ParseError struct {
	// Path is the file being parsed, empty for in-memory input.
	Path string
	// Line is the 1-based line number.
	Line int
	// Message holds the offending text.
	Message string
	// Err is one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	src := e.Path
	if src == "" {
		src = "ini"
	}
	if e.Message == "" {
		return fmt.Sprintf("%s:%d: %v", src, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v: %q", src, e.Line, e.Err, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
