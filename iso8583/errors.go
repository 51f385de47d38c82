package iso8583

import (
	"errors"
	"fmt"
)

var (
	// ErrMessageTooShort indicates that the wire string ended before a
	// required component (MTI, bitmap, length prefix, or field value).
	ErrMessageTooShort = errors.New("message too short")

	// ErrInvalidMTI indicates an MTI that is missing, not 4 characters, or
	// not numeric.
	ErrInvalidMTI = errors.New("invalid MTI")

	// ErrUnknownField indicates a field number with no catalog definition.
	// On parse it is a non-fatal skip; on build it is terminal.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidLengthPrefix indicates a non-numeric length prefix on a
	// variable-length field.
	ErrInvalidLengthPrefix = errors.New("invalid length prefix")

	// ErrLengthExceedsMax indicates a declared or actual value length above
	// the catalog maximum for the field.
	ErrLengthExceedsMax = errors.New("length exceeds field maximum")

	// ErrInvalidHex indicates non-hex content in a binary field.
	ErrInvalidHex = errors.New("invalid hex value")

	// ErrInvalidValue indicates field content outside its character class.
	ErrInvalidValue = errors.New("invalid field value")
)

// ParseError records a failed message parse. Field is the offending data
// element number, or -1 when the failure is not field-scoped.
type ParseError struct {
	Field int
	err   error
}

func newParseError(fieldNum int, err error) *ParseError {
	return &ParseError{Field: fieldNum, err: err}
}

func parseErrorf(fieldNum int, format string, args ...any) *ParseError {
	return &ParseError{Field: fieldNum, err: fmt.Errorf(format, args...)}
}

func (e *ParseError) Error() string {
	if e.Field < 0 {
		return "parse: " + e.err.Error()
	}

	return fmt.Sprintf("parse field %d: %s", e.Field, e.err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// BuildError records a failed message build: a formatting failure on one
// field (Field >= 0) or a post-format validation failure (Field == -1,
// with the violations in the message).
type BuildError struct {
	Field int
	err   error
}

func newBuildError(fieldNum int, err error) *BuildError {
	return &BuildError{Field: fieldNum, err: err}
}

func buildErrorf(fieldNum int, format string, args ...any) *BuildError {
	return &BuildError{Field: fieldNum, err: fmt.Errorf(format, args...)}
}

func (e *BuildError) Error() string {
	if e.Field < 0 {
		return "build: " + e.err.Error()
	}

	return fmt.Sprintf("build field %d: %s", e.Field, e.err.Error())
}

func (e *BuildError) Unwrap() error {
	return e.err
}
