package rdm

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by Section and Obj operations.
var (
	// ErrKeyNotFound is returned when an operation targets a key that is
	// not present in the section and no default was supplied.
	ErrKeyNotFound = errors.New("rdm: key not found")

	// ErrDuplicateKey is returned by Set with NoOverwrite when the key
	// already exists. The prior entry is left untouched.
	ErrDuplicateKey = errors.New("rdm: duplicate key")

	// ErrUnsupportedOperation is returned when Add, Multiply or Extend is
	// attempted on an entry whose declared type does not support it.
	ErrUnsupportedOperation = errors.New("rdm: operation not supported for declared type")
)

// TypeMismatchError reports a value that failed validation against its
// declared or expected type. Validation stops at the first failure.
type TypeMismatchError struct {
	Value    any
	Expected Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("rdm: value %v does not match type %s", e.Value, e.Expected)
}

// UnsupportedTypeError reports a type descriptor shape the validator or
// codec cannot handle (e.g. a mapping with one parameter).
type UnsupportedTypeError struct {
	Type Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("rdm: unsupported type %s", e.Type)
}

// UnknownTypeError reports a name in a type expression that is outside
// the supported vocabulary.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("rdm: unknown type name %q", e.Name)
}

// ParseError reports a malformed entry line, literal or type expression.
// Line is 1-based when the error originates from Load, 0 otherwise.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("rdm: parse error on line %d: %s", e.Line, e.Message)
	}
	return "rdm: parse error: " + e.Message
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}
