package schemata

import (
	"errors"
	"fmt"

	"github.com/hupe1980/schemata/value"
)

var (
	// ErrNoSuchField is matched by errors naming a field the schema does not have.
	ErrNoSuchField = errors.New("no such field")

	// ErrEncoding is matched by errors for entries that do not fit the schema:
	// a field count mismatch or a blob that fails to decode.
	ErrEncoding = errors.New("failed to encode or decode data")

	// ErrTypeMismatch is matched by errors of strict schemas when a value's
	// type differs from the declared field type.
	ErrTypeMismatch = errors.New("value type does not match field type")
)

// NoSuchFieldError reports an unknown field name.
type NoSuchFieldError struct {
	Name string
}

func (e *NoSuchFieldError) Error() string {
	return fmt.Sprintf("no such field: %s", e.Name)
}

// Is reports whether target is ErrNoSuchField.
func (e *NoSuchFieldError) Is(target error) bool { return target == ErrNoSuchField }

// EncodingError reports an entry that does not fit the schema.
//
// For decode failures Field and Type name the offending field and the
// underlying error can be accessed via errors.Unwrap. For count mismatches
// Expected and Actual hold the field counts.
type EncodingError struct {
	Field    string
	Type     value.Type
	Expected int
	Actual   int
	cause    error
}

func (e *EncodingError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("failed to decode field %q of type %s: %v", e.Field, e.Type, e.cause)
	}
	return fmt.Sprintf("entry has %d fields, schema has %d", e.Actual, e.Expected)
}

// Is reports whether target is ErrEncoding.
func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

func (e *EncodingError) Unwrap() error { return e.cause }

// TypeMismatchError reports a write of a value whose type differs from the
// declared field type. Only strict schemas return it.
type TypeMismatchError struct {
	Field    string
	Expected value.Type
	Actual   value.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q has type %s, got %s", e.Field, e.Expected, e.Actual)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

func errLength(expected, actual int) error {
	return &EncodingError{Expected: expected, Actual: actual}
}
