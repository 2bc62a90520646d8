// Package faults defines the error kinds shared by builders, mappers and
// repositories.
//
// Every kind has a sentinel usable with errors.Is and a typed error carrying
// the details. Typed errors report their sentinel from Is and expose the
// underlying cause through Unwrap.
package faults

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

// Sentinel errors, one per kind.
var (
	ErrNotFound            = errors.New("not found")
	ErrIncompleteObject    = errors.New("incomplete object")
	ErrInvalidFieldType    = errors.New("invalid field type")
	ErrMissingField        = errors.New("missing field")
	ErrInvalidValue        = errors.New("invalid value")
	ErrPersistence         = errors.New("persistence failure")
	ErrInitialization      = errors.New("initialization failure")
	ErrConnection          = errors.New("connection failure")
	ErrUnsupportedCategory = errors.New("unsupported category")
)

// NotFoundError indicates that no record matches the given id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IncompleteObjectError is returned by builders when required fields are unset.
type IncompleteObjectError struct {
	Object  string
	Missing []string
}

func (e *IncompleteObjectError) Error() string {
	return fmt.Sprintf("incomplete %s: missing %s", e.Object, strings.Join(e.Missing, ", "))
}

func (e *IncompleteObjectError) Is(target error) bool { return target == ErrIncompleteObject }

// InvalidFieldTypeError is returned by mappers when a raw value has the wrong type.
type InvalidFieldTypeError struct {
	Field string
	Value any
}

func (e *InvalidFieldTypeError) Error() string {
	return fmt.Sprintf("invalid type for field %q: %v (%T)", e.Field, e.Value, e.Value)
}

func (e *InvalidFieldTypeError) Is(target error) bool { return target == ErrInvalidFieldType }

// MissingFieldError is returned by mappers when a raw record lacks a field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// InvalidValueError reports field content rejected by a validator.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

// PersistenceError wraps a storage failure other than not-found.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// InitializationError wraps a schema setup or dependency init failure.
type InitializationError struct {
	Component string
	Err       error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("initialize %s: %v", e.Component, e.Err)
}

func (e *InitializationError) Is(target error) bool { return target == ErrInitialization }

func (e *InitializationError) Unwrap() error { return e.Err }

// ConnectionError indicates the backend could not be reached at all.
type ConnectionError struct {
	Backend string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Backend, e.Err)
}

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

func (e *ConnectionError) Unwrap() error { return e.Err }

// UnsupportedCategoryError is returned by factories for a category (or a
// category and backend pair) that is not wired.
type UnsupportedCategoryError struct {
	Category string
	Backend  string
}

func (e *UnsupportedCategoryError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("unsupported category %q", e.Category)
	}
	return fmt.Sprintf("unsupported category %q for backend %q", e.Category, e.Backend)
}

func (e *UnsupportedCategoryError) Is(target error) bool { return target == ErrUnsupportedCategory }

var classified = []error{
	ErrNotFound,
	ErrIncompleteObject,
	ErrInvalidFieldType,
	ErrMissingField,
	ErrInvalidValue,
	ErrPersistence,
	ErrInitialization,
	ErrConnection,
	ErrUnsupportedCategory,
}

// Classified reports whether err already carries one of the kinds above.
func Classified(err error) bool {
	for _, k := range classified {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// Wrap annotates err with op. Errors that already carry a kind keep it,
// anything else becomes a PersistenceError.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return errors.Wrap(err, op)
	}
	return &PersistenceError{Op: op, Err: err}
}

// Kind is the caller-visible class of an error.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// Class maps err to the response class an API layer should use.
func Class(err error) Kind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrIncompleteObject),
		errors.Is(err, ErrInvalidFieldType),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrInvalidValue),
		errors.Is(err, ErrUnsupportedCategory):
		return KindBadRequest
	default:
		return KindInternal
	}
}
