package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by strict lookups. Update and Delete report a missing id
	// through their found result instead.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidType is returned for unrecognized document types.
	ErrInvalidType = errors.New("invalid document type")
	// ErrCatalogViolation is returned when catalog enforcement is on and an origin or
	// destination is not in the catalog its type requires.
	ErrCatalogViolation = errors.New("catalog violation")
	// ErrPersistence wraps every failed durable read or write.
	ErrPersistence = errors.New("persistence failure")
	// ErrValidation is returned for malformed or incomplete records.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateID is returned when a record is added with an id already in the store.
	ErrDuplicateID = errors.New("duplicate document id")
	// ErrImmutableField is returned when an edit tries to change the type or a
	// system-assigned docNumber.
	ErrImmutableField = errors.New("field cannot be changed after registration")
)

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
