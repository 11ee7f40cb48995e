package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of these,
// so callers branch with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrPersistence   = errors.New("persistence failure")
	ErrMalformedData = errors.New("malformed data")
)

var (
	ErrHabitNotFound = fmt.Errorf("habit %w", ErrNotFound)
	ErrBlobNotFound  = fmt.Errorf("blob %w", ErrNotFound)
	ErrDuplicateID   = fmt.Errorf("%w: duplicate habit id", ErrValidation)
	ErrMissingID     = fmt.Errorf("%w: habit id is required", ErrValidation)
	ErrInvalidDay    = fmt.Errorf("%w: invalid calendar day", ErrValidation)
)
