package services

import (
	"errors"
	"fmt"

	"github.com/camden-git/inspectsysbackend/validation"
)

// ErrDraftNotFound is returned when an operation targets a draft that was
// never saved or has already been removed
var ErrDraftNotFound = errors.New("inspection draft not found")

// ErrPhotoNotFound is returned when an operation targets a photo that does
// not exist for the project
var ErrPhotoNotFound = errors.New("photo not found")

// ValidationError indicates a record failed schema validation and was not
// persisted. Recoverable: the user corrects the input and retries
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	return "invalid inspection data: " + validation.Join(e.Fields)
}

// PersistenceError indicates the underlying store failed on a critical write
// or delete path. It is surfaced to the caller and is not retried
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: persistence failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
