package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDataIntegrity marks persisted state that breaks an invariant the
// application relies on. It is a defect, never a normal outcome.
var ErrDataIntegrity = errors.New("data integrity violation")

// Violation is a single failed check, tagged with the request field it concerns.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

// ValidationError carries every violation found before a write was attempted.
type ValidationError struct {
	Violations []Violation
}

func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return strings.Join(msgs, ", ")
}

// NotFoundError reports a referenced aggregate that does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// OptimisticLockError reports a version mismatch at write time.
type OptimisticLockError struct {
	Resource        string
	ID              int64
	ExpectedVersion int
}

func (e *OptimisticLockError) Error() string {
	return fmt.Sprintf("%s %d was modified concurrently (expected version %d)", e.Resource, e.ID, e.ExpectedVersion)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsOptimisticLock(err error) bool {
	var target *OptimisticLockError
	return errors.As(err, &target)
}
