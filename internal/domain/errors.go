// backend-go/internal/domain/errors.go
package domain

import "fmt"

// ValidationError means a required field is missing or referentially invalid
// (e.g. an unknown store name). It is raised before any write begins.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError means the targeted order, line, or store does not exist, or
// an update matched zero rows.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// NewNotFoundError builds a NotFoundError for an entity keyed by Key.
func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// PersistenceError wraps a failed store statement. Target identifies the
// logical database the statement ran against, so a caller of a multi-database
// transition can tell which side is now ahead.
type PersistenceError struct {
	Target string
	Op     string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Target, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err with the target store and operation name.
func NewPersistenceError(target, op string, err error) *PersistenceError {
	return &PersistenceError{Target: target, Op: op, Err: err}
}

// SyncWarning is a non-fatal failure of a secondary mirror write. It is
// reported alongside a successful primary response, never instead of one.
type SyncWarning struct {
	Target string
	Reason string
}

func (e *SyncWarning) Error() string {
	return fmt.Sprintf("sync to %s skipped: %s", e.Target, e.Reason)
}

// NewSyncWarning builds a SyncWarning for the given mirror target.
func NewSyncWarning(target, reason string) *SyncWarning {
	return &SyncWarning{Target: target, Reason: reason}
}
