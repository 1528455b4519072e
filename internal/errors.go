package internal

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded is reported by a Provider when a write would exceed the
// substrate's quota. It is the only failure class the engine surfaces to
// callers without absorbing; observing it is the cue to run
// EmergencyCleanup.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrEmptySession is reported by SaveMessages for an empty message list.
// A logical failure, not an engine fault: callers treat it as a normal
// outcome.
var ErrEmptySession = errors.New("no messages to save")

// StorageError represents a failed substrate operation
type StorageError struct {
	Key string
	Op  string // "set", "get", "remove"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents a corrupt persisted entry
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error %s: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export or import
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s]: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
