package util

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure categories the CLI distinguishes.
// Only ErrAuthFailed is fatal to a run; the rest surface as per-request
// or per-line failures.
var (
	ErrAuthFailed         = errors.New("authentication failed")
	ErrNotFound           = errors.New("not found")
	ErrTransitionRejected = errors.New("transition rejected")
	ErrMalformedRecord    = errors.New("malformed record")
)

// NotFoundError reports a failed device or interface lookup with context.
type NotFoundError struct {
	Kind string // "device" or "interface"
	Name string
	On   string // device context for interface lookups
}

func (e *NotFoundError) Error() string {
	if e.On != "" {
		return fmt.Sprintf("%s %q not found on device %s", e.Kind, e.Name, e.On)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a device/interface lookup error.
func NewNotFoundError(kind, name, on string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name, On: on}
}

// MalformedRecordError reports a batch line that could not be parsed.
type MalformedRecordError struct {
	Line   int
	Fields int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: expected 2 or 4 comma-separated fields, got %d", e.Line, e.Fields)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}
