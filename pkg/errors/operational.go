package errors

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// OperationalError represents a failure while working on one input source.
//
// It wraps the underlying cause with the operation being performed and the
// path of the source involved, so diagnostics shown to the operator always
// name the offending file or directory.
type OperationalError struct {
	Operation  string                 // What operation was being performed
	Source     string                 // Which file or directory
	Timestamp  time.Time              // When error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	if err != nil {
//	    return NewOperationalError("opening source", path, err)
//	}
func NewOperationalError(operation, source string, cause error) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation: operation,
		Source:    source,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError with additional attributes.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalErrorWithAttrs(operation, source string, cause error, attrs map[string]interface{}) *OperationalError {
	e := NewOperationalError(operation, source, cause)
	if e == nil {
		return nil
	}
	e.Attributes = attrs
	return e
}

// Error implements the error interface.
//
// Format: "{operation} {source}: {cause}", with attributes appended in
// key order as " (key=value, ...)" when present.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	msg := fmt.Sprintf("%s %s: %v", e.Operation, e.Source, e.Cause)
	if len(e.Attributes) == 0 {
		return msg
	}

	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Attributes[k]))
	}
	return msg + " (" + strings.Join(parts, ", ") + ")"
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
