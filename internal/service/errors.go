package service

import "fmt"

// RequiredFields lists the submission fields that must be present.
var RequiredFields = []string{"name", "message"}

// ValidationError reports a submission missing a required field.
type ValidationError struct {
	Required []string
}

func newValidationError() *ValidationError {
	return &ValidationError{Required: append([]string(nil), RequiredFields...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.Required)
}

// PersistenceError wraps a record store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("contact store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// MalformedInputError reports a request body that is not valid JSON.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return e.Err.Error()
}

func (e *MalformedInputError) Unwrap() error { return e.Err }
