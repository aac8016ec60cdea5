package apperr

import (
	"fmt"
)

// ConfigurationError reports a stage that was assembled or invoked without
// the argument it needs. No backend call is made once it is raised.
type ConfigurationError struct {
	Stage   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Stage != "" {
		msg = e.Stage + ": " + msg
	}
	if e.Err != nil {
		return "configuration error: " + msg + ": " + e.Err.Error()
	}
	return "configuration error: " + msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func NewConfiguration(stage, msg string) *ConfigurationError {
	return &ConfigurationError{Stage: stage, Message: msg}
}

func NewConfigurationWrap(stage, msg string, err error) *ConfigurationError {
	return &ConfigurationError{Stage: stage, Message: msg, Err: err}
}

// TransportError means the request never produced a backend response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BackendRejection is a non-2xx answer from the backend.
type BackendRejection struct {
	Op     string
	Status int
	Type   string
	Reason string
}

func (e *BackendRejection) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s rejected with status %d: %s", e.Op, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s rejected with status %d: %s: %s", e.Op, e.Status, e.Type, e.Reason)
}

// SchemaMismatchError is raised when an opaque value is recovered as a type
// it was not created with. It always indicates a wiring defect.
type SchemaMismatchError struct {
	Want string
	Got  string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: want %s, got %s", e.Want, e.Got)
}

// BulkItemError describes one failed item of an otherwise accepted bulk request.
type BulkItemError struct {
	Position int
	ID       string
	Status   int
	Type     string
	Reason   string
}

func (e *BulkItemError) Error() string {
	return fmt.Sprintf("bulk item %d (id %q) failed with status %d: %s: %s", e.Position, e.ID, e.Status, e.Type, e.Reason)
}
