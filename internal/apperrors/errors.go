// Package apperrors holds the typed failures of the analysis pipeline.
// Handlers map them to HTTP statuses with StatusCode.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed client input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ExtractionError reports bytes that could not be decoded as a PDF.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from PDF: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ConfigurationError reports missing or invalid process configuration.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Key, e.Message)
}

// ModelCallError is returned once the retry budget is spent.
type ModelCallError struct {
	Attempts int
	Err      error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("model call failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }

// MalformedResponseError carries the raw model output for logging. Raw is
// never sent back to the client.
type MalformedResponseError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// StatusCode maps a pipeline error to the HTTP status the API answers with.
func StatusCode(err error) int {
	var (
		validationErr *ValidationError
		extractionErr *ExtractionError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &extractionErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text placed in the {"error": ...} envelope.
func PublicMessage(err error) string {
	var (
		validationErr *ValidationError
		extractionErr *ExtractionError
		modelErr      *ModelCallError
		malformedErr  *MalformedResponseError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &extractionErr):
		return "Failed to extract text from the uploaded PDF"
	case errors.As(err, &modelErr):
		return "Failed to get a response from the language model"
	case errors.As(err, &malformedErr):
		return "Failed to parse the language model response"
	default:
		return "Internal server error"
	}
}
