package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMalformedResponse matches any MalformedResponseError via errors.Is
	ErrMalformedResponse = errors.New("malformed oracle response")
	// ErrBusy is returned when a generation request is already in flight
	ErrBusy = errors.New("a generation request is already in progress")
	// ErrNoResult is returned when there is no current result
	ErrNoResult = errors.New("no generation result available")
	// ErrResultNotFound is returned when a stored result does not exist
	ErrResultNotFound = errors.New("generation result not found")
)

// UserFacingGenerationError is shown for any primary-path oracle or parse failure
const UserFacingGenerationError = "Failed to generate Q&A. The model may have returned an invalid format. Please try refining your topic."

// ValidationError reports caller input that was rejected before any oracle call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// MalformedResponseError reports an oracle reply that could not be reduced to valid data
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed oracle response: %s: %v", e.Reason, e.Err)
	}
	return "malformed oracle response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedResponse) true for every MalformedResponseError
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// NewMalformedResponse builds a MalformedResponseError
func NewMalformedResponse(reason string, err error) *MalformedResponseError {
	return &MalformedResponseError{Reason: reason, Err: err}
}

// EnrichmentFailure describes a failed summary pass. It is logged, never returned to callers.
type EnrichmentFailure struct {
	Err error
}

func (e *EnrichmentFailure) Error() string {
	return fmt.Sprintf("source enrichment failed: %v", e.Err)
}

func (e *EnrichmentFailure) Unwrap() error {
	return e.Err
}

// OracleError wraps a failed call to the AI service
type OracleError struct {
	Provider string
	Err      error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("%s oracle call failed: %v", e.Provider, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

func newValidationErrorFromValidator(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := fe.Field()
		switch field {
		case "NumQuestions":
			return &ValidationError{Field: "numQuestions", Message: "numQuestions must be at least 1"}
		case "Difficulty":
			return &ValidationError{Field: "difficulty", Message: "difficulty must be one of easy, medium, hard"}
		case "Topic":
			return &ValidationError{Field: "topic", Message: "Please enter a topic."}
		}
		return &ValidationError{Field: field, Message: fe.Tag()}
	}
	return &ValidationError{Field: "request", Message: err.Error()}
}
