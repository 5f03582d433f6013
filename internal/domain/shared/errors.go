// Package shared contains common domain types and errors that are used
// across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Validation errors (raised by the Loader, never by the Engine)
	ErrValidation      = errors.New("validation error")
	ErrMissingField    = errors.New("required field is missing")
	ErrMissingSubject  = errors.New("subject score is missing")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// Input errors (raised by the Engine)
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyDataset = errors.New("dataset is empty")

	// Configuration errors
	ErrConfiguration  = errors.New("configuration error")
	ErrBandGap        = errors.New("grade bands do not cover the score range")
	ErrThresholdRange = errors.New("threshold outside the score range")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "loader", "engine", "config"
	Op      string // Operation that failed, e.g., "Load", "Analyze"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// ValidationError reports a malformed input row rejected by the Loader.
// Row is the 1-based data row index; the header row is not counted.
type ValidationError struct {
	Row    int    // offending row, 1-based
	Field  string // offending column or subject name, if known
	Kind   error  // base error type for errors.Is() checking
	Reason string // human-readable reason
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d: field %q: %s", e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Unwrap returns the base validation kind.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Is implements errors.Is() matching against both the specific kind
// and the ErrValidation family.
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	return e.Kind != nil && errors.Is(e.Kind, target)
}

// NewValidationError creates a validation error for a specific row and field.
func NewValidationError(row int, field string, kind error, reason string) *ValidationError {
	return &ValidationError{Row: row, Field: field, Kind: kind, Reason: reason}
}

// Engine errors
var (
	ErrNoRecords = NewDomainError("engine", "Analyze", ErrEmptyDataset, "no records to analyze")
)

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrMissingSubject) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsInvalidInput checks if the error is an invalid-input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrEmptyDataset)
}

// IsConfiguration checks if the error is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrBandGap) ||
		errors.Is(err, ErrThresholdRange)
}
