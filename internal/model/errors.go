package model

import (
	"errors"
	"fmt"
)

// ErrInvalidUBL is returned at the normalize boundary when the input is not
// a well-formed UBL Invoice or CreditNote with an ID. The message is stable.
var ErrInvalidUBL = errors.New("invalid UBL document")

// ParseError represents parsing errors with provider context
type ParseError struct {
	Provider Provider
	Field    string
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Provider, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is makes every ParseError match ErrInvalidUBL
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidUBL
}

// NewParseError creates a new parse error
func NewParseError(provider Provider, field, message string, cause error) *ParseError {
	return &ParseError{
		Provider: provider,
		Field:    field,
		Message:  message,
		Cause:    cause,
	}
}

// Severity of a validation finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError represents a reconciliation or completeness finding
type ValidationError struct {
	Field    string      `json:"field"`
	Value    interface{} `json:"value,omitempty"`
	Rule     string      `json:"rule"`
	Message  string      `json:"message"`
	Severity Severity    `json:"severity"`
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error finding
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:    field,
		Value:    value,
		Rule:     rule,
		Message:  message,
		Severity: SeverityError,
	}
}

// NewValidationWarning creates a finding that does not invalidate the document
func NewValidationWarning(field string, value interface{}, rule, message string) *ValidationError {
	w := NewValidationError(field, value, rule, message)
	w.Severity = SeverityWarning
	return w
}
