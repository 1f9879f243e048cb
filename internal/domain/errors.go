package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed or unrecognized categorical input.
// It carries the offending value and the accepted set so callers can render
// a clinical explanation without re-deriving rule logic.
type ValidationError struct {
	Field   string   `json:"field"`
	Value   string   `json:"value"`
	Allowed []string `json:"allowed,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid %s: %q. Valid values: %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// NewValidationError creates a ValidationError naming the offending token and
// the allowed set.
func NewValidationError(field, value string, allowed []string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Allowed: allowed}
}

// InsufficientDataError reports that a rule could not be assessed because
// required fields are absent. Distinct from "condition evaluated false":
// the missing fields are named exactly.
type InsufficientDataError struct {
	Rule    string   `json:"rule"`
	Missing []string `json:"missing"`
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: missing %s", e.Rule, strings.Join(e.Missing, ", "))
}

// AmbiguousInputError reports an input that under-specifies which branch to
// evaluate, with a hint on how to disambiguate.
type AmbiguousInputError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Hint    string `json:"hint"`
	Message string `json:"message,omitempty"`
}

// Error implements the error interface.
func (e *AmbiguousInputError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ambiguous %s: %s (%s)", e.Field, e.Message, e.Hint)
	}
	return fmt.Sprintf("ambiguous %s %q: %s", e.Field, e.Value, e.Hint)
}
