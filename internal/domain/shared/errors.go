package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ValidationError marks a recoverable input problem: malformed or dangling
// references in an incoming feed. Validation errors are accumulated per
// batch and reported once; they never abort sibling items.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvariantViolationError marks a non-recoverable programming or
// data-corruption signal (anchor read before set, reanchor of an
// unscheduled activity, zero quantity-per-cycle, id collision). It aborts
// the enclosing simulation step and must never be coerced to a default.
type InvariantViolationError struct {
	*DomainError
	Op string
}

func NewInvariantViolation(op, message string) *InvariantViolationError {
	return &InvariantViolationError{
		DomainError: &DomainError{Message: message},
		Op:          op,
	}
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Op, e.Message)
}
