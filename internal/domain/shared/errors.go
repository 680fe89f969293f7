package shared

import "errors"

// DomainError is a business-rule failure with a stable machine-readable code.
// The HTTP layer maps codes to response status; the message is user-facing.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code, so a re-created error still compares
// equal to its sentinel under errors.Is.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Cross-domain sentinels. Lifecycle-specific errors live next to their
// aggregates, like planning.ErrOrderNotDeletable.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)
