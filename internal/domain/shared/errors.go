package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a business-level error. Every settlement entry
// point aborts with one of these (zero side effects) when the request is
// invalid or a business rule rejects it; infrastructure failures are plain
// wrapped errors so callers can tell "your request was bad" from "retry".
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates an error for malformed input (caller's fault,
// nothing attempted).
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: "VALIDATION", Message: message}
}

// NewBusinessRuleError creates an error for a violated business rule. The
// message is surfaced verbatim to the user.
func NewBusinessRuleError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewInsufficientStockError creates the allocator's hard-failure error,
// carrying the offending product name.
func NewInsufficientStockError(productName string) *DomainError {
	return &DomainError{
		Code:    "INSUFFICIENT_STOCK",
		Message: fmt.Sprintf("Insufficient stock for product %q", productName),
	}
}

// NewNotFoundError creates an error for a missing referenced entity.
func NewNotFoundError(entity string) *DomainError {
	return &DomainError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s not found", entity)}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("VALIDATION", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)

// IsDomainError reports whether err (or anything it wraps) is a business
// error, as opposed to an infrastructure failure.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// ErrorCode extracts the domain error code, or "INTERNAL" for
// infrastructure failures.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "INTERNAL"
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == "NOT_FOUND"
	}
	return false
}

// IsValidation reports whether err is a validation domain error.
func IsValidation(err error) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == "VALIDATION"
	}
	return false
}
