package dto

import "net/http"

// Error codes used by the HTTP layer itself
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when tenant identification is missing
	ErrCodeUnauthorized = "UNAUTHORIZED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,

	// Input errors -> 400 Bad Request
	"VALIDATION": http.StatusBadRequest,

	// Resource errors
	"NOT_FOUND":             http.StatusNotFound,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR": http.StatusConflict,
	"ALREADY_CANCELLED":     http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	"INSUFFICIENT_STOCK":        http.StatusUnprocessableEntity,
	"DISCOUNT_CAP_EXCEEDED":     http.StatusUnprocessableEntity,
	"WALKIN_CREDIT_NOT_ALLOWED": http.StatusUnprocessableEntity,
	"PAYMENT_EXCEEDS_BALANCE":   http.StatusUnprocessableEntity,
	"NOTHING_TO_RECONCILE":      http.StatusUnprocessableEntity,
	"PRODUCT_DISABLED":          http.StatusUnprocessableEntity,
	"VENDOR_DISABLED":           http.StatusUnprocessableEntity,
	"STOCK_AGGREGATE_MISMATCH":  http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unmapped codes come from business rule checks, so they default to 422
// rather than 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
