package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeInsufficientStock is used when stock is insufficient
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	// ErrCodeOrderNotCancellable is used when a later executed run blocks cancellation
	ErrCodeOrderNotCancellable = "ERR_ORDER_NOT_CANCELLABLE"
	// ErrCodeOrderNotDeletable is used when a non-cancelled run is deleted
	ErrCodeOrderNotDeletable = "ERR_ORDER_NOT_DELETABLE"
	// ErrCodeNoDefaultWarehouse is used when no warehouse is flagged as default
	ErrCodeNoDefaultWarehouse = "ERR_NO_DEFAULT_WAREHOUSE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodePayloadTooLarge is used when the request body exceeds the limit
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:        http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:   http.StatusUnprocessableEntity,
	ErrCodeOrderNotCancellable: http.StatusUnprocessableEntity,
	ErrCodeOrderNotDeletable:   http.StatusUnprocessableEntity,
	ErrCodeNoDefaultWarehouse:  http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized
// transport codes. Domain codes not listed here fall through NormalizeErrorCode
// unchanged and default to 500 via GetHTTPStatus.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT":   ErrCodeConcurrencyConflict,
	"INSUFFICIENT_STOCK":     ErrCodeInsufficientStock,
	"INVALID_STATE":          ErrCodeInvalidState,
	"ORDER_NOT_CANCELLABLE":  ErrCodeOrderNotCancellable,
	"ORDER_NOT_DELETABLE":    ErrCodeOrderNotDeletable,
	"NO_DEFAULT_WAREHOUSE":   ErrCodeNoDefaultWarehouse,
	"NO_ORDERS":              ErrCodeInvalidInput,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_DATE":           ErrCodeInvalidInput,
	"INVALID_RANGE":          ErrCodeInvalidInput,
	"INVALID_QUANTITY":       ErrCodeInvalidInput,
	"INVALID_TRANSFER":       ErrCodeInvalidInput,
	"INVALID_WAREHOUSE":      ErrCodeInvalidInput,
	"INVALID_PRODUCT":        ErrCodeInvalidInput,
	"INVALID_ORDER":          ErrCodeInvalidInput,
	"INVALID_MOVEMENT_TYPE":  ErrCodeInvalidInput,
	"INVALID_SOURCE":         ErrCodeInvalidInput,
	"INVALID_NAME":           ErrCodeInvalidInput,
	"INVALID_CODE":           ErrCodeInvalidInput,
	"INVALID_DISH":           ErrCodeInvalidInput,
	"INVALID_BRANCH":         ErrCodeInvalidInput,
	"INVALID_COMPANY":        ErrCodeInvalidInput,
	"INVALID_CLASSIFICATION": ErrCodeInvalidInput,
	"INVALID_RELATION":       ErrCodeInvalidInput,
	"VALIDATION_ERROR":       ErrCodeValidation,
	"BAD_REQUEST":            ErrCodeBadRequest,
	"INTERNAL_ERROR":         ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
