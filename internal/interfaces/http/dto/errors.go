package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeNotSupported is used for operations and filter shapes the adapter does not offer
	ErrCodeNotSupported = "ERR_NOT_SUPPORTED"
	// ErrCodeDuplicateRequest is used when an Idempotency-Key was already used
	ErrCodeDuplicateRequest = "ERR_DUPLICATE_REQUEST"
)

// Remote system error codes
const (
	// ErrCodeRemoteUnavailable is used when Business Central cannot be reached or is overloaded
	ErrCodeRemoteUnavailable = "ERR_REMOTE_UNAVAILABLE"
	// ErrCodeRemoteRequestFailed is used when Business Central rejects a request
	ErrCodeRemoteRequestFailed = "ERR_REMOTE_REQUEST_FAILED"
	// ErrCodeRemoteAuth is used when the adapter cannot authenticate against Business Central
	ErrCodeRemoteAuth = "ERR_REMOTE_AUTH_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeNotSupported:        http.StatusNotImplemented,
	ErrCodeDuplicateRequest:    http.StatusConflict,

	// Remote errors -> gateway statuses
	ErrCodeRemoteUnavailable:   http.StatusServiceUnavailable,
	ErrCodeRemoteRequestFailed: http.StatusBadGateway,
	ErrCodeRemoteAuth:          http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"CONCURRENCY_CONFLICT":  ErrCodeConcurrencyConflict,
	"NOT_SUPPORTED":         ErrCodeNotSupported,
	"REMOTE_UNAVAILABLE":    ErrCodeRemoteUnavailable,
	"REMOTE_REQUEST_FAILED": ErrCodeRemoteRequestFailed,
	"REMOTE_AUTH_FAILED":    ErrCodeRemoteAuth,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
