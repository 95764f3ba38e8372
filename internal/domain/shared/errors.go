package shared

// DomainError represents a domain-level error
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

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrNotSupported        = NewDomainError("NOT_SUPPORTED", "Operation or filter is not supported")
)

// Remote system errors. Every failure talking to Business Central wraps one of these.
var (
	// ErrRemoteUnavailable covers transport failures, timeouts and 5xx/429 answers.
	ErrRemoteUnavailable = NewDomainError("REMOTE_UNAVAILABLE", "Remote system is unavailable")
	// ErrRemoteRequestFailed covers any other non-success answer.
	ErrRemoteRequestFailed = NewDomainError("REMOTE_REQUEST_FAILED", "Remote system rejected the request")
	// ErrRemoteAuth covers token exchange failures and 401/403 answers.
	ErrRemoteAuth = NewDomainError("REMOTE_AUTH_FAILED", "Authentication against the remote system failed")
)
