package fetcher

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of error that occurred during a fetch operation
type ErrorType string

const (
	// ErrorTypeNetwork indicates a network-level error (connection refused, DNS, etc.)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeQuota indicates the upstream rejected the call because the key's allowance is used up (HTTP 429)
	ErrorTypeQuota ErrorType = "quota"
	// ErrorTypeAuth indicates the upstream rejected the credential (HTTP 401/403)
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeServer indicates a server error (HTTP 5xx)
	ErrorTypeServer ErrorType = "server"
	// ErrorTypeClient indicates a client error (HTTP 4xx except 401, 403 and 429)
	ErrorTypeClient ErrorType = "client"
	// ErrorTypeTimeout indicates the request timed out
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeUnknown indicates an error of unknown type
	ErrorTypeUnknown ErrorType = "unknown"
)

// FetchError represents a structured error from a fetch operation
type FetchError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	// Body is the upstream response body, if one was received.
	Body  string
	Cause error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	msg := e.Message
	if e.Body != "" {
		msg = fmt.Sprintf("%s. Body: %s", msg, e.Body)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.StatusCode, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a network error
func NewNetworkError(cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeNetwork,
		Message: "network request failed",
		Cause:   cause,
	}
}

// NewQuotaError creates a quota exhaustion error
func NewQuotaError(statusCode int, body string) *FetchError {
	return &FetchError{
		Type:       ErrorTypeQuota,
		StatusCode: statusCode,
		Message:    "quota exceeded",
		Body:       body,
	}
}

// NewAuthError creates an authentication error
func NewAuthError(statusCode int, body string) *FetchError {
	return &FetchError{
		Type:       ErrorTypeAuth,
		StatusCode: statusCode,
		Message:    "credential rejected",
		Body:       body,
	}
}

// NewServerError creates a server error
func NewServerError(statusCode int, body string) *FetchError {
	return &FetchError{
		Type:       ErrorTypeServer,
		StatusCode: statusCode,
		Message:    "server returned an error",
		Body:       body,
	}
}

// NewClientError creates a client error
func NewClientError(statusCode int, body string) *FetchError {
	return &FetchError{
		Type:       ErrorTypeClient,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("client error: HTTP %d", statusCode),
		Body:       body,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeTimeout,
		Message: "request timed out",
		Cause:   cause,
	}
}

// ClassifyHTTPError classifies a non-success HTTP status code into an appropriate FetchError
func ClassifyHTTPError(statusCode int, body string) *FetchError {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return NewQuotaError(statusCode, body)
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return NewAuthError(statusCode, body)
	case statusCode >= 500:
		return NewServerError(statusCode, body)
	case statusCode >= 400:
		return NewClientError(statusCode, body)
	default:
		return &FetchError{
			Type:       ErrorTypeUnknown,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
			Body:       body,
		}
	}
}
