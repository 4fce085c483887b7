package fetcher

import (
	"time"

	"resty.dev/v3"
)

const (
	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 15 * time.Second
)

// NewHTTPClient creates the shared HTTP client for upstream calls.
// Requests are never retried; a failed call is classified by the caller.
func NewHTTPClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0).
		SetRetryDefaultConditions(false)

	return client
}
