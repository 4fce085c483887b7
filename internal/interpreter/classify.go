package interpreter

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"horoscopefetcher/internal/fetcher"
)

// ClassifyTransportError maps a failed upstream call onto one of the
// Quota Exceeded, Invalid API Key or Network Error results.
//
// Structured status codes are consulted first. The substring checks below
// them are best effort and specific to how the upstream words its errors.
func ClassifyTransportError(category fetcher.Category, err error) fetcher.Result {
	if err == nil {
		return fetcher.Failed(category, fetcher.TextNetworkError)
	}

	slog.Error("upstream call failed", "category", category, "error", err)

	var fe *fetcher.FetchError
	if errors.As(err, &fe) {
		switch fe.StatusCode {
		case http.StatusTooManyRequests:
			return fetcher.Failed(category, fetcher.TextQuotaExceeded)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fetcher.Failed(category, fetcher.TextInvalidAPIKey)
		}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "code 429"),
		strings.Contains(lower, "quota exceeded"):
		return fetcher.Failed(category, fetcher.TextQuotaExceeded)
	case strings.Contains(msg, "code 401"),
		strings.Contains(msg, "code 403"),
		strings.Contains(lower, "unauthenticated"),
		strings.Contains(lower, "invalid api key"):
		return fetcher.Failed(category, fetcher.TextInvalidAPIKey)
	}

	return fetcher.Failed(category, fetcher.TextNetworkError)
}
