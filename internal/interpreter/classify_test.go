package interpreter

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"horoscopefetcher/internal/fetcher"
)

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{"status 429", fetcher.ClassifyHTTPError(429, ""), fetcher.TextQuotaExceeded},
		{"status 401", fetcher.ClassifyHTTPError(401, ""), fetcher.TextInvalidAPIKey},
		{"status 403", fetcher.ClassifyHTTPError(403, `{"message":"You are not subscribed to this API."}`), fetcher.TextInvalidAPIKey},
		{"wrapped status 429", fmt.Errorf("get number: %w", fetcher.ClassifyHTTPError(429, "")), fetcher.TextQuotaExceeded},
		{"server error with quota body", fetcher.ClassifyHTTPError(502, "Quota Exceeded upstream"), fetcher.TextQuotaExceeded},
		{"server error", fetcher.ClassifyHTTPError(500, "boom"), fetcher.TextNetworkError},
		{"not found", fetcher.ClassifyHTTPError(404, "missing"), fetcher.TextNetworkError},
		{"message code 429", errors.New("Unexpected code 429 - Too Many Requests"), fetcher.TextQuotaExceeded},
		{"message code 403", errors.New("Unexpected code 403 - Forbidden"), fetcher.TextInvalidAPIKey},
		{"message unauthenticated", errors.New("request UNAUTHENTICATED"), fetcher.TextInvalidAPIKey},
		{"message invalid key", errors.New("invalid API key supplied"), fetcher.TextInvalidAPIKey},
		{"network", fetcher.NewNetworkError(errors.New("connection refused")), fetcher.TextNetworkError},
		{"timeout", fetcher.NewTimeoutError(context.DeadlineExceeded), fetcher.TextNetworkError},
		{"nil", nil, fetcher.TextNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTransportError(fetcher.CategoryNumber, tt.err)

			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Succeeded {
				t.Error("Succeeded = true, want false")
			}
			if got.Category != fetcher.CategoryNumber {
				t.Errorf("Category = %q, want %q", got.Category, fetcher.CategoryNumber)
			}
		})
	}
}
