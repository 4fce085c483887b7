package fetcher

import "context"

// Transport is the HTTP capability the fetch pipeline depends on.
// It issues a GET against a fully built upstream URL, attaching the
// upstream-specific headers for the given API key.
type Transport interface {
	// Get returns the raw response body for a 2xx response.
	// Any other status is reported as a *FetchError carrying the status code
	// and the response body text.
	Get(ctx context.Context, url, apiKey string) (string, error)
}
