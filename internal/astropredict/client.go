package astropredict

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"

	"resty.dev/v3"

	"horoscopefetcher/internal/fetcher"
)

const (
	// DefaultHost is the RapidAPI host of the AstroPredict API.
	DefaultHost = "astropredict-daily-horoscopes-lucky-insights.p.rapidapi.com"
	// DefaultBaseURL is the production endpoint root.
	DefaultBaseURL = "https://" + DefaultHost

	headerHost = "x-rapidapi-host"
	headerKey  = "x-rapidapi-key"
)

// BuildURL returns the request URL for one category of a sign's daily
// reading. The sign is interpolated verbatim.
func BuildURL(baseURL, sign string, category fetcher.Category) (string, error) {
	base := strings.TrimRight(baseURL, "/")

	switch category {
	case fetcher.CategoryHoroscope:
		return fmt.Sprintf("%s/horoscope?lang=en&zodiac=%s&type=daily", base, sign), nil
	case fetcher.CategoryNumber:
		return fmt.Sprintf("%s/horoscope?zodiac=%s&dailylucky=number", base, sign), nil
	case fetcher.CategoryColor:
		return fmt.Sprintf("%s/horoscope?zodiac=%s&dailylucky=color", base, sign), nil
	default:
		return "", fmt.Errorf("unknown category %q", category)
	}
}

// Client issues GET requests against the AstroPredict API.
type Client struct {
	host   string
	client *resty.Client
}

// NewClient creates an upstream client. host is sent as the RapidAPI host
// header; an empty host falls back to DefaultHost.
func NewClient(client *resty.Client, host string) *Client {
	if host == "" {
		host = DefaultHost
	}

	return &Client{
		host:   host,
		client: client,
	}
}

// Get fetches rawURL and returns its body. Non-2xx responses are returned
// as *fetcher.FetchError.
func (c *Client) Get(ctx context.Context, rawURL, apiKey string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(headerHost, c.host).
		SetHeader(headerKey, apiKey).
		SetDoNotParseResponse(true).
		Get(rawURL)

	if err != nil {
		return "", transportError(err)
	}

	body, readErr := readBody(resp)

	// The status line alone classifies a failed call.
	if !resp.IsSuccess() {
		slog.Error("upstream returned non-success status",
			"url", rawURL,
			"status_code", resp.StatusCode(),
			"status", resp.Status(),
			"body", body)
		return "", fetcher.ClassifyHTTPError(resp.StatusCode(), body)
	}

	if readErr != nil {
		slog.Error("failed to read upstream response body",
			"url", rawURL,
			"status_code", resp.StatusCode(),
			"error", readErr)
		return "", transportError(readErr)
	}

	slog.Debug("upstream call succeeded",
		"url", rawURL,
		"status_code", resp.StatusCode(),
		"duration", resp.Duration())

	return body, nil
}

// readBody drains the response stream. A stream cut short, including an
// unexpected EOF, is an error rather than a truncated body.
func readBody(resp *resty.Response) (string, error) {
	if resp.Body == nil {
		return "", nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func transportError(err error) error {
	if isTimeout(err) {
		return fetcher.NewTimeoutError(err)
	}
	return fetcher.NewNetworkError(err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
