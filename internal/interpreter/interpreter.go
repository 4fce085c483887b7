// Package interpreter turns raw AstroPredict response bodies into
// display-ready fetch results.
//
// The upstream answers the three endpoints with loosely related JSON shapes
// and, on some failures, with plain text. Interpret accepts all of them and
// separates real data from the known error conditions.
package interpreter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"

	"horoscopefetcher/internal/fetcher"
)

const (
	emptyArrayBody = "[]"

	logPreviewShort = 100
	logPreviewLong  = 300
)

// Interpret classifies body for the given category and extracts its
// display text and, for colors, the hex codes. It is a pure function of its
// inputs; logging is the only side effect.
func Interpret(body string, category fetcher.Category) fetcher.Result {
	trimmed := strings.TrimSpace(body)

	var text string
	var hexCodes []string
	// set when text is an error classification rather than upstream data
	var classified bool

	switch {
	case strings.HasPrefix(trimmed, "{"):
		obj, err := decodeObject(trimmed)
		if err != nil {
			slog.Warn("failed to decode response object",
				"category", category,
				"error", err)
			return fetcher.Failed(category, fetcher.TextParsingError)
		}
		text, hexCodes = extract(obj, category)

	case trimmed == emptyArrayBody:
		slog.Warn("upstream returned an empty array", "category", category)

	case trimmed == "":
		slog.Warn("upstream returned an empty response", "category", category)

	default:
		slog.Error("unexpected response format",
			"category", category,
			"body", preview(trimmed, logPreviewShort))
		text = classifyMessage(trimmed)
		classified = text != ""
	}

	if classified {
		return fetcher.Result{Category: category, Text: text}
	}

	succeeded := text != "" || (category == fetcher.CategoryColor && len(hexCodes) > 0)
	if !succeeded {
		slog.Warn("no data parsed",
			"category", category,
			"body", preview(trimmed, logPreviewLong))
		return fetcher.Result{Category: category}
	}

	slog.Debug("parsed response",
		"category", category,
		"text", text,
		"hex_codes", hexCodes)

	return fetcher.Result{
		Category:      category,
		Text:          text,
		ColorHexCodes: hexCodes,
		Succeeded:     true,
	}
}

// classifyMessage maps an unstructured upstream message onto a sentinel.
// Unrecognized messages yield the empty string.
func classifyMessage(msg string) string {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "invalid api key"):
		return fetcher.TextInvalidAPIKey
	case strings.Contains(lower, "quota exceeded"), strings.Contains(lower, "limit"):
		return fetcher.TextQuotaExceeded
	}
	return ""
}

// decodeObject parses a JSON object, keeping numbers in their textual form.
func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// stringify renders a decoded JSON value the way the upstream's own clients
// coerce values to strings.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return "null"
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(val); err != nil {
			return ""
		}
		return strings.TrimSuffix(buf.String(), "\n")
	}
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
