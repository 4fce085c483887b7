package interpreter

import (
	"log/slog"
	"regexp"
	"strings"

	"horoscopefetcher/internal/fetcher"
)

const (
	keyHoroscope  = "horoscope"
	keyPrediction = "prediction"
	// The upstream uses the same field for both lucky numbers and lucky colors.
	keyDailyLucky = "daily_lucky_numbers"

	paragraphSeparator = "\n\n"
	listSeparator      = ", "
)

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{8})$`)

// rule describes how one category's display data is read from a decoded
// response object.
type rule struct {
	// keys are the top-level fields consulted, in lookup order.
	keys    []string
	extract func(obj map[string]any) (text string, hexCodes []string)
}

var rules = map[fetcher.Category]rule{
	fetcher.CategoryHoroscope: {
		keys:    []string{keyHoroscope, keyPrediction},
		extract: extractHoroscope,
	},
	fetcher.CategoryNumber: {
		keys:    []string{keyDailyLucky},
		extract: extractNumbers,
	},
	fetcher.CategoryColor: {
		keys:    []string{keyDailyLucky},
		extract: extractColors,
	},
}

func extract(obj map[string]any, category fetcher.Category) (string, []string) {
	r, ok := rules[category]
	if !ok {
		slog.Warn("no extraction rule for category", "category", category)
		return "", nil
	}

	text, hexCodes := r.extract(obj)
	if text == "" && len(hexCodes) == 0 {
		slog.Warn("expected fields missing or empty",
			"category", category,
			"keys", r.keys)
	}
	return text, hexCodes
}

// extractHoroscope prefers "horoscope"; a "prediction" array is joined into
// paragraphs.
func extractHoroscope(obj map[string]any) (string, []string) {
	if v, ok := obj[keyHoroscope]; ok {
		return stringify(v), nil
	}

	v, ok := obj[keyPrediction]
	if !ok {
		return "", nil
	}

	items, isArray := v.([]any)
	if !isArray {
		return stringify(v), nil
	}

	paragraphs := make([]string, 0, len(items))
	for _, item := range items {
		paragraphs = append(paragraphs, stringify(item))
	}
	return strings.Join(paragraphs, paragraphSeparator), nil
}

// extractNumbers joins every non-object element of the lucky array.
func extractNumbers(obj map[string]any) (string, []string) {
	items := luckyItems(obj)

	numbers := make([]string, 0, len(items))
	for _, item := range items {
		if _, isObject := item.(map[string]any); isObject {
			continue
		}
		numbers = append(numbers, stringify(item))
	}
	return strings.Join(numbers, listSeparator), nil
}

// extractColors reads {"name", "code"} entries of the lucky array.
// Malformed codes are dropped.
func extractColors(obj map[string]any) (string, []string) {
	var names, hexCodes []string

	for _, item := range luckyItems(obj) {
		entry, isObject := item.(map[string]any)
		if !isObject {
			continue
		}

		name := optString(entry, "name")
		code := optString(entry, "code")

		if isPresent(name) {
			names = append(names, name)
		}
		if !isPresent(code) {
			continue
		}
		if hexColorPattern.MatchString(code) {
			hexCodes = append(hexCodes, code)
		} else {
			slog.Warn("invalid hex code", "code", code, "name", name)
		}
	}

	return strings.Join(names, listSeparator), hexCodes
}

func luckyItems(obj map[string]any) []any {
	items, _ := obj[keyDailyLucky].([]any)
	return items
}

func optString(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok {
		return ""
	}
	return stringify(v)
}

func isPresent(s string) bool {
	return s != "" && !strings.EqualFold(s, "null")
}
