package fetcher

// Category identifies which of the three sub-requests a call or result
// belongs to.
type Category string

const (
	CategoryHoroscope Category = "horoscope"
	CategoryNumber    Category = "number"
	CategoryColor     Category = "color"
)

// Categories lists every category in the order a fetch cycle requests them.
var Categories = []Category{CategoryHoroscope, CategoryNumber, CategoryColor}

// Reserved display strings that double as error classifications.
const (
	TextQuotaExceeded = "Quota Exceeded"
	TextInvalidAPIKey = "Invalid API Key"
	TextNetworkError  = "Network Error"
	TextParsingError  = "Parsing Error"

	// TextQuotaSkipped fills slots that were never requested because an
	// earlier call in the same cycle exhausted the quota.
	TextQuotaSkipped = "N/A (Quota)"
)

// Result is the interpreted outcome of one categorized request.
// It is a value type and is never mutated after construction.
type Result struct {
	Category Category

	// Text is the display string. The empty string means no usable text.
	Text string

	// ColorHexCodes holds accepted "#RRGGBB" / "#AARRGGBB" codes in
	// encounter order. Only populated for CategoryColor.
	ColorHexCodes []string

	// Succeeded is true when Text or ColorHexCodes came from real data
	// rather than an error classification.
	Succeeded bool
}

// HasText reports whether the result carries any display text.
func (r Result) HasText() bool {
	return r.Text != ""
}

// IsQuotaExceeded reports whether the result classifies quota exhaustion.
func (r Result) IsQuotaExceeded() bool {
	return !r.Succeeded && r.Text == TextQuotaExceeded
}

// IsInvalidKey reports whether the result classifies a rejected credential.
func (r Result) IsInvalidKey() bool {
	return !r.Succeeded && r.Text == TextInvalidAPIKey
}

// IsSentinel reports whether Text is an error classification. Upstream data
// that happens to read like one of the reserved strings is not.
func (r Result) IsSentinel() bool {
	return !r.Succeeded && IsSentinelText(r.Text)
}

// IsSentinelText reports whether s is a reserved error string.
func IsSentinelText(s string) bool {
	switch s {
	case TextQuotaExceeded, TextInvalidAPIKey, TextNetworkError, TextParsingError, TextQuotaSkipped:
		return true
	}
	return false
}

// Failed builds a non-succeeded result carrying an error classification.
func Failed(category Category, text string) Result {
	return Result{Category: category, Text: text}
}

// QuotaSkipped builds the synthetic result for a slot that was not
// requested because the quota ran out earlier in the cycle.
func QuotaSkipped(category Category) Result {
	return Failed(category, TextQuotaSkipped)
}
