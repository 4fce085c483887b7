// Package zodiac lists the twelve signs a reading can be requested for.
package zodiac

import (
	"strings"
)

// Sign is one zodiac sign.
type Sign struct {
	// Name is the display name, e.g. "Aries".
	Name string
	// Symbol is the Unicode glyph shown next to the name.
	Symbol string
}

// ID returns the lower-case identifier the upstream API expects.
func (s Sign) ID() string {
	return strings.ToLower(s.Name)
}

// All lists the signs in calendar order, starting with Aries.
var All = []Sign{
	{Name: "Aries", Symbol: "♈"},
	{Name: "Taurus", Symbol: "♉"},
	{Name: "Gemini", Symbol: "♊"},
	{Name: "Cancer", Symbol: "♋"},
	{Name: "Leo", Symbol: "♌"},
	{Name: "Virgo", Symbol: "♍"},
	{Name: "Libra", Symbol: "♎"},
	{Name: "Scorpio", Symbol: "♏"},
	{Name: "Sagittarius", Symbol: "♐"},
	{Name: "Capricorn", Symbol: "♑"},
	{Name: "Aquarius", Symbol: "♒"},
	{Name: "Pisces", Symbol: "♓"},
}

// Lookup finds a sign by name, ignoring case and surrounding whitespace.
func Lookup(name string) (Sign, bool) {
	needle := strings.TrimSpace(name)
	for _, s := range All {
		if strings.EqualFold(s.Name, needle) {
			return s, true
		}
	}
	return Sign{}, false
}
