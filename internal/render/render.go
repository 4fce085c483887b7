// Package render turns a fetch cycle's outcome into terminal text.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"horoscopefetcher/internal/coordinator"
	"horoscopefetcher/internal/fetcher"
	"horoscopefetcher/internal/zodiac"
)

// Display strings shown in place of missing data.
const (
	HoroscopeUnavailable = "Horoscope data not available."
	NotAvailable         = "N/A"
	NotConfiguredNotice  = "API Key is not configured. Set it with `horoscopes key set <key>`."
	QuotaNotice          = "API daily quota may have been exceeded for one or more requests."
)

// MaxSwatches is how many color swatches a reading shows.
const MaxSwatches = 3

const swatchBlock = "    "

// Renderer formats outcomes with a fixed set of styles.
type Renderer struct {
	styles Styles
	width  int
}

// New creates a Renderer. A width of zero disables wrapping.
func New(theme Theme, width int) *Renderer {
	return &Renderer{styles: theme.Styles(), width: width}
}

// Outcome renders a complete reading.
func (r *Renderer) Outcome(o coordinator.Outcome) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(signTitle(o.Sign)))
	b.WriteString("\n\n")

	if o.NotConfigured {
		b.WriteString(r.styles.Danger.Render(NotConfiguredNotice))
		b.WriteString("\n\n")
	}

	b.WriteString(r.wrap(r.field(o.Horoscope, HoroscopeUnavailable)))
	b.WriteString("\n\n")

	b.WriteString(r.styles.Label.Render("Lucky number: "))
	b.WriteString(r.field(o.Number, NotAvailable))
	b.WriteString("\n")

	b.WriteString(r.styles.Label.Render("Lucky color:  "))
	b.WriteString(r.field(o.Color, NotAvailable))
	if swatches := Swatches(o.Color.ColorHexCodes); swatches != "" {
		b.WriteString("\n")
		b.WriteString(swatches)
	}

	if o.QuotaExhausted {
		b.WriteString("\n\n")
		b.WriteString(r.styles.Warning.Render(QuotaNotice))
	}

	return r.styles.Box.Render(b.String())
}

// field shows the result text, or the fallback when nothing was extracted.
// Sentinel text is shown as-is, dimmed.
func (r *Renderer) field(res fetcher.Result, fallback string) string {
	if !res.HasText() {
		return r.styles.MutedText.Render(fallback)
	}
	if res.IsSentinel() {
		return r.styles.MutedText.Render(res.Text)
	}
	return r.styles.Text.Render(res.Text)
}

func (r *Renderer) wrap(s string) string {
	if r.width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(r.width).Render(s)
}

// Swatches renders up to MaxSwatches blocks of color.
func Swatches(codes []string) string {
	var blocks []string
	for _, code := range codes {
		if len(blocks) == MaxSwatches {
			break
		}
		hex, ok := TerminalHex(code)
		if !ok {
			continue
		}
		blocks = append(blocks, lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Render(swatchBlock))
	}
	if len(blocks) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, interleave(blocks, " ")...)
}

// TerminalHex converts an upstream color code to #rrggbb.
// Eight-digit codes are #AARRGGBB and lose their alpha byte.
func TerminalHex(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, "#") {
		return "", false
	}
	if len(code) == len("#AARRGGBB") {
		code = "#" + code[3:]
	}
	if len(code) != len("#RRGGBB") {
		return "", false
	}

	c, err := colorful.Hex(code)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}

func signTitle(sign string) string {
	if s, ok := zodiac.Lookup(sign); ok {
		return s.Symbol + " " + s.Name
	}
	return sign
}
