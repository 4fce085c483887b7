package render

import "github.com/charmbracelet/lipgloss"

// Theme defines the palette used when printing a reading.
type Theme struct {
	Text    string
	Muted   string
	Accent  string
	Warning string
	Danger  string
	Border  string
}

// DefaultTheme is a muted palette that reads well on dark and light terminals.
func DefaultTheme() Theme {
	return Theme{
		Text:    "#e0def4",
		Muted:   "#908caa",
		Accent:  "#c4a7e7",
		Warning: "#f6c177",
		Danger:  "#eb6f92",
		Border:  "#524f67",
	}
}

// Styles contains pre-built lipgloss styles for a Theme.
type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Text      lipgloss.Style
	MutedText lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Box       lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}
