// Package tui provides a Bubble Tea sign picker that fetches and shows a
// reading for the selected sign.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"horoscopefetcher/internal/coordinator"
	"horoscopefetcher/internal/fetcher"
	"horoscopefetcher/internal/render"
	"horoscopefetcher/internal/zodiac"
)

// Reader runs one fetch cycle for a sign.
type Reader interface {
	Reading(ctx context.Context, sign, apiKey string, observer coordinator.Observer) (coordinator.Outcome, error)
}

// screen is the active view.
type screen int

const (
	screenPicker screen = iota
	screenFetching
	screenResult
)

const maxReadingWidth = 80

// Options configures the UI.
type Options struct {
	Context context.Context
	Reader  Reader
	APIKey  string
	Theme   render.Theme
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx    context.Context
	reader Reader
	apiKey string
	theme  render.Theme
	keys   keyMap

	signs  []zodiac.Sign
	cursor int
	screen screen
	width  int

	spinner spinner.Model
	status  string
	events  <-chan coordinator.Event

	outcome coordinator.Outcome
	err     error
}

// eventMsg carries a lifecycle event from a running cycle.
type eventMsg coordinator.Event

// readingDoneMsg is delivered when a cycle has returned.
type readingDoneMsg struct {
	outcome coordinator.Outcome
	err     error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	theme := opts.Theme
	if theme == (render.Theme{}) {
		theme = render.DefaultTheme()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))),
	)

	return Model{
		ctx:     ctx,
		reader:  opts.Reader,
		apiKey:  opts.APIKey,
		theme:   theme,
		keys:    defaultKeyMap(),
		signs:   zodiac.All,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.screen != screenFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		return m.handleEvent(coordinator.Event(msg))

	case readingDoneMsg:
		m.outcome = msg.outcome
		m.err = msg.err
		m.screen = screenResult
		m.status = ""
		m.events = nil
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.screen {
	case screenPicker:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.signs)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			return m.startReading()
		}

	case screenResult:
		if key.Matches(msg, m.keys.Back) {
			m.screen = screenPicker
			m.outcome = coordinator.Outcome{}
			m.err = nil
		}
	}

	return m, nil
}

func (m Model) startReading() (tea.Model, tea.Cmd) {
	if m.reader == nil {
		return m, nil
	}

	sign := m.signs[m.cursor]
	events := make(chan coordinator.Event, 2*len(fetcher.Categories)+1)

	m.screen = screenFetching
	m.status = statusText(fetcher.CategoryHoroscope)
	m.events = events

	return m, tea.Batch(
		m.spinner.Tick,
		readingCmd(m.ctx, m.reader, sign.ID(), m.apiKey, events),
		waitForEvent(events),
	)
}

func (m Model) handleEvent(ev coordinator.Event) (tea.Model, tea.Cmd) {
	if m.screen != screenFetching || m.events == nil {
		return m, nil
	}
	if ev.Kind == coordinator.CategoryStarted {
		m.status = statusText(ev.Category)
	}
	return m, waitForEvent(m.events)
}

// readingCmd runs the cycle and forwards its events to the channel, which
// is closed when the cycle returns.
func readingCmd(ctx context.Context, reader Reader, sign, apiKey string, events chan<- coordinator.Event) tea.Cmd {
	return func() tea.Msg {
		defer close(events)
		outcome, err := reader.Reading(ctx, sign, apiKey, func(ev coordinator.Event) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		})
		return readingDoneMsg{outcome: outcome, err: err}
	}
}

// waitForEvent blocks until the next event arrives. The model re-arms it
// after each event.
func waitForEvent(events <-chan coordinator.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func statusText(category fetcher.Category) string {
	switch category {
	case fetcher.CategoryHoroscope:
		return "Fetching horoscope..."
	case fetcher.CategoryNumber:
		return "Fetching lucky number..."
	case fetcher.CategoryColor:
		return "Fetching lucky color..."
	default:
		return "Fetching..."
	}
}

// View implements tea.Model.
func (m Model) View() string {
	styles := m.theme.Styles()

	switch m.screen {
	case screenFetching:
		sign := m.signs[m.cursor]
		return fmt.Sprintf("\n  %s %s %s\n\n  %s\n",
			m.spinner.View(),
			styles.Title.Render(sign.Symbol+" "+sign.Name),
			styles.Text.Render(m.status),
			styles.MutedText.Render(helpLine(m.keys.Quit)))

	case screenResult:
		var b strings.Builder
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(styles.Danger.Render(m.err.Error()))
		} else {
			b.WriteString(render.New(m.theme, m.readingWidth()).Outcome(m.outcome))
		}
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render(helpLine(m.keys.Back, m.keys.Quit)))
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(styles.Title.Render("Choose your sign"))
	b.WriteString("\n\n")
	for i, s := range m.signs {
		line := fmt.Sprintf("%s  %s", s.Symbol, s.Name)
		if i == m.cursor {
			b.WriteString(styles.Label.Render("> " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(helpLine(m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Quit)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) readingWidth() int {
	if m.width <= 0 {
		return maxReadingWidth
	}
	return max(min(m.width-4, maxReadingWidth), 20)
}
