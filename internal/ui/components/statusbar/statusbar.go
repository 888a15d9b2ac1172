// Package statusbar renders the top bar with the API endpoint, the current
// query and a transient status message.
package statusbar

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Data holds the values shown in the bar.
type Data struct {
	API       string
	Range     string
	Selection string
	Series    int
	Loading   bool
}

// Styles holds the styles needed by the status bar.
type Styles struct {
	Bar       lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Separator lipgloss.Style
}

// DefaultStyles returns default styles for the status bar.
func DefaultStyles() Styles {
	return Styles{
		Bar:       lipgloss.NewStyle(),
		Label:     lipgloss.NewStyle().Faint(true),
		Value:     lipgloss.NewStyle().Bold(true),
		Separator: lipgloss.NewStyle().Faint(true),
	}
}

// Model defines state for the status bar component.
type Model struct {
	styles  Styles
	data    Data
	message string
	width   int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new status bar model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// WithData sets the initial data.
func WithData(d Data) Option {
	return func(m *Model) {
		m.data = d
	}
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetData sets the bar data.
func (m *Model) SetData(d Data) {
	m.data = d
}

// SetMessage sets the transient message shown on the right.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// Data returns the current data.
func (m Model) Data() Data {
	return m.data
}

// Message returns the transient message.
func (m Model) Message() string {
	return m.message
}

// Height returns the height of the bar (always 1).
func (m Model) Height() int {
	return 1
}

// View renders the status bar.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}
	width := max(m.width-m.styles.Bar.GetHorizontalFrameSize(), 0)

	items := []string{
		m.item("API", m.data.API),
		m.item("Range", m.data.Range),
		m.item("Rooms", m.data.Selection),
	}
	switch {
	case m.data.Loading:
		items = append(items, m.styles.Value.Render("loading…"))
	case m.data.Series > 0:
		items = append(items, m.item("Series", strconv.Itoa(m.data.Series)))
	}

	sep := m.styles.Separator.Render(" │ ")
	left := strings.Join(items, sep)
	right := ""
	if m.message != "" {
		right = m.styles.Value.Render(m.message)
	}

	content := left
	if right != "" {
		gap := width - lipgloss.Width(left) - lipgloss.Width(right)
		content = right
		if gap >= 1 {
			content = left + m.styles.Separator.Render(strings.Repeat(" ", gap)) + right
		}
	}
	content = ansi.Truncate(content, width, "…")
	if w := lipgloss.Width(content); w < width {
		content += m.styles.Separator.Render(strings.Repeat(" ", width-w))
	}
	return m.styles.Bar.Render(content)
}

func (m Model) item(label, value string) string {
	if value == "" {
		value = "-"
	}
	return m.styles.Label.Render(label+": ") + m.styles.Value.Render(value)
}
