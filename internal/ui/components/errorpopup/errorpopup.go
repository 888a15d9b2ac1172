// Package errorpopup renders a dismissible error box over the active view.
package errorpopup

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ethercheck/ethercheck/internal/ui/components/frame"
	"github.com/ethercheck/ethercheck/internal/ui/components/overlay"
)

const maxWidth = 60

// Styles holds the styles needed by the error popup.
type Styles struct {
	Title   lipgloss.Style
	Message lipgloss.Style
	Border  lipgloss.Style
}

// DefaultStyles returns default styles for the error popup.
func DefaultStyles() Styles {
	errorColor := lipgloss.Color("#FF0000")
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		Message: lipgloss.NewStyle().Faint(true),
		Border:  lipgloss.NewStyle().Foreground(errorColor),
	}
}

// Model defines state for the error popup component.
type Model struct {
	styles  Styles
	title   string
	message string
	dismiss key.Binding
	width   int
	height  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new error popup model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		title:  "Request failed",
		dismiss: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("esc/x", "dismiss"),
		),
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

// WithSize sets the width and height of the area the popup is centered in.
func WithSize(w, h int) Option {
	return func(m *Model) {
		m.width = w
		m.height = h
	}
}

// WithMessage sets the error message.
func WithMessage(msg string) Option {
	return func(m *Model) {
		m.message = msg
	}
}

// SetSize sets the width and height.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Show displays an error with the given title.
func (m *Model) Show(title string, err error) {
	if err == nil {
		return
	}
	if title != "" {
		m.title = title
	}
	m.message = err.Error()
}

// Dismiss hides the popup.
func (m *Model) Dismiss() {
	m.message = ""
}

// Message returns the current error message.
func (m Model) Message() string {
	return m.message
}

// HasError returns true if there is an error message to display.
func (m Model) HasError() bool {
	return m.message != ""
}

// Update dismisses the popup on its key. The second result reports whether
// the message was consumed.
func (m Model) Update(msg tea.Msg) (Model, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.HasError() {
		return m, false
	}
	if key.Matches(keyMsg, m.dismiss) {
		m.Dismiss()
		return m, true
	}
	return m, false
}

// View renders the popup box alone.
func (m Model) View() string {
	if m.message == "" || m.width < 10 || m.height < 3 {
		return ""
	}

	width := min(m.width, maxWidth)
	innerWidth := max(width-4, 1)
	body := lipgloss.NewStyle().Width(innerWidth).Render(m.styles.Message.Render(m.message))
	height := min(lipgloss.Height(body)+2, m.height)

	state := frame.StyleState{
		Title:  m.styles.Title,
		Muted:  m.styles.Message,
		Filter: m.styles.Message,
		Border: m.styles.Border,
	}
	return frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle(m.title),
		frame.WithFooter(m.dismiss.Help().Key+" "+m.dismiss.Help().Desc),
		frame.WithContent(body),
		frame.WithPadding(1),
		frame.WithSize(width, height),
		frame.WithFocused(true),
	).View()
}

// Overlay draws the popup centered over background.
func (m Model) Overlay(background string) string {
	popup := m.View()
	if popup == "" {
		return background
	}
	return overlay.Center(background, popup, m.width, m.height)
}
