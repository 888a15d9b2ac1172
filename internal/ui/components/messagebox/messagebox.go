// Package messagebox renders a framed placeholder with a centered message,
// used for loading, empty and "No data" states.
package messagebox

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ethercheck/ethercheck/internal/ui/components/frame"
)

const minHeight = 5

// Styles holds the styles needed by the message box.
type Styles struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Border lipgloss.Style
}

// DefaultStyles returns default styles for the message box.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Faint(true),
		Border: lipgloss.NewStyle(),
	}
}

// Model defines state for the message box component.
type Model struct {
	styles  Styles
	title   string
	message string
	hint    string
	width   int
	height  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new message box model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		height: minHeight,
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

// WithTitle sets the title.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithMessage sets the message. It may span several lines.
func WithMessage(msg string) Option {
	return func(m *Model) {
		m.message = msg
	}
}

// WithHint sets a muted line shown in the bottom border.
func WithHint(hint string) Option {
	return func(m *Model) {
		m.hint = hint
	}
}

// WithSize sets the width and height.
func WithSize(w, h int) Option {
	return func(m *Model) {
		m.width = w
		m.height = h
	}
}

// Message returns the current message.
func (m Model) Message() string {
	return m.message
}

// View renders the message box.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}
	height := max(m.height, minHeight)
	state := frame.StyleState{
		Title:  m.styles.Title,
		Muted:  m.styles.Muted,
		Filter: m.styles.Muted,
		Border: m.styles.Border,
	}
	box := frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle(m.title),
		frame.WithFooter(m.hint),
		frame.WithSize(m.width, height),
		frame.WithFocused(true),
	)
	innerWidth, innerHeight := box.ContentSize()
	box.SetContent(m.centered(innerWidth, innerHeight))
	return box.View()
}

func (m Model) centered(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	msgLines := strings.Split(m.message, "\n")
	top := max((height-len(msgLines))/2, 0)

	lines := make([]string, 0, height)
	for range top {
		lines = append(lines, "")
	}
	for _, line := range msgLines {
		if len(lines) == height {
			break
		}
		rendered := m.styles.Muted.Render(line)
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, rendered))
	}
	return strings.Join(lines, "\n")
}

// Render is a convenience function for one-off rendering without creating a Model.
func Render(styles Styles, title, message string, width, height int) string {
	return New(
		WithStyles(styles),
		WithTitle(title),
		WithMessage(message),
		WithSize(width, height),
	).View()
}
