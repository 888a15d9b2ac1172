// Package filterinput provides the inline filter prompt of list views.
package filterinput

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Styles holds the styles used by the filter input.
type Styles struct {
	Prompt      lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Cursor      lipgloss.Style
}

// Model is a filter prompt that applies its query while typing.
type Model struct {
	styles Styles
	input  textinput.Model
	width  int
}

// Option configures the filter input.
type Option func(*Model)

// New creates a new filter input model.
func New(opts ...Option) Model {
	m := Model{input: textinput.New()}
	m.input.Prompt = "/"
	m.input.Placeholder = "type to filter"
	m.input.Blur()

	for _, opt := range opts {
		opt(&m)
	}

	m.applyStyles()
	m.applyWidth()
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithPrompt sets the prompt text.
func WithPrompt(prompt string) Option {
	return func(m *Model) {
		m.input.Prompt = prompt
	}
}

// WithPlaceholder sets the hint shown while the input is empty.
func WithPlaceholder(text string) Option {
	return func(m *Model) {
		m.input.Placeholder = text
	}
}

// SetStyles updates styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
	m.applyStyles()
}

// SetWidth updates available width.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.applyWidth()
}

// Value returns the trimmed query, including text still being typed.
func (m Model) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Editing reports whether the input has keyboard focus.
func (m Model) Editing() bool {
	return m.input.Focused()
}

// Update handles a key. While editing every key is consumed: enter keeps the
// query and esc drops it. Otherwise only "/" (start editing) and esc (clear)
// are consumed.
func (m Model) Update(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			m.input.Blur()
			return m, nil, true
		case "esc":
			m.input.SetValue("")
			m.input.Blur()
			return m, nil, true
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd, true
	}

	switch msg.String() {
	case "/":
		m.input.CursorEnd()
		return m, m.input.Focus(), true
	case "esc":
		if m.input.Value() == "" {
			return m, nil, false
		}
		m.input.SetValue("")
		return m, nil, true
	}
	return m, nil, false
}

// View renders the filter input padded to width.
func (m Model) View() string {
	line := m.input.View()
	if m.width < 1 {
		return line
	}
	var style lipgloss.Style
	return style.Width(m.width).MaxWidth(m.width).Render(line)
}

func (m *Model) applyStyles() {
	styles := m.input.Styles()
	styles.Focused.Prompt = m.styles.Prompt
	styles.Focused.Text = m.styles.Text
	styles.Focused.Placeholder = m.styles.Placeholder
	styles.Blurred.Prompt = m.styles.Prompt
	styles.Blurred.Text = m.styles.Text
	styles.Blurred.Placeholder = m.styles.Placeholder
	if cursorColor := m.styles.Cursor.GetForeground(); cursorColor != nil {
		styles.Cursor.Color = cursorColor
	}
	m.input.SetStyles(styles)
}

func (m *Model) applyWidth() {
	if m.width < 1 {
		return
	}
	m.input.SetWidth(max(m.width-lipgloss.Width(m.input.Prompt), 1))
}
