// Package navbar renders the bottom navigation bar.
package navbar

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// ViewInfo holds information about a view for display in the navbar.
type ViewInfo struct {
	Name string
}

// Styles holds the styles needed by the navbar.
type Styles struct {
	Bar    lipgloss.Style
	Key    lipgloss.Style
	Item   lipgloss.Style
	Active lipgloss.Style
	Quit   lipgloss.Style
	Brand  lipgloss.Style
}

// DefaultStyles returns default styles for the navbar.
func DefaultStyles() Styles {
	return Styles{
		Bar:    lipgloss.NewStyle(),
		Key:    lipgloss.NewStyle().Padding(0, 1),
		Item:   lipgloss.NewStyle().PaddingRight(1),
		Active: lipgloss.NewStyle().Bold(true).PaddingRight(1),
		Quit:   lipgloss.NewStyle().PaddingRight(1),
		Brand:  lipgloss.NewStyle().Faint(true),
	}
}

// Model defines state for the navbar component.
type Model struct {
	styles Styles
	views  []ViewInfo
	active int
	brand  string
	help   []key.Binding
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new navbar model.
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

// WithViews sets the views to display.
func WithViews(views []ViewInfo) Option {
	return func(m *Model) {
		m.views = views
	}
}

// WithBrand sets the label shown on the right.
func WithBrand(brand string) Option {
	return func(m *Model) {
		m.brand = brand
	}
}

// WithHelp sets extra bindings shown after the views.
func WithHelp(bindings ...key.Binding) Option {
	return func(m *Model) {
		m.help = bindings
	}
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetActive marks the view at index as current.
func (m *Model) SetActive(index int) {
	m.active = index
}

// Height returns the height of the navbar (always 1).
func (m Model) Height() int {
	return 1
}

// View renders the navbar.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	var items strings.Builder
	for i, v := range m.views {
		items.WriteString(m.styles.Key.Render(strconv.Itoa(i + 1)))
		if i == m.active {
			items.WriteString(m.styles.Active.Render(v.Name))
		} else {
			items.WriteString(m.styles.Item.Render(v.Name))
		}
	}
	for _, binding := range m.help {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		items.WriteString(m.styles.Key.Render(h.Key) + m.styles.Quit.Render(h.Desc))
	}
	items.WriteString(m.styles.Key.Render("q") + m.styles.Quit.Render("quit"))

	width := max(m.width-m.styles.Bar.GetHorizontalFrameSize(), 0)
	left := items.String()
	brand := ""
	if m.brand != "" {
		brand = m.styles.Brand.Render(m.brand)
	}

	content := left
	gap := width - lipgloss.Width(left) - lipgloss.Width(brand)
	if brand != "" && gap >= 1 {
		content = left + strings.Repeat(" ", gap) + brand
	}
	content = ansi.Truncate(content, width, "")
	if w := lipgloss.Width(content); w < width {
		content += strings.Repeat(" ", width-w)
	}
	return m.styles.Bar.Render(content)
}
