// Package frame renders a titled bordered box with optional meta and footer labels.
package frame

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// StyleState holds styles for a focus state.
type StyleState struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Filter lipgloss.Style
	Border lipgloss.Style
}

// Styles holds focus-aware styles for a frame.
type Styles struct {
	Focused StyleState
	Blurred StyleState
}

// DefaultStyles returns default styles for a frame.
func DefaultStyles() Styles {
	state := StyleState{
		Title:  lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Faint(true),
		Filter: lipgloss.NewStyle(),
		Border: lipgloss.NewStyle(),
	}
	return Styles{
		Focused: state,
		Blurred: state,
	}
}

// Model defines state for the frame component.
type Model struct {
	styles       Styles
	title        string
	filter       string
	meta         string
	footer       string
	content      string
	width        int
	height       int
	minHeight    int
	padding      int
	titlePadding int
	focused      bool
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new frame model.
func New(opts ...Option) Model {
	m := Model{
		styles:       DefaultStyles(),
		titlePadding: 1,
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

// WithFilter sets the bracketed text shown after the title.
func WithFilter(filter string) Option {
	return func(m *Model) {
		m.filter = filter
	}
}

// WithMeta sets the meta content shown on the right of the top border.
func WithMeta(meta string) Option {
	return func(m *Model) {
		m.meta = meta
	}
}

// WithFooter sets the muted label embedded in the bottom border.
func WithFooter(footer string) Option {
	return func(m *Model) {
		m.footer = footer
	}
}

// WithContent sets the content.
func WithContent(content string) Option {
	return func(m *Model) {
		m.content = content
	}
}

// WithSize sets width and height.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithMinHeight sets the minimum height.
func WithMinHeight(height int) Option {
	return func(m *Model) {
		m.minHeight = height
	}
}

// WithPadding sets horizontal padding inside the frame.
func WithPadding(padding int) Option {
	return func(m *Model) {
		m.padding = padding
	}
}

// WithTitlePadding sets the title padding.
func WithTitlePadding(padding int) Option {
	return func(m *Model) {
		m.titlePadding = padding
	}
}

// WithFocused sets the focus state.
func WithFocused(focused bool) Option {
	return func(m *Model) {
		m.focused = focused
	}
}

// SetContent replaces the body text.
func (m *Model) SetContent(content string) {
	m.content = content
}

func (m Model) outerHeight() int {
	return max(m.height, m.minHeight)
}

func (m Model) state() StyleState {
	if m.focused {
		return m.styles.Focused
	}
	return m.styles.Blurred
}

// ContentSize returns the cells available for the body inside the border and
// padding.
func (m Model) ContentSize() (int, int) {
	return max(m.width-2-2*m.padding, 0), max(m.outerHeight()-2, 0)
}

// View renders the frame. It is empty when fewer than two rows or no columns
// are available.
func (m Model) View() string {
	height := m.outerHeight()
	if m.width <= 0 || height < 2 {
		return ""
	}

	st := m.state()
	inner := max(m.width-2, 0)
	border := lipgloss.RoundedBorder()
	left := st.Border.Render(border.Left)
	right := st.Border.Render(border.Right)

	rows := make([]string, 0, height)
	rows = append(rows, m.topEdge(st, border, inner))
	lines := strings.Split(m.content, "\n")
	for i := range height - 2 {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, left+fit(line, inner, m.padding)+right)
	}
	rows = append(rows, m.bottomEdge(st, border, inner))
	return strings.Join(rows, "\n")
}

func (m Model) topEdge(st StyleState, border lipgloss.Border, inner int) string {
	available := max(inner-2, 0)

	var meta string
	if m.meta != "" {
		meta = st.Border.Render("╖") + " " + m.meta + " " + st.Border.Render("╓")
	}
	budget := available - lipgloss.Width(meta)
	if budget < 4 {
		meta, budget = "", available
	}
	title := renderTitle(st, m.title, m.filter, budget, m.titlePadding)
	return edge(st, border.TopLeft, border.Top, border.TopRight, inner, title, meta)
}

func (m Model) bottomEdge(st StyleState, border lipgloss.Border, inner int) string {
	var footer string
	if m.footer != "" && inner > 6 {
		footer = st.Muted.Render(" " + ansi.Truncate(m.footer, inner-4, "…") + " ")
	}
	return edge(st, border.BottomLeft, border.Bottom, border.BottomRight, inner, "", footer)
}

// edge lays out a horizontal border: corner, one fill cell, head, filler,
// tail, one fill cell, corner.
func edge(st StyleState, leftCorner, fill, rightCorner string, inner int, head, tail string) string {
	bar := st.Border.Render(fill)
	gap := max(inner-2-lipgloss.Width(head)-lipgloss.Width(tail), 0)
	return st.Border.Render(leftCorner) + bar + head + strings.Repeat(bar, gap) + tail + bar + st.Border.Render(rightCorner)
}

// fit pads line on both sides and then pads or cuts it to exactly width cells.
func fit(line string, width, padding int) string {
	if width <= 0 {
		return ""
	}
	if padding > 0 {
		pad := strings.Repeat(" ", padding)
		line = pad + line + pad
	}
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return ansi.Truncate(line, width, "")
}
