// Package table provides a scrollable table with row selection.
package table

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/ethercheck/ethercheck/internal/mathutil"
	"github.com/ethercheck/ethercheck/internal/ui/components/scrollbar"
)

// Align controls the horizontal alignment of a column.
type Align int

const (
	// AlignLeft pads cells on the right.
	AlignLeft Align = iota
	// AlignRight pads cells on the left.
	AlignRight
)

// Column defines a table column. A zero Width takes the remaining space.
type Column struct {
	Title string
	Width int
	Align Align
}

// Row is one table row. ID keeps the cursor on the same row across updates.
type Row struct {
	ID    string
	Cells []string
}

// Styles holds the styles needed by the table.
type Styles struct {
	Text           lipgloss.Style
	Muted          lipgloss.Style
	Header         lipgloss.Style
	Selected       lipgloss.Style
	Separator      lipgloss.Style
	ScrollbarTrack lipgloss.Style
	ScrollbarThumb lipgloss.Style
}

// DefaultStyles returns zero-value styles.
func DefaultStyles() Styles {
	return Styles{}
}

// KeyMap defines the navigation bindings.
type KeyMap struct {
	LineUp     key.Binding
	LineDown   key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding
}

// DefaultKeyMap returns the default navigation bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LineUp:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		LineDown:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		GotoTop:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/home", "top")),
		GotoBottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "bottom")),
	}
}

// Model is a scrollable table.
type Model struct {
	KeyMap KeyMap

	columns      []Column
	rows         []Row
	styles       Styles
	emptyMessage string
	width        int
	height       int
	cursor       int
	yOffset      int
}

// Option configures the table.
type Option func(*Model)

// New creates a new table.
func New(opts ...Option) Model {
	m := Model{
		KeyMap: DefaultKeyMap(),
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithColumns sets the columns.
func WithColumns(columns []Column) Option {
	return func(m *Model) { m.columns = columns }
}

// WithRows sets the initial rows.
func WithRows(rows []Row) Option {
	return func(m *Model) { m.rows = rows }
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the width and height, header included.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// WithEmptyMessage sets the text shown without rows.
func WithEmptyMessage(msg string) Option {
	return func(m *Model) { m.emptyMessage = msg }
}

// SetStyles updates the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize updates the dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clamp()
}

// SetEmptyMessage updates the text shown without rows.
func (m *Model) SetEmptyMessage(msg string) {
	m.emptyMessage = msg
}

// SetRows replaces the rows. The cursor follows the selected row ID when it
// is still present.
func (m *Model) SetRows(rows []Row) {
	selected, ok := m.SelectedRow()
	m.rows = rows
	if ok && selected.ID != "" {
		if idx := slices.IndexFunc(rows, func(r Row) bool { return r.ID == selected.ID }); idx >= 0 {
			m.cursor = idx
		}
	}
	m.clamp()
}

// Rows returns the rows.
func (m Model) Rows() []Row {
	return m.rows
}

// Cursor returns the selected row index.
func (m Model) Cursor() int {
	return m.cursor
}

// SetCursor selects a row.
func (m *Model) SetCursor(idx int) {
	m.cursor = idx
	m.clamp()
}

// SelectedRow returns the row under the cursor.
func (m Model) SelectedRow() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

// ViewportHeight is the number of visible rows.
func (m Model) ViewportHeight() int {
	return max(m.height-2, 0)
}

// MoveUp moves the cursor up by n rows.
func (m *Model) MoveUp(n int) {
	m.cursor -= n
	m.clamp()
}

// MoveDown moves the cursor down by n rows.
func (m *Model) MoveDown(n int) {
	m.cursor += n
	m.clamp()
}

// GotoTop selects the first row.
func (m *Model) GotoTop() {
	m.cursor = 0
	m.clamp()
}

// GotoBottom selects the last row.
func (m *Model) GotoBottom() {
	m.cursor = len(m.rows) - 1
	m.clamp()
}

// RowAt maps a line of the rendered table to a row index.
func (m Model) RowAt(line int) (int, bool) {
	idx := m.yOffset + line - 2
	if line < 2 || line-2 >= m.ViewportHeight() || idx >= len(m.rows) {
		return -1, false
	}
	return idx, true
}

// Update handles navigation keys and the mouse wheel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		page := max(m.ViewportHeight()-1, 1)
		switch {
		case key.Matches(msg, m.KeyMap.LineUp):
			m.MoveUp(1)
		case key.Matches(msg, m.KeyMap.LineDown):
			m.MoveDown(1)
		case key.Matches(msg, m.KeyMap.PageUp):
			m.MoveUp(page)
		case key.Matches(msg, m.KeyMap.PageDown):
			m.MoveDown(page)
		case key.Matches(msg, m.KeyMap.GotoTop):
			m.GotoTop()
		case key.Matches(msg, m.KeyMap.GotoBottom):
			m.GotoBottom()
		}
	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.MoveUp(1)
		case tea.MouseWheelDown:
			m.MoveDown(1)
		}
	}
	return m, nil
}

// View renders the header, a separator and the visible rows.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	visible := m.ViewportHeight()
	showBar := scrollbar.Needed(len(m.rows), visible)
	contentWidth := m.width
	if showBar {
		contentWidth = max(m.width-scrollbar.Width-1, 1)
	}
	widths := m.columnWidths(contentWidth)

	titles := make([]string, len(m.columns))
	for i, col := range m.columns {
		titles[i] = col.Title
	}
	lines := []string{
		m.styles.Header.Render(m.renderCells(titles, widths, contentWidth)),
		m.styles.Separator.Render(strings.Repeat("─", contentWidth)),
	}

	if len(m.rows) == 0 {
		lines = append(lines, m.styles.Muted.Render(ansi.Truncate(m.emptyMessage, contentWidth, "…")))
		return strings.Join(lines[:min(len(lines), m.height)], "\n")
	}

	end := min(m.yOffset+visible, len(m.rows))
	body := make([]string, 0, visible)
	for i := m.yOffset; i < end; i++ {
		line := m.renderCells(m.rows[i].Cells, widths, contentWidth)
		if i == m.cursor {
			body = append(body, m.styles.Selected.Render(line))
		} else {
			body = append(body, m.styles.Text.Render(line))
		}
	}
	for len(body) < visible {
		body = append(body, strings.Repeat(" ", contentWidth))
	}

	if showBar {
		styles := scrollbar.Styles{Track: m.styles.ScrollbarTrack, Thumb: m.styles.ScrollbarThumb}
		for i, cell := range scrollbar.Lines(styles, visible, len(m.rows), visible, m.yOffset) {
			body[i] += " " + cell
		}
	}

	lines = append(lines, body...)
	return strings.Join(lines[:min(len(lines), m.height)], "\n")
}

// columnWidths gives fixed columns their width and shares the rest between
// flexible ones.
func (m Model) columnWidths(total int) []int {
	widths := make([]int, len(m.columns))
	used := max(len(m.columns)-1, 0)
	flexible := 0
	for i, col := range m.columns {
		if col.Width == 0 {
			flexible++
			continue
		}
		widths[i] = col.Width
		used += col.Width
	}
	if flexible == 0 {
		return widths
	}
	share := max((total-used)/flexible, 0)
	for i, col := range m.columns {
		if col.Width == 0 {
			widths[i] = share
		}
	}
	return widths
}

func (m Model) renderCells(cells []string, widths []int, total int) string {
	parts := make([]string, 0, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts = append(parts, fitCell(cell, width, m.columns[i].Align))
	}
	line := ansi.Truncate(strings.Join(parts, " "), total, "")
	if w := ansi.StringWidth(line); w < total {
		line += strings.Repeat(" ", total-w)
	}
	return line
}

func fitCell(cell string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	cell = ansi.Truncate(cell, width, "…")
	pad := strings.Repeat(" ", width-ansi.StringWidth(cell))
	if align == AlignRight {
		return pad + cell
	}
	return cell + pad
}

func (m *Model) clamp() {
	m.cursor = mathutil.Clamp(m.cursor, 0, max(len(m.rows)-1, 0))
	visible := m.ViewportHeight()
	if visible <= 0 {
		m.yOffset = 0
		return
	}
	if m.cursor < m.yOffset {
		m.yOffset = m.cursor
	}
	if m.cursor >= m.yOffset+visible {
		m.yOffset = m.cursor - visible + 1
	}
	m.yOffset = mathutil.Clamp(m.yOffset, 0, max(len(m.rows)-visible, 0))
}
