// Package help provides a keybindings help dialog.
package help

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/ethercheck/ethercheck/internal/mathutil"
	"github.com/ethercheck/ethercheck/internal/ui/components/frame"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs"
)

// DialogID identifies the help dialog.
const DialogID dialogs.DialogID = "help"

// Section groups bindings or custom lines under a title.
type Section struct {
	Title    string
	Bindings []key.Binding
	Lines    []string
}

// Styles holds the styles used by the help dialog.
type Styles struct {
	Title   lipgloss.Style
	Border  lipgloss.Style
	Section lipgloss.Style
	Key     lipgloss.Style
	Desc    lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns zero-value styles.
func DefaultStyles() Styles {
	return Styles{}
}

// Model defines state for the help dialog component.
type Model struct {
	styles       Styles
	sections     []Section
	width        int
	height       int
	windowWidth  int
	windowHeight int
	row          int
	col          int
	yOffset      int
	padding      int
	minWidth     int
	columnGap    int
}

// Option configures the help dialog.
type Option func(*Model)

// New creates a new help dialog model.
func New(opts ...Option) *Model {
	m := &Model{
		styles:    DefaultStyles(),
		padding:   1,
		minWidth:  60,
		columnGap: 4,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.applySize()
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSections sets the help sections.
func WithSections(sections []Section) Option {
	return func(m *Model) { m.sections = sections }
}

// Init implements dialogs.DialogModel.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles input and dialog lifecycle.
func (m *Model) Update(msg tea.Msg) (dialogs.DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.applySize()
	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.scrollTo(m.yOffset - 3)
		case tea.MouseWheelDown:
			m.scrollTo(m.yOffset + 3)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "?", "esc", "q":
			return m, func() tea.Msg { return dialogs.CloseDialogMsg{} }
		case "up", "k":
			m.scrollTo(m.yOffset - 1)
		case "down", "j":
			m.scrollTo(m.yOffset + 1)
		case "pgup":
			m.scrollTo(m.yOffset - m.pageSize())
		case "pgdown", "space":
			m.scrollTo(m.yOffset + m.pageSize())
		case "home", "g":
			m.scrollTo(0)
		case "end", "G":
			m.scrollTo(m.maxOffset())
		}
	}

	return m, nil
}

// View renders the help dialog.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	lines := m.lines()
	visible := m.contentHeight()
	m.yOffset = mathutil.Clamp(m.yOffset, 0, max(len(lines)-visible, 0))
	end := min(m.yOffset+visible, len(lines))
	body := strings.Join(lines[min(m.yOffset, end):end], "\n")

	meta := ""
	if len(lines) > visible {
		meta = strconv.Itoa(end) + "/" + strconv.Itoa(len(lines))
	}

	state := frame.StyleState{
		Title:  m.styles.Title,
		Muted:  m.styles.Muted,
		Filter: m.styles.Muted,
		Border: m.styles.Border,
	}
	return frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle("Keys"),
		frame.WithTitlePadding(0),
		frame.WithMeta(meta),
		frame.WithFooter("esc close"),
		frame.WithContent(body),
		frame.WithPadding(m.padding),
		frame.WithSize(m.width, m.height),
		frame.WithMinHeight(5),
		frame.WithFocused(true),
	).View()
}

// Position returns the dialog position.
func (m *Model) Position() (int, int) {
	return m.row, m.col
}

// ID returns the dialog ID.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

func (m *Model) applySize() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}

	dialogWidth := max((m.windowWidth*2)/3, m.minWidth)
	dialogWidth = min(dialogWidth, m.windowWidth-4)
	if dialogWidth < 10 {
		dialogWidth = max(m.windowWidth-2, 10)
	}

	// fit the content when possible
	m.width = dialogWidth
	dialogHeight := len(m.lines()) + 2
	dialogHeight = min(dialogHeight, m.windowHeight-4)
	if dialogHeight < 5 {
		dialogHeight = max(min(m.windowHeight-2, 5), 3)
	}

	m.height = dialogHeight
	m.row = max((m.windowHeight-dialogHeight)/2, 0)
	m.col = max((m.windowWidth-dialogWidth)/2, 0)
	m.scrollTo(m.yOffset)
}

// lines lays the sections out in two columns of similar height.
func (m *Model) lines() []string {
	width := m.contentWidth()
	if width <= 0 || len(m.sections) == 0 {
		return nil
	}

	gap := m.columnGap
	if width <= gap+10 {
		gap = 2
	}
	columnWidth := max((width-gap)/2, 1)
	left, right := splitSections(m.sections, columnWidth, m.styles)

	rows := max(len(left), len(right))
	lines := make([]string, 0, rows)
	for i := range rows {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		lines = append(lines, padRight(l, columnWidth)+strings.Repeat(" ", gap)+padRight(r, columnWidth))
	}
	return lines
}

func (m *Model) contentWidth() int {
	return max(m.width-2-(m.padding*2), 1)
}

func (m *Model) contentHeight() int {
	return max(m.height-2, 0)
}

func (m *Model) pageSize() int {
	return max(m.contentHeight()-1, 1)
}

func (m *Model) maxOffset() int {
	return max(len(m.lines())-m.contentHeight(), 0)
}

func (m *Model) scrollTo(offset int) {
	m.yOffset = mathutil.Clamp(offset, 0, m.maxOffset())
}

// splitSections fills the left column until it holds about half of the
// rendered lines; the rest goes right.
func splitSections(sections []Section, width int, styles Styles) ([]string, []string) {
	rendered := make([][]string, len(sections))
	total := 0
	for i, section := range sections {
		rendered[i] = renderSection(section, width, styles)
		total += len(rendered[i])
	}

	var left, right []string
	for _, block := range rendered {
		if len(block) == 0 {
			continue
		}
		target := &right
		if len(left) == 0 || len(left)+len(block)/2 <= total/2 {
			target = &left
		}
		if len(*target) > 0 {
			*target = append(*target, "")
		}
		*target = append(*target, block...)
	}
	return left, right
}

func renderSection(section Section, width int, styles Styles) []string {
	var lines []string
	if title := strings.TrimSpace(section.Title); title != "" {
		lines = append(lines, ansi.Truncate(styles.Section.Render(title), width, ""))
	}
	for _, line := range section.Lines {
		lines = append(lines, ansi.Truncate(styles.Muted.Render(line), width, ""))
	}

	bindings := make([]key.Help, 0, len(section.Bindings))
	keyWidth := 0
	for _, binding := range section.Bindings {
		h := binding.Help()
		h.Key = strings.TrimSpace(h.Key)
		if !binding.Enabled() || h.Key == "" {
			continue
		}
		keyWidth = max(keyWidth, ansi.StringWidth(h.Key))
		bindings = append(bindings, h)
	}
	for _, h := range bindings {
		line := styles.Key.Render(padRight(h.Key, keyWidth))
		if desc := strings.TrimSpace(h.Desc); desc != "" {
			line += " " + styles.Desc.Render(desc)
		}
		lines = append(lines, ansi.Truncate(line, width, ""))
	}
	return lines
}

func padRight(value string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(value)
	if w > width {
		return ansi.Truncate(value, width, "")
	}
	return value + strings.Repeat(" ", width-w)
}
