// Package timerange provides the custom time range dialog.
package timerange

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ethercheck/ethercheck/internal/monitor"
	"github.com/ethercheck/ethercheck/internal/ui/components/frame"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs"
)

// DialogID identifies the range dialog.
const DialogID dialogs.DialogID = "timerange"

const (
	fieldStart = iota
	fieldEnd
	fieldCount
)

// RangeMsg reports a confirmed custom range.
type RangeMsg struct {
	Start time.Time
	End   time.Time
}

// Styles holds the styles used by the range dialog.
type Styles struct {
	Title       lipgloss.Style
	Border      lipgloss.Style
	Label       lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Cursor      lipgloss.Style
	Error       lipgloss.Style
}

// DefaultStyles returns zero-value styles.
func DefaultStyles() Styles {
	return Styles{}
}

// Model defines state for the range dialog component.
type Model struct {
	styles       Styles
	inputs       [fieldCount]textinput.Model
	focus        int
	loc          *time.Location
	err          string
	width        int
	height       int
	windowWidth  int
	windowHeight int
	row          int
	col          int
	padding      int
	minWidth     int
}

// Option configures the range dialog.
type Option func(*Model)

// New creates a new range dialog model.
func New(opts ...Option) *Model {
	m := &Model{
		styles:   DefaultStyles(),
		loc:      time.Local,
		padding:  1,
		minWidth: 44,
	}
	for i := range m.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = monitor.APITimeLayout
		input.CharLimit = len(monitor.APITimeLayout) + 3
		input.Blur()
		m.inputs[i] = input
	}

	for _, opt := range opts {
		opt(m)
	}

	m.applyStyles()
	m.applySize()
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithRange prefills both fields.
func WithRange(start, end time.Time) Option {
	return func(m *Model) {
		if !start.IsZero() {
			m.inputs[fieldStart].SetValue(monitor.FormatAPITime(start))
		}
		if !end.IsZero() {
			m.inputs[fieldEnd].SetValue(monitor.FormatAPITime(end))
		}
	}
}

// WithLocation sets the zone the entered times are read in.
func WithLocation(loc *time.Location) Option {
	return func(m *Model) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// Init focuses the start field.
func (m *Model) Init() tea.Cmd {
	return m.focusField(fieldStart)
}

// Update handles input and dialog lifecycle.
func (m *Model) Update(msg tea.Msg) (dialogs.DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.applySize()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.focus == fieldStart && strings.TrimSpace(m.inputs[fieldEnd].Value()) == "" {
				return m, m.focusField(fieldEnd)
			}
			return m, m.submit()
		case "esc":
			return m, func() tea.Msg { return dialogs.CloseDialogMsg{} }
		case "tab", "down":
			return m, m.focusField((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.focusField((m.focus + fieldCount - 1) % fieldCount)
		case "ctrl+u":
			m.inputs[m.focus].SetValue("")
			m.inputs[m.focus].CursorEnd()
			return m, nil
		}

		m.err = ""
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	return m, nil
}

// Err returns the validation error shown under the fields.
func (m *Model) Err() string {
	return m.err
}

// View renders the range dialog.
func (m *Model) View() string {
	contentWidth := max(m.width-2-(m.padding*2), 1)
	labelWidth := 6
	lines := make([]string, 0, 4)
	for i, label := range []string{"Start", "End"} {
		line := m.styles.Label.Width(labelWidth).Render(label) + m.inputs[i].View()
		lines = append(lines, lipgloss.NewStyle().MaxWidth(contentWidth).Render(line))
	}
	if m.err != "" {
		lines = append(lines, "", m.styles.Error.Width(contentWidth).Render(m.err))
	}
	content := strings.Join(lines, "\n")

	state := frame.StyleState{
		Title:  m.styles.Title,
		Muted:  m.styles.Placeholder,
		Filter: m.styles.Title,
		Border: m.styles.Border,
	}
	return frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle("Time range"),
		frame.WithTitlePadding(0),
		frame.WithFooter("tab switch · enter apply · esc cancel"),
		frame.WithContent(content),
		frame.WithPadding(m.padding),
		frame.WithSize(m.width, lipgloss.Height(content)+2),
		frame.WithMinHeight(4),
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

func (m *Model) submit() tea.Cmd {
	start, err := monitor.ParseAPITime(m.inputs[fieldStart].Value(), m.loc)
	if err != nil {
		m.err = "start: " + err.Error()
		return m.focusField(fieldStart)
	}
	end, err := monitor.ParseAPITime(m.inputs[fieldEnd].Value(), m.loc)
	if err != nil {
		m.err = "end: " + err.Error()
		return m.focusField(fieldEnd)
	}
	if !start.Before(end) {
		m.err = "start must be before end"
		return m.focusField(fieldStart)
	}

	m.err = ""
	return tea.Batch(
		func() tea.Msg { return RangeMsg{Start: start, End: end} },
		func() tea.Msg { return dialogs.CloseDialogMsg{} },
	)
}

func (m *Model) focusField(field int) tea.Cmd {
	m.focus = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field {
			m.inputs[i].CursorEnd()
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

func (m *Model) applyStyles() {
	for i := range m.inputs {
		styles := m.inputs[i].Styles()
		styles.Focused.Prompt = m.styles.Label
		styles.Focused.Text = m.styles.Text
		styles.Focused.Placeholder = m.styles.Placeholder
		styles.Blurred.Prompt = m.styles.Label
		styles.Blurred.Text = m.styles.Text
		styles.Blurred.Placeholder = m.styles.Placeholder
		if cursorColor := m.styles.Cursor.GetForeground(); cursorColor != nil {
			styles.Cursor.Color = cursorColor
		}
		m.inputs[i].SetStyles(styles)
	}
}

func (m *Model) applySize() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}

	dialogWidth := max(m.windowWidth/3, m.minWidth)
	dialogWidth = min(dialogWidth, m.windowWidth-4)
	if dialogWidth < 10 {
		dialogWidth = max(m.windowWidth-2, 10)
	}

	dialogHeight := 4
	if m.err != "" {
		dialogHeight += 2
	}

	m.width = dialogWidth
	m.height = dialogHeight
	m.row = max((m.windowHeight-dialogHeight)/2, 0)
	m.col = max((m.windowWidth-dialogWidth)/2, 0)

	contentWidth := max(dialogWidth-2-(m.padding*2), 1)
	// textinput renders a virtual cursor that adds one extra column.
	for i := range m.inputs {
		m.inputs[i].SetWidth(max(contentWidth-6-1, 1))
	}
}
