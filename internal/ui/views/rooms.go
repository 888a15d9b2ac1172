package views

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/ethercheck/ethercheck/internal/monitor"
	"github.com/ethercheck/ethercheck/internal/ui/components/frame"
	"github.com/ethercheck/ethercheck/internal/ui/components/table"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs/help"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs/timerange"
	"github.com/ethercheck/ethercheck/internal/ui/format"
)

// lines above the room table: range, period, blank
const roomsHeaderLines = 3

var roomsColumns = []table.Column{
	{Title: "", Width: 1},
	{Title: "Entry", Width: 0},
	{Title: "Query", Width: 12},
}

// Rooms is the control panel: range presets and the room selection.
type Rooms struct {
	width  int
	height int
	styles Styles
	loc    *time.Location

	controls    monitor.Controls
	table       table.Model
	frameStyles frame.Styles
}

// NewRooms creates the control panel view.
func NewRooms(loc *time.Location) *Rooms {
	if loc == nil {
		loc = time.Local
	}
	r := &Rooms{
		loc:      loc,
		controls: monitor.NewControls(time.Now().In(loc)),
		table: table.New(
			table.WithColumns(roomsColumns),
			table.WithEmptyMessage("Loading rooms…"),
		),
	}
	r.updateTableRows()
	return r
}

// Init implements View.
func (r *Rooms) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (r *Rooms) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ControlsMsg:
		r.controls = msg.Controls
		r.updateTableRows()
		return r, nil

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			return r, nil
		}
		idx, ok := r.table.RowAt(mouse.Y - 1 - roomsHeaderLines)
		if !ok {
			return r, nil
		}
		r.table.SetCursor(idx)
		return r, r.toggleSelected()

	case tea.MouseWheelMsg:
		r.table, _ = r.table.Update(msg)
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "space", " ", "enter":
			return r, r.toggleSelected()
		case "a":
			return r, toggleRoomCmd(monitor.TotalID)
		case "s":
			return r, func() tea.Msg { return ToggleSummaryMsg{} }
		case "x":
			return r, func() tea.Msg { return ClearRoomsMsg{} }
		case "r":
			return r, r.cyclePreset(1)
		case "R":
			return r, r.cyclePreset(-1)
		case "t":
			return r, r.openRangeDialog()
		case "b":
			return r, func() tea.Msg { return BuildMsg{} }
		}
		r.table, _ = r.table.Update(msg)
		return r, nil
	}

	return r, nil
}

// View implements View.
func (r *Rooms) View() string {
	if r.width <= 0 || r.height <= 0 {
		return ""
	}

	contentWidth := max(r.width-4, 1)
	lines := []string{
		ansi.Truncate(r.presetLine(), contentWidth, "…"),
		ansi.Truncate(r.periodLine(), contentWidth, "…"),
		"",
		r.table.View(),
	}

	return frame.New(
		frame.WithStyles(r.frameStyles),
		frame.WithTitle("Rooms"),
		frame.WithTitlePadding(0),
		frame.WithMeta(r.meta()),
		frame.WithContent(strings.Join(lines, "\n")),
		frame.WithPadding(1),
		frame.WithSize(r.width, r.height),
		frame.WithMinHeight(5),
		frame.WithFocused(true),
	).View()
}

// Name implements View.
func (r *Rooms) Name() string {
	return "Rooms"
}

// ShortHelp implements View.
func (r *Rooms) ShortHelp() []key.Binding {
	return []key.Binding{
		helpBinding([]string{"space"}, "space", "toggle"),
		helpBinding([]string{"r"}, "r", "range"),
		helpBinding([]string{"b"}, "b", "build"),
	}
}

// HelpSections implements HelpProvider.
func (r *Rooms) HelpSections() []help.Section {
	bindings := []key.Binding{
		helpBinding([]string{"space", "enter"}, "space", "toggle entry"),
		helpBinding([]string{"a"}, "a", "select total"),
		helpBinding([]string{"s"}, "s", "toggle summary"),
		helpBinding([]string{"x"}, "x", "clear rooms"),
		helpBinding([]string{"r", "R"}, "r/R", "next/prev range"),
		helpBinding([]string{"t"}, "t", "custom range"),
		helpBinding([]string{"b"}, "b", "build graph"),
	}
	return []help.Section{
		{Title: "Rooms", Bindings: bindings},
		{Title: "Room list", Bindings: tableHelpBindings(r.table.KeyMap)},
	}
}

// SetSize implements View.
func (r *Rooms) SetSize(width, height int) View {
	r.width = width
	r.height = height
	r.table.SetSize(max(width-4, 1), max(height-2-roomsHeaderLines, 3))
	return r
}

// SetStyles implements View.
func (r *Rooms) SetStyles(styles Styles) View {
	r.styles = styles
	r.frameStyles = frameStylesFromTheme(styles)
	r.table.SetStyles(tableStylesFromTheme(styles))
	return r
}

func (r *Rooms) toggleSelected() tea.Cmd {
	row, ok := r.table.SelectedRow()
	if !ok {
		return nil
	}
	return toggleRoomCmd(row.ID)
}

func toggleRoomCmd(value string) tea.Cmd {
	return func() tea.Msg { return ToggleRoomMsg{Value: value} }
}

// cyclePreset moves to the next or previous quick range. A custom range
// moves to the first or last preset.
func (r *Rooms) cyclePreset(delta int) tea.Cmd {
	idx := slices.IndexFunc(monitor.Presets, func(p monitor.Preset) bool {
		return p.Key == r.controls.Preset
	})
	n := len(monitor.Presets)
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = (idx + delta + n) % n
	}
	next := monitor.Presets[idx].Key
	return func() tea.Msg { return PresetMsg{Key: next} }
}

func (r *Rooms) openRangeDialog() tea.Cmd {
	model := timerange.New(
		timerange.WithStyles(rangeDialogStylesFromTheme(r.styles)),
		timerange.WithRange(r.controls.Start, r.controls.End),
		timerange.WithLocation(r.loc),
	)
	return func() tea.Msg {
		return dialogs.OpenDialogMsg{Model: model}
	}
}

func (r *Rooms) updateTableRows() {
	entries := append([]string{monitor.TotalID, monitor.SummaryID}, r.controls.Rooms...)
	rows := make([]table.Row, 0, len(entries))
	for _, entry := range entries {
		mark := "○"
		if r.controls.Selection.Selected(entry) {
			mark = "●"
		}
		rows = append(rows, table.Row{
			ID:    entry,
			Cells: []string{mark, SeriesLabel(entry), entry},
		})
	}
	r.table.SetRows(rows)
}

func (r *Rooms) presetLine() string {
	parts := []string{r.styles.MetricLabel.Render("Range ")}
	for _, p := range monitor.Presets {
		label := " " + p.Key + " "
		if p.Key == r.controls.Preset {
			parts = append(parts, r.styles.TableSelected.Render(label))
		} else {
			parts = append(parts, r.styles.Muted.Render(label))
		}
	}
	if r.controls.Preset == "" {
		parts = append(parts, r.styles.TableSelected.Render(" custom "))
	}
	return strings.Join(parts, " ")
}

func (r *Rooms) periodLine() string {
	start := monitor.FormatAPITime(r.controls.Start.In(r.loc))
	end := monitor.FormatAPITime(r.controls.End.In(r.loc))
	span := format.Span(r.controls.End.Sub(r.controls.Start))
	return r.styles.MetricLabel.Render("From ") + r.styles.MetricValue.Render(start) +
		r.styles.MetricLabel.Render(" to ") + r.styles.MetricValue.Render(end) +
		r.styles.Muted.Render(" ("+span+")")
}

func (r *Rooms) meta() string {
	sel := r.controls.Selection
	var text string
	switch {
	case sel.Summary:
		text = "summary of " + strconv.Itoa(len(r.controls.Rooms)) + " rooms"
	case sel.Total:
		text = "total"
	case len(sel.Rooms) == 0:
		return r.styles.Error.Render("no rooms selected")
	default:
		text = strconv.Itoa(len(sel.Rooms)) + " selected"
	}
	return r.styles.MetricLabel.Render("query: ") + r.styles.MetricValue.Render(text)
}
