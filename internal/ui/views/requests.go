package views

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/ethercheck/ethercheck/internal/devtools"
	"github.com/ethercheck/ethercheck/internal/ui/components/filterinput"
	"github.com/ethercheck/ethercheck/internal/ui/components/frame"
	"github.com/ethercheck/ethercheck/internal/ui/components/table"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs/help"
	"github.com/ethercheck/ethercheck/internal/ui/format"
)

var requestColumns = []table.Column{
	{Title: "#", Width: 5, Align: table.AlignRight},
	{Title: "Time", Width: 12},
	{Title: "Origin", Width: 12},
	{Title: "Status", Width: 6, Align: table.AlignRight},
	{Title: "Dur", Width: 8, Align: table.AlignRight},
	{Title: "Size", Width: 9, Align: table.AlignRight},
	{Title: "URL", Width: 0},
}

// Requests lists the HTTP calls recorded by the tracker.
type Requests struct {
	width  int
	height int
	styles Styles

	tracker *devtools.Tracker
	entries []devtools.LogEntry
	table   table.Model
	filter  filterinput.Model

	frameStyles frame.Styles
}

// NewRequests creates the request log view.
func NewRequests(tracker *devtools.Tracker) *Requests {
	r := &Requests{
		tracker: tracker,
		table: table.New(
			table.WithColumns(requestColumns),
			table.WithEmptyMessage("No requests recorded."),
		),
		filter: filterinput.New(
			filterinput.WithPlaceholder("filter by URL or origin"),
		),
	}
	return r
}

// Init implements View.
func (r *Requests) Init() tea.Cmd {
	r.sync()
	return nil
}

// Update implements View.
func (r *Requests) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg, RoomsLoadedMsg, GraphLoadedMsg, ResponseMsg:
		r.sync()
		return r, nil

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			return r, nil
		}
		// frame border and padding
		if idx, ok := r.table.RowAt(mouse.Y - 1); ok {
			r.table.SetCursor(idx)
		}
		return r, nil

	case tea.MouseWheelMsg:
		r.table, _ = r.table.Update(msg)
		return r, nil

	case tea.KeyMsg:
		if cmd, handled := r.updateFilter(msg); handled {
			return r, cmd
		}
		switch msg.String() {
		case "r":
			r.sync()
			return r, nil
		case "y":
			if entry, ok := r.selected(); ok {
				return r, copyTextCmd(entry.Entry.URL, "request URL")
			}
			return r, nil
		}
		r.table, _ = r.table.Update(msg)
		return r, nil
	}

	return r, nil
}

// updateFilter feeds a key to the filter prompt and re-filters the list when
// the query or the prompt layout changed.
func (r *Requests) updateFilter(msg tea.KeyMsg) (tea.Cmd, bool) {
	query, editing := r.filter.Value(), r.filter.Editing()
	var (
		cmd     tea.Cmd
		handled bool
	)
	r.filter, cmd, handled = r.filter.Update(msg)
	if r.filter.Editing() != editing {
		r.applySize()
	}
	if r.filter.Value() != query {
		r.sync()
	}
	return cmd, handled
}

// View implements View.
func (r *Requests) View() string {
	if r.width <= 0 || r.height <= 0 {
		return ""
	}

	contentWidth := max(r.width-4, 1)
	lines := []string{r.table.View()}
	if detail := r.detailLine(); detail != "" {
		lines = append(lines, ansi.Truncate(detail, contentWidth, "…"))
	}
	if r.filter.Editing() {
		lines = append(lines, r.filter.View())
	}

	filter := ""
	if !r.filter.Editing() {
		filter = r.filter.Value()
	}

	return frame.New(
		frame.WithStyles(r.frameStyles),
		frame.WithTitle("Requests"),
		frame.WithFilter(filter),
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
func (r *Requests) Name() string {
	return "Requests"
}

// ShortHelp implements View.
func (r *Requests) ShortHelp() []key.Binding {
	return []key.Binding{
		helpBinding([]string{"/"}, "/", "filter"),
		helpBinding([]string{"y"}, "y", "copy URL"),
	}
}

// HelpSections implements HelpProvider.
func (r *Requests) HelpSections() []help.Section {
	return []help.Section{
		{
			Title: "Requests",
			Bindings: []key.Binding{
				helpBinding([]string{"/"}, "/", "filter"),
				helpBinding([]string{"esc"}, "esc", "clear filter"),
				helpBinding([]string{"r"}, "r", "reload"),
				helpBinding([]string{"y"}, "y", "copy URL"),
			},
		},
		{Title: "Request list", Bindings: tableHelpBindings(r.table.KeyMap)},
	}
}

// SetSize implements View.
func (r *Requests) SetSize(width, height int) View {
	r.width = width
	r.height = height
	r.applySize()
	return r
}

// SetStyles implements View.
func (r *Requests) SetStyles(styles Styles) View {
	r.styles = styles
	r.frameStyles = frameStylesFromTheme(styles)
	r.table.SetStyles(tableStylesFromTheme(styles))
	r.filter.SetStyles(filterinput.Styles{
		Prompt:      styles.FilterFocused,
		Text:        styles.Text,
		Placeholder: styles.Muted,
		Cursor:      styles.FilterFocused,
	})
	return r
}

func (r *Requests) applySize() {
	contentWidth := max(r.width-4, 1)
	// detail line, plus the filter input while editing
	reserved := 1
	if r.filter.Editing() {
		reserved++
	}
	r.table.SetSize(contentWidth, max(r.height-2-reserved, 3))
	r.filter.SetWidth(contentWidth)
}

// sync reloads the tracker log. The cursor follows the newest entry when it
// was already on the last row.
func (r *Requests) sync() {
	if r.tracker == nil {
		r.entries = nil
		r.table.SetRows(nil)
		return
	}

	prevRows := r.table.Rows()
	wasAtEnd := len(prevRows) == 0 || r.table.Cursor() >= len(prevRows)-1

	query := strings.ToLower(r.filter.Value())
	all := r.tracker.LogEntries()
	r.entries = r.entries[:0]
	rows := make([]table.Row, 0, len(all))
	for _, entry := range all {
		if query != "" &&
			!strings.Contains(strings.ToLower(entry.Entry.URL), query) &&
			!strings.Contains(strings.ToLower(entry.Origin), query) {
			continue
		}
		r.entries = append(r.entries, entry)
		rows = append(rows, table.Row{
			ID: strconv.FormatUint(entry.Seq, 10),
			Cells: []string{
				strconv.FormatUint(entry.Seq, 10),
				entry.Time.Format("15:04:05.000"),
				entry.Origin,
				statusLabel(entry.Entry),
				devtools.FormatDuration(entry.Entry.Duration),
				sizeLabel(entry.Entry.Bytes),
				entry.Entry.Method + " " + entry.Entry.URL,
			},
		})
	}
	r.table.SetRows(rows)
	if wasAtEnd && len(rows) > 0 {
		r.table.GotoBottom()
	}
}

func (r *Requests) selected() (devtools.LogEntry, bool) {
	idx := r.table.Cursor()
	if idx < 0 || idx >= len(r.entries) {
		return devtools.LogEntry{}, false
	}
	return r.entries[idx], true
}

func (r *Requests) detailLine() string {
	entry, ok := r.selected()
	if !ok {
		return ""
	}
	if entry.Entry.Err != "" {
		return r.styles.Error.Render("error: " + entry.Entry.Err)
	}
	return r.styles.Muted.Render(entry.Entry.URL)
}

func (r *Requests) meta() string {
	failed := 0
	for _, entry := range r.entries {
		if entry.Entry.Failed() {
			failed++
		}
	}
	text := r.styles.MetricLabel.Render("calls: ") + r.styles.MetricValue.Render(strconv.Itoa(len(r.entries)))
	if failed > 0 {
		text += r.styles.Muted.Render(" • ") + r.styles.Error.Render(strconv.Itoa(failed)+" failed")
	}
	return text
}

func statusLabel(entry devtools.Entry) string {
	if entry.Err != "" {
		return "ERR"
	}
	if entry.Status == 0 {
		return "-"
	}
	return strconv.Itoa(entry.Status)
}

// FilterFocused reports whether the filter input takes the keyboard.
func (r *Requests) FilterFocused() bool {
	return r.filter.Editing()
}

// sizeLabel renders the response size. Unknown lengths are negative.
func sizeLabel(bytes int64) string {
	if bytes < 0 {
		return "-"
	}
	return format.Bytes(bytes)
}
