package views

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/ethercheck/ethercheck/internal/chart"
	"github.com/ethercheck/ethercheck/internal/devtools"
	"github.com/ethercheck/ethercheck/internal/export"
	"github.com/ethercheck/ethercheck/internal/monitor"
	"github.com/ethercheck/ethercheck/internal/ui/components/frame"
	"github.com/ethercheck/ethercheck/internal/ui/components/plot"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs/help"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs/timerange"
)

const (
	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 15 * time.Second

	// wheelDelta is the pointer delta of one wheel notch.
	wheelDelta = 100.0
	// keyZoomStep is the zoom factor of + and -.
	keyZoomStep = 0.1
	// keyPanDivisor pans by this share of the plot width per arrow press.
	keyPanDivisor = 10
	// pinchStep is the distance ratio of [ and ].
	pinchStep = 1.25

	// plot origin inside the frame: border row, border and padding columns
	plotTop  = 1
	plotLeft = 2
)

// Graph shows the packet-loss chart.
type Graph struct {
	client  monitor.API
	ctx     context.Context
	loc     *time.Location
	timeout time.Duration
	outDir  string
	log     logrus.FieldLogger

	cellWidth  float64
	cellHeight float64

	width  int
	height int
	styles Styles

	controls  monitor.Controls
	requestID uint64
	loading   bool
	built     bool
	payload   monitor.Payload

	plot     plot.Model
	spinner  spinner.Model
	dragging bool
	dragX    int
	pointer  struct{ col, row int }
	pointed  bool

	frameStyles frame.Styles
}

// GraphOption configures the graph view.
type GraphOption func(*Graph)

// WithContext sets the parent context of API requests.
func WithContext(ctx context.Context) GraphOption {
	return func(g *Graph) {
		if ctx != nil {
			g.ctx = ctx
		}
	}
}

// WithLocation sets the zone of zone-less timestamps and labels.
func WithLocation(loc *time.Location) GraphOption {
	return func(g *Graph) {
		if loc != nil {
			g.loc = loc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) GraphOption {
	return func(g *Graph) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithCellSize sets the pixel size of a terminal cell for hover distances.
func WithCellSize(w, h float64) GraphOption {
	return func(g *Graph) {
		g.cellWidth, g.cellHeight = w, h
	}
}

// WithExportDir sets where exported images are written.
func WithExportDir(dir string) GraphOption {
	return func(g *Graph) { g.outDir = dir }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) GraphOption {
	return func(g *Graph) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGraph creates the graph view.
func NewGraph(client monitor.API, opts ...GraphOption) *Graph {
	g := &Graph{
		client:   client,
		ctx:      context.Background(),
		loc:      time.Local,
		timeout:  DefaultTimeout,
		outDir:   ".",
		log:      logrus.StandardLogger(),
		controls: monitor.NewControls(time.Now()),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.plot = plot.New(
		plot.WithLocation(g.loc),
		plot.WithCellSize(g.cellWidth, g.cellHeight),
		plot.WithEmptyMessage(g.emptyMessage()),
	)
	return g
}

// Init implements View.
func (g *Graph) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (g *Graph) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ControlsMsg:
		g.controls = msg.Controls
		return g, nil

	case BuildMsg:
		return g, g.build(false)

	case RefreshMsg:
		if !g.built {
			return g, nil
		}
		return g, g.build(true)

	case ClearGraphMsg:
		g.clear()
		return g, nil

	case GraphLoadedMsg:
		return g, g.loaded(msg)

	case spinner.TickMsg:
		if !g.loading {
			return g, nil
		}
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(msg)
		g.plot.SetEmptyMessage(g.emptyMessage())
		return g, cmd

	case tea.MouseWheelMsg:
		g.handleWheel(msg.Mouse())
		return g, nil

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			g.dragging = true
			g.dragX = mouse.X
		}
		return g, nil

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		if g.dragging && mouse.Button == tea.MouseLeft {
			g.setState(g.plot.Pan(mouse.X - g.dragX))
			g.dragX = mouse.X
		}
		g.hover(mouse.X-plotLeft, mouse.Y-plotTop)
		return g, nil

	case tea.MouseReleaseMsg:
		g.dragging = false
		return g, nil

	case tea.KeyMsg:
		return g, g.handleKey(msg)
	}

	return g, nil
}

// View implements View.
func (g *Graph) View() string {
	if g.width <= 0 || g.height <= 0 {
		return ""
	}
	if !g.plot.State().Loaded() {
		return renderStatusMessage("Packet loss", g.emptyMessage(), g.styles, g.width, g.height)
	}

	return frame.New(
		frame.WithStyles(g.frameStyles),
		frame.WithTitle("Packet loss"),
		frame.WithTitlePadding(0),
		frame.WithMeta(g.meta()),
		frame.WithContent(g.plot.View()),
		frame.WithPadding(1),
		frame.WithSize(g.width, g.height),
		frame.WithMinHeight(5),
		frame.WithFocused(true),
	).View()
}

// Name implements View.
func (g *Graph) Name() string {
	return "Graph"
}

// ShortHelp implements View.
func (g *Graph) ShortHelp() []key.Binding {
	return []key.Binding{
		helpBinding([]string{"b"}, "b", "build"),
		helpBinding([]string{"t"}, "t", "range"),
		helpBinding([]string{"s"}, "s", "summary"),
	}
}

// HelpSections implements HelpProvider.
func (g *Graph) HelpSections() []help.Section {
	return []help.Section{
		{
			Title: "Graph",
			Bindings: []key.Binding{
				helpBinding([]string{"b", "enter"}, "b/enter", "build graph"),
				helpBinding([]string{"c"}, "c", "clear graph"),
				helpBinding([]string{"s"}, "s", "toggle summary"),
				helpBinding([]string{"t"}, "t", "custom range"),
				helpBinding([]string{"+", "-"}, "+/-", "zoom in/out"),
				helpBinding([]string{"left", "right"}, "←/→", "pan"),
				helpBinding([]string{"[", "]"}, "[/]", "zoom about hover"),
				helpBinding([]string{"0"}, "0", "reset zoom"),
				helpBinding([]string{"v"}, "v", "hide hovered series"),
				helpBinding([]string{"V"}, "V", "show all series"),
				helpBinding([]string{"y"}, "y", "copy tooltip"),
				helpBinding([]string{"e"}, "e", "export image"),
			},
		},
		{
			Title: "Mouse",
			Lines: []string{
				"wheel zooms, ctrl/shift zooms faster",
				"drag pans the window",
				"hover shows the nearest point",
			},
		},
	}
}

// SetSize implements View.
func (g *Graph) SetSize(width, height int) View {
	g.width = width
	g.height = height
	g.plot.SetSize(max(width-2*plotLeft, 0), max(height-2*plotTop, 0))
	return g
}

// SetStyles implements View.
func (g *Graph) SetStyles(styles Styles) View {
	g.styles = styles
	g.frameStyles = frameStylesFromTheme(styles)
	g.plot.SetStyles(plotStylesFromTheme(styles))
	g.spinner.Style = styles.Muted
	return g
}

// Loading reports whether a request is in flight.
func (g *Graph) Loading() bool {
	return g.loading
}

// State returns the chart state on screen.
func (g *Graph) State() chart.State {
	return g.plot.State()
}

func (g *Graph) handleKey(msg tea.KeyMsg) tea.Cmd {
	state := g.plot.State()
	switch msg.String() {
	case "b", "enter":
		return g.build(false)
	case "c":
		return func() tea.Msg { return ClearGraphMsg{} }
	case "s":
		return func() tea.Msg { return ToggleSummaryMsg{} }
	case "t":
		return g.openRangeDialog()
	case "+", "=":
		g.setState(state.Zoom(-keyZoomStep))
	case "-", "_":
		g.setState(state.Zoom(keyZoomStep))
	case "left", "h":
		g.setState(g.plot.Pan(g.panColumns()))
	case "right", "l":
		g.setState(g.plot.Pan(-g.panColumns()))
	case "]":
		g.setState(state.PinchZoom(pinchStep, g.pinchCenter()))
	case "[":
		g.setState(state.PinchZoom(1/pinchStep, g.pinchCenter()))
	case "0":
		g.setState(state.Reset())
	case "v":
		if state.Hover.Active {
			g.setState(state.ToggleSeries(state.Hover.SeriesID))
		}
	case "V":
		for _, id := range state.Table.Series {
			if state.Hidden(id) {
				state = state.ToggleSeries(id)
			}
		}
		g.setState(state)
	case "esc":
		g.pointed = false
		g.setState(state.ClearHover())
	case "y":
		text, ok := g.plot.Tooltip()
		if !ok {
			return nil
		}
		return copyTextCmd(text, "tooltip")
	case "e":
		return g.exportCmd()
	}
	return nil
}

func (g *Graph) handleWheel(mouse tea.Mouse) {
	state := g.plot.State()
	switch mouse.Button {
	case tea.MouseWheelUp, tea.MouseWheelDown:
		delta := wheelDelta
		if mouse.Button == tea.MouseWheelUp {
			delta = -wheelDelta
		}
		fast := mouse.Mod.Contains(tea.ModCtrl) || mouse.Mod.Contains(tea.ModShift)
		g.setState(state.Zoom(chart.WheelFactor(delta, fast)))
	case tea.MouseWheelLeft:
		g.setState(g.plot.Pan(g.panColumns()))
	case tea.MouseWheelRight:
		g.setState(g.plot.Pan(-g.panColumns()))
	}
}

// build issues a graph request for the current controls. Responses of older
// requests are discarded on arrival.
func (g *Graph) build(refresh bool) tea.Cmd {
	q, err := g.controls.Query()
	if err != nil {
		return func() tea.Msg { return ErrorMsg{Title: "Cannot build graph", Err: err} }
	}

	g.requestID++
	g.loading = true
	g.built = true
	g.plot.SetEmptyMessage(g.emptyMessage())

	id := g.requestID
	summary := g.controls.Selection.Summary
	client, parent, timeout := g.client, g.ctx, g.timeout
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(devtools.WithTracker(parent, "graph.build"), timeout)
		defer cancel()
		payload, err := client.Graph(ctx, q)
		return GraphLoadedMsg{ID: id, Query: q, Summary: summary, Refresh: refresh, Payload: payload, Err: err}
	}
	return tea.Batch(fetch, g.spinner.Tick)
}

func (g *Graph) loaded(msg GraphLoadedMsg) tea.Cmd {
	if msg.ID != g.requestID {
		g.log.WithFields(logrus.Fields{
			"request_id": msg.ID,
			"latest":     g.requestID,
		}).Debug("stale graph response discarded")
		return nil
	}
	g.loading = false

	if msg.Err != nil {
		g.plot.SetEmptyMessage(g.emptyMessage())
		return func() tea.Msg { return ErrorMsg{Title: "Graph request failed", Err: msg.Err} }
	}

	previous := g.plot.State()
	g.payload = msg.Payload
	table := chart.Normalize(msg.Payload.RawSeries(), chart.NormalizeOptions{
		Summary:  msg.Summary,
		Location: g.loc,
	})
	state := chart.Load(table)
	if msg.Refresh {
		state = state.KeepWindow(previous)
	}
	for _, id := range table.Series {
		if previous.Hidden(id) {
			state = state.ToggleSeries(id)
		}
	}
	g.plot.SetSeries(msg.Payload.Colors(), seriesLabels(table.Series))
	g.setState(state)
	g.plot.SetEmptyMessage(g.emptyMessage())

	url := g.client.DisplayURL() + "/graph?" + msg.Query.Values().Encode()
	raw := msg.Payload.Raw
	return func() tea.Msg { return ResponseMsg{URL: url, Raw: raw} }
}

func (g *Graph) clear() {
	g.requestID++
	g.loading = false
	g.built = false
	g.payload = monitor.Payload{}
	g.pointed = false
	g.plot.SetState(chart.State{})
	g.plot.SetEmptyMessage(g.emptyMessage())
}

// setState stores a new chart state and re-resolves the hover for the last
// pointer position, since the projection may have changed under it.
func (g *Graph) setState(s chart.State) {
	g.plot.SetState(s)
	if g.pointed {
		g.plot.SetState(g.plot.HoverAt(g.pointer.col, g.pointer.row))
	}
}

func (g *Graph) hover(col, row int) {
	g.pointer.col, g.pointer.row = col, row
	g.pointed = true
	g.plot.SetState(g.plot.HoverAt(col, row))
}

func (g *Graph) panColumns() int {
	geom, ok := g.plot.Geometry()
	if !ok {
		return 0
	}
	return max(geom.Columns/keyPanDivisor, 1)
}

// pinchCenter is the hovered sample time, else the time under the pointer,
// else the middle of the window.
func (g *Graph) pinchCenter() time.Time {
	state := g.plot.State()
	if row, ok := state.HoveredRow(); ok {
		return row.Time
	}
	if g.pointed {
		if at, ok := g.plot.TimeAt(g.pointer.col); ok {
			return at
		}
	}
	return state.Viewport.Visible.At(0.5)
}

func (g *Graph) openRangeDialog() tea.Cmd {
	model := timerange.New(
		timerange.WithStyles(rangeDialogStylesFromTheme(g.styles)),
		timerange.WithRange(g.controls.Start, g.controls.End),
		timerange.WithLocation(g.loc),
	)
	return func() tea.Msg {
		return dialogs.OpenDialogMsg{Model: model}
	}
}

func (g *Graph) exportCmd() tea.Cmd {
	state := g.plot.State()
	if !state.Loaded() {
		return func() tea.Msg {
			return ErrorMsg{Title: "Export failed", Err: export.ErrNoData}
		}
	}
	opts := export.Options{
		Format:   export.PNG,
		Title:    "Packet loss, " + g.controls.RangeLabel(),
		Location: g.loc,
		Colors:   g.payload.Colors(),
		Labels:   seriesLabels(state.Table.Series),
	}
	dir := g.outDir
	return func() tea.Msg {
		path := filepath.Join(dir, "ethercheck-"+time.Now().Format("20060102-150405")+".png")
		if err := export.WriteFile(path, state, opts); err != nil {
			return ErrorMsg{Title: "Export failed", Err: err}
		}
		return StatusMsg{Text: "exported " + path}
	}
}

func (g *Graph) emptyMessage() string {
	switch {
	case g.loading:
		return g.spinner.View() + " Loading…"
	case !g.built:
		return "Select rooms and press b to build"
	}
	return "No data"
}

func (g *Graph) meta() string {
	sep := g.styles.Muted.Render(" • ")
	entries := []string{
		g.styles.MetricLabel.Render("range: ") + g.styles.MetricValue.Render(g.controls.RangeLabel()),
	}
	state := g.plot.State()
	if !state.Viewport.FullyZoomedOut(chart.MinSpan) {
		entries = append(entries, g.styles.MetricLabel.Render("view: ")+
			g.styles.MetricValue.Render(formatWindow(state.Viewport.Visible, g.loc)))
	}
	if g.loading {
		entries = append(entries, g.spinner.View())
	}
	return strings.Join(entries, sep)
}

func formatWindow(d chart.Domain, loc *time.Location) string {
	start, end := d.Start.In(loc), d.End.In(loc)
	if start.YearDay() == end.YearDay() && start.Year() == end.Year() {
		return fmt.Sprintf("%s–%s", start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s–%s", start.Format("Jan 2 15:04"), end.Format("Jan 2 15:04"))
}

// seriesLabels names numeric room ids "Room N" and the pseudo series by role.
func seriesLabels(ids []string) map[string]string {
	labels := make(map[string]string, len(ids))
	for _, id := range ids {
		labels[id] = SeriesLabel(id)
	}
	return labels
}

// SeriesLabel returns the display name of a series id.
func SeriesLabel(id string) string {
	switch id {
	case monitor.SummaryID:
		return "Summary"
	case monitor.TotalID:
		return "Total"
	}
	if id != "" && !slices.ContainsFunc([]rune(id), func(r rune) bool { return !unicode.IsDigit(r) }) {
		return "Room " + id
	}
	return id
}
