// Package plot renders the interactive packet-loss chart in the terminal.
package plot

import (
	"math"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/NimbleMarkets/ntcharts/v2/canvas"
	"github.com/NimbleMarkets/ntcharts/v2/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/v2/linechart"

	"github.com/ethercheck/ethercheck/internal/chart"
	"github.com/ethercheck/ethercheck/internal/mathutil"
	"github.com/ethercheck/ethercheck/internal/ui/charts"
	"github.com/ethercheck/ethercheck/internal/ui/components/overlay"
)

// Default terminal cell size in pixels.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

const (
	markerRune   = "●"
	legendRune   = "●"
	minPlotWidth = 12
	minPlotRows  = 4
)

// Styles holds the visual styles for the plot.
type Styles struct {
	Axis    lipgloss.Style // Style for chart axes
	Label   lipgloss.Style // Style for axis labels
	Muted   lipgloss.Style // Style for hidden series and the empty message
	Tooltip lipgloss.Style // Style for the tooltip box
	Title   lipgloss.Style // Style for the tooltip time line
}

// DefaultStyles returns sensible default styles.
func DefaultStyles() Styles {
	return Styles{
		Axis:    lipgloss.NewStyle(),
		Label:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Faint(true),
		Tooltip: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Title:   lipgloss.NewStyle().Bold(true),
	}
}

// Model holds the plot state.
type Model struct {
	styles       Styles
	width        int
	height       int
	state        chart.State
	colors       map[string]string
	labels       map[string]string
	loc          *time.Location
	cellWidth    float64
	cellHeight   float64
	emptyMessage string
}

// Option is a functional option for configuring the plot.
type Option func(*Model)

// New creates a new plot model with functional options.
func New(opts ...Option) Model {
	m := Model{
		styles:       DefaultStyles(),
		loc:          time.Local,
		cellWidth:    DefaultCellWidth,
		cellHeight:   DefaultCellHeight,
		emptyMessage: "No data",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets custom styles for the plot.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithLocation sets the time zone used for tick and tooltip labels.
func WithLocation(loc *time.Location) Option {
	return func(m *Model) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithCellSize sets the pixel size of one terminal cell.
func WithCellSize(w, h float64) Option {
	return func(m *Model) {
		if w > 0 && h > 0 {
			m.cellWidth, m.cellHeight = w, h
		}
	}
}

// WithEmptyMessage sets the message to display when there's no data.
func WithEmptyMessage(msg string) Option {
	return func(m *Model) { m.emptyMessage = msg }
}

// SetStyles updates the plot styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize updates the plot dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetState replaces the chart state.
func (m *Model) SetState(s chart.State) {
	m.state = s
}

// SetSeries updates series colors and display names.
func (m *Model) SetSeries(colors, labels map[string]string) {
	m.colors = colors
	m.labels = labels
}

// SetEmptyMessage updates the empty state message.
func (m *Model) SetEmptyMessage(msg string) {
	m.emptyMessage = msg
}

// State returns the chart state.
func (m Model) State() chart.State {
	return m.state
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// Label returns the display name of a series.
func (m Model) Label(id string) string {
	if label, ok := m.labels[id]; ok && label != "" {
		return label
	}
	return id
}

// Geometry describes where the data area sits inside the rendered plot.
type Geometry struct {
	Left       int // first column of the data area
	Top        int // first row of the data area
	Columns    int
	Rows       int
	CellWidth  float64
	CellHeight float64
}

// PixelWidth is the data area width in pixels.
func (g Geometry) PixelWidth() float64 {
	return float64(g.Columns) * g.CellWidth
}

// PixelHeight is the data area height in pixels.
func (g Geometry) PixelHeight() float64 {
	return float64(g.Rows) * g.CellHeight
}

// Contains reports whether a cell is inside the data area.
func (g Geometry) Contains(col, row int) bool {
	return col >= g.Left && col < g.Left+g.Columns && row >= g.Top && row < g.Top+g.Rows
}

// ToPixel maps the center of a cell to data area pixels.
func (g Geometry) ToPixel(col, row int) chart.Point {
	return chart.Point{
		X: (float64(col-g.Left) + 0.5) * g.CellWidth,
		Y: (float64(row-g.Top) + 0.5) * g.CellHeight,
	}
}

// ToCell maps data area pixels back to a cell, clamped to the area.
func (g Geometry) ToCell(p chart.Point) (int, int) {
	col := g.Left + int(math.Floor(p.X/g.CellWidth))
	row := g.Top + int(math.Floor(p.Y/g.CellHeight))
	return mathutil.Clamp(col, g.Left, g.Left+g.Columns-1), mathutil.Clamp(row, g.Top, g.Top+g.Rows-1)
}

// Projection maps the chart window onto the data area.
func (m Model) Projection(g Geometry) chart.Projection {
	return m.state.Projection(g.PixelWidth(), g.PixelHeight())
}

// Geometry returns the data area layout. It reports false when nothing can
// be drawn.
func (m Model) Geometry() (Geometry, bool) {
	if !m.state.Loaded() || m.width < minPlotWidth {
		return Geometry{}, false
	}
	lc, top, ok := m.lineChart()
	if !ok {
		return Geometry{}, false
	}
	return m.geometry(&lc, top), true
}

func (m Model) geometry(lc *linechart.Model, top int) Geometry {
	return Geometry{
		Left:       lc.Origin().X + 1,
		Top:        top,
		Columns:    lc.GraphWidth(),
		Rows:       lc.GraphHeight(),
		CellWidth:  m.cellWidth,
		CellHeight: m.cellHeight,
	}
}

// HoverAt resolves the hover target for a pointer at a cell. A pointer
// outside the data area clears the hover.
func (m Model) HoverAt(col, row int) chart.State {
	g, ok := m.Geometry()
	if !ok || !g.Contains(col, row) {
		return m.state.ClearHover()
	}
	return m.state.HoverAt(g.ToPixel(col, row), g.PixelWidth(), g.PixelHeight(), chart.HoverRadius)
}

// Pan drags the window by a number of columns.
func (m Model) Pan(columns int) chart.State {
	g, ok := m.Geometry()
	if !ok {
		return m.state
	}
	return m.state.Pan(float64(columns)*g.CellWidth, g.PixelWidth())
}

// TimeAt returns the instant under a column.
func (m Model) TimeAt(col int) (time.Time, bool) {
	g, ok := m.Geometry()
	if !ok || col < g.Left || col >= g.Left+g.Columns {
		return time.Time{}, false
	}
	p := m.Projection(g)
	return p.Time(g.ToPixel(col, g.Top).X), true
}

// Tooltip returns the plain-text tooltip for the current hover.
func (m Model) Tooltip() (string, bool) {
	lines, ok := m.tooltipLines()
	if !ok {
		return "", false
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.text
	}
	return strings.Join(out, "\n"), true
}

// View renders the plot to a string.
func (m Model) View() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}
	if !m.state.Loaded() || m.width < minPlotWidth {
		return charts.RenderCentered(m.width, m.height, m.styles.Muted.Render(m.emptyMessage))
	}
	lc, top, ok := m.lineChart()
	if !ok {
		return charts.RenderCentered(m.width, m.height, m.styles.Muted.Render(m.emptyMessage))
	}
	lc.DrawXYAxisAndLabel()
	g := m.geometry(&lc, top)
	proj := m.Projection(g)

	for _, id := range m.state.Rendered() {
		m.drawSeries(&lc, id, proj)
	}
	ticks := m.tickMarks(&lc, g, proj)
	marker, hovered := m.drawMarker(&lc, g, proj)

	lines := strings.Split(lc.View(), "\n")
	if len(lines) > 0 {
		lines[len(lines)-1] = m.styles.Label.Render(charts.LabelLine(m.width, ticks))
	}
	if top > 0 {
		lines = append([]string{m.legend()}, lines...)
	}
	view := strings.Join(lines, "\n")

	if hovered {
		view = m.placeTooltip(view, g, marker)
	}
	return view
}

// lineChart builds the axes for the current range. The second result is the
// number of rows reserved above the chart for the legend.
func (m Model) lineChart() (linechart.Model, int, bool) {
	top := 0
	if m.height >= minPlotRows+3 {
		top = 1
	}
	chartHeight := m.height - top
	if chartHeight < minPlotRows {
		return linechart.Model{}, 0, false
	}

	span := m.state.Viewport.Visible.Span().Seconds()
	r := m.state.Range
	yStep := max((chartHeight-2)/4, 1)
	lc := linechart.New(
		m.width, chartHeight,
		0, span,
		r.Low, r.High,
		linechart.WithXYSteps(1, yStep),
		linechart.WithStyles(m.styles.Axis, m.styles.Label, m.styles.Label),
		linechart.WithXLabelFormatter(func(_ int, _ float64) string { return "" }),
		linechart.WithYLabelFormatter(func(_ int, v float64) string {
			return strconv.Itoa(int(math.Round(v))) + "%"
		}),
	)
	if lc.GraphWidth() < 2 || lc.GraphHeight() < 1 {
		return linechart.Model{}, 0, false
	}
	return lc, top, true
}

// drawSeries draws one series as braille segments clipped to the window.
func (m Model) drawSeries(lc *linechart.Model, id string, proj chart.Projection) {
	window := proj.Window
	span := window.Span().Seconds()
	r := proj.Range
	bGrid := graph.NewBrailleGrid(lc.GraphWidth(), lc.GraphHeight(), 0, span, r.Low, r.High)

	point := func(s chart.Sample) canvas.Float64Point {
		return canvas.Float64Point{X: s.Time.Sub(window.Start).Seconds(), Y: s.Value.V}
	}
	clampY := func(p canvas.Float64Point) canvas.Float64Point {
		p.Y = mathutil.Clamp(p.Y, r.Low, r.High)
		return p
	}

	drawn := false
	for _, run := range m.state.Table.Runs(id, 0, len(m.state.Table.Rows)) {
		if len(run) == 1 {
			if window.Contains(run[0].Time) {
				bGrid.Set(bGrid.GridPoint(clampY(point(run[0]))))
				drawn = true
			}
			continue
		}
		for i := 1; i < len(run); i++ {
			a, b, ok := clipSegment(point(run[i-1]), point(run[i]), span)
			if !ok {
				continue
			}
			for _, p := range graph.GetLinePoints(bGrid.GridPoint(clampY(a)), bGrid.GridPoint(clampY(b))) {
				bGrid.Set(p)
			}
			drawn = true
		}
	}
	if !drawn {
		return
	}
	style := m.seriesStyle(id)
	graph.DrawBraillePatterns(&lc.Canvas, canvas.Point{X: lc.Origin().X + 1, Y: 0}, bGrid.BraillePatterns(), style)
}

// clipSegment cuts a segment to 0 <= x <= maxX, interpolating the value at
// the cut. It reports false when no part of the segment is visible.
func clipSegment(a, b canvas.Float64Point, maxX float64) (canvas.Float64Point, canvas.Float64Point, bool) {
	if a.X > b.X {
		a, b = b, a
	}
	if b.X < 0 || a.X > maxX {
		return a, b, false
	}
	if a.X == b.X {
		return a, b, true
	}
	at := func(x float64) canvas.Float64Point {
		t := (x - a.X) / (b.X - a.X)
		return canvas.Float64Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
	}
	if a.X < 0 {
		a = at(0)
	}
	if b.X > maxX {
		b = at(maxX)
	}
	return a, b, true
}

// tickMarks notches the X axis at every tick and returns the tick labels.
func (m Model) tickMarks(lc *linechart.Model, g Geometry, proj chart.Projection) []charts.Mark {
	window := proj.Window
	layout := chart.TickLayout(window, m.loc)
	var marks []charts.Mark
	for _, tick := range m.state.Ticks(m.loc) {
		col := g.Left + int(math.Floor(proj.X(tick)/g.CellWidth))
		if col < g.Left || col >= g.Left+g.Columns {
			continue
		}
		lc.Canvas.SetStringWithStyle(canvas.Point{X: col, Y: lc.Origin().Y}, "┬", m.styles.Axis)
		marks = append(marks, charts.Mark{Col: col, Text: tick.In(m.loc).Format(layout)})
	}
	return marks
}

// drawMarker highlights the hovered value. It returns the marker cell in
// view coordinates.
func (m Model) drawMarker(lc *linechart.Model, g Geometry, proj chart.Projection) (canvas.Point, bool) {
	row, ok := m.state.HoveredRow()
	if !ok {
		return canvas.Point{}, false
	}
	v := row.Value(m.state.Hover.SeriesID)
	if !v.Valid {
		return canvas.Point{}, false
	}
	col, line := g.ToCell(chart.Point{X: proj.X(row.Time), Y: proj.Y(v.V)})
	// the canvas has no legend row
	lc.Canvas.SetStringWithStyle(canvas.Point{X: col, Y: line - g.Top}, markerRune, m.seriesStyle(m.state.Hover.SeriesID).Bold(true))
	return canvas.Point{X: col, Y: line}, true
}

type tooltipLine struct {
	text  string
	id    string
	title bool
}

func (m Model) tooltipLines() ([]tooltipLine, bool) {
	row, ok := m.state.HoveredRow()
	if !ok {
		return nil, false
	}
	lines := []tooltipLine{{text: row.Time.In(m.loc).Format("Jan 2 15:04"), title: true}}
	for _, id := range m.state.Rendered() {
		v := row.Value(id)
		if !v.Valid {
			continue
		}
		lines = append(lines, tooltipLine{text: m.Label(id) + ": " + FormatPercent(v.V), id: id})
	}
	return lines, len(lines) > 1
}

func (m Model) placeTooltip(view string, g Geometry, marker canvas.Point) string {
	box, ok := m.tooltipBox()
	if !ok {
		return view
	}
	boxWidth, boxHeight := overlay.Size(box)
	if boxWidth > m.width || boxHeight > m.height {
		return view
	}

	col := marker.X + 2
	if col+boxWidth > g.Left+g.Columns {
		col = marker.X - 1 - boxWidth
	}
	col = mathutil.Clamp(col, 0, m.width-boxWidth)
	row := mathutil.Clamp(marker.Y-boxHeight/2, 0, m.height-boxHeight)
	return overlay.Place(view, box, row, col)
}

// tooltipBox renders the bordered tooltip with the hovered series in bold.
func (m Model) tooltipBox() (string, bool) {
	lines, ok := m.tooltipLines()
	if !ok {
		return "", false
	}
	rendered := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case line.title:
			rendered[i] = m.styles.Title.Render(line.text)
		case line.id == m.state.Hover.SeriesID:
			rendered[i] = m.seriesStyle(line.id).Bold(true).Render(legendRune + " " + line.text)
		default:
			rendered[i] = m.seriesStyle(line.id).Render(legendRune) + " " + line.text
		}
	}
	return m.styles.Tooltip.Render(strings.Join(rendered, "\n")), true
}

func (m Model) legend() string {
	items := make([]string, 0, len(m.state.Table.Series))
	for _, id := range m.state.Table.Series {
		if m.state.Hidden(id) {
			items = append(items, m.styles.Muted.Render(legendRune+" "+m.Label(id)))
			continue
		}
		items = append(items, m.seriesStyle(id).Render(legendRune)+" "+m.styles.Label.Render(m.Label(id)))
	}
	return charts.RenderCentered(m.width, 1, strings.Join(items, "  "))
}

func (m Model) seriesStyle(id string) lipgloss.Style {
	if hex, ok := m.colors[id]; ok && hex != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return m.styles.Label
}

// FormatPercent formats a loss value the way the tooltip shows it.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + "%"
}
