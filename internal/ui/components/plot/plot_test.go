package plot

import (
	"strings"
	"testing"
	"time"

	"github.com/NimbleMarkets/ntcharts/v2/canvas"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"

	"github.com/ethercheck/ethercheck/internal/chart"
)

var plotBase = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

// twoRooms has room 204 flat at 10% and room 430 flat at 90%, sampled every
// 10 minutes for an hour.
func twoRooms() chart.State {
	var a, b chart.Series
	a.ID, b.ID = "204", "430"
	for i := range 7 {
		at := plotBase.Add(time.Duration(i) * 10 * time.Minute)
		a.Samples = append(a.Samples, chart.Sample{Time: at, Value: chart.Some(10)})
		b.Samples = append(b.Samples, chart.Sample{Time: at, Value: chart.Some(90)})
	}
	return chart.Load(chart.Merge([]chart.Series{a, b}))
}

func newPlot(w, h int) Model {
	m := New(WithLocation(time.UTC))
	m.SetSize(w, h)
	m.SetState(twoRooms())
	m.SetSeries(
		map[string]string{"204": "#38bdf8", "430": "#c084fc"},
		map[string]string{"204": "Room 204", "430": "Room 430"},
	)
	return m
}

func TestViewDimensions(t *testing.T) {
	tests := map[string]struct {
		width, height int
		wantEmpty     bool
	}{
		"too small":  {width: 1, height: 1, wantEmpty: true},
		"compact":    {width: 40, height: 6},
		"normal":     {width: 80, height: 20},
		"too narrow": {width: 8, height: 20},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			out := newPlot(tc.width, tc.height).View()
			if tc.wantEmpty {
				if out != "" {
					t.Fatalf("expected empty output, got %q", out)
				}
				return
			}
			lines := strings.Split(out, "\n")
			if len(lines) != tc.height {
				t.Fatalf("expected %d lines, got %d", tc.height, len(lines))
			}
			for i, line := range lines {
				if w := ansi.StringWidth(line); w > tc.width {
					t.Fatalf("line %d: width %d exceeds %d", i, w, tc.width)
				}
			}
		})
	}
}

func TestViewEmptyState(t *testing.T) {
	m := New(WithEmptyMessage("No data"))
	m.SetSize(40, 10)
	if out := ansi.Strip(m.View()); !strings.Contains(out, "No data") {
		t.Fatalf("expected empty message, got %q", out)
	}
	if _, ok := m.Geometry(); ok {
		t.Fatalf("empty plot should have no geometry")
	}
}

func TestViewLegendAndTicks(t *testing.T) {
	m := newPlot(100, 20)
	m.state = m.state.ToggleSeries("430")
	lines := strings.Split(ansi.Strip(m.View()), "\n")

	if !strings.Contains(lines[0], "Room 204") || !strings.Contains(lines[0], "Room 430") {
		t.Fatalf("legend missing series: %q", lines[0])
	}
	last := lines[len(lines)-1]
	for _, want := range []string{"08:00", "08:30", "09:00"} {
		if !strings.Contains(last, want) {
			t.Fatalf("expected tick %q in %q", want, last)
		}
	}
}

func TestGeometry(t *testing.T) {
	m := newPlot(80, 20)
	g, ok := m.Geometry()
	if !ok {
		t.Fatalf("expected geometry")
	}
	if g.Left+g.Columns != 80 {
		t.Fatalf("data area should end at the right edge, got left=%d columns=%d", g.Left, g.Columns)
	}
	// legend row above, axis and tick rows below
	if g.Top != 1 || g.Rows != 17 {
		t.Fatalf("unexpected rows: top=%d rows=%d", g.Top, g.Rows)
	}
	if g.PixelWidth() != float64(g.Columns)*DefaultCellWidth {
		t.Fatalf("unexpected pixel width %v", g.PixelWidth())
	}

	col, row := g.ToCell(g.ToPixel(g.Left+3, g.Top+2))
	if col != g.Left+3 || row != g.Top+2 {
		t.Fatalf("ToCell(ToPixel) = %d,%d", col, row)
	}
	if col, row = g.ToCell(chart.Point{X: -50, Y: 1e6}); col != g.Left || row != g.Top+g.Rows-1 {
		t.Fatalf("ToCell should clamp, got %d,%d", col, row)
	}
}

func TestHoverAt(t *testing.T) {
	m := newPlot(80, 20)
	g, _ := m.Geometry()
	proj := m.Projection(g)
	anchor := plotBase.Add(30 * time.Minute)

	tests := map[string]struct {
		value  float64
		wantID string
	}{
		"near low series":  {value: 10, wantID: "204"},
		"near high series": {value: 90, wantID: "430"},
		"between series":   {value: 50, wantID: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			col, row := g.ToCell(chart.Point{X: proj.X(anchor), Y: proj.Y(tc.value)})
			s := m.HoverAt(col, row)
			if tc.wantID == "" {
				if s.Hover.Active {
					t.Fatalf("expected no hover, got %+v", s.Hover)
				}
				return
			}
			if !s.Hover.Active || s.Hover.SeriesID != tc.wantID {
				t.Fatalf("expected hover on %s, got %+v", tc.wantID, s.Hover)
			}
			if s.Hover.Row != 3 {
				t.Fatalf("expected anchor row 3, got %d", s.Hover.Row)
			}
		})
	}

	if s := m.HoverAt(0, 0); s.Hover.Active {
		t.Fatalf("pointer on the axis labels should clear hover")
	}
}

func TestTooltip(t *testing.T) {
	m := newPlot(80, 20)
	if _, ok := m.Tooltip(); ok {
		t.Fatalf("expected no tooltip without hover")
	}

	g, _ := m.Geometry()
	proj := m.Projection(g)
	col, row := g.ToCell(chart.Point{X: proj.X(plotBase.Add(30 * time.Minute)), Y: proj.Y(10)})
	m.SetState(m.HoverAt(col, row))

	text, ok := m.Tooltip()
	if !ok {
		t.Fatalf("expected tooltip")
	}
	want := "Mar 10 08:30\nRoom 204: 10%\nRoom 430: 90%"
	if text != want {
		t.Fatalf("Tooltip() = %q, want %q", text, want)
	}

	out := ansi.Strip(m.View())
	if !strings.Contains(out, "Room 204: 10%") || !strings.Contains(out, markerRune) {
		t.Fatalf("expected tooltip and marker in view:\n%s", out)
	}
}

func TestPan(t *testing.T) {
	m := newPlot(80, 20)
	m.SetState(m.State().Zoom(-0.2))
	before := m.State().Viewport.Visible

	after := m.Pan(10).Viewport.Visible
	if !after.Start.Before(before.Start) {
		t.Fatalf("dragging right should move the window back in time: %v -> %v", before.Start, after.Start)
	}
	if after.Span() != before.Span() {
		t.Fatalf("pan changed span: %v -> %v", before.Span(), after.Span())
	}
}

func TestTimeAt(t *testing.T) {
	m := newPlot(80, 20)
	g, _ := m.Geometry()
	window := m.State().Viewport.Visible

	first, ok := m.TimeAt(g.Left)
	if !ok || first.Before(window.Start) || first.After(window.At(0.05)) {
		t.Fatalf("TimeAt(left) = %v, %v", first, ok)
	}
	last, ok := m.TimeAt(g.Left + g.Columns - 1)
	if !ok || !last.After(first) || last.After(window.End) {
		t.Fatalf("TimeAt(right) = %v, %v", last, ok)
	}
	if _, ok := m.TimeAt(g.Left - 1); ok {
		t.Fatalf("column on the axis labels should have no time")
	}
	if _, ok := New().TimeAt(10); ok {
		t.Fatalf("empty plot should have no time")
	}
}

func TestClipSegment(t *testing.T) {
	tests := map[string]struct {
		a, b   canvas.Float64Point
		wantOK bool
		wantA  canvas.Float64Point
		wantB  canvas.Float64Point
	}{
		"inside": {
			a: canvas.Float64Point{X: 10, Y: 1}, b: canvas.Float64Point{X: 20, Y: 2},
			wantOK: true, wantA: canvas.Float64Point{X: 10, Y: 1}, wantB: canvas.Float64Point{X: 20, Y: 2},
		},
		"left of window": {
			a: canvas.Float64Point{X: -20, Y: 1}, b: canvas.Float64Point{X: -10, Y: 2},
		},
		"right of window": {
			a: canvas.Float64Point{X: 110, Y: 1}, b: canvas.Float64Point{X: 120, Y: 2},
		},
		"crosses both edges": {
			a: canvas.Float64Point{X: -200, Y: 0}, b: canvas.Float64Point{X: 200, Y: 40},
			wantOK: true, wantA: canvas.Float64Point{X: 0, Y: 20}, wantB: canvas.Float64Point{X: 100, Y: 30},
		},
		"reversed": {
			a: canvas.Float64Point{X: 50, Y: 5}, b: canvas.Float64Point{X: -50, Y: 0},
			wantOK: true, wantA: canvas.Float64Point{X: 0, Y: 2.5}, wantB: canvas.Float64Point{X: 50, Y: 5},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a, b, ok := clipSegment(tc.a, tc.b, 100)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if a != tc.wantA || b != tc.wantB {
				t.Fatalf("clipSegment() = %v, %v, want %v, %v", a, b, tc.wantA, tc.wantB)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := map[string]struct {
		in   float64
		want string
	}{
		"integer": {in: 10, want: "10%"},
		"rounded": {in: 3.456, want: "3.46%"},
		"zero":    {in: 0, want: "0%"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := FormatPercent(tc.in); got != tc.want {
				t.Fatalf("FormatPercent(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestGoldenPlotEmpty(t *testing.T) {
	m := New(WithEmptyMessage("No data"))
	m.SetSize(30, 5)

	output := ansi.Strip(m.View())
	golden.RequireEqual(t, []byte(output))
}

func TestGoldenPlotLegend(t *testing.T) {
	m := newPlot(40, 10)

	output := ansi.Strip(m.legend())
	golden.RequireEqual(t, []byte(output))
}

func TestGoldenPlotTooltip(t *testing.T) {
	m := newPlot(80, 20)
	g, _ := m.Geometry()
	proj := m.Projection(g)
	col, row := g.ToCell(chart.Point{X: proj.X(plotBase.Add(30 * time.Minute)), Y: proj.Y(10)})
	m.SetState(m.HoverAt(col, row))

	box, ok := m.tooltipBox()
	if !ok {
		t.Fatalf("expected tooltip")
	}
	golden.RequireEqual(t, []byte(ansi.Strip(box)))
}
