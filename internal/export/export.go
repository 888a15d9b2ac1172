// Package export renders the chart state to PNG or SVG images.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ethercheck/ethercheck/internal/chart"
)

// Format is an output image format.
type Format string

const (
	// PNG renders a raster image.
	PNG Format = "png"
	// SVG renders a vector image.
	SVG Format = "svg"
)

const (
	defaultWidth  = 1200
	defaultHeight = 500
	yTickCount    = 5
)

// ErrNoData is returned when the state has nothing to draw.
var ErrNoData = errors.New("no data to export")

// Options configures Render.
type Options struct {
	Width    int
	Height   int
	Format   Format
	Title    string
	Location *time.Location
	// Colors maps series ids to hex colors.
	Colors map[string]string
	// Labels maps series ids to legend names.
	Labels map[string]string
}

// ParseFormat reads a format name. An empty name infers the format from path.
func ParseFormat(name, path string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "png"
		if strings.HasSuffix(strings.ToLower(path), ".svg") {
			name = "svg"
		}
	}
	switch Format(name) {
	case PNG, SVG:
		return Format(name), nil
	}
	return "", fmt.Errorf("unknown format %q (want png or svg)", name)
}

// Render writes the visible window of s as an image.
func Render(w io.Writer, s chart.State, opts Options) error {
	if !s.Loaded() {
		return ErrNoData
	}
	graph, err := build(s, opts)
	if err != nil {
		return err
	}

	provider := gochart.PNG
	if opts.Format == SVG {
		provider = gochart.SVG
	}
	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// WriteFile renders into path, replacing any existing file.
func WriteFile(path string, s chart.State, opts Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, s, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func build(s chart.State, opts Options) (gochart.Chart, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	window := s.Viewport.Visible
	named, unnamed := seriesRuns(s, opts)
	if len(named) == 0 {
		return gochart.Chart{}, ErrNoData
	}

	layout := chart.TickLayout(window, loc)
	xTicks := make([]gochart.Tick, 0, 16)
	for _, tick := range s.Ticks(loc) {
		xTicks = append(xTicks, gochart.Tick{
			Value: gochart.TimeToFloat64(tick),
			Label: tick.In(loc).Format(layout),
		})
	}

	graph := gochart.Chart{
		Title:  opts.Title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(window.Start),
				Max: gochart.TimeToFloat64(window.End),
			},
			Ticks: xTicks,
			GridMajorStyle: gochart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1,
			},
		},
		YAxis: gochart.YAxis{
			Name:  "Packet loss, %",
			Range: &gochart.ContinuousRange{Min: s.Range.Low, Max: s.Range.High},
			Ticks: valueTicks(s.Range),
			GridMajorStyle: gochart.Style{
				StrokeColor: drawing.Color{R: 220, G: 220, B: 220, A: 255},
				StrokeWidth: 1,
			},
		},
	}
	graph.Series = append(append(graph.Series, named...), unnamed...)

	legendSource := graph
	legendSource.Series = named
	graph.Elements = []gochart.Renderable{gochart.Legend(&legendSource)}
	return graph, nil
}

// seriesRuns splits every rendered series at absent values so gaps are not
// bridged. The first run of a series carries its legend name.
func seriesRuns(s chart.State, opts Options) ([]gochart.Series, []gochart.Series) {
	from, to := s.Table.RowsBetween(s.Viewport.Visible)

	var named, unnamed []gochart.Series
	for _, id := range s.Rendered() {
		style := seriesStyle(opts.Colors[id])
		name := id
		if label, ok := opts.Labels[id]; ok && label != "" {
			name = label
		}

		var runs []gochart.TimeSeries
		for _, samples := range s.Table.Runs(id, from, to) {
			var run gochart.TimeSeries
			for _, sample := range samples {
				run.XValues = append(run.XValues, sample.Time)
				run.YValues = append(run.YValues, sample.Value.V)
			}
			runs = append(runs, run)
		}

		for i, run := range runs {
			run.Style = style
			if len(run.XValues) == 1 {
				run.Style.DotWidth = 2
				run.Style.DotColor = style.StrokeColor
			}
			if i == 0 {
				run.Name = name
				named = append(named, run)
				continue
			}
			unnamed = append(unnamed, run)
		}
	}
	return named, unnamed
}

func seriesStyle(hex string) gochart.Style {
	style := gochart.Style{StrokeWidth: 2}
	if hex = strings.TrimPrefix(strings.TrimSpace(hex), "#"); hex != "" {
		style.StrokeColor = drawing.ColorFromHex(hex)
	}
	return style
}

func valueTicks(r chart.ValueRange) []gochart.Tick {
	ticks := make([]gochart.Tick, 0, yTickCount+1)
	step := r.Span() / yTickCount
	for i := range yTickCount + 1 {
		v := r.Low + float64(i)*step
		ticks = append(ticks, gochart.Tick{Value: v, Label: fmt.Sprintf("%.0f%%", v)})
	}
	return ticks
}
