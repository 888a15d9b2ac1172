package export

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethercheck/ethercheck/internal/chart"
)

var exportBase = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func sampleState() chart.State {
	var a, b chart.Series
	a.ID, b.ID = "204", "430"
	for i := range 24 {
		at := exportBase.Add(time.Duration(i) * 10 * time.Minute)
		value := chart.Some(math.Mod(float64(i)*3.7, 20))
		if i == 7 {
			value = chart.Absent
		}
		a.Samples = append(a.Samples, chart.Sample{Time: at, Value: value})
		b.Samples = append(b.Samples, chart.Sample{Time: at, Value: chart.Some(float64(i % 5))})
	}
	return chart.Load(chart.Merge([]chart.Series{a, b}))
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		name    string
		path    string
		want    Format
		wantErr bool
	}{
		"explicit png":   {name: "PNG", want: PNG},
		"explicit svg":   {name: "svg", path: "out.png", want: SVG},
		"inferred svg":   {path: "loss.SVG", want: SVG},
		"inferred png":   {path: "loss.out", want: PNG},
		"unknown format": {name: "gif", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFormat(tt.name, tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleState(), Options{
		Width:    800,
		Height:   400,
		Format:   PNG,
		Title:    "Packet loss",
		Location: time.UTC,
		Colors:   map[string]string{"204": "#38bdf8"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "not a PNG")
}

func TestRenderSVGZoomed(t *testing.T) {
	s := sampleState().Zoom(-0.2)
	require.NotEqual(t, chart.DefaultRange, s.Range)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s, Options{Format: SVG, Location: time.UTC}))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "204")
}

func TestRenderNoData(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, Render(&buf, chart.Load(chart.Table{}), Options{}), ErrNoData)

	hidden := sampleState().ToggleSeries("204").ToggleSeries("430")
	require.ErrorIs(t, Render(&buf, hidden, Options{}), ErrNoData)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loss.png")
	require.NoError(t, WriteFile(path, sampleState(), Options{Format: PNG}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSeriesRunsSplitAtGaps(t *testing.T) {
	named, unnamed := seriesRuns(sampleState(), Options{Labels: map[string]string{"430": "Room 430"}})

	require.Len(t, named, 2)
	require.Len(t, unnamed, 1)
	assert.Equal(t, "204", named[0].GetName())
	assert.Equal(t, "Room 430", named[1].GetName())
}

func TestValueTicks(t *testing.T) {
	ticks := valueTicks(chart.ValueRange{Low: 0, High: 100})
	require.Len(t, ticks, 6)
	assert.Equal(t, "0%", ticks[0].Label)
	assert.Equal(t, "100%", ticks[5].Label)
}
