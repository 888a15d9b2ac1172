package chart

import (
	"math"
	"testing"
	"time"
)

// hoverFixture projects 100s onto 100px and [0,100] onto 100px, so one
// second is one pixel and one unit is one pixel.
func hoverFixture() (Table, Projection) {
	table := Merge([]Series{
		{ID: "A", Samples: []Sample{{Time: testBase.Add(50 * time.Second), Value: Some(50)}}},
		{ID: "B", Samples: []Sample{{Time: testBase.Add(50 * time.Second), Value: Some(10)}}},
	})
	p := Projection{
		Window: Domain{Start: testBase, End: testBase.Add(100 * time.Second)},
		Range:  DefaultRange,
		Width:  100,
		Height: 100,
	}
	return table, p
}

func TestProjection(t *testing.T) {
	_, p := hoverFixture()

	if x := p.X(testBase.Add(25 * time.Second)); math.Abs(x-25) > 1e-9 {
		t.Fatalf("X = %v, want 25", x)
	}
	if y := p.Y(100); y != 0 {
		t.Fatalf("Y(max) = %v, want 0", y)
	}
	if y := p.Y(0); y != 100 {
		t.Fatalf("Y(0) = %v, want 100", y)
	}
	if at := p.Time(75); !at.Equal(testBase.Add(75 * time.Second)) {
		t.Fatalf("Time(75) = %v", at)
	}
}

func TestResolveHoverRadius(t *testing.T) {
	table, p := hoverFixture()

	tests := map[string]struct {
		pointer Point
		want    string
	}{
		"within radius":     {pointer: Point{X: 50, Y: 60}, want: "A"},
		"nearest wins":      {pointer: Point{X: 50, Y: 85}, want: "B"},
		"beyond radius":     {pointer: Point{X: 50, Y: -10}, want: ""},
		"horizontal offset": {pointer: Point{X: 50 + 45, Y: 50}, want: "A"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ResolveHover(tt.pointer, table, []string{"A", "B"}, p, HoverRadius)
			if got.SeriesID != tt.want || got.Active != (tt.want != "") {
				t.Fatalf("hover = %+v, want %q", got, tt.want)
			}
		})
	}
}

func TestNearestDistance(t *testing.T) {
	_, p := hoverFixture()
	anchor := testBase.Add(50 * time.Second)
	candidates := []Candidate{{SeriesID: "A", Value: 50}}

	if _, _, ok := Nearest(Point{X: 50, Y: 110}, anchor, candidates, p, HoverRadius); ok {
		t.Fatalf("distance 60 should not hover")
	}
	id, dist, ok := Nearest(Point{X: 50, Y: 60}, anchor, candidates, p, HoverRadius)
	if !ok || id != "A" || math.Abs(dist-10) > 1e-9 {
		t.Fatalf("distance 10: got %q %v %v", id, dist, ok)
	}
	if _, _, ok := Nearest(Point{}, anchor, nil, p, HoverRadius); ok {
		t.Fatalf("no candidates should not hover")
	}
}

func TestResolveHoverSkipsAbsentAndHidden(t *testing.T) {
	table := Merge([]Series{
		{ID: "A", Samples: []Sample{{Time: testBase.Add(50 * time.Second), Value: Absent}}},
		{ID: "B", Samples: []Sample{{Time: testBase.Add(50 * time.Second), Value: Some(50)}}},
	})
	_, p := hoverFixture()

	if got := ResolveHover(Point{X: 50, Y: 50}, table, []string{"A", "B"}, p, HoverRadius); got.SeriesID != "B" {
		t.Fatalf("hover = %+v, want B", got)
	}
	if got := ResolveHover(Point{X: 50, Y: 50}, table, []string{"A"}, p, HoverRadius); got.Active {
		t.Fatalf("absent value should not hover, got %+v", got)
	}
}

func TestResolveHoverAnchorTie(t *testing.T) {
	table := Merge([]Series{{ID: "A", Samples: []Sample{
		{Time: testBase.Add(40 * time.Second), Value: Some(50)},
		{Time: testBase.Add(60 * time.Second), Value: Some(50)},
	}}})
	_, p := hoverFixture()

	got := ResolveHover(Point{X: 50, Y: 50}, table, []string{"A"}, p, HoverRadius)
	if !got.Active || got.Row != 0 {
		t.Fatalf("hover = %+v, want row 0", got)
	}
}

func TestResolveHoverDegenerate(t *testing.T) {
	table, p := hoverFixture()

	if got := ResolveHover(Point{X: 50, Y: 50}, Table{}, []string{"A"}, p, HoverRadius); got != NoHover {
		t.Fatalf("empty table: %+v", got)
	}
	p.Width = 0
	if got := ResolveHover(Point{X: 50, Y: 50}, table, []string{"A"}, p, HoverRadius); got != NoHover {
		t.Fatalf("zero width: %+v", got)
	}
}
