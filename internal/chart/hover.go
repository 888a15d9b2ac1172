package chart

import (
	"math"
	"time"

	"github.com/ethercheck/ethercheck/internal/mathutil"
)

// HoverRadius is the default activation radius in pixels.
const HoverRadius = 50.0

// Point is a position in pixel space, origin at the top-left of the plot.
type Point struct {
	X float64
	Y float64
}

// Projection maps domain/range coordinates onto a plot of Width x Height pixels.
type Projection struct {
	Window Domain
	Range  ValueRange
	Width  float64
	Height float64
}

// X returns the horizontal pixel position of t.
func (p Projection) X(t time.Time) float64 {
	return mathutil.Fraction(float64(t.Sub(p.Window.Start)), 0, float64(p.Window.Span())) * p.Width
}

// Y returns the vertical pixel position of v. Larger values are higher up.
func (p Projection) Y(v float64) float64 {
	return p.Height - mathutil.Fraction(v, p.Range.Low, p.Range.High)*p.Height
}

// Time is the inverse of X.
func (p Projection) Time(x float64) time.Time {
	if p.Width <= 0 {
		return p.Window.Start
	}
	return p.Window.At(x / p.Width)
}

// Hover is the derived hover state.
type Hover struct {
	SeriesID string
	Row      int
	Active   bool
}

// NoHover is the inactive hover state.
var NoHover = Hover{Row: -1}

// Candidate is one series value at the anchor sample.
type Candidate struct {
	SeriesID string
	Value    float64
}

// Nearest picks the candidate closest to pointer at anchor time. It returns
// false when there are no candidates or the closest one is further than radius.
func Nearest(pointer Point, anchor time.Time, candidates []Candidate, p Projection, radius float64) (string, float64, bool) {
	best := ""
	bestDist := math.Inf(1)
	x := p.X(anchor)
	for _, c := range candidates {
		dist := math.Hypot(pointer.X-x, pointer.Y-p.Y(c.Value))
		if dist < bestDist {
			best = c.SeriesID
			bestDist = dist
		}
	}
	if best == "" || bestDist > radius {
		return "", bestDist, false
	}
	return best, bestDist, true
}

// ResolveHover anchors the pointer to the row nearest in time and selects
// the series whose projected value is within radius of the pointer.
func ResolveHover(pointer Point, t Table, ids []string, p Projection, radius float64) Hover {
	if t.Empty() || p.Width <= 0 || p.Height <= 0 {
		return NoHover
	}
	idx, ok := t.Nearest(p.Time(pointer.X), p.Window)
	if !ok {
		return NoHover
	}
	row := t.Rows[idx]
	candidates := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		if v := row.Value(id); v.Valid {
			candidates = append(candidates, Candidate{SeriesID: id, Value: v.V})
		}
	}
	id, _, ok := Nearest(pointer, row.Time, candidates, p, radius)
	if !ok {
		return NoHover
	}
	return Hover{SeriesID: id, Row: idx, Active: true}
}
