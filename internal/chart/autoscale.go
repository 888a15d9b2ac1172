package chart

import (
	"math"
	"time"

	"github.com/ethercheck/ethercheck/internal/mathutil"
)

const (
	// ZoomedOutTolerance is how close the window must be to the full extent
	// on both sides to count as fully zoomed out.
	ZoomedOutTolerance = 60 * time.Second

	rangeHeadroom = 1.1
	minRangeSpan  = 5.0
	maxRangeValue = 100.0
)

// ValueRange is the value axis interval.
type ValueRange struct {
	Low  float64
	High float64
}

// DefaultRange is used when fully zoomed out.
var DefaultRange = ValueRange{Low: 0, High: 100}

// Span returns High - Low.
func (r ValueRange) Span() float64 {
	return r.High - r.Low
}

// AutoScale derives the value range from the rows inside the visible window.
// When the window is within ZoomedOutTolerance of the full extent the default
// range is used. Without any present value in view prev is returned.
func AutoScale(t Table, v Viewport, ids []string, prev ValueRange) ValueRange {
	if v.FullyZoomedOut(ZoomedOutTolerance) {
		return DefaultRange
	}

	from, to := t.RowsBetween(v.Visible)
	peak := math.Inf(-1)
	for _, row := range t.Rows[from:to] {
		for _, id := range ids {
			if value := row.Value(id); value.Valid && value.V > peak {
				peak = value.V
			}
		}
	}
	if math.IsInf(peak, -1) {
		return prev
	}

	high := mathutil.Clamp(math.Ceil(peak*rangeHeadroom), minRangeSpan, maxRangeValue)
	return ValueRange{Low: 0, High: high}
}
