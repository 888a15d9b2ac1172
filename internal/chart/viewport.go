package chart

import (
	"math"
	"time"

	"github.com/ethercheck/ethercheck/internal/mathutil"
)

const (
	// MinSpan is the smallest visible window.
	MinSpan = 60 * time.Second
	// ExtentPadding is the share of the data span added to each side of the full extent.
	ExtentPadding = 0.01

	minZoomIntensity = 0.02
	maxZoomIntensity = 0.2
	wheelSensitivity = 0.001
)

// Domain is a closed time interval.
type Domain struct {
	Start time.Time
	End   time.Time
}

// Span returns End - Start.
func (d Domain) Span() time.Duration {
	return d.End.Sub(d.Start)
}

// IsZero reports whether the domain is uninitialized.
func (d Domain) IsZero() bool {
	return d.Start.IsZero() && d.End.IsZero()
}

// Contains reports whether t lies inside the domain.
func (d Domain) Contains(t time.Time) bool {
	return !t.Before(d.Start) && !t.After(d.End)
}

// Covers reports whether o is a sub-interval of d.
func (d Domain) Covers(o Domain) bool {
	return !o.Start.Before(d.Start) && !o.End.After(d.End)
}

// Equal compares both bounds as instants.
func (d Domain) Equal(o Domain) bool {
	return d.Start.Equal(o.Start) && d.End.Equal(o.End)
}

// Shift moves both bounds by delta.
func (d Domain) Shift(delta time.Duration) Domain {
	return Domain{Start: d.Start.Add(delta), End: d.End.Add(delta)}
}

// At returns the instant at the given fraction of the domain.
func (d Domain) At(fraction float64) time.Time {
	return d.Start.Add(time.Duration(math.Round(mathutil.Lerp(0, float64(d.Span()), fraction))))
}

// FullExtent pads the table's time range by ExtentPadding on each side.
// A range narrower than MinSpan is widened to MinSpan around its center.
func FullExtent(t Table) (Domain, bool) {
	first, last, ok := t.Bounds()
	if !ok {
		return Domain{}, false
	}
	span := last.Sub(first)
	pad := time.Duration(math.Round(float64(span) * ExtentPadding))
	d := Domain{Start: first.Add(-pad), End: last.Add(pad)}
	if d.Span() < MinSpan {
		center := first.Add(span / 2)
		d = Domain{Start: center.Add(-MinSpan / 2), End: center.Add(MinSpan / 2)}
	}
	return d, true
}

// Viewport owns the visible window and the immutable full extent.
type Viewport struct {
	Full    Domain
	Visible Domain
}

// NewViewport starts fully zoomed out.
func NewViewport(full Domain) Viewport {
	return Viewport{Full: full, Visible: full}
}

// Reset shows the full extent again.
func (v Viewport) Reset() Viewport {
	v.Visible = v.Full
	return v
}

// ZoomIntensity converts a wheel delta into a zoom step in [0.02, 0.2],
// doubled when a modifier key is held.
func ZoomIntensity(delta float64, modifier bool) float64 {
	intensity := mathutil.Clamp(math.Abs(delta)*wheelSensitivity, minZoomIntensity, maxZoomIntensity)
	if modifier {
		intensity *= 2
	}
	return intensity
}

// WheelFactor returns the signed Zoom factor for a wheel delta.
// Negative deltas (wheel up) zoom in.
func WheelFactor(delta float64, modifier bool) float64 {
	if delta == 0 {
		return 0
	}
	intensity := ZoomIntensity(delta, modifier)
	if delta < 0 {
		return -intensity
	}
	return intensity
}

// Zoom grows (factor > 0) or shrinks (factor < 0) the visible window about
// its center by |factor| of the current span on each side. Shrinking below
// MinSpan is rejected. The second result reports whether the window changed.
func (v Viewport) Zoom(factor float64) (Viewport, bool) {
	if factor == 0 || math.IsNaN(factor) || v.Full.IsZero() {
		return v, false
	}
	delta := time.Duration(math.Round(math.Abs(factor) * float64(v.Visible.Span())))
	next := Domain{Start: v.Visible.Start.Add(-delta), End: v.Visible.End.Add(delta)}
	if factor < 0 {
		next = Domain{Start: v.Visible.Start.Add(delta), End: v.Visible.End.Add(-delta)}
		if next.Span() < MinSpan {
			return v, false
		}
	}
	return v.apply(next)
}

// Pan shifts the window by the time equivalent of pixelDelta on a plot
// width pixels wide. Content follows the pointer, so dragging right moves
// the window back in time. A window pushed past the extent is translated
// back as a whole; the span never changes.
func (v Viewport) Pan(pixelDelta, width float64) Viewport {
	if width <= 0 || pixelDelta == 0 || v.Full.IsZero() {
		return v
	}
	shift := -time.Duration(math.Round(pixelDelta / width * float64(v.Visible.Span())))
	v.Visible = v.fit(v.Visible.Shift(shift))
	return v
}

// PinchZoom divides the span by ratio about center, keeping the center at
// the same relative position. A ratio above one zooms in.
func (v Viewport) PinchZoom(ratio float64, center time.Time) (Viewport, bool) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) || v.Full.IsZero() {
		return v, false
	}
	if center.Before(v.Visible.Start) {
		center = v.Visible.Start
	}
	if center.After(v.Visible.End) {
		center = v.Visible.End
	}
	left := time.Duration(math.Round(float64(center.Sub(v.Visible.Start)) / ratio))
	right := time.Duration(math.Round(float64(v.Visible.End.Sub(center)) / ratio))
	next := Domain{Start: center.Add(-left), End: center.Add(right)}
	if next.Span() < MinSpan {
		return v, false
	}
	return v.apply(next)
}

// FullyZoomedOut reports whether both bounds lie within tolerance of the extent.
func (v Viewport) FullyZoomedOut(tolerance time.Duration) bool {
	return mathutil.Abs(v.Visible.Start.Sub(v.Full.Start)) <= tolerance &&
		mathutil.Abs(v.Visible.End.Sub(v.Full.End)) <= tolerance
}

func (v Viewport) apply(next Domain) (Viewport, bool) {
	next = v.fit(next)
	if next.Equal(v.Visible) {
		return v, false
	}
	v.Visible = next
	return v, true
}

// fit moves d inside the full extent by rigid translation and only cuts it
// down when it is wider than the extent.
func (v Viewport) fit(d Domain) Domain {
	if d.Span() >= v.Full.Span() {
		return v.Full
	}
	if d.Start.Before(v.Full.Start) {
		d = d.Shift(v.Full.Start.Sub(d.Start))
	}
	if d.End.After(v.Full.End) {
		d = d.Shift(v.Full.End.Sub(d.End))
	}
	return d
}
