package chart

import (
	"slices"
	"time"
)

// State is the complete interactive chart state. Operations return a new
// State and leave the receiver untouched, apart from the shared Table which
// is never modified after Load.
type State struct {
	Table    Table
	Viewport Viewport
	Range    ValueRange
	Hover    Hover
	hidden   []string
	loaded   bool
}

// Load builds the state for a freshly normalized table.
func Load(t Table) State {
	s := State{Table: t, Range: DefaultRange, Hover: NoHover}
	full, ok := FullExtent(t)
	if !ok {
		return s
	}
	s.Viewport = NewViewport(full)
	s.loaded = true
	return s
}

// KeepWindow carries prev's visible window over to a freshly loaded state.
// The window is kept only when prev was zoomed in and the window still lies
// inside the new full extent; otherwise s is returned unchanged.
func (s State) KeepWindow(prev State) State {
	if !s.loaded || !prev.loaded || prev.Viewport.FullyZoomedOut(0) {
		return s
	}
	if !s.Viewport.Full.Covers(prev.Viewport.Visible) {
		return s
	}
	s.Viewport.Visible = prev.Viewport.Visible
	return s.rescale()
}

// Loaded reports whether a full extent exists.
func (s State) Loaded() bool {
	return s.loaded
}

// Rendered returns the ids of series currently drawn.
func (s State) Rendered() []string {
	if len(s.hidden) == 0 {
		return s.Table.Series
	}
	ids := make([]string, 0, len(s.Table.Series))
	for _, id := range s.Table.Series {
		if !slices.Contains(s.hidden, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Hidden reports whether a series is toggled off.
func (s State) Hidden(id string) bool {
	return slices.Contains(s.hidden, id)
}

// ToggleSeries hides or shows one series.
func (s State) ToggleSeries(id string) State {
	if !slices.Contains(s.Table.Series, id) {
		return s
	}
	if idx := slices.Index(s.hidden, id); idx >= 0 {
		s.hidden = slices.Delete(slices.Clone(s.hidden), idx, idx+1)
	} else {
		s.hidden = append(slices.Clone(s.hidden), id)
	}
	s.Hover = NoHover
	return s.rescale()
}

// Zoom applies a wheel or keyboard zoom step.
func (s State) Zoom(factor float64) State {
	if !s.loaded {
		return s
	}
	v, changed := s.Viewport.Zoom(factor)
	if !changed {
		return s
	}
	s.Viewport = v
	return s.rescale()
}

// Pan applies a drag of pixelDelta on a plot width pixels wide.
func (s State) Pan(pixelDelta, width float64) State {
	if !s.loaded {
		return s
	}
	s.Viewport = s.Viewport.Pan(pixelDelta, width)
	return s.rescale()
}

// PinchZoom applies a pinch gesture about center.
func (s State) PinchZoom(ratio float64, center time.Time) State {
	if !s.loaded {
		return s
	}
	v, changed := s.Viewport.PinchZoom(ratio, center)
	if !changed {
		return s
	}
	s.Viewport = v
	return s.rescale()
}

// Reset shows the full extent with the default range.
func (s State) Reset() State {
	if !s.loaded {
		return s
	}
	s.Viewport = s.Viewport.Reset()
	return s.rescale()
}

// Projection maps the current window and range onto a plot of the given pixel size.
func (s State) Projection(width, height float64) Projection {
	return Projection{Window: s.Viewport.Visible, Range: s.Range, Width: width, Height: height}
}

// HoverAt recomputes the hover slot for a pointer position.
func (s State) HoverAt(pointer Point, width, height, radius float64) State {
	if !s.loaded {
		s.Hover = NoHover
		return s
	}
	s.Hover = ResolveHover(pointer, s.Table, s.Rendered(), s.Projection(width, height), radius)
	return s
}

// ClearHover drops the hover target.
func (s State) ClearHover() State {
	s.Hover = NoHover
	return s
}

// HoveredRow returns the anchor row of the active hover.
func (s State) HoveredRow() (Row, bool) {
	if !s.Hover.Active || s.Hover.Row < 0 || s.Hover.Row >= len(s.Table.Rows) {
		return Row{}, false
	}
	return s.Table.Rows[s.Hover.Row], true
}

// Ticks returns the X axis ticks for the visible window.
func (s State) Ticks(loc *time.Location) []time.Time {
	if !s.loaded {
		return nil
	}
	return Ticks(s.Viewport.Visible, loc)
}

func (s State) rescale() State {
	s.Range = AutoScale(s.Table, s.Viewport, s.Rendered(), s.Range)
	return s
}
