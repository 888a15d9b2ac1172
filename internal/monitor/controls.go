package monitor

import (
	"slices"
	"time"
)

// Controls is the control panel state: known rooms, the room selection and
// the requested time range.
type Controls struct {
	Rooms     []string
	Selection Selection
	// Preset is the key of the quick range in use. Empty means Start and End
	// were entered by hand.
	Preset string
	Start  time.Time
	End    time.Time
}

// NewControls returns controls for the default preset anchored at now.
func NewControls(now time.Time) Controls {
	c := Controls{Selection: DefaultSelection()}
	c, _ = c.WithPreset(DefaultPreset, now)
	return c
}

// WithRooms replaces the known room list.
func (c Controls) WithRooms(rooms []string) Controls {
	c.Rooms = slices.Clone(rooms)
	return c
}

// WithPreset applies a quick range at now.
func (c Controls) WithPreset(key string, now time.Time) (Controls, error) {
	p, err := PresetByKey(key)
	if err != nil {
		return c, err
	}
	c.Preset = p.Key
	c.Start, c.End = p.Range(now)
	return c, nil
}

// WithRange sets a hand-entered range.
func (c Controls) WithRange(start, end time.Time) Controls {
	c.Preset = ""
	c.Start, c.End = start, end
	return c
}

// Refreshed re-anchors a preset range at now. Custom ranges are kept as is.
func (c Controls) Refreshed(now time.Time) Controls {
	if c.Preset == "" {
		return c
	}
	next, err := c.WithPreset(c.Preset, now)
	if err != nil {
		return c
	}
	return next
}

// Query builds the graph request for the current state.
func (c Controls) Query() (Query, error) {
	rooms, err := c.Selection.RoomsParam(c.Rooms)
	if err != nil {
		return Query{}, err
	}
	q := Query{Start: c.Start, End: c.End, Rooms: rooms}
	if err := q.Validate(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// RangeLabel describes the time range for titles.
func (c Controls) RangeLabel() string {
	if p, err := PresetByKey(c.Preset); err == nil {
		return p.Label
	}
	return FormatAPITime(c.Start) + " → " + FormatAPITime(c.End)
}
