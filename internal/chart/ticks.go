package chart

import "time"

// tickLadder maps the largest span a step is used for to the step itself.
var tickLadder = []struct {
	maxSpan time.Duration
	step    time.Duration
}{
	{2 * time.Hour, 10 * time.Minute},
	{6 * time.Hour, 30 * time.Minute},
	{12 * time.Hour, time.Hour},
	{24 * time.Hour, 2 * time.Hour},
	{48 * time.Hour, 6 * time.Hour},
}

// TickStep picks the tick granularity for a window span.
func TickStep(span time.Duration) time.Duration {
	for _, rung := range tickLadder {
		if span <= rung.maxSpan {
			return rung.step
		}
	}
	return 24 * time.Hour
}

// Ticks returns calendar-aligned tick instants inside d, ascending.
// Ticks are multiples of the step measured from local midnight of the day
// containing d.Start in loc.
func Ticks(d Domain, loc *time.Location) []time.Time {
	if !validTickDomain(d) {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	step := TickStep(d.Span())
	start := d.Start.In(loc)
	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	offset := d.Start.Sub(midnight)
	n := offset / step
	if offset%step != 0 {
		n++
	}

	var ticks []time.Time
	for t := midnight.Add(n * step); !t.After(d.End); t = t.Add(step) {
		ticks = append(ticks, t)
	}
	return ticks
}

// TickLayout returns the time layout suited to label ticks of d.
func TickLayout(d Domain, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	if TickStep(d.Span()) >= 24*time.Hour {
		return "Jan 2"
	}
	start := d.Start.In(loc)
	end := d.End.In(loc)
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return "15:04"
	}
	return "Jan 2 15:04"
}

func validTickDomain(d Domain) bool {
	if d.Start.IsZero() || d.End.IsZero() {
		return false
	}
	if d.Start.UnixNano() == 0 || d.End.UnixNano() == 0 {
		return false
	}
	return d.Start.Before(d.End)
}
