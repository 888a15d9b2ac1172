// Package chart holds the headless charting core: series normalization,
// viewport management, axis ticks, value auto-scaling and hover resolution.
//
// Every operation is a pure function of its inputs. The terminal renderer and
// the PNG exporter only read the results.
package chart

import (
	"slices"
	"time"
)

// SummaryID is the identifier of the synthetic series produced in summary mode.
const SummaryID = "summary"

// Value is a reading that may be absent.
type Value struct {
	V     float64
	Valid bool
}

// Some returns a present value.
func Some(v float64) Value {
	return Value{V: v, Valid: true}
}

// Absent is the zero Value.
var Absent = Value{}

// Sample is a single reading of one series.
type Sample struct {
	Time  time.Time
	Value Value
}

// Series is an ordered sequence of samples with unique timestamps.
type Series struct {
	ID      string
	Samples []Sample
}

// Row is one timestamp of the merged table.
type Row struct {
	Time   time.Time
	Values map[string]Value
}

// Value returns the value of the series at this row.
func (r Row) Value(id string) Value {
	if r.Values == nil {
		return Absent
	}
	return r.Values[id]
}

// Table is the time-aligned result of merging series.
// Rows are unique by time and strictly increasing.
type Table struct {
	Series []string
	Rows   []Row
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Bounds returns the first and last row time.
func (t Table) Bounds() (time.Time, time.Time, bool) {
	if len(t.Rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return t.Rows[0].Time, t.Rows[len(t.Rows)-1].Time, true
}

// ExtractSeries splits the table back into one series per id.
// Rows where the series has no entry are skipped; explicit absent entries are kept.
func (t Table) ExtractSeries() []Series {
	out := make([]Series, 0, len(t.Series))
	for _, id := range t.Series {
		series := Series{ID: id}
		for _, row := range t.Rows {
			value, ok := row.Values[id]
			if !ok {
				continue
			}
			series.Samples = append(series.Samples, Sample{Time: row.Time, Value: value})
		}
		out = append(out, series)
	}
	return out
}

// RowsBetween returns the index range [from, to) of rows inside the domain.
func (t Table) RowsBetween(d Domain) (int, int) {
	from, _ := slices.BinarySearchFunc(t.Rows, d.Start, func(r Row, target time.Time) int {
		return r.Time.Compare(target)
	})
	to := from
	for to < len(t.Rows) && !t.Rows[to].Time.After(d.End) {
		to++
	}
	return from, to
}

// Nearest returns the index of the row closest in time to at, restricted to
// rows inside the domain. Ties resolve to the earlier row.
func (t Table) Nearest(at time.Time, d Domain) (int, bool) {
	from, to := t.RowsBetween(d)
	if from >= to {
		return -1, false
	}
	idx, _ := slices.BinarySearchFunc(t.Rows[from:to], at, func(r Row, target time.Time) int {
		return r.Time.Compare(target)
	})
	idx += from
	switch {
	case idx >= to:
		return to - 1, true
	case idx == from:
		return from, true
	}
	before := at.Sub(t.Rows[idx-1].Time)
	after := t.Rows[idx].Time.Sub(at)
	if before <= after {
		return idx - 1, true
	}
	return idx, true
}

// Runs returns the drawable stretches of series id within rows [from, to).
// Rows without an entry for the series are stepped over; an explicit absent
// value ends the current run.
func (t Table) Runs(id string, from, to int) [][]Sample {
	from = max(from, 0)
	to = min(to, len(t.Rows))

	var runs [][]Sample
	var current []Sample
	for _, row := range t.Rows[from:max(from, to)] {
		value, ok := row.Values[id]
		if !ok {
			continue
		}
		if !value.Valid {
			if len(current) > 0 {
				runs = append(runs, current)
			}
			current = nil
			continue
		}
		current = append(current, Sample{Time: row.Time, Value: value})
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}
	return runs
}
