package chart

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// RawPoint is an unparsed (x, y) pair as delivered by the API.
type RawPoint struct {
	X any
	Y any
}

// RawSeries is a named collection of unparsed points.
type RawSeries struct {
	ID     string
	Points []RawPoint
}

// NormalizeOptions controls Normalize.
type NormalizeOptions struct {
	// Summary collapses all series into one averaged series named SummaryID.
	Summary bool
	// Location is used for timestamps without a zone. Defaults to time.Local.
	Location *time.Location
}

// zone-less layouts, tried in order after RFC 3339
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalize parses raw series and merges them into a table.
// Points with unparsable timestamps are dropped.
func Normalize(raw []RawSeries, opts NormalizeOptions) Table {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	series := make([]Series, 0, len(raw))
	for _, rs := range raw {
		s := Series{ID: rs.ID, Samples: make([]Sample, 0, len(rs.Points))}
		for _, p := range rs.Points {
			t, ok := ParseTime(p.X, loc)
			if !ok {
				continue
			}
			s.Samples = append(s.Samples, Sample{Time: t, Value: ParseValue(p.Y)})
		}
		series = append(series, s)
	}

	table := Merge(series)
	if opts.Summary {
		return Summarize(table)
	}
	return table
}

// Merge aligns series on their timestamps. A later sample of the same series
// at the same instant overwrites the earlier one. Series without samples are
// left out of the result.
func Merge(series []Series) Table {
	byInstant := make(map[time.Time]int)
	var rows []Row
	var ids []string
	seen := make(map[string]bool)

	for _, s := range series {
		for _, sample := range s.Samples {
			key := sample.Time.UTC()
			idx, ok := byInstant[key]
			if !ok {
				idx = len(rows)
				byInstant[key] = idx
				rows = append(rows, Row{Time: sample.Time, Values: make(map[string]Value)})
			}
			rows[idx].Values[s.ID] = sample.Value
			if !seen[s.ID] {
				seen[s.ID] = true
				ids = append(ids, s.ID)
			}
		}
	}

	if len(rows) == 0 {
		return Table{}
	}

	slices.SortFunc(rows, func(a, b Row) int {
		return a.Time.Compare(b.Time)
	})
	return Table{Series: ids, Rows: rows}
}

// Summarize collapses every non-aggregate series into the mean per row.
func Summarize(t Table) Table {
	if t.Empty() {
		return Table{}
	}
	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		var sum float64
		var n int
		for _, id := range t.Series {
			if id == SummaryID {
				continue
			}
			if v := row.Value(id); v.Valid {
				sum += v.V
				n++
			}
		}
		value := Absent
		if n > 0 {
			value = Some(sum / float64(n))
		}
		rows[i] = Row{Time: row.Time, Values: map[string]Value{SummaryID: value}}
	}
	return Table{Series: []string{SummaryID}, Rows: rows}
}

// ParseTime converts an API timestamp into an instant.
// Strings may be RFC 3339, zone-less ISO forms or unix numbers; numbers are
// unix seconds, or milliseconds when large enough.
func ParseTime(x any, loc *time.Location) (time.Time, bool) {
	switch v := x.(type) {
	case string:
		return parseTimeString(strings.TrimSpace(v), loc)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return unixTime(f)
	case float64:
		return unixTime(v)
	case int64:
		return unixTime(float64(v))
	case int:
		return unixTime(float64(v))
	case time.Time:
		return v, !v.IsZero()
	}
	return time.Time{}, false
}

func parseTimeString(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return unixTime(f)
	}
	return time.Time{}, false
}

func unixTime(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return time.Time{}, false
	}
	millis := f >= 1e12
	seconds := f
	if millis {
		seconds = f / 1000
	}
	// Spans between samples must fit in int64 nanoseconds.
	if seconds > maxUnixSeconds {
		return time.Time{}, false
	}
	if millis {
		return time.UnixMilli(int64(f)), true
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)), true
}

const maxUnixSeconds = math.MaxInt64 / 1e9

// ParseValue converts an API reading into a Value.
// Missing, null, non-numeric and non-finite readings are absent.
func ParseValue(y any) Value {
	var f float64
	switch v := y.(type) {
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return Absent
		}
		f = parsed
	case float64:
		f = v
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Absent
		}
		f = parsed
	default:
		return Absent
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Absent
	}
	return Some(f)
}

// RawSeries converts the table back into raw input for Normalize.
// Absent values become nil readings.
func (t Table) RawSeries() []RawSeries {
	extracted := t.ExtractSeries()
	out := make([]RawSeries, 0, len(extracted))
	for _, s := range extracted {
		raw := RawSeries{ID: s.ID, Points: make([]RawPoint, 0, len(s.Samples))}
		for _, sample := range s.Samples {
			var y any
			if sample.Value.Valid {
				y = sample.Value.V
			}
			raw.Points = append(raw.Points, RawPoint{X: sample.Time, Y: y})
		}
		out = append(out, raw)
	}
	return out
}
