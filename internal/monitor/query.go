package monitor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// APITimeLayout is the minute-precision, zone-less format the API expects.
const APITimeLayout = "2006-01-02 15:04"

// Query describes one graph request.
type Query struct {
	Start time.Time
	End   time.Time
	// Rooms is the rooms parameter: comma-separated ids or "total".
	Rooms string
}

// Validate checks the query before it is sent.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Rooms) == "" {
		return ErrNoRooms
	}
	if q.Start.IsZero() || q.End.IsZero() {
		return errors.New("start and end are required")
	}
	if !q.Start.Before(q.End) {
		return fmt.Errorf("start %s is not before end %s", FormatAPITime(q.Start), FormatAPITime(q.End))
	}
	return nil
}

// Values encodes the query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("start", FormatAPITime(q.Start))
	v.Set("end", FormatAPITime(q.End))
	v.Set("rooms", q.Rooms)
	return v
}

// FormatAPITime formats t in its own location at minute precision.
func FormatAPITime(t time.Time) string {
	return t.Format(APITimeLayout)
}

// ParseAPITime parses user input in APITimeLayout. The T separator of
// datetime-local values is accepted and anything past minutes is ignored.
func ParseAPITime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if !strings.Contains(s, " ") {
		s = strings.Replace(s, "T", " ", 1)
	}
	if len(s) > len(APITimeLayout) {
		s = s[:len(APITimeLayout)]
	}
	t, err := time.ParseInLocation(APITimeLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: want YYYY-MM-DD HH:MM", s)
	}
	return t, nil
}
