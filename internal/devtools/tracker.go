// Package devtools records the HTTP exchanges made against the monitoring API
// so they can be inspected from inside the dashboard.
package devtools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultLimit is the number of exchanges a tracker keeps.
const DefaultLimit = 500

const unknownOrigin = "unknown"

type originKey struct{}

// Entry describes one HTTP exchange.
type Entry struct {
	Method   string
	URL      string
	Status   int
	Bytes    int64
	Duration time.Duration
	Err      string
}

// Failed reports whether the exchange errored or returned a non-2xx status.
func (e Entry) Failed() bool {
	return e.Err != "" || e.Status/100 != 2
}

// LogEntry is an exchange stamped with its sequence number, completion time
// and the label of the code path that issued it.
type LogEntry struct {
	Seq    uint64
	Time   time.Time
	Origin string
	Entry  Entry
}

// Tracker keeps the most recent exchanges. A nil *Tracker records nothing.
type Tracker struct {
	limit int

	mu      sync.RWMutex
	entries []LogEntry
	next    uint64
}

// NewTracker creates a tracker keeping DefaultLimit exchanges.
func NewTracker() *Tracker {
	return NewTrackerWithLimit(DefaultLimit)
}

// NewTrackerWithLimit creates a tracker keeping at most limit exchanges.
func NewTrackerWithLimit(limit int) *Tracker {
	return &Tracker{limit: max(limit, 0)}
}

// WithTracker labels requests issued with ctx. An empty origin leaves ctx
// unchanged.
func WithTracker(ctx context.Context, origin string) context.Context {
	if origin == "" {
		return ctx
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, originKey{}, origin)
}

func originOf(ctx context.Context) string {
	if ctx != nil {
		if origin, ok := ctx.Value(originKey{}).(string); ok && origin != "" {
			return origin
		}
	}
	return unknownOrigin
}

// LogEntries returns a copy of the kept exchanges, oldest first.
func (t *Tracker) LogEntries() []LogEntry {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.entries) == 0 {
		return nil
	}
	out := make([]LogEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// AppendLog stores entry, assigning its sequence number and dropping the
// oldest exchange once the limit is reached.
func (t *Tracker) AppendLog(entry LogEntry) {
	if t == nil || t.limit == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	entry.Seq = t.next
	t.next++
	if len(t.entries) == t.limit {
		// Shift in place so the backing array never grows past limit.
		n := copy(t.entries, t.entries[1:])
		t.entries = t.entries[:n]
	}
	t.entries = append(t.entries, entry)
}

// Transport wraps next so every round trip is recorded. A nil next uses
// http.DefaultTransport. Successful exchanges are recorded when the response
// body is closed, with the number of bytes actually read.
func (t *Tracker) Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &recordingTransport{tracker: t, next: next}
}

type recordingTransport struct {
	tracker *Tracker
	next    http.RoundTripper
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	started := time.Now()
	origin := originOf(req.Context())
	entry := Entry{Method: req.Method, URL: req.URL.String()}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		entry.Err = err.Error()
		entry.Duration = time.Since(started)
		rt.tracker.record(origin, entry)
		return resp, err
	}

	entry.Status = resp.StatusCode
	resp.Body = &countingBody{
		ReadCloser: resp.Body,
		done: func(read int64) {
			entry.Bytes = read
			if read == 0 && resp.ContentLength > 0 {
				entry.Bytes = resp.ContentLength
			}
			entry.Duration = time.Since(started)
			rt.tracker.record(origin, entry)
		},
	}
	return resp, nil
}

func (t *Tracker) record(origin string, entry Entry) {
	t.AppendLog(LogEntry{Time: time.Now(), Origin: origin, Entry: entry})
}

// countingBody reports the bytes read through it once, on Close.
type countingBody struct {
	io.ReadCloser
	read atomic.Int64
	once sync.Once
	done func(read int64)
}

func (b *countingBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	b.read.Add(int64(n))
	return n, err
}

func (b *countingBody) Close() error {
	err := b.ReadCloser.Close()
	b.once.Do(func() { b.done(b.read.Load()) })
	return err
}

// FormatDuration renders a request latency compactly, with sub-second
// precision kept only below ten seconds.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dus", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
