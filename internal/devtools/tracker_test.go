package devtools

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerKeepsNewest(t *testing.T) {
	tracker := NewTrackerWithLimit(3)
	for _, origin := range []string{"a", "b", "c", "d", "e"} {
		tracker.AppendLog(LogEntry{Origin: origin})
	}

	entries := tracker.LogEntries()
	require.Len(t, entries, 3)
	for i, want := range []string{"c", "d", "e"} {
		assert.Equal(t, want, entries[i].Origin)
		assert.Equal(t, uint64(i+2), entries[i].Seq)
	}

	// Returned slices are copies.
	entries[0].Origin = "changed"
	assert.Equal(t, "c", tracker.LogEntries()[0].Origin)
}

func TestTrackerDisabled(t *testing.T) {
	var nilTracker *Tracker
	nilTracker.AppendLog(LogEntry{})
	assert.Nil(t, nilTracker.LogEntries())

	zero := NewTrackerWithLimit(0)
	zero.AppendLog(LogEntry{})
	assert.Nil(t, zero.LogEntries())

	negative := NewTrackerWithLimit(-5)
	negative.AppendLog(LogEntry{})
	assert.Nil(t, negative.LogEntries())
}

func TestWithTracker(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, WithTracker(ctx, ""))
	assert.Equal(t, "rooms.load", originOf(WithTracker(ctx, "rooms.load")))
	assert.Equal(t, unknownOrigin, originOf(ctx))
}

func TestTransportRecordsRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"rooms":[]}`))
	}))
	defer srv.Close()

	tracker := NewTracker()
	client := &http.Client{Transport: tracker.Transport(nil)}

	for _, path := range []string{"/rooms", "/missing"} {
		ctx := WithTracker(context.Background(), "test.fetch")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+path, nil)
		require.NoError(t, err)
		resp, err := client.Do(req)
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, resp.Body)
		require.NoError(t, resp.Body.Close())
	}

	entries := tracker.LogEntries()
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "test.fetch", first.Origin)
	assert.Equal(t, http.StatusOK, first.Entry.Status)
	assert.Equal(t, int64(len(`{"rooms":[]}`)), first.Entry.Bytes)
	assert.False(t, first.Entry.Failed())

	second := entries[1].Entry
	assert.Equal(t, http.StatusNotFound, second.Status)
	assert.True(t, second.Failed())
	assert.Equal(t, srv.URL+"/missing", second.URL)
}

func TestTransportRecordsOnClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	tracker := NewTracker()
	client := &http.Client{Transport: tracker.Transport(nil)}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	assert.Empty(t, tracker.LogEntries())

	require.NoError(t, resp.Body.Close())
	require.NoError(t, resp.Body.Close())

	entries := tracker.LogEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, unknownOrigin, entries[0].Origin)
	assert.Equal(t, int64(64), entries[0].Entry.Bytes)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportRecordsErrors(t *testing.T) {
	tracker := NewTracker()
	client := &http.Client{Transport: tracker.Transport(failingTransport{})}

	_, err := client.Get("http://monitor.invalid/graph")
	require.Error(t, err)

	entries := tracker.LogEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, unknownOrigin, entries[0].Origin)
	assert.Equal(t, "connection refused", entries[0].Entry.Err)
	assert.True(t, entries[0].Entry.Failed())
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		500 * time.Microsecond:  "500us",
		42 * time.Millisecond:   "42ms",
		1500 * time.Millisecond: "1.5s",
		12 * time.Second:        "12s",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDuration(in), "FormatDuration(%v)", in)
	}
}
