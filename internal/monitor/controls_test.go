package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var controlsNow = time.Date(2024, 3, 10, 14, 37, 42, 0, time.UTC)

func TestNewControls(t *testing.T) {
	c := NewControls(controlsNow)

	assert.True(t, c.Selection.Total)
	assert.Equal(t, DefaultPreset, c.Preset)
	assert.Equal(t, "2024-03-09 14:37", FormatAPITime(c.Start))
	assert.Equal(t, "2024-03-10 14:37", FormatAPITime(c.End))
	assert.Equal(t, "24 hours", c.RangeLabel())
}

func TestControlsQuery(t *testing.T) {
	c := NewControls(controlsNow).WithRooms(allRooms)

	q, err := c.Query()
	require.NoError(t, err)
	assert.Equal(t, TotalID, q.Rooms)

	c.Selection = c.Selection.Toggle(SummaryID)
	q, err = c.Query()
	require.NoError(t, err)
	assert.Equal(t, "204,430,536", q.Rooms)

	c.Selection = c.Selection.Toggle("204").Toggle("204")
	_, err = c.Query()
	require.ErrorIs(t, err, ErrNoRooms)
}

func TestControlsCustomRange(t *testing.T) {
	start := controlsNow.Add(-2 * time.Hour)
	c := NewControls(controlsNow).WithRange(start, controlsNow)

	assert.Empty(t, c.Preset)
	assert.Equal(t, "2024-03-10 12:37 → 2024-03-10 14:37", c.RangeLabel())

	// custom ranges stay put on refresh
	later := c.Refreshed(controlsNow.Add(time.Hour))
	assert.Equal(t, c.Start, later.Start)

	_, err := c.WithRange(controlsNow, start).Query()
	require.Error(t, err)
}

func TestControlsRefreshedPreset(t *testing.T) {
	c, err := NewControls(controlsNow).WithPreset("1h", controlsNow)
	require.NoError(t, err)

	later := c.Refreshed(controlsNow.Add(30 * time.Minute))
	assert.Equal(t, "2024-03-10 14:07", FormatAPITime(later.Start))
	assert.Equal(t, "2024-03-10 15:07", FormatAPITime(later.End))

	_, err = c.WithPreset("2d", controlsNow)
	require.Error(t, err)
}

func TestControlsWithRoomsCopies(t *testing.T) {
	rooms := []string{"204", "430"}
	c := NewControls(controlsNow).WithRooms(rooms)
	rooms[0] = "999"
	assert.Equal(t, []string{"204", "430"}, c.Rooms)
}
