package views

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethercheck/ethercheck/internal/monitor"
)

func newTestRooms(t *testing.T, controls monitor.Controls) *Rooms {
	t.Helper()
	r := NewRooms(time.UTC)
	r.SetStyles(Styles{})
	r.SetSize(60, 20)
	r.Update(ControlsMsg{Controls: controls})
	return r
}

func testControls(t *testing.T) monitor.Controls {
	t.Helper()
	now := time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)
	return monitor.NewControls(now).WithRooms([]string{"204", "430", "536"})
}

func TestRoomsListsPseudoEntriesFirst(t *testing.T) {
	r := newTestRooms(t, testControls(t))

	rows := r.table.Rows()
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"●", "Total", monitor.TotalID}, rows[0].Cells)
	assert.Equal(t, []string{"○", "Summary", monitor.SummaryID}, rows[1].Cells)
	assert.Equal(t, []string{"○", "Room 204", "204"}, rows[2].Cells)

	view := r.View()
	assert.Contains(t, view, "Room 536")
	assert.Contains(t, view, "2024-03-09 12:30")
	assert.Contains(t, view, "(1d0h)")
}

func TestRoomsToggleSelectedRow(t *testing.T) {
	r := newTestRooms(t, testControls(t))

	r.Update(keyText("j"))
	r.Update(keyText("j"))
	_, cmd := r.Update(keyCode(tea.KeySpace))
	toggle, ok := findMsg[ToggleRoomMsg](runCmd(cmd))
	require.True(t, ok)
	assert.Equal(t, "204", toggle.Value)

	_, cmd = r.Update(keyCode(tea.KeyEnter))
	toggle, _ = findMsg[ToggleRoomMsg](runCmd(cmd))
	assert.Equal(t, "204", toggle.Value)
}

func TestRoomsReflectsControls(t *testing.T) {
	controls := testControls(t)
	r := newTestRooms(t, controls)

	controls.Selection = controls.Selection.Toggle("430")
	r.Update(ControlsMsg{Controls: controls})

	rows := r.table.Rows()
	assert.Equal(t, "○", rows[0].Cells[0])
	assert.Equal(t, "●", rows[3].Cells[0])
	assert.Contains(t, r.View(), "1 selected")
}

func TestRoomsCyclePresets(t *testing.T) {
	r := newTestRooms(t, testControls(t))
	require.Equal(t, monitor.DefaultPreset, r.controls.Preset)

	idx := -1
	for i, p := range monitor.Presets {
		if p.Key == monitor.DefaultPreset {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	_, cmd := r.Update(keyText("r"))
	preset, ok := findMsg[PresetMsg](runCmd(cmd))
	require.True(t, ok)
	assert.Equal(t, monitor.Presets[(idx+1)%len(monitor.Presets)].Key, preset.Key)

	_, cmd = r.Update(keyText("R"))
	preset, _ = findMsg[PresetMsg](runCmd(cmd))
	assert.Equal(t, monitor.Presets[idx-1].Key, preset.Key)

	custom := r.controls.WithRange(r.controls.Start, r.controls.End)
	r.Update(ControlsMsg{Controls: custom})
	_, cmd = r.Update(keyText("r"))
	preset, _ = findMsg[PresetMsg](runCmd(cmd))
	assert.Equal(t, monitor.Presets[0].Key, preset.Key)
	assert.Contains(t, r.View(), "custom")
}

func TestRoomsIntents(t *testing.T) {
	r := newTestRooms(t, testControls(t))

	tests := []struct {
		key  string
		want tea.Msg
	}{
		{key: "x", want: ClearRoomsMsg{}},
		{key: "s", want: ToggleSummaryMsg{}},
		{key: "b", want: BuildMsg{}},
		{key: "a", want: ToggleRoomMsg{Value: monitor.TotalID}},
	}
	for _, tt := range tests {
		_, cmd := r.Update(keyText(tt.key))
		msgs := runCmd(cmd)
		require.Len(t, msgs, 1, "key %q", tt.key)
		assert.Equal(t, tt.want, msgs[0], "key %q", tt.key)
	}
}

func TestRoomsMouseClickTogglesRow(t *testing.T) {
	r := newTestRooms(t, testControls(t))

	// border, three header lines, table header and separator
	_, cmd := r.Update(tea.MouseClickMsg(tea.Mouse{X: 5, Y: 1 + roomsHeaderLines + 2 + 1, Button: tea.MouseLeft}))
	toggle, ok := findMsg[ToggleRoomMsg](runCmd(cmd))
	require.True(t, ok)
	assert.Equal(t, monitor.SummaryID, toggle.Value)
	assert.Equal(t, 1, r.table.Cursor())

	_, cmd = r.Update(tea.MouseClickMsg(tea.Mouse{X: 5, Y: 0, Button: tea.MouseLeft}))
	assert.Nil(t, cmd)
}

func TestRoomsEmptySelectionWarning(t *testing.T) {
	controls := testControls(t)
	controls.Selection = controls.Selection.Clear()
	r := newTestRooms(t, controls)

	assert.Contains(t, r.View(), "no rooms selected")
}
