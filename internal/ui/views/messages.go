package views

import (
	"github.com/ethercheck/ethercheck/internal/monitor"
)

// RefreshMsg asks views to reload their data.
type RefreshMsg struct{}

// ErrorMsg reports a failure to show in the error popup.
type ErrorMsg struct {
	Title string
	Err   error
}

// StatusMsg sets the transient status bar message.
type StatusMsg struct {
	Text string
}

// RoomsLoadedMsg carries the room list loaded on start. Err is set when the
// fallback list is used.
type RoomsLoadedMsg struct {
	Rooms []string
	Err   error
}

// ControlsMsg broadcasts the current control panel state.
type ControlsMsg struct {
	Controls monitor.Controls
}

// ToggleRoomMsg asks to toggle an entry of the room list.
type ToggleRoomMsg struct {
	Value string
}

// ToggleSummaryMsg switches between summary mode and the total.
type ToggleSummaryMsg struct{}

// ClearRoomsMsg drops the room selection.
type ClearRoomsMsg struct{}

// PresetMsg selects a quick range.
type PresetMsg struct {
	Key string
}

// BuildMsg asks the graph to fetch data for the current controls.
type BuildMsg struct{}

// ClearGraphMsg drops the graph and discards any request in flight.
type ClearGraphMsg struct{}

// GraphLoadedMsg carries the result of a graph request.
type GraphLoadedMsg struct {
	ID      uint64
	Query   monitor.Query
	Summary bool
	// Refresh marks a reload of the graph on screen; the zoomed window is kept.
	Refresh bool
	Payload monitor.Payload
	Err     error
}

// ResponseMsg carries the body of the graph response on screen.
type ResponseMsg struct {
	URL string
	Raw []byte
}
