package monitor

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/ethercheck/ethercheck/internal/chart"
)

const (
	// TotalID selects the server-side total of all rooms.
	TotalID = "total"
	// SummaryID selects client-side averaging of every room.
	SummaryID = chart.SummaryID
)

// FallbackRooms is used when the room list cannot be loaded.
var FallbackRooms = []string{"204", "430", "536"}

// Selection is the room choice of the control panel.
type Selection struct {
	Total   bool
	Summary bool
	Rooms   []string
}

// DefaultSelection selects the total.
func DefaultSelection() Selection {
	return Selection{Total: true}
}

// ParseSelection reads a --rooms style value: "total", "summary" or a
// comma-separated room list.
func ParseSelection(s string) Selection {
	s = strings.TrimSpace(s)
	switch s {
	case "", TotalID:
		return DefaultSelection()
	case SummaryID:
		return Selection{Summary: true}
	}
	rooms := lo.Map(strings.Split(s, ","), func(room string, _ int) string {
		return strings.TrimSpace(room)
	})
	return Selection{Rooms: lo.Uniq(lo.Compact(rooms))}
}

// Toggle applies a click on an entry of the room list.
func (s Selection) Toggle(value string) Selection {
	switch value {
	case TotalID:
		return DefaultSelection()
	case SummaryID:
		return Selection{Summary: true}
	}

	current := s.Rooms
	if s.Total || s.Summary {
		current = nil
	}
	if slices.Contains(current, value) {
		return Selection{Rooms: lo.Without(current, value)}
	}
	return Selection{Rooms: append(slices.Clone(current), value)}
}

// Clear drops every selected room and the total. Summary mode is kept.
func (s Selection) Clear() Selection {
	return Selection{Summary: s.Summary}
}

// Selected reports whether an entry of the room list is highlighted.
func (s Selection) Selected(value string) bool {
	switch value {
	case SummaryID:
		return s.Summary
	case TotalID:
		return !s.Summary && s.Total
	}
	return !s.Summary && slices.Contains(s.Rooms, value)
}

// Count is the number of selected entries.
func (s Selection) Count() int {
	if s.Total {
		return len(s.Rooms) + 1
	}
	return len(s.Rooms)
}

// RoomsParam builds the rooms query parameter. Summary mode asks for every
// known room.
func (s Selection) RoomsParam(all []string) (string, error) {
	switch {
	case s.Summary:
		if len(all) == 0 {
			return "", ErrNoRooms
		}
		return strings.Join(all, ","), nil
	case s.Total:
		return TotalID, nil
	case len(s.Rooms) == 0:
		return "", ErrNoRooms
	}
	return strings.Join(s.Rooms, ","), nil
}

// String renders the selection in ParseSelection form.
func (s Selection) String() string {
	switch {
	case s.Summary:
		return SummaryID
	case s.Total:
		return TotalID
	}
	return strings.Join(s.Rooms, ",")
}

// CleanRooms removes the pseudo rooms, blanks and duplicates.
func CleanRooms(rooms []string) []string {
	trimmed := lo.Map(rooms, func(room string, _ int) string {
		return strings.TrimSpace(room)
	})
	return lo.Uniq(lo.Compact(lo.Without(trimmed, TotalID, SummaryID)))
}
