package monitor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRooms is returned when a graph is requested without any room selected.
var ErrNoRooms = errors.New("select at least one room")

// StatusError reports a non-2xx response from the monitoring API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, body)
}
