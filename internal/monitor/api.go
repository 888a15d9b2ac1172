package monitor

import "context"

// API defines the interface for talking to the monitoring service.
// This interface enables mocking the client for testing purposes.
type API interface {
	// DisplayURL returns the base URL safe for display.
	DisplayURL() string

	// Rooms fetches the list of known room identifiers.
	Rooms(ctx context.Context) ([]string, error)

	// Graph fetches packet-loss series for a query.
	Graph(ctx context.Context, q Query) (Payload, error)
}

var _ API = (*Client)(nil)
