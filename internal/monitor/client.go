// Package monitor provides the monitoring REST API client and the control
// panel rules built around it.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/ethercheck/ethercheck/internal/devtools"
	"github.com/ethercheck/ethercheck/internal/logging"
)

// DefaultBaseURL is the public monitoring API.
const DefaultBaseURL = "https://monitor.slavapmk.ru/api"

const (
	maxBodyBytes  = 32 << 20
	maxErrorBytes = 4 << 10
)

// Client is a monitoring API client.
type Client struct {
	base       *url.URL
	http       *http.Client
	displayURL string
	log        logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTracker records every request in tracker.
func WithTracker(tracker *devtools.Tracker) Option {
	return func(cl *Client) {
		if tracker == nil {
			return
		}
		wrapped := *cl.http
		wrapped.Transport = tracker.Transport(cl.http.Transport)
		cl.http = &wrapped
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(cl *Client) {
		if log != nil {
			cl.log = log
		}
	}
}

// NewClient creates a new client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("parse api url: unsupported scheme %q", base.Scheme)
	}

	c := &Client{
		base:       base,
		http:       &http.Client{},
		displayURL: sanitizeURL(base),
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "monitor")
	return c, nil
}

// DisplayURL returns the base URL without credentials.
func (c *Client) DisplayURL() string {
	return c.displayURL
}

func sanitizeURL(u *url.URL) string {
	clean := *u
	if clean.User != nil {
		if username := clean.User.Username(); username == "" {
			clean.User = nil
		} else {
			clean.User = url.User(username)
		}
	}
	return clean.String()
}

// Rooms fetches the room list. Both {"rooms": [...]} and a bare array are
// accepted; pseudo rooms are removed.
func (c *Client) Rooms(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "rooms", nil)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := safeParseJSON(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	var items []any
	switch v := decoded.(type) {
	case []any:
		items = v
	case map[string]any:
		items, _ = v["rooms"].([]any)
	}

	rooms := lo.FilterMap(items, func(item any, _ int) (string, bool) {
		switch v := item.(type) {
		case string:
			return v, true
		case fmt.Stringer:
			return v.String(), true
		}
		return "", false
	})
	return CleanRooms(rooms), nil
}

// LoadRooms fetches rooms and falls back to FallbackRooms on failure or an
// empty list. The error, if any, is returned for logging only.
func LoadRooms(ctx context.Context, api API) ([]string, error) {
	rooms, err := api.Rooms(ctx)
	if err == nil && len(rooms) == 0 {
		err = errors.New("room list is empty")
	}
	if err != nil {
		return append([]string(nil), FallbackRooms...), err
	}
	return rooms, nil
}

// Graph fetches the series for q.
func (c *Client) Graph(ctx context.Context, q Query) (Payload, error) {
	if err := q.Validate(); err != nil {
		return Payload{}, err
	}
	body, err := c.get(ctx, "graph", q.Values())
	if err != nil {
		return Payload{}, err
	}
	payload, err := ParsePayload(body)
	if err != nil {
		return Payload{}, err
	}
	c.log.WithFields(logrus.Fields{
		"datasets": len(payload.Datasets),
		"rooms":    q.Rooms,
	}).Debug("graph loaded")
	return payload, nil
}

// Endpoint returns the absolute URL of an API path with query parameters.
func (c *Client) Endpoint(path string, params url.Values) string {
	u := c.base.JoinPath(path)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.Endpoint(path, params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log := c.log.WithField("url", endpoint)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		log.Warn("unexpected status")
		return nil, &StatusError{Code: resp.StatusCode, Body: string(text)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.WithError(err).Warn("read body failed")
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	log.WithField("bytes", len(body)).Debug("request done")
	return body, nil
}
