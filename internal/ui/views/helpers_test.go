package views

import (
	"context"
	"sync"
	"testing"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/ethercheck/ethercheck/internal/monitor"
)

const samplePayload = `{"datasets":[
	{"label":"204","borderColor":"#ff0000","data":[
		{"x":"2024-03-10T08:00:00Z","y":1},
		{"x":"2024-03-10T09:00:00Z","y":4},
		{"x":"2024-03-10T10:00:00Z","y":2}
	]},
	{"label":"430","data":[
		{"x":"2024-03-10T08:00:00Z","y":0},
		{"x":"2024-03-10T10:00:00Z","y":7}
	]}
]}`

type monitorStub struct {
	mu      sync.Mutex
	rooms   []string
	payload monitor.Payload
	err     error
	queries []monitor.Query
}

func (s *monitorStub) DisplayURL() string {
	return "https://monitor.test/api"
}

func (s *monitorStub) Rooms(context.Context) ([]string, error) {
	return s.rooms, s.err
}

func (s *monitorStub) Graph(_ context.Context, q monitor.Query) (monitor.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	if s.err != nil {
		return monitor.Payload{}, s.err
	}
	return s.payload, nil
}

func (s *monitorStub) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func samplePayloadT(t *testing.T) monitor.Payload {
	t.Helper()
	payload, err := monitor.ParsePayload([]byte(samplePayload))
	if err != nil {
		t.Fatalf("parse sample payload: %v", err)
	}
	return payload
}

func keyText(text string) tea.KeyPressMsg {
	code, _ := utf8.DecodeRuneInString(text)
	return tea.KeyPressMsg(tea.Key{Text: text, Code: code})
}

func keyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// runCmd executes cmd and flattens batches into the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T.
func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}

func stubClipboard(t *testing.T) *[]string {
	t.Helper()
	var copied []string
	prev := clipboardWrite
	clipboardWrite = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	t.Cleanup(func() { clipboardWrite = prev })
	return &copied
}
