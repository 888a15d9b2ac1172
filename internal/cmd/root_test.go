package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethercheck/ethercheck/internal/monitor"
)

const graphBody = `{"datasets":[
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

func TestInitialControls(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 30, 45, 0, time.UTC)

	tests := map[string]struct {
		opts      options
		preset    string
		start     time.Time
		selection monitor.Selection
		wantErr   string
	}{
		"defaults": {
			opts:      options{preset: "24h", rooms: "total"},
			preset:    "24h",
			start:     time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC),
			selection: monitor.Selection{Total: true},
		},
		"room list": {
			opts:      options{preset: "1h", rooms: "204, 430,204"},
			preset:    "1h",
			start:     time.Date(2024, 3, 10, 11, 30, 0, 0, time.UTC),
			selection: monitor.Selection{Rooms: []string{"204", "430"}},
		},
		"summary today": {
			opts:      options{preset: "TODAY", rooms: "summary"},
			preset:    "today",
			start:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			selection: monitor.Selection{Summary: true},
		},
		"unknown range": {
			opts:    options{preset: "2d", rooms: "total"},
			wantErr: "parse range flag",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			controls, err := initialControls(tt.opts, now)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.preset, controls.Preset)
			assert.Equal(t, tt.start, controls.Start)
			assert.Equal(t, time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC), controls.End)
			assert.Equal(t, tt.selection, controls.Selection)
		})
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv(apiEnv, "")
	assert.Equal(t, "fallback", envOr(apiEnv, "fallback"))

	t.Setenv(apiEnv, "https://monitor.test/api")
	assert.Equal(t, "https://monitor.test/api", envOr(apiEnv, "fallback"))
}

func TestBuildVersion(t *testing.T) {
	got := buildVersion("1.2.3", "abc123", "2024-03-10", "ci")
	assert.True(t, strings.HasPrefix(got, "1.2.3\ncommit: abc123\nbuilt at: 2024-03-10\nbuilt by: ci\n"))
	assert.Contains(t, got, "goos: ")
}

type recordedRequests struct {
	mu    sync.Mutex
	paths []string
	rooms []string
}

func (r *recordedRequests) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, req.URL.Path)
	r.rooms = append(r.rooms, req.URL.Query().Get("rooms"))
}

func newAPIServer(t *testing.T, rooms string) (string, *recordedRequests) {
	t.Helper()
	recorded := &recordedRequests{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.add(r)
		switch r.URL.Path {
		case "/api/rooms":
			_, _ = w.Write([]byte(rooms))
		case "/api/graph":
			_, _ = w.Write([]byte(graphBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/api", recorded
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	api, recorded := newAPIServer(t, `{"rooms":["204","430"]}`)
	path := filepath.Join(t.TempDir(), "loss.svg")

	out, err := executeRoot(t, "export", "--api", api, "--rooms", "204,430", "--range", "3h", "-o", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "Room 204")

	assert.Equal(t, []string{"/api/graph"}, recorded.paths)
	assert.Equal(t, []string{"204,430"}, recorded.rooms)
}

func TestExportCommandSummaryLoadsRooms(t *testing.T) {
	api, recorded := newAPIServer(t, `["204","430"]`)
	path := filepath.Join(t.TempDir(), "loss.png")

	_, err := executeRoot(t, "export", "--url", api, "--rooms", "summary", "-o", path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/rooms", "/api/graph"}, recorded.paths)
	assert.Equal(t, "204,430", recorded.rooms[1])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestExportCommandErrors(t *testing.T) {
	api, _ := newAPIServer(t, `[]`)
	dir := t.TempDir()

	tests := map[string]struct {
		args []string
		want string
	}{
		"bad format": {
			args: []string{"export", "--api", api, "--format", "gif", "-o", filepath.Join(dir, "a.gif")},
			want: "parse format flag",
		},
		"bad range": {
			args: []string{"export", "--api", api, "--period", "week", "-o", filepath.Join(dir, "b.png")},
			want: "parse range flag",
		},
		"bad api url": {
			args: []string{"export", "--api", "ftp://monitor.test", "-o", filepath.Join(dir, "c.png")},
			want: "create api client",
		},
		"no rooms": {
			args: []string{"export", "--api", api, "--rooms", ",", "-o", filepath.Join(dir, "d.png")},
			want: monitor.ErrNoRooms.Error(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := executeRoot(t, tt.args...)
			require.ErrorContains(t, err, tt.want)
		})
	}
}
