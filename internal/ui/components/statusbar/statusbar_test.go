package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func testData() Data {
	return Data{
		API:       "https://monitor.example/api",
		Range:     "24 hours",
		Selection: "204,430",
		Series:    2,
	}
}

func TestViewDimensions(t *testing.T) {
	cases := map[string]struct {
		width     int
		message   string
		wantEmpty bool
	}{
		"zero width":   {width: 0, wantEmpty: true},
		"narrow":       {width: 30},
		"wide":         {width: 140},
		"with message": {width: 140, message: "copied"},
		"tight":        {width: 20, message: "exported loss.png"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			m := New(WithWidth(tc.width), WithData(testData()))
			m.SetMessage(tc.message)
			output := m.View()
			if tc.wantEmpty {
				if output != "" {
					t.Fatalf("expected empty output, got %q", output)
				}
				return
			}
			if w := ansi.StringWidth(output); w != tc.width {
				t.Fatalf("expected width %d, got %d", tc.width, w)
			}
		})
	}
}

func TestViewContent(t *testing.T) {
	m := New(WithWidth(140), WithData(testData()))
	out := ansi.Strip(m.View())
	for _, want := range []string{"API: https://monitor.example/api", "Range: 24 hours", "Rooms: 204,430", "Series: 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}

	d := testData()
	d.Loading = true
	m.SetData(d)
	m.SetMessage("copied")
	out = ansi.Strip(m.View())
	if !strings.Contains(out, "loading…") || strings.Contains(out, "Series") {
		t.Fatalf("expected loading state, got %q", out)
	}
	if !strings.HasSuffix(out, "copied") {
		t.Fatalf("expected message on the right, got %q", out)
	}
}
