package overlay

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPlace(t *testing.T) {
	tests := map[string]struct {
		bg   string
		fg   string
		row  int
		col  int
		want string
	}{
		"middle":      {bg: "aaaaa\nbbbbb\nccccc", fg: "XY", row: 1, col: 2, want: "aaaaa\nbbXYb\nccccc"},
		"edge":        {bg: "aaaaa", fg: "XY", row: 0, col: 3, want: "aaaXY"},
		"overflow":    {bg: "aaa", fg: "XYZ", row: 0, col: 2, want: "aaXYZ"},
		"short bg":    {bg: "a", fg: "X", row: 0, col: 3, want: "a  X"},
		"grow rows":   {bg: "aaa", fg: "X\nY", row: 1, col: 0, want: "aaa\nX\nY"},
		"negative":    {bg: "aaa", fg: "X", row: -2, col: -1, want: "Xaa"},
		"empty fg":    {bg: "aaa", fg: "", row: 0, col: 0, want: "aaa"},
		"wide runes":  {bg: "──────", fg: "╭╮", row: 0, col: 1, want: "─╭╮───"},
		"multi block": {bg: "....\n....\n....", fg: "ab\ncd", row: 1, col: 1, want: "....\n.ab.\n.cd."},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ansi.Strip(Place(tt.bg, tt.fg, tt.row, tt.col))
			if got != tt.want {
				t.Fatalf("Place() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	bg := "......\n......\n......"
	got := ansi.Strip(Center(bg, "ab", 6, 3))
	want := "......\n..ab..\n......"
	if got != want {
		t.Fatalf("Center() = %q, want %q", got, want)
	}
}

func TestSize(t *testing.T) {
	w, h := Size("abc\nde")
	if w != 3 || h != 2 {
		t.Fatalf("Size() = %d,%d, want 3,2", w, h)
	}
	if w, h := Size(""); w != 0 || h != 0 {
		t.Fatalf("Size(\"\") = %d,%d, want 0,0", w, h)
	}
}
