package table

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func row(id string, cells ...string) Row {
	return Row{ID: id, Cells: cells}
}

func keyText(text string) tea.KeyPressMsg {
	var code rune
	for _, r := range text {
		code = r
		break
	}
	return tea.KeyPressMsg(tea.Key{Text: text, Code: code})
}

func roomRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		id := string(rune('a' + i))
		rows[i] = row(id, id, "x")
	}
	return rows
}

func newTable(rows []Row, w, h int) Model {
	return New(
		WithColumns([]Column{
			{Title: "Room", Width: 6},
			{Title: "State"},
			{Title: "Loss", Width: 5, Align: AlignRight},
		}),
		WithRows(rows),
		WithSize(w, h),
		WithEmptyMessage("No rooms"),
	)
}

func TestViewLayout(t *testing.T) {
	m := newTable([]Row{row("204", "204", "on", "3%"), row("430", "430", "off", "12%")}, 30, 6)

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and two rows, got %d lines", len(lines))
	}
	if want := "Room   State              Loss"; !strings.HasPrefix(lines[0], want) {
		t.Fatalf("header = %q, want prefix %q", lines[0], want)
	}
	if lines[1] != strings.Repeat("─", 30) {
		t.Fatalf("separator = %q", lines[1])
	}
	if want := "430    off                 12%"; !strings.HasPrefix(lines[3], want) {
		t.Fatalf("row = %q, want prefix %q", lines[3], want)
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 30 {
			t.Fatalf("line %d width %d, want 30", i, w)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m := newTable(nil, 30, 6)
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "No rooms") {
		t.Fatalf("expected empty message:\n%s", out)
	}
	if _, ok := m.SelectedRow(); ok {
		t.Fatalf("empty table should have no selection")
	}
}

func TestViewTruncatesCells(t *testing.T) {
	m := newTable([]Row{row("long", "1234567890", "on", "1%")}, 30, 4)
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if !strings.HasPrefix(lines[2], "12345…") {
		t.Fatalf("expected truncated cell, got %q", lines[2])
	}
}

func TestNavigationKeepsCursorVisible(t *testing.T) {
	m := newTable(roomRows(10), 20, 5)

	if m.ViewportHeight() != 3 {
		t.Fatalf("ViewportHeight = %d, want 3", m.ViewportHeight())
	}

	m, _ = m.Update(keyText("j"))
	m, _ = m.Update(keyText("j"))
	m, _ = m.Update(keyText("j"))
	if m.Cursor() != 3 {
		t.Fatalf("cursor = %d, want 3", m.Cursor())
	}
	if m.yOffset != 1 {
		t.Fatalf("yOffset = %d, want 1", m.yOffset)
	}

	m, _ = m.Update(keyText("G"))
	if m.Cursor() != 9 || m.yOffset != 7 {
		t.Fatalf("after G cursor=%d yOffset=%d", m.Cursor(), m.yOffset)
	}
	m, _ = m.Update(keyText("j"))
	if m.Cursor() != 9 {
		t.Fatalf("cursor moved past the end: %d", m.Cursor())
	}

	m, _ = m.Update(tea.MouseWheelMsg(tea.Mouse{Button: tea.MouseWheelUp}))
	if m.Cursor() != 8 {
		t.Fatalf("wheel up cursor = %d, want 8", m.Cursor())
	}

	m, _ = m.Update(keyText("g"))
	if m.Cursor() != 0 || m.yOffset != 0 {
		t.Fatalf("after g cursor=%d yOffset=%d", m.Cursor(), m.yOffset)
	}
}

func TestScrollbarShownWhenOverflowing(t *testing.T) {
	m := newTable(roomRows(10), 20, 5)
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	for i, line := range lines[2:] {
		if !strings.HasSuffix(line, "█") && !strings.HasSuffix(line, "░") {
			t.Fatalf("row %d missing scrollbar: %q", i, line)
		}
		if w := ansi.StringWidth(line); w != 20 {
			t.Fatalf("row %d width %d, want 20", i, w)
		}
	}
}

func TestSetRowsFollowsSelectedID(t *testing.T) {
	m := newTable(roomRows(5), 20, 10)
	m.SetCursor(2)

	m.SetRows([]Row{row("z"), row("c"), row("a")})
	if selected, _ := m.SelectedRow(); selected.ID != "c" {
		t.Fatalf("selected = %q, want c", selected.ID)
	}

	m.SetRows([]Row{row("q")})
	if m.Cursor() != 0 {
		t.Fatalf("cursor = %d, want clamp to 0", m.Cursor())
	}
}

func TestRowAt(t *testing.T) {
	m := newTable(roomRows(10), 20, 5)
	m.GotoBottom()

	tests := map[string]struct {
		line   int
		want   int
		wantOK bool
	}{
		"header":    {line: 0, want: -1},
		"separator": {line: 1, want: -1},
		"first row": {line: 2, want: 7, wantOK: true},
		"last row":  {line: 4, want: 9, wantOK: true},
		"below":     {line: 5, want: -1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := m.RowAt(tc.line)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("RowAt(%d) = %d,%v want %d,%v", tc.line, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
