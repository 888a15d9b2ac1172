// Package overlay composites rendered blocks on top of each other.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Place draws fg over bg with its top-left corner at row, col. Cells of bg
// outside fg are kept, including their styling. bg grows if fg does not fit.
func Place(bg, fg string, row, col int) string {
	if fg == "" {
		return bg
	}
	row = max(row, 0)
	col = max(col, 0)

	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	for len(bgLines) < row+len(fgLines) {
		bgLines = append(bgLines, "")
	}

	for i, line := range fgLines {
		bgLines[row+i] = spliceLine(bgLines[row+i], line, col)
	}
	return strings.Join(bgLines, "\n")
}

// Center draws fg in the middle of a width x height area of bg.
func Center(bg, fg string, width, height int) string {
	fgWidth, fgHeight := Size(fg)
	return Place(bg, fg, (height-fgHeight)/2, (width-fgWidth)/2)
}

// Size returns the display width and line count of a block.
func Size(block string) (int, int) {
	if block == "" {
		return 0, 0
	}
	lines := strings.Split(block, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, ansi.StringWidth(line))
	}
	return width, len(lines)
}

func spliceLine(bg, fg string, col int) string {
	bgWidth := ansi.StringWidth(bg)
	if bgWidth < col {
		bg += strings.Repeat(" ", col-bgWidth)
		bgWidth = col
	}
	fgWidth := ansi.StringWidth(fg)

	var b strings.Builder
	b.WriteString(ansi.Cut(bg, 0, col))
	b.WriteString(ansi.ResetStyle)
	b.WriteString(fg)
	b.WriteString(ansi.ResetStyle)
	if end := col + fgWidth; end < bgWidth {
		b.WriteString(ansi.Cut(bg, end, bgWidth))
	}
	return b.String()
}
