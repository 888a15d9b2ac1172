// Package charts holds text layout helpers shared by chart components.
package charts

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// RenderCentered centers content within a given width and height.
// Handles multi-line content by centering vertically and horizontally.
func RenderCentered(width, height int, value string) string {
	if height < 1 {
		return ""
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	if width <= 0 {
		return strings.Join(lines, "\n")
	}

	// Handle multi-line content
	contentLines := strings.Split(value, "\n")
	contentHeight := len(contentLines)
	startLine := max((height-contentHeight)/2, 0)

	maxWidthStyle := lipgloss.NewStyle()
	for i, contentLine := range contentLines {
		lineIdx := startLine + i
		if lineIdx >= height {
			break
		}
		trimmed := maxWidthStyle.MaxWidth(width).Render(contentLine)
		pad := max((width-lipgloss.Width(trimmed))/2, 0)
		lines[lineIdx] = strings.Repeat(" ", pad) + trimmed
	}

	return strings.Join(lines, "\n")
}

// Mark is a label anchored at a column.
type Mark struct {
	Col  int
	Text string
}

// LabelLine lays out marks on a line of the given width, each centered on
// its column. Marks that would overlap the previous one are skipped.
func LabelLine(width int, marks []Mark) string {
	if width <= 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", width))
	lastEnd := -1
	for _, mark := range marks {
		text := []rune(mark.Text)
		if len(text) == 0 {
			continue
		}
		start := max(mark.Col-len(text)/2, 0)
		if start+len(text) > width {
			start = width - len(text)
		}
		if start < 0 || (lastEnd >= 0 && start <= lastEnd+1) {
			continue
		}
		copy(line[start:], text)
		lastEnd = start + len(text) - 1
	}
	return string(line)
}
