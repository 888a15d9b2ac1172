// Package scrollbar renders the one-column scroll indicator of list and
// document views.
package scrollbar

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ethercheck/ethercheck/internal/mathutil"
)

// Width is the number of columns a scrollbar takes.
const Width = 1

const (
	thumbRune = "█"
	trackRune = "░"
)

// Styles holds the styles needed for the scrollbar.
type Styles struct {
	Track lipgloss.Style
	Thumb lipgloss.Style
}

// Needed reports whether total items overflow a window of visible rows.
func Needed(total, visible int) bool {
	return visible > 0 && total > visible
}

// Thumb returns the first row and the length of the thumb on a bar of
// height rows. The thumb is at least one row long.
func Thumb(height, total, visible, offset int) (int, int) {
	if height <= 0 || !Needed(total, visible) {
		return 0, 0
	}
	size := max(1, int(math.Round(float64(height)*mathutil.Fraction(float64(visible), 0, float64(total)))))
	start := int(math.Round(float64(height) * mathutil.Fraction(float64(offset), 0, float64(total))))
	return mathutil.Clamp(start, 0, max(height-size, 0)), size
}

// Lines renders the bar one cell per row. Without overflow the rows are
// blank.
func Lines(styles Styles, height, total, visible, offset int) []string {
	if height <= 0 {
		return nil
	}
	lines := make([]string, height)
	if !Needed(total, visible) {
		for i := range lines {
			lines[i] = strings.Repeat(" ", Width)
		}
		return lines
	}

	start, size := Thumb(height, total, visible, offset)
	thumb := styles.Thumb.Render(strings.Repeat(thumbRune, Width))
	track := styles.Track.Render(strings.Repeat(trackRune, Width))
	for i := range lines {
		if i >= start && i < start+size {
			lines[i] = thumb
		} else {
			lines[i] = track
		}
	}
	return lines
}
