package scrollbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestLinesWithoutOverflow(t *testing.T) {
	assert.Equal(t, []string{" ", " ", " "}, Lines(Styles{}, 3, 5, 5, 0))
	assert.Nil(t, Lines(Styles{}, 0, 50, 5, 0))
}

func TestThumbAlwaysVisible(t *testing.T) {
	start, size := Thumb(4, 100, 1, 50)
	assert.Equal(t, 1, size)
	assert.Equal(t, 2, start)
}

func TestThumbPosition(t *testing.T) {
	tests := map[string]struct {
		offset int
		want   string
	}{
		"start":  {offset: 0, want: "██░░░░░░░░"},
		"middle": {offset: 40, want: "░░░░██░░░░"},
		"end":    {offset: 80, want: "░░░░░░░░██"},
		"past":   {offset: 500, want: "░░░░░░░░██"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ansi.Strip(strings.Join(Lines(Styles{}, 10, 100, 20, tt.offset), ""))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNeeded(t *testing.T) {
	assert.True(t, Needed(10, 3))
	assert.False(t, Needed(3, 3))
	assert.False(t, Needed(10, 0))
}
