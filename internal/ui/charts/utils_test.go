package charts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelLine(t *testing.T) {
	tests := map[string]struct {
		width int
		marks []Mark
		want  string
	}{
		"centered":        {width: 11, marks: []Mark{{Col: 5, Text: "abc"}}, want: "    abc    "},
		"clamped left":    {width: 6, marks: []Mark{{Col: 0, Text: "abcd"}}, want: "abcd  "},
		"clamped right":   {width: 6, marks: []Mark{{Col: 5, Text: "abcd"}}, want: "  abcd"},
		"overlap skipped": {width: 10, marks: []Mark{{Col: 1, Text: "aaa"}, {Col: 3, Text: "bbb"}, {Col: 7, Text: "ccc"}}, want: "aaa   ccc "},
		"too wide":        {width: 2, marks: []Mark{{Col: 1, Text: "abc"}}, want: "  "},
		"zero width":      {width: 0, marks: []Mark{{Col: 1, Text: "a"}}, want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, LabelLine(tt.width, tt.marks))
		})
	}
}

func TestRenderCentered(t *testing.T) {
	out := RenderCentered(9, 3, "hi")
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "   hi", lines[1])
	assert.Equal(t, strings.Repeat(" ", 9), lines[0])

	assert.Empty(t, RenderCentered(9, 0, "hi"))
}
