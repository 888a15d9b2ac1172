package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpan(t *testing.T) {
	tests := map[string]struct {
		in   time.Duration
		want string
	}{
		"negative":       {-5 * time.Second, "0s"},
		"zero":           {0, "0s"},
		"sub-second":     {900 * time.Millisecond, "0s"},
		"seconds":        {59 * time.Second, "59s"},
		"minute":         {time.Minute, "1m0s"},
		"minute-seconds": {61 * time.Second, "1m1s"},
		"hour":           {time.Hour, "1h0m"},
		"three hours":    {3*time.Hour + 59*time.Second, "3h0m"},
		"day":            {24 * time.Hour, "1d0h"},
		"day-hour":       {25*time.Hour + time.Minute, "1d1h"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Span(tt.in))
		})
	}
}

func TestBytes(t *testing.T) {
	assert.Equal(t, "0 B", Bytes(0))
	assert.Equal(t, "512 B", Bytes(512))
	assert.Equal(t, "1.0 KB", Bytes(1024))
	assert.Equal(t, "1.5 KB", Bytes(1536))
	assert.Equal(t, "1.0 MB", Bytes(1<<20))
	assert.Equal(t, "2.5 GB", Bytes(5<<29))
}
