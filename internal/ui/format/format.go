// Package format renders sizes and spans for the status lines of the views.
package format

import (
	"fmt"
	"time"
)

var spanUnits = []struct {
	size   time.Duration
	suffix string
}{
	{24 * time.Hour, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
	{time.Second, "s"},
}

// Span renders d as its two most significant units, truncated to whole
// seconds: "45s", "2m3s", "1d4h". Negative spans render as "0s".
func Span(d time.Duration) string {
	d = max(d.Truncate(time.Second), 0)
	for i, unit := range spanUnits {
		if d < unit.size && i < len(spanUnits)-1 {
			continue
		}
		major := d / unit.size
		if i == len(spanUnits)-1 {
			return fmt.Sprintf("%d%s", major, unit.suffix)
		}
		minor := spanUnits[i+1]
		return fmt.Sprintf("%d%s%d%s", major, unit.suffix, (d%unit.size)/minor.size, minor.suffix)
	}
	return "0s"
}

const byteUnits = "KMGTPE"

// Bytes renders a size in binary units with one decimal: "512 B", "1.5 KB".
func Bytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	value := float64(n) / 1024
	exp := 0
	for value >= 1024 && exp < len(byteUnits)-1 {
		value /= 1024
		exp++
	}
	return fmt.Sprintf("%.1f %cB", value, byteUnits[exp])
}
