package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Preset is a quick time range relative to now.
type Preset struct {
	Key   string
	Label string
	Back  time.Duration
	// Today starts the range at local midnight.
	Today bool
}

// Presets lists the quick ranges in display order.
var Presets = []Preset{
	{Key: "1h", Label: "1 hour", Back: time.Hour},
	{Key: "3h", Label: "3 hours", Back: 3 * time.Hour},
	{Key: "12h", Label: "12 hours", Back: 12 * time.Hour},
	{Key: "24h", Label: "24 hours", Back: 24 * time.Hour},
	{Key: "today", Label: "Today", Today: true},
}

// DefaultPreset is the range used on start.
const DefaultPreset = "24h"

// PresetByKey looks up a preset.
func PresetByKey(key string) (Preset, error) {
	p, ok := lo.Find(Presets, func(p Preset) bool {
		return p.Key == strings.ToLower(strings.TrimSpace(key))
	})
	if !ok {
		keys := lo.Map(Presets, func(p Preset, _ int) string { return p.Key })
		return Preset{}, fmt.Errorf("unknown range %q (want one of %s)", key, strings.Join(keys, ", "))
	}
	return p, nil
}

// Range returns the preset window ending at now, both ends at minute precision.
func (p Preset) Range(now time.Time) (time.Time, time.Time) {
	end := truncateMinute(now)
	if p.Today {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), end
	}
	return truncateMinute(now.Add(-p.Back)), end
}

func truncateMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}
