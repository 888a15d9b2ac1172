package monitor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ethercheck/ethercheck/internal/chart"
)

// Point is one raw (x, y) pair of a dataset. Numbers are json.Number.
type Point struct {
	X any
	Y any
}

// Dataset is one series of the graph payload.
type Dataset struct {
	Label       string
	Data        []Point
	BorderColor string
}

// Payload is a decoded graph response.
type Payload struct {
	Datasets []Dataset
	Raw      []byte
}

// ParsePayload decodes a graph response body. Invalid JSON is an error; valid
// JSON without a usable datasets array yields an empty payload.
func ParsePayload(data []byte) (Payload, error) {
	var decoded any
	if err := safeParseJSON(data, &decoded); err != nil {
		return Payload{}, fmt.Errorf("decode graph payload: %w", err)
	}
	payload := Payload{Raw: data}

	root, ok := decoded.(map[string]any)
	if !ok {
		return payload, nil
	}
	items, ok := root["datasets"].([]any)
	if !ok {
		return payload, nil
	}

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		dataset := Dataset{
			Label:       labelString(obj["label"], i),
			BorderColor: stringValue(obj["borderColor"]),
		}
		points, _ := obj["data"].([]any)
		for _, p := range points {
			pointObj, ok := p.(map[string]any)
			if !ok {
				continue
			}
			dataset.Data = append(dataset.Data, Point{X: pointObj["x"], Y: pointObj["y"]})
		}
		payload.Datasets = append(payload.Datasets, dataset)
	}
	return payload, nil
}

// Empty reports whether no dataset carries any point.
func (p Payload) Empty() bool {
	return !lo.SomeBy(p.Datasets, func(d Dataset) bool {
		return len(d.Data) > 0
	})
}

// RawSeries converts the payload into normalizer input.
func (p Payload) RawSeries() []chart.RawSeries {
	return lo.Map(p.Datasets, func(d Dataset, _ int) chart.RawSeries {
		return chart.RawSeries{
			ID: d.Label,
			Points: lo.Map(d.Data, func(pt Point, _ int) chart.RawPoint {
				return chart.RawPoint{X: pt.X, Y: pt.Y}
			}),
		}
	})
}

// Colors maps series ids to display colors. The aggregate series takes the
// first palette color.
func (p Payload) Colors() map[string]string {
	colors := make(map[string]string, len(p.Datasets)+1)
	for i, d := range p.Datasets {
		if _, ok := colors[d.Label]; ok {
			continue
		}
		colors[d.Label] = SeriesColor(i, d.BorderColor)
	}
	colors[chart.SummaryID] = PaletteColor(0)
	return colors
}

func labelString(v any, index int) string {
	switch label := v.(type) {
	case string:
		if s := strings.TrimSpace(label); s != "" {
			return s
		}
	case json.Number:
		return label.String()
	}
	return fmt.Sprintf("#%d", index+1)
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
