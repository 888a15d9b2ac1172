package views

import (
	"github.com/ethercheck/ethercheck/internal/ui/components/frame"
	"github.com/ethercheck/ethercheck/internal/ui/components/jsonview"
	"github.com/ethercheck/ethercheck/internal/ui/components/messagebox"
	"github.com/ethercheck/ethercheck/internal/ui/components/plot"
	"github.com/ethercheck/ethercheck/internal/ui/components/scrollbar"
	"github.com/ethercheck/ethercheck/internal/ui/components/table"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs/timerange"
)

func frameStylesFromTheme(styles Styles) frame.Styles {
	return frame.Styles{
		Focused: frame.StyleState{
			Title:  styles.Title,
			Muted:  styles.Muted,
			Filter: styles.FilterFocused,
			Border: styles.FocusBorder,
		},
		Blurred: frame.StyleState{
			Title:  styles.Title,
			Muted:  styles.Muted,
			Filter: styles.FilterBlurred,
			Border: styles.BorderStyle,
		},
	}
}

func rangeDialogStylesFromTheme(styles Styles) timerange.Styles {
	return timerange.Styles{
		Title:       styles.Title,
		Border:      styles.FocusBorder,
		Label:       styles.MetricLabel,
		Text:        styles.Text,
		Placeholder: styles.Muted,
		Cursor:      styles.Text,
		Error:       styles.Error,
	}
}

func tableStylesFromTheme(styles Styles) table.Styles {
	return table.Styles{
		Text:           styles.Text,
		Muted:          styles.Muted,
		Header:         styles.TableHeader,
		Selected:       styles.TableSelected,
		Separator:      styles.TableSeparator,
		ScrollbarTrack: styles.ScrollbarTrack,
		ScrollbarThumb: styles.ScrollbarThumb,
	}
}

func plotStylesFromTheme(styles Styles) plot.Styles {
	return plot.Styles{
		Axis:    styles.ChartAxis,
		Label:   styles.ChartLabel,
		Muted:   styles.Muted,
		Tooltip: styles.ChartTooltip.Padding(0, 1),
		Title:   styles.ChartTooltip.Bold(true),
	}
}

func jsonStylesFromTheme(styles Styles) jsonview.Styles {
	return jsonview.Styles{
		Text:        styles.Text,
		Key:         styles.JSONKey,
		String:      styles.JSONString,
		Number:      styles.JSONNumber,
		Bool:        styles.JSONBool,
		Null:        styles.JSONNull,
		Punctuation: styles.JSONPunctuation,
		Muted:       styles.Muted,
		Scrollbar:   scrollbar.Styles{Track: styles.ScrollbarTrack, Thumb: styles.ScrollbarThumb},
	}
}

func messageBoxStylesFromTheme(styles Styles) messagebox.Styles {
	return messagebox.Styles{
		Title:  styles.Title,
		Muted:  styles.Muted,
		Border: styles.FocusBorder,
	}
}

// renderStatusMessage fills a view with a centered notice box.
func renderStatusMessage(title, msg string, styles Styles, width, height int) string {
	return messagebox.Render(messageBoxStylesFromTheme(styles), title, msg, width, height)
}
