package frame

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// renderTitle lays out "text[filter]" in at most maxWidth cells including
// padding. The filter shrinks first; the text is cut only when it alone does
// not fit.
func renderTitle(state StyleState, text, filter string, maxWidth, padding int) string {
	budget := maxWidth - 2*padding
	if text == "" || budget <= 0 {
		return ""
	}

	filter = strings.TrimSpace(filter)
	// room left for the filter once the text and both brackets are placed
	room := budget - lipgloss.Width(text) - 2

	var rendered string
	switch {
	case lipgloss.Width(text) > budget:
		rendered = state.Title.Render(ansi.Truncate(text, budget, "…"))
	case filter == "" || room <= 0:
		rendered = state.Title.Render(text)
	default:
		rendered = state.Title.Render(text) +
			state.Muted.Render("[") +
			state.Filter.Render(ansi.Truncate(filter, room, "…")) +
			state.Muted.Render("]")
	}

	if padding <= 0 {
		return rendered
	}
	pad := state.Title.Render(strings.Repeat(" ", padding))
	return pad + rendered + pad
}
