package views

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ethercheck/ethercheck/internal/ui/components/table"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs/help"
)

// Styles holds the view-related styles from the theme
type Styles struct {
	Text           lipgloss.Style
	Muted          lipgloss.Style
	Title          lipgloss.Style
	MetricLabel    lipgloss.Style
	MetricValue    lipgloss.Style
	TableHeader    lipgloss.Style
	TableSelected  lipgloss.Style
	TableSeparator lipgloss.Style
	BorderStyle    lipgloss.Style
	FocusBorder    lipgloss.Style
	FilterFocused  lipgloss.Style
	FilterBlurred  lipgloss.Style
	ScrollbarTrack lipgloss.Style
	ScrollbarThumb lipgloss.Style
	ChartAxis      lipgloss.Style
	ChartLabel     lipgloss.Style
	ChartTooltip   lipgloss.Style
	Error          lipgloss.Style

	JSONKey         lipgloss.Style
	JSONString      lipgloss.Style
	JSONNumber      lipgloss.Style
	JSONBool        lipgloss.Style
	JSONNull        lipgloss.Style
	JSONPunctuation lipgloss.Style
}

// View defines the interface that all views must implement
type View interface {
	// Init returns an initial command for the view
	Init() tea.Cmd

	// Update handles messages and returns the updated view and any commands
	Update(msg tea.Msg) (View, tea.Cmd)

	// View renders the view as a string
	View() string

	// Name returns the display name for this view (shown in navbar)
	Name() string

	// ShortHelp returns keybindings to show in the help view
	ShortHelp() []key.Binding

	// SetSize updates the view dimensions
	SetSize(width, height int) View

	// SetStyles updates the view styles
	SetStyles(styles Styles) View
}

// HelpProvider is implemented by views with a section in the help dialog.
type HelpProvider interface {
	HelpSections() []help.Section
}

// helpBinding describes keys for the help dialog only; views match keys by
// their string form.
func helpBinding(keys []string, label, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// tableHelpBindings lists the navigation keys of a table.
func tableHelpBindings(km table.KeyMap) []key.Binding {
	return []key.Binding{km.LineUp, km.LineDown, km.PageUp, km.PageDown, km.GotoTop, km.GotoBottom}
}
