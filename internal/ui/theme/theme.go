// Package theme defines the dashboard colors and derived styles.
package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/compat"
)

// Theme defines all colors used throughout the UI.
type Theme struct {
	// Base colors
	Primary compat.CompleteAdaptiveColor

	// Text colors
	Text      compat.CompleteAdaptiveColor
	TextMuted compat.CompleteAdaptiveColor

	// Bar colors
	StatusBarBg   compat.CompleteAdaptiveColor
	StatusBarText compat.CompleteAdaptiveColor

	// Border colors
	Border      compat.AdaptiveColor
	BorderFocus compat.CompleteAdaptiveColor

	// Accent colors
	TableSelectedFg compat.AdaptiveColor
	TableSelectedBg compat.AdaptiveColor
	Success         compat.AdaptiveColor
	Error           compat.AdaptiveColor

	// Chart colors
	Axis      compat.AdaptiveColor
	TooltipBg compat.AdaptiveColor

	// JSON colors
	JSONKey    compat.AdaptiveColor
	JSONString compat.AdaptiveColor
	JSONNumber compat.AdaptiveColor
	JSONBool   compat.AdaptiveColor
}

// DefaultTheme is the adaptive color scheme used by default.
// Use Open Color palette when possible to define colors: https://yeun.github.io/open-color/
var DefaultTheme = Theme{
	Primary: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1971c2"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#38bdf8"), ANSI256: lipgloss.Color("39"), ANSI: lipgloss.Color("12")},
	},

	// Text
	Text: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#111827"), ANSI256: lipgloss.Color("0"), ANSI: lipgloss.Color("0")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#F9FAFB"), ANSI256: lipgloss.Color("15"), ANSI: lipgloss.Color("15")},
	},
	TextMuted: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#6B7280"), ANSI256: lipgloss.Color("240"), ANSI: lipgloss.Color("8")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#9CA3AF"), ANSI256: lipgloss.Color("250"), ANSI: lipgloss.Color("7")},
	},

	// Bars
	StatusBarBg: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1c7ed6"), ANSI256: lipgloss.Color("33"), ANSI: lipgloss.Color("12")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#1e293b"), ANSI256: lipgloss.Color("236"), ANSI: lipgloss.Color("4")},
	},
	StatusBarText: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#e2e8f0"), ANSI256: lipgloss.Color("254"), ANSI: lipgloss.Color("15")},
	},

	// Borders
	Border: compat.AdaptiveColor{
		Light: lipgloss.Color("#D1D5DB"), // Gray-300
		Dark:  lipgloss.Color("#334155"), // Slate-700
	},
	BorderFocus: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1971c2"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#0ea5e9"), ANSI256: lipgloss.Color("38"), ANSI: lipgloss.Color("12")},
	},

	// Accents
	TableSelectedFg: compat.AdaptiveColor{
		Light: lipgloss.Color("#FFFFFF"),
		Dark:  lipgloss.Color("#FFFFFF"),
	},
	TableSelectedBg: compat.AdaptiveColor{
		Light: lipgloss.Color("#1971c2"),
		Dark:  lipgloss.Color("#0284c7"),
	},
	Success: compat.AdaptiveColor{
		Light: lipgloss.Color("#16A34A"),
		Dark:  lipgloss.Color("#10b981"),
	},
	Error: compat.AdaptiveColor{
		Light: lipgloss.Color("#e03131"),
		Dark:  lipgloss.Color("#ff6b6b"),
	},

	// Chart
	Axis: compat.AdaptiveColor{
		Light: lipgloss.Color("#94a3b8"),
		Dark:  lipgloss.Color("#475569"),
	},
	TooltipBg: compat.AdaptiveColor{
		Light: lipgloss.Color("#f1f5f9"),
		Dark:  lipgloss.Color("#0f172a"),
	},

	// JSON
	JSONKey: compat.AdaptiveColor{
		Light: lipgloss.Color("#1971c2"),
		Dark:  lipgloss.Color("#74c0fc"),
	},
	JSONString: compat.AdaptiveColor{
		Light: lipgloss.Color("#2f9e44"),
		Dark:  lipgloss.Color("#8ce99a"),
	},
	JSONNumber: compat.AdaptiveColor{
		Light: lipgloss.Color("#e8590c"),
		Dark:  lipgloss.Color("#ffa94d"),
	},
	JSONBool: compat.AdaptiveColor{
		Light: lipgloss.Color("#9c36b5"),
		Dark:  lipgloss.Color("#da77f2"),
	},
}

// Styles holds all lipgloss styles derived from a theme
type Styles struct {
	// Status bar
	StatusBar   lipgloss.Style
	StatusLabel lipgloss.Style
	StatusValue lipgloss.Style
	StatusSep   lipgloss.Style

	// Navbar
	NavBar    lipgloss.Style
	NavItem   lipgloss.Style
	NavKey    lipgloss.Style
	NavActive lipgloss.Style
	NavQuit   lipgloss.Style

	// Content
	ViewTitle lipgloss.Style
	ViewText  lipgloss.Style
	ViewMuted lipgloss.Style

	// Metrics
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style

	// Table
	TableHeader    lipgloss.Style
	TableSelected  lipgloss.Style
	TableSeparator lipgloss.Style

	// Layout helpers
	BorderStyle lipgloss.Style
	FocusBorder lipgloss.Style

	// Scrollbar
	ScrollbarTrack lipgloss.Style
	ScrollbarThumb lipgloss.Style

	// Charts
	ChartAxis     lipgloss.Style
	ChartLabel    lipgloss.Style
	ChartTooltip  lipgloss.Style
	ChartSuccess  lipgloss.Style
	ChartFailure  lipgloss.Style
	FilterFocused lipgloss.Style
	FilterBlurred lipgloss.Style

	// JSON
	JSONKey         lipgloss.Style
	JSONString      lipgloss.Style
	JSONNumber      lipgloss.Style
	JSONBool        lipgloss.Style
	JSONNull        lipgloss.Style
	JSONPunctuation lipgloss.Style

	// Errors
	ErrorTitle  lipgloss.Style
	ErrorBorder lipgloss.Style
}

// NewStyles creates a Styles instance from the default adaptive theme.
func NewStyles() Styles {
	t := DefaultTheme
	return Styles{
		// Status bar
		StatusBar: lipgloss.NewStyle().
			Foreground(t.StatusBarText).
			Background(t.StatusBarBg).
			Padding(0, 1),

		StatusLabel: lipgloss.NewStyle().
			Foreground(t.StatusBarText).
			Background(t.StatusBarBg).
			Faint(true),

		StatusValue: lipgloss.NewStyle().
			Foreground(t.StatusBarText).
			Background(t.StatusBarBg).
			Bold(true),

		StatusSep: lipgloss.NewStyle().
			Foreground(t.StatusBarText).
			Background(t.StatusBarBg).
			Faint(true),

		// Navbar
		NavBar: lipgloss.NewStyle().
			Padding(0, 1),

		NavItem: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		NavKey: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Border).
			Padding(0, 1),

		NavActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			PaddingRight(1),

		NavQuit: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		// Content
		ViewTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		ViewText: lipgloss.NewStyle().
			Foreground(t.Text),

		ViewMuted: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		// Metrics
		MetricLabel: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		MetricValue: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		// Table
		TableHeader: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		TableSelected: lipgloss.NewStyle().
			Foreground(t.TableSelectedFg).
			Background(t.TableSelectedBg),

		TableSeparator: lipgloss.NewStyle().
			Foreground(t.Border),

		// Layout helpers
		BorderStyle: lipgloss.NewStyle().
			Foreground(t.Border),

		FocusBorder: lipgloss.NewStyle().
			Foreground(t.BorderFocus),

		// Scrollbar
		ScrollbarTrack: lipgloss.NewStyle().
			Foreground(t.Border),

		ScrollbarThumb: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		// Charts
		ChartAxis: lipgloss.NewStyle().
			Foreground(t.Axis),

		ChartLabel: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		ChartTooltip: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.TooltipBg),

		ChartSuccess: lipgloss.NewStyle().
			Foreground(t.Success),

		ChartFailure: lipgloss.NewStyle().
			Foreground(t.Error),

		FilterFocused: lipgloss.NewStyle().
			Foreground(t.Primary),

		FilterBlurred: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		// JSON
		JSONKey:         lipgloss.NewStyle().Foreground(t.JSONKey),
		JSONString:      lipgloss.NewStyle().Foreground(t.JSONString),
		JSONNumber:      lipgloss.NewStyle().Foreground(t.JSONNumber),
		JSONBool:        lipgloss.NewStyle().Foreground(t.JSONBool),
		JSONNull:        lipgloss.NewStyle().Foreground(t.TextMuted).Italic(true),
		JSONPunctuation: lipgloss.NewStyle().Foreground(t.TextMuted),

		ErrorTitle: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ErrorBorder: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}
