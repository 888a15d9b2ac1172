package views

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/ethercheck/ethercheck/internal/mathutil"
	"github.com/ethercheck/ethercheck/internal/ui/components/frame"
	"github.com/ethercheck/ethercheck/internal/ui/components/jsonview"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs/help"
	"github.com/ethercheck/ethercheck/internal/ui/format"
)

// horizontal scroll step in columns
const responseHScroll = 8

// Response shows the raw JSON body of the graph on screen.
type Response struct {
	width  int
	height int
	styles Styles

	url     string
	raw     []byte
	json    jsonview.Model
	yOffset int
	xOffset int

	frameStyles frame.Styles
}

// NewResponse creates the response view.
func NewResponse() *Response {
	return &Response{json: jsonview.New(jsonview.WithLineNumbers())}
}

// Init implements View.
func (r *Response) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (r *Response) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ResponseMsg:
		r.url = msg.URL
		r.raw = msg.Raw
		r.json.SetJSON(msg.Raw)
		r.yOffset = 0
		r.xOffset = 0
		return r, nil

	case ClearGraphMsg:
		r.url = ""
		r.raw = nil
		r.json.SetJSON(nil)
		r.yOffset = 0
		r.xOffset = 0
		return r, nil

	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			r.scrollBy(-3)
		case tea.MouseWheelDown:
			r.scrollBy(3)
		case tea.MouseWheelLeft:
			r.scrollRight(-responseHScroll)
		case tea.MouseWheelRight:
			r.scrollRight(responseHScroll)
		}
		return r, nil

	case tea.KeyMsg:
		page := max(r.json.Height()-1, 1)
		switch msg.String() {
		case "up", "k":
			r.scrollBy(-1)
		case "down", "j":
			r.scrollBy(1)
		case "pgup", "ctrl+u":
			r.scrollBy(-page)
		case "pgdown", "ctrl+d":
			r.scrollBy(page)
		case "home", "g":
			r.yOffset = 0
		case "end", "G":
			r.yOffset = r.maxYOffset()
		case "left", "h":
			r.scrollRight(-responseHScroll)
		case "right", "l":
			r.scrollRight(responseHScroll)
		case "y":
			return r, copyTextCmd(string(r.raw), "response")
		case "u":
			return r, copyTextCmd(r.url, "request URL")
		}
		return r, nil
	}

	return r, nil
}

// View implements View.
func (r *Response) View() string {
	if r.width <= 0 || r.height <= 0 {
		return ""
	}
	if r.json.LineCount() == 0 {
		return renderStatusMessage("Response", "No response yet", r.styles, r.width, r.height)
	}

	contentWidth := max(r.width-4, 1)
	content := r.styles.Muted.Render(ansi.Truncate(r.url, contentWidth, "…")) + "\n" +
		r.json.View(r.yOffset, r.xOffset)

	return frame.New(
		frame.WithStyles(r.frameStyles),
		frame.WithTitle("Response"),
		frame.WithTitlePadding(0),
		frame.WithMeta(r.meta()),
		frame.WithContent(content),
		frame.WithPadding(1),
		frame.WithSize(r.width, r.height),
		frame.WithMinHeight(5),
		frame.WithFocused(true),
	).View()
}

// Name implements View.
func (r *Response) Name() string {
	return "Response"
}

// ShortHelp implements View.
func (r *Response) ShortHelp() []key.Binding {
	return []key.Binding{
		helpBinding([]string{"j", "k"}, "j/k", "scroll"),
		helpBinding([]string{"y"}, "y", "copy"),
	}
}

// HelpSections implements HelpProvider.
func (r *Response) HelpSections() []help.Section {
	return []help.Section{{
		Title: "Response",
		Bindings: []key.Binding{
			helpBinding([]string{"up", "k"}, "↑/k", "scroll up"),
			helpBinding([]string{"down", "j"}, "↓/j", "scroll down"),
			helpBinding([]string{"pgup", "ctrl+u"}, "pgup", "page up"),
			helpBinding([]string{"pgdown", "ctrl+d"}, "pgdn", "page down"),
			helpBinding([]string{"home", "g"}, "g/home", "top"),
			helpBinding([]string{"end", "G"}, "G/end", "bottom"),
			helpBinding([]string{"left", "h", "right", "l"}, "h/l", "scroll sideways"),
			helpBinding([]string{"y"}, "y", "copy JSON"),
			helpBinding([]string{"u"}, "u", "copy request URL"),
		},
	}}
}

// SetSize implements View.
func (r *Response) SetSize(width, height int) View {
	r.width = width
	r.height = height
	// frame border and padding, plus the URL line
	r.json.SetSize(max(width-4, 1), max(height-3, 1))
	r.yOffset = mathutil.Clamp(r.yOffset, 0, r.maxYOffset())
	return r
}

// SetStyles implements View.
func (r *Response) SetStyles(styles Styles) View {
	r.styles = styles
	r.frameStyles = frameStylesFromTheme(styles)
	r.json.SetStyles(jsonStylesFromTheme(styles))
	return r
}

// Offsets returns the vertical and horizontal scroll positions.
func (r *Response) Offsets() (int, int) {
	return r.yOffset, r.xOffset
}

func (r *Response) scrollBy(delta int) {
	r.yOffset = mathutil.Clamp(r.yOffset+delta, 0, r.maxYOffset())
}

func (r *Response) scrollRight(delta int) {
	maxX := max(r.json.MaxWidth()-r.json.TextWidth(), 0)
	r.xOffset = mathutil.Clamp(r.xOffset+delta, 0, maxX)
}

func (r *Response) maxYOffset() int {
	return max(r.json.LineCount()-r.json.Height(), 0)
}

func (r *Response) meta() string {
	parts := []string{
		r.styles.MetricLabel.Render("lines: ") + r.styles.MetricValue.Render(strconv.Itoa(r.json.LineCount())),
		r.styles.MetricLabel.Render("size: ") + r.styles.MetricValue.Render(format.Bytes(int64(len(r.raw)))),
	}
	return strings.Join(parts, r.styles.Muted.Render(" • "))
}
