// Package jsonview renders syntax-highlighted JSON documents line by line.
package jsonview

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/x/ansi"

	"github.com/ethercheck/ethercheck/internal/mathutil"
	"github.com/ethercheck/ethercheck/internal/ui/components/scrollbar"
)

// Styles holds styles for JSON tokens and the view chrome.
type Styles struct {
	Text        lipgloss.Style
	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Bool        lipgloss.Style
	Null        lipgloss.Style
	Punctuation lipgloss.Style
	Muted       lipgloss.Style
	Scrollbar   scrollbar.Styles
}

// Model holds a formatted JSON document and renders windows of it with a
// line-number gutter and a scrollbar.
type Model struct {
	styles Styles
	width  int
	height int
	gutter bool

	lines    []string
	tokens   [][]chroma.Token
	maxWidth int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new JSON view model.
func New(opts ...Option) Model {
	var m Model
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithSize sets the dimensions.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithLineNumbers shows line numbers in a left gutter.
func WithLineNumbers() Option {
	return func(m *Model) {
		m.gutter = true
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize sets the dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Height returns the number of visible lines.
func (m Model) Height() int {
	return m.height
}

// LineCount returns the number of lines.
func (m Model) LineCount() int {
	return len(m.lines)
}

// MaxWidth returns the maximum line width.
func (m Model) MaxWidth() int {
	return m.maxWidth
}

// TextWidth is the width left for document text once the gutter and the
// scrollbar are placed.
func (m Model) TextWidth() int {
	width := m.width - m.gutterWidth()
	if scrollbar.Needed(len(m.lines), m.height) {
		width -= scrollbar.Width + 1
	}
	return max(width, 1)
}

// gutterWidth is the digit count of the last line number plus a space.
func (m Model) gutterWidth() int {
	if !m.gutter || len(m.lines) == 0 {
		return 0
	}
	return len(strconv.Itoa(len(m.lines))) + 1
}

// SetJSON indents and tokenizes a raw JSON document. Input that is not
// valid JSON is shown as plain text.
func (m *Model) SetJSON(raw []byte) {
	m.lines = nil
	m.tokens = nil
	m.maxWidth = 0

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return
	}

	var buf bytes.Buffer
	text := string(raw)
	valid := json.Indent(&buf, raw, "", "  ") == nil
	if valid {
		text = buf.String()
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	m.lines = strings.Split(text, "\n")
	if valid {
		m.tokens = tokenizeJSONLines(text)
		if len(m.tokens) != len(m.lines) {
			m.tokens = nil
		}
	}

	for _, line := range m.lines {
		m.maxWidth = max(m.maxWidth, ansi.StringWidth(line))
	}
}

// Lines returns the formatted lines without styling.
func (m Model) Lines() []string {
	return m.lines
}

// RenderLine renders a single line with horizontal scroll and syntax highlighting.
func (m Model) RenderLine(index, offset, width int) string {
	if width <= 0 {
		return ""
	}
	if index < 0 || index >= len(m.lines) {
		return ""
	}
	if len(m.tokens) == len(m.lines) {
		return m.renderTokens(m.tokens[index], offset, width)
	}

	line := applyHorizontalScroll(m.lines[index], offset, width)
	return m.styles.Text.Render(line)
}

// View renders the window of lines starting at yOffset, scrolled right by
// xOffset. yOffset is clamped so the window never runs past the last line.
func (m Model) View(yOffset, xOffset int) string {
	if m.width <= 0 || m.height <= 0 || len(m.lines) == 0 {
		return ""
	}
	yOffset = mathutil.Clamp(yOffset, 0, max(len(m.lines)-m.height, 0))
	end := min(yOffset+m.height, len(m.lines))

	textWidth := m.TextWidth()
	digits := m.gutterWidth() - 1
	var bar []string
	if scrollbar.Needed(len(m.lines), m.height) {
		bar = scrollbar.Lines(m.styles.Scrollbar, end-yOffset, len(m.lines), m.height, yOffset)
	}

	out := make([]string, 0, end-yOffset)
	for i := yOffset; i < end; i++ {
		line := m.RenderLine(i, xOffset, textWidth)
		if digits > 0 {
			number := strconv.Itoa(i + 1)
			line = m.styles.Muted.Render(strings.Repeat(" ", digits-len(number))+number) + " " + line
		}
		if bar != nil {
			line += " " + bar[i-yOffset]
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m Model) renderTokens(tokens []chroma.Token, offset, width int) string {
	if width <= 0 {
		return ""
	}
	offset = max(offset, 0)

	end := offset + width
	var builder strings.Builder
	col := 0

	for _, token := range tokens {
		if token.Type == chroma.EOFType {
			break
		}

		tokenWidth := lipgloss.Width(token.Value)
		if tokenWidth == 0 {
			continue
		}

		tokenStart := col
		tokenEnd := col + tokenWidth

		if tokenEnd > offset && tokenStart < end {
			start := mathutil.Clamp(offset-tokenStart, 0, tokenWidth)
			stop := mathutil.Clamp(end-tokenStart, 0, tokenWidth)
			segment := ansi.Cut(token.Value, start, stop)
			if segment != "" {
				builder.WriteString(m.styleForToken(token).Render(segment))
			}
		}

		col = tokenEnd
		if col >= end {
			break
		}
	}

	rendered := builder.String()
	if renderedWidth := lipgloss.Width(rendered); renderedWidth < width {
		rendered += strings.Repeat(" ", width-renderedWidth)
	}
	return rendered
}

func (m Model) styleForToken(token chroma.Token) lipgloss.Style {
	switch {
	case token.Type == chroma.NameTag:
		return m.styles.Key
	case token.Type.InSubCategory(chroma.LiteralString):
		return m.styles.String
	case token.Type.InSubCategory(chroma.LiteralNumber):
		return m.styles.Number
	case token.Type.InCategory(chroma.Keyword):
		if token.Value == "null" {
			return m.styles.Null
		}
		return m.styles.Bool
	case token.Type.InCategory(chroma.Comment):
		return m.styles.Muted
	case token.Type == chroma.Punctuation:
		return m.styles.Punctuation
	default:
		return m.styles.Text
	}
}

func applyHorizontalScroll(line string, offset, visibleWidth int) string {
	if visibleWidth <= 0 {
		return ""
	}
	offset = max(offset, 0)

	cut := ansi.Cut(line, offset, offset+visibleWidth)
	cutWidth := lipgloss.Width(cut)
	if cutWidth < visibleWidth {
		cut += strings.Repeat(" ", visibleWidth-cutWidth)
	}
	return cut
}

func tokenizeJSONLines(jsonText string) [][]chroma.Token {
	if jsonLexer == nil {
		return nil
	}

	iterator, err := jsonLexer.Tokenise(nil, jsonText)
	if err != nil {
		return nil
	}

	lines := [][]chroma.Token{{}}
	for _, token := range iterator.Tokens() {
		if token.Type == chroma.EOFType {
			break
		}
		if token.Value == "" {
			continue
		}

		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, []chroma.Token{})
			}
			if part == "" {
				continue
			}
			lines[len(lines)-1] = append(lines[len(lines)-1], chroma.Token{Type: token.Type, Value: part})
		}
	}

	return lines
}

var jsonLexer = func() chroma.Lexer {
	lexer := lexers.Get("json")
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}()
