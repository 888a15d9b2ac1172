package filterinput

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func press(text string) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Text: text, Code: []rune(text)[0]})
}

func TestFilterInputEditing(t *testing.T) {
	m := New()

	m, _, handled := m.Update(press("x"))
	assert.False(t, handled, "keys pass through while idle")

	m, _, handled = m.Update(press("/"))
	assert.True(t, handled)
	assert.True(t, m.Editing())

	for _, ch := range []string{"g", "e", "t"} {
		m, _, _ = m.Update(press(ch))
	}
	assert.Equal(t, "get", m.Value(), "query applies while typing")

	m, _, _ = m.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
	assert.False(t, m.Editing())
	assert.Equal(t, "get", m.Value())

	m, _, handled = m.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
	assert.True(t, handled)
	assert.Empty(t, m.Value())

	_, _, handled = m.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
	assert.False(t, handled, "esc without a query is left to the view")
}

func TestFilterInputEscapeWhileEditing(t *testing.T) {
	m := New(WithPrompt("> "), WithPlaceholder("filter"))
	m.SetWidth(20)

	m, _, _ = m.Update(press("/"))
	m, _, _ = m.Update(press("a"))
	m, _, _ = m.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))

	assert.False(t, m.Editing())
	assert.Empty(t, m.Value())
}
