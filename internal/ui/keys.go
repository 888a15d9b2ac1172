package ui

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
)

// KeyMap holds the bindings handled by the app before the active view.
type KeyMap struct {
	Quit  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Help  key.Binding
	Views []key.Binding
}

// NewKeyMap returns the global bindings, with one digit binding per view
// name in order.
func NewKeyMap(viewNames ...string) KeyMap {
	km := KeyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Next: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		Prev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
	for i, name := range viewNames {
		if i >= 9 {
			break
		}
		digit := strconv.Itoa(i + 1)
		km.Views = append(km.Views, key.NewBinding(
			key.WithKeys(digit),
			key.WithHelp(digit, strings.ToLower(name)),
		))
	}
	return km
}

// Global lists every binding for the help dialog.
func (k KeyMap) Global() []key.Binding {
	return append(append([]key.Binding(nil), k.Views...), k.Next, k.Prev, k.Help, k.Quit)
}
