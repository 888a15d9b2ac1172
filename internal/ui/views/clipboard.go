package views

import (
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

func copyTextCmd(text, what string) tea.Cmd {
	if text == "" {
		return nil
	}
	return func() tea.Msg {
		if err := clipboardWrite(text); err != nil {
			return ErrorMsg{Title: "Copy failed", Err: err}
		}
		return StatusMsg{Text: "copied " + what}
	}
}
