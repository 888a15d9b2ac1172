// Package dialogs provides the modal dialog stack and its messages.
package dialogs

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/ethercheck/ethercheck/internal/ui/components/overlay"
)

// DialogID identifies a dialog instance.
type DialogID string

// DialogModel represents a dialog component that can be displayed.
type DialogModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (DialogModel, tea.Cmd)
	View() string
	Position() (int, int)
	ID() DialogID
}

// CloseCallback allows dialogs to perform cleanup when closed.
type CloseCallback interface {
	Close() tea.Cmd
}

// OpenDialogMsg is sent to open a new dialog.
type OpenDialogMsg struct {
	Model DialogModel
}

// CloseDialogMsg is sent to close the topmost dialog.
type CloseDialogMsg struct{}

// Stack holds the open dialogs. Only the top one receives input.
type Stack struct {
	width, height int
	dialogs       []DialogModel
}

// NewStack creates an empty dialog stack.
func NewStack() Stack {
	return Stack{}
}

// Update handles the dialog lifecycle. Window sizes reach every dialog; other
// messages go to the top one.
func (s Stack) Update(msg tea.Msg) (Stack, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.dialogs = slices.Clone(s.dialogs)
		cmds := make([]tea.Cmd, 0, len(s.dialogs))
		for i := range s.dialogs {
			var cmd tea.Cmd
			s.dialogs[i], cmd = s.dialogs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return s, tea.Batch(cmds...)

	case OpenDialogMsg:
		return s.open(msg.Model)

	case CloseDialogMsg:
		if len(s.dialogs) == 0 {
			return s, nil
		}
		top := s.dialogs[len(s.dialogs)-1]
		s.dialogs = slices.Clone(s.dialogs[:len(s.dialogs)-1])
		if closeable, ok := top.(CloseCallback); ok {
			return s, closeable.Close()
		}
		return s, nil
	}

	if len(s.dialogs) == 0 {
		return s, nil
	}
	s.dialogs = slices.Clone(s.dialogs)
	last := len(s.dialogs) - 1
	var cmd tea.Cmd
	s.dialogs[last], cmd = s.dialogs[last].Update(msg)
	return s, cmd
}

// HasDialogs reports whether any dialog is open.
func (s Stack) HasDialogs() bool {
	return len(s.dialogs) > 0
}

// Len returns the number of open dialogs.
func (s Stack) Len() int {
	return len(s.dialogs)
}

// Active returns the top dialog, or nil.
func (s Stack) Active() DialogModel {
	if len(s.dialogs) == 0 {
		return nil
	}
	return s.dialogs[len(s.dialogs)-1]
}

// Overlay draws every open dialog over background, bottom of the stack first.
func (s Stack) Overlay(background string) string {
	for _, dialog := range s.dialogs {
		row, col := dialog.Position()
		background = overlay.Place(background, dialog.View(), row, col)
	}
	return background
}

// open pushes model. A dialog with the same id already in the stack is moved
// to the top with its state kept, instead of opening a second copy.
func (s Stack) open(model DialogModel) (Stack, tea.Cmd) {
	idx := slices.IndexFunc(s.dialogs, func(d DialogModel) bool {
		return d.ID() == model.ID()
	})
	switch {
	case idx == len(s.dialogs)-1 && idx >= 0:
		return s, nil
	case idx >= 0:
		model = s.dialogs[idx]
		s.dialogs = slices.Delete(slices.Clone(s.dialogs), idx, idx+1)
	}

	initCmd := model.Init()
	model, sizeCmd := model.Update(tea.WindowSizeMsg{Width: s.width, Height: s.height})
	s.dialogs = append(slices.Clone(s.dialogs), model)
	return s, tea.Batch(initCmd, sizeCmd)
}
