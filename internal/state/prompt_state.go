// internal/state/prompt_state.go
package state

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-rack-editor/internal/config"
	"go-rack-editor/internal/storage"
	"go-rack-editor/internal/ui"
)

var _ State = (*PromptState)(nil)

// PromptMode says what a confirmed name is used for.
type PromptMode int

const (
	PromptSave PromptMode = iota
	PromptOpen
)

// PromptState asks for a rack name over the editor screen.
type PromptState struct {
	sm       *StateMachine
	previous *EditorState
	mode     PromptMode
	prompt   *ui.Prompt
	chars    []rune
}

func NewPromptState(sm *StateMachine, previous *EditorState, mode PromptMode) *PromptState {
	label := "Save rack as:"
	if mode == PromptOpen {
		label = "Open rack:"
	}
	initial, ok := previous.editor.CurrentName()
	if !ok {
		initial = storage.DefaultName
	}
	return &PromptState{
		sm:       sm,
		previous: previous,
		mode:     mode,
		prompt:   ui.NewPrompt(label, initial, config.ScreenWidth, config.ScreenHeight),
	}
}

// Prompt exposes the entry widget.
func (s *PromptState) Prompt() *ui.Prompt {
	return s.prompt
}

func (s *PromptState) Enter() {}

func (s *PromptState) Update(deltaTime float64) {
	s.prompt.Update(deltaTime)
	s.previous.statusBar.Update(deltaTime)

	s.chars = ebiten.AppendInputChars(s.chars[:0])
	if len(s.chars) > 0 {
		s.prompt.AppendChars(s.chars)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) || inpututil.KeyPressDuration(ebiten.KeyBackspace) > 30 {
		s.prompt.Backspace()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape) || s.prompt.Cancel.IsClicked():
		s.Cancel()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) || s.prompt.Confirm.IsClicked():
		s.Submit()
	}
}

// Submit saves or opens the typed name. On failure the prompt stays open
// with the error shown.
func (s *PromptState) Submit() bool {
	name := storage.CanonicalName(s.prompt.Value())
	if err := storage.ValidateName(name); err != nil {
		s.prompt.SetError("invalid name")
		return false
	}

	editor := s.previous.editor
	ctx := s.previous.ctx
	var err error
	if s.mode == PromptOpen {
		err = editor.Load(ctx, name)
	} else {
		err = editor.Save(ctx, name)
	}
	if err != nil {
		msg := err.Error()
		if errors.Is(err, storage.ErrNotFound) {
			msg = "no rack named " + name
		}
		s.prompt.SetError(msg)
		s.previous.statusBar.Error(err)
		return false
	}
	s.sm.Pop()
	return true
}

// Cancel returns to the editor untouched.
func (s *PromptState) Cancel() {
	s.sm.Pop()
}

func (s *PromptState) Draw(screen *ebiten.Image) {
	s.prompt.Draw(screen)
}

func (s *PromptState) Exit() {}
