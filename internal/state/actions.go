// internal/state/actions.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a keyboard command of the editor screen.
type Action int

const (
	ActionNone Action = iota
	ActionDeleteSelected
	ActionDeselectAll
	ActionSave
	ActionSaveAs
	ActionOpen
	ActionNew
	ActionZoomIn
	ActionZoomOut
	ActionZoomReset
	ActionFullscreen
)

func (a Action) String() string {
	switch a {
	case ActionDeleteSelected:
		return "delete-selected"
	case ActionDeselectAll:
		return "deselect-all"
	case ActionSave:
		return "save"
	case ActionSaveAs:
		return "save-as"
	case ActionOpen:
		return "open"
	case ActionNew:
		return "new"
	case ActionZoomIn:
		return "zoom-in"
	case ActionZoomOut:
		return "zoom-out"
	case ActionZoomReset:
		return "zoom-reset"
	case ActionFullscreen:
		return "fullscreen"
	}
	return "none"
}

// Modifiers are the held modifier keys.
type Modifiers struct {
	Ctrl  bool
	Shift bool
}

func currentModifiers() Modifiers {
	return Modifiers{
		Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		Shift: ebiten.IsKeyPressed(ebiten.KeyShift),
	}
}

// ActionFor maps a freshly pressed key to an action.
func ActionFor(key ebiten.Key, mods Modifiers) Action {
	switch key {
	case ebiten.KeyDelete, ebiten.KeyBackspace:
		return ActionDeleteSelected
	case ebiten.KeyEscape:
		return ActionDeselectAll
	case ebiten.KeyF11:
		return ActionFullscreen
	}
	if !mods.Ctrl {
		return ActionNone
	}
	switch key {
	case ebiten.KeyS:
		if mods.Shift {
			return ActionSaveAs
		}
		return ActionSave
	case ebiten.KeyO:
		return ActionOpen
	case ebiten.KeyN:
		return ActionNew
	case ebiten.KeyEqual, ebiten.KeyNumpadAdd:
		return ActionZoomIn
	case ebiten.KeyMinus, ebiten.KeyNumpadSubtract:
		return ActionZoomOut
	case ebiten.KeyDigit0, ebiten.KeyNumpad0:
		return ActionZoomReset
	}
	return ActionNone
}

// pressedActions collects the actions triggered this frame.
func pressedActions() []Action {
	mods := currentModifiers()
	var actions []Action
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if a := ActionFor(key, mods); a != ActionNone {
			actions = append(actions, a)
		}
	}
	return actions
}
