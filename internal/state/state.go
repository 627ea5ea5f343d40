// internal/state/state.go
package state

import "github.com/hajimehoshi/ebiten/v2"

// State is one screen of the editor.
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// StateMachine keeps a stack of screens. Only the top one receives input;
// every screen is drawn bottom-up so overlays sit over the screen they
// were opened from.
type StateMachine struct {
	stack []State
}

// NewStateMachine returns a machine with no state set.
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState exits every stacked state, top first, and enters newState.
func (sm *StateMachine) SetState(newState State) {
	for len(sm.stack) > 0 {
		sm.Pop()
	}
	sm.Push(newState)
}

// Push enters overlay on top of the current state, which stays entered.
func (sm *StateMachine) Push(overlay State) {
	if overlay == nil {
		return
	}
	sm.stack = append(sm.stack, overlay)
	overlay.Enter()
}

// Pop exits the top state. The state below it resumes without a new Enter.
func (sm *StateMachine) Pop() {
	n := len(sm.stack)
	if n == 0 {
		return
	}
	top := sm.stack[n-1]
	sm.stack[n-1] = nil
	sm.stack = sm.stack[:n-1]
	top.Exit()
}

// Current returns the state receiving input.
func (sm *StateMachine) Current() State {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

// Depth is the number of stacked states.
func (sm *StateMachine) Depth() int {
	return len(sm.stack)
}

func (sm *StateMachine) Update(deltaTime float64) {
	if cur := sm.Current(); cur != nil {
		cur.Update(deltaTime)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	for _, s := range sm.stack {
		s.Draw(screen)
	}
}
