// internal/state/window.go
package state

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-rack-editor/internal/config"
)

// Window adapts a StateMachine to ebiten.Game.
// The window closes when ctx is cancelled.
type Window struct {
	ctx            context.Context
	stateMachine   *StateMachine
	lastUpdateTime time.Time
}

func NewWindow(ctx context.Context, sm *StateMachine) *Window {
	return &Window{
		ctx:            ctx,
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
}

func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	now := time.Now()
	deltaTime := now.Sub(w.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	w.lastUpdateTime = now
	w.stateMachine.Update(deltaTime)
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.stateMachine.Draw(screen)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}
