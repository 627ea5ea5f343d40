// internal/state/editor_state.go
package state

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-rack-editor/internal/app"
	"go-rack-editor/internal/config"
	"go-rack-editor/internal/event"
	"go-rack-editor/internal/ui"
	"go-rack-editor/pkg/render"
	"go-rack-editor/pkg/rackgrid"
)

var _ State = (*EditorState)(nil)

// EditorState is the main screen: it turns mouse and keyboard input into
// editor operations and draws the rack.
type EditorState struct {
	sm        *StateMachine
	ctx       context.Context
	editor    *app.Editor
	renderer  *render.RackRenderer
	statusBar *ui.StatusBar
	logger    *log.Logger

	lastClickTime time.Time
	title         string
	setTitle      func(string)
	screenHeight  int
}

// NewEditorState builds the editor screen. renderer may be nil when nothing
// is drawn.
func NewEditorState(ctx context.Context, sm *StateMachine, editor *app.Editor, renderer *render.RackRenderer, logger *log.Logger) *EditorState {
	if logger == nil {
		logger = log.Default()
	}
	s := &EditorState{
		sm:           sm,
		ctx:          ctx,
		editor:       editor,
		renderer:     renderer,
		statusBar:    ui.NewStatusBar(config.ScreenWidth, config.ScreenHeight),
		logger:       logger,
		setTitle:     ebiten.SetWindowTitle,
		screenHeight: config.ScreenHeight,
	}
	editor.EventDispatcher.SubscribeFunc(s.onRackEvent, event.RackSyncs...)
	editor.EventDispatcher.SubscribeFunc(s.onSelectionChanged, event.SelectionChanged)
	return s
}

func (s *EditorState) onRackEvent(e event.Event) {
	switch e.Type {
	case event.RackSaved:
		s.statusBar.Notify(fmt.Sprintf("saved %s.json", e.Name))
	case event.RackLoaded:
		s.statusBar.Notify(fmt.Sprintf("loaded %s.json", e.Name))
	case event.RackCleared:
		s.statusBar.Notify("new rack")
	}
	s.refreshTitle()
}

// onSelectionChanged keeps the selected count current between frames.
func (s *EditorState) onSelectionChanged(e event.Event) {
	s.logger.Debug("selection changed", "selected", e.Selected)
	s.refreshTitle()
}

// StatusBar exposes the status line so other screens can report into it.
func (s *EditorState) StatusBar() *ui.StatusBar {
	return s.statusBar
}

func (s *EditorState) Enter() {
	s.refreshTitle()
}

func (s *EditorState) Update(deltaTime float64) {
	s.statusBar.Update(deltaTime)

	for _, a := range pressedActions() {
		if s.Apply(a) {
			return
		}
	}

	s.handleScroll()

	if time.Since(s.lastClickTime) >= config.ClickDebounceTime*time.Millisecond {
		x, y := ebiten.CursorPosition()
		if y < s.screenHeight-config.StatusBarHeight {
			pos := rackgrid.Pt(float64(x), float64(y))
			mods := currentModifiers()
			if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
				s.HandleLeftClick(pos, mods.Ctrl || mods.Shift)
				s.lastClickTime = time.Now()
			} else if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
				s.editor.RemoveAt(pos)
				s.lastClickTime = time.Now()
			}
		}
	}

	s.refreshTitle()
}

// HandleLeftClick selects the plugin under pos, or clears the selection and
// places a new plugin when pos is empty.
func (s *EditorState) HandleLeftClick(pos rackgrid.Point, additive bool) {
	if _, hit := s.editor.PluginAt(pos); hit {
		s.editor.Click(pos, additive)
		return
	}
	s.editor.Click(pos, additive)
	if _, ok := s.editor.Place(pos); !ok {
		s.logger.Debug("placement declined", "x", pos.X, "y", pos.Y)
	}
}

// Apply runs a keyboard action. It reports whether the screen changed.
func (s *EditorState) Apply(a Action) bool {
	v := s.editor.Viewport
	switch a {
	case ActionDeleteSelected:
		if n := s.editor.DeleteSelected(); n > 0 {
			s.statusBar.Notify(fmt.Sprintf("deleted %d", n))
		}
	case ActionDeselectAll:
		s.editor.DeselectAll()
	case ActionSave:
		if err := s.editor.SaveCurrent(s.ctx); err != nil {
			s.statusBar.Error(err)
		}
	case ActionSaveAs:
		s.sm.Push(NewPromptState(s.sm, s, PromptSave))
		return true
	case ActionOpen:
		s.sm.Push(NewPromptState(s.sm, s, PromptOpen))
		return true
	case ActionNew:
		s.editor.New()
	case ActionZoomIn:
		v.ZoomIn()
	case ActionZoomOut:
		v.ZoomOut()
	case ActionZoomReset:
		v.ResetZoom()
	case ActionFullscreen:
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	return false
}

func (s *EditorState) handleScroll() {
	v := s.editor.Viewport
	step := config.ScrollStep
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.Scroll(-step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.Scroll(step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.Scroll(0, -step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.Scroll(0, step)
	}

	wx, wy := ebiten.Wheel()
	if wx == 0 && wy == 0 {
		return
	}
	if currentModifiers().Ctrl {
		x, y := ebiten.CursorPosition()
		v.ZoomAround(rackgrid.Pt(float64(x), float64(y)), math.Pow(config.ZoomStep, wy))
		return
	}
	v.Scroll(-wx*step, -wy*step)
}

func (s *EditorState) refreshTitle() {
	title := s.editor.Title()
	s.statusBar.SetInfo(ui.StatusInfo{
		Title:    title,
		Modules:  s.editor.Rack.Len(),
		Selected: s.editor.Rack.SelectedCount(),
		Zoom:     s.editor.Viewport.Zoom(),
	})
	if title != s.title {
		s.title = title
		s.setTitle(title)
	}
}

func (s *EditorState) Draw(screen *ebiten.Image) {
	if s.renderer != nil {
		s.renderer.Draw(screen, s.editor.Viewport, s.editor.Rack.Plugins())
	}
	s.statusBar.Draw(screen)
}

func (s *EditorState) Exit() {}
