// internal/ui/status_bar.go
package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-rack-editor/internal/config"
	"go-rack-editor/internal/utils"
)

// StatusInfo is what the status bar reports about the session.
type StatusInfo struct {
	Title    string
	Modules  int
	Selected int
	Zoom     float64
}

// StatusBar is the strip along the bottom of the window.
type StatusBar struct {
	face     font.Face
	message  string
	isError  bool
	ttl      float64
	info     StatusInfo
	width    int
	height   int
	screenHt int
}

func NewStatusBar(width, screenHeight int) *StatusBar {
	return &StatusBar{
		face:     DefaultFace,
		width:    width,
		height:   config.StatusBarHeight,
		screenHt: screenHeight,
	}
}

// SetInfo updates the session counters.
func (s *StatusBar) SetInfo(info StatusInfo) {
	s.info = info
}

// Notify shows msg for config.MessageTTL seconds.
func (s *StatusBar) Notify(msg string) {
	s.message, s.isError, s.ttl = msg, false, config.MessageTTL
}

// Error shows err until it times out like any other message.
func (s *StatusBar) Error(err error) {
	s.message, s.isError, s.ttl = err.Error(), true, config.MessageTTL
}

// Message returns the visible message, if any.
func (s *StatusBar) Message() (string, bool) {
	return s.message, s.ttl > 0
}

func (s *StatusBar) Update(deltaTime float64) {
	if s.ttl <= 0 {
		return
	}
	s.ttl -= deltaTime
	if s.ttl <= 0 {
		s.message, s.isError = "", false
	}
}

// messageAlpha fades the message out over its last second.
func (s *StatusBar) messageAlpha() float64 {
	return utils.Lerp(0, 1, utils.Clamp(s.ttl, 0, 1))
}

// Line is the left-hand status text.
func (s *StatusBar) Line() string {
	return fmt.Sprintf("%s | modules: %d | selected: %d | zoom: %d%%",
		s.info.Title, s.info.Modules, s.info.Selected, int(math.Round(s.info.Zoom*100)))
}

func (s *StatusBar) Draw(screen *ebiten.Image) {
	y := s.screenHt - s.height
	vector.DrawFilledRect(screen, 0, float32(y), float32(s.width), float32(s.height), config.StatusBarColor, false)

	ty := y + (s.height-s.face.Metrics().Height.Ceil())/2
	drawText(screen, s.Line(), s.face, 8, ty, config.TextLightColor)

	if msg, ok := s.Message(); ok {
		clr := config.TextDimColor
		if s.isError {
			clr = config.ErrorTextColor
		}
		a := s.messageAlpha()
		faded := color.RGBA{
			R: uint8(float64(clr.R) * a),
			G: uint8(float64(clr.G) * a),
			B: uint8(float64(clr.B) * a),
			A: uint8(float64(clr.A) * a),
		}
		drawText(screen, msg, s.face, s.width-TextWidth(s.face, msg)-8, ty, faded)
	}
}
