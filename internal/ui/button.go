// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-rack-editor/internal/config"
)

// Button is a clickable labelled rectangle.
type Button struct {
	Rect       image.Rectangle
	Text       string
	TextColor  color.RGBA
	BgColor    color.RGBA
	HoverColor color.RGBA
	Face       font.Face
}

func NewButton(rect image.Rectangle, label string) *Button {
	return &Button{
		Rect:       rect,
		Text:       label,
		TextColor:  config.TextLightColor,
		BgColor:    config.StatusBarColor,
		HoverColor: config.PromptBorderColor,
		Face:       DefaultFace,
	}
}

// Contains reports whether (x, y) is over the button.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// IsClicked reports a left click released over the button this frame.
func (b *Button) IsClicked() bool {
	if !inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		return false
	}
	return b.Contains(ebiten.CursorPosition())
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BgColor
	if b.Contains(ebiten.CursorPosition()) {
		bg = b.HoverColor
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	vector.StrokeRect(screen, x, y, w, h, 1, config.TextDimColor, false)

	tw := TextWidth(b.Face, b.Text)
	th := b.Face.Metrics().Height.Ceil()
	drawText(screen, b.Text, b.Face, b.Rect.Min.X+(b.Rect.Dx()-tw)/2, b.Rect.Min.Y+(b.Rect.Dy()-th)/2, b.TextColor)
}
