// internal/ui/font.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFace is the bitmap face every widget falls back to.
var DefaultFace font.Face = basicfont.Face7x13

// TextWidth measures s in face.
func TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, face font.Face, x, y int, clr color.Color) {
	text.Draw(dst, s, face, x, y+face.Metrics().Ascent.Ceil(), clr)
}
