// pkg/render/color.go
package render

import (
	"image/color"

	"go-rack-editor/internal/config"
)

// RackColors holds the palette for the rail background and selection overlay.
type RackColors struct {
	BackgroundColor    color.RGBA
	RailColor          color.RGBA
	RailHoleColor      color.RGBA
	RailEdgeColor      color.RGBA
	SelectionFillColor color.RGBA
	SelectionEdgeColor color.RGBA
	StrokeWidth        float32
}

// DefaultColors reads the palette from config.
func DefaultColors() RackColors {
	return RackColors{
		BackgroundColor:    config.BackgroundColor,
		RailColor:          config.RailColor,
		RailHoleColor:      config.RailHoleColor,
		RailEdgeColor:      config.RailEdgeColor,
		SelectionFillColor: config.SelectionFillColor,
		SelectionEdgeColor: config.SelectionEdgeColor,
		StrokeWidth:        config.StrokeWidth,
	}
}

// DarkenColor halves the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor adds amount to each channel, saturating at 255.
func LightenColor(c color.RGBA, amount int) color.RGBA {
	return color.RGBA{
		R: uint8(min(255, int(c.R)+amount)),
		G: uint8(min(255, int(c.G)+amount)),
		B: uint8(min(255, int(c.B)+amount)),
		A: c.A,
	}
}
