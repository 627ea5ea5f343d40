// internal/config/config.go
package config

import "image/color"

const (
	AppTitle   = "Rack Editor"
	AppVersion = "0.0.1"

	ScreenWidth  = 1200
	ScreenHeight = 900

	// Stock rack geometry. One HP is 15.2 units wide, a rail 380 tall.
	GridUnit   = 15.2
	RailHeight = 380.0
	OriginX    = 100.0
	OriginY    = 100.0

	RailCount   = 24  // rails drawn below the origin
	RailColumns = 200 // HP columns per rail

	MinZoom     = 0.1
	MaxZoom     = 5.0
	DefaultZoom = 1.0
	ZoomStep    = 1.1

	ScrollStep        = 40.0
	ClickDebounceTime = 100 // ms
	MaxDeltaTime      = 0.06

	StatusBarHeight = 22
	PromptWidth     = 420
	PromptHeight    = 90
	MessageTTL      = 4.0 // seconds a status message stays visible

	StrokeWidth = 2.0
)

var (
	BackgroundColor    = color.RGBA{24, 24, 28, 255}
	RailColor          = color.RGBA{58, 58, 64, 255}
	RailHoleColor      = color.RGBA{30, 30, 34, 255}
	RailEdgeColor      = color.RGBA{120, 120, 128, 255}
	PlateColor         = color.RGBA{205, 205, 200, 255}
	PlateEdgeColor     = color.RGBA{150, 150, 145, 255}
	PlateScrewColor    = color.RGBA{110, 110, 110, 255}
	SelectionFillColor = color.RGBA{255, 140, 0, 40}
	SelectionEdgeColor = color.RGBA{255, 140, 0, 255}
	StatusBarColor     = color.RGBA{40, 40, 48, 230}
	TextLightColor     = color.RGBA{240, 240, 240, 255}
	TextDimColor       = color.RGBA{150, 150, 160, 255}
	ErrorTextColor     = color.RGBA{255, 110, 100, 255}
	PromptColor        = color.RGBA{50, 50, 60, 245}
	PromptBorderColor  = color.RGBA{100, 149, 237, 255}
	DimOverlayColor    = color.RGBA{0, 0, 0, 128}
)
