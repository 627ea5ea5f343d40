// internal/app/viewport.go
package app

import (
	"go-rack-editor/internal/config"
	"go-rack-editor/internal/utils"
	"go-rack-editor/pkg/rackgrid"
)

// Viewport maps screen pixels to rack coordinates.
// screen = (rack - Offset) * Zoom
type Viewport struct {
	zoom   float64
	offset rackgrid.Point
}

func NewViewport() *Viewport {
	return &Viewport{zoom: config.DefaultZoom}
}

func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// Offset is the rack coordinate shown at the top-left of the screen.
func (v *Viewport) Offset() rackgrid.Point {
	return v.offset
}

// SetZoom clamps zoom to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(zoom float64) {
	v.zoom = utils.Clamp(zoom, config.MinZoom, config.MaxZoom)
}

func (v *Viewport) ZoomIn() {
	v.SetZoom(v.zoom * config.ZoomStep)
}

func (v *Viewport) ZoomOut() {
	v.SetZoom(v.zoom / config.ZoomStep)
}

func (v *Viewport) ResetZoom() {
	v.zoom = config.DefaultZoom
}

// ZoomAround changes zoom by factor while keeping the rack point under
// anchor (screen space) fixed.
func (v *Viewport) ZoomAround(anchor rackgrid.Point, factor float64) {
	before := v.ScreenToRack(anchor)
	v.SetZoom(v.zoom * factor)
	v.offset = rackgrid.Pt(before.X-anchor.X/v.zoom, before.Y-anchor.Y/v.zoom)
}

// Scroll pans by a screen-space delta.
func (v *Viewport) Scroll(dx, dy float64) {
	v.offset = v.offset.Add(rackgrid.Pt(dx/v.zoom, dy/v.zoom))
}

func (v *Viewport) ScreenToRack(p rackgrid.Point) rackgrid.Point {
	return rackgrid.Pt(p.X/v.zoom+v.offset.X, p.Y/v.zoom+v.offset.Y)
}

func (v *Viewport) RackToScreen(p rackgrid.Point) rackgrid.Point {
	return rackgrid.Pt((p.X-v.offset.X)*v.zoom, (p.Y-v.offset.Y)*v.zoom)
}
