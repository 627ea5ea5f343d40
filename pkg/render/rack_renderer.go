package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-rack-editor/internal/rack"
	"go-rack-editor/pkg/rackgrid"
)

// Columns per pre-rendered rail segment.
const segmentCols = 16

// Camera maps rack coordinates to the screen.
type Camera interface {
	Zoom() float64
	RackToScreen(p rackgrid.Point) rackgrid.Point
	ScreenToRack(p rackgrid.Point) rackgrid.Point
}

// ImageSource resolves a plugin's resource handle.
type ImageSource interface {
	Image(res rack.Resource) *ebiten.Image
}

// CellRange is a half-open block of rack cells.
type CellRange struct {
	Col0, Col1 int
	Row0, Row1 int
}

func (r CellRange) Empty() bool {
	return r.Col0 >= r.Col1 || r.Row0 >= r.Row1
}

// RackRenderer draws the rails and the plugins mounted on them.
type RackRenderer struct {
	grid     rackgrid.Grid
	rails    int
	columns  int
	colors   RackColors
	images   ImageSource
	fallback rack.Resource

	fillImg  *ebiten.Image
	fillVs   []ebiten.Vertex
	fillIs   []uint16
	strokeVs []ebiten.Vertex
	strokeIs []uint16

	segment     *ebiten.Image // one pre-rendered run of rail at segmentZoom
	segmentZoom float64
}

// NewRackRenderer draws rails rows by columns cells laid out on g. Plugins
// whose resource has no image are drawn with fallback.
func NewRackRenderer(g rackgrid.Grid, rails, columns int, images ImageSource, fallback rack.Resource) *RackRenderer {
	fillImg := ebiten.NewImage(3, 3)
	fillImg.Fill(color.White)

	return &RackRenderer{
		grid:     g,
		rails:    rails,
		columns:  columns,
		colors:   DefaultColors(),
		images:   images,
		fallback: fallback,
		fillImg:  fillImg.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		fillVs:   make([]ebiten.Vertex, 0, 8),
		fillIs:   make([]uint16, 0, 12),
		strokeVs: make([]ebiten.Vertex, 0, 32),
		strokeIs: make([]uint16, 0, 48),
	}
}

// SetColors replaces the palette and drops the cached background.
func (r *RackRenderer) SetColors(c RackColors) {
	r.colors = c
	r.invalidate()
}

func (r *RackRenderer) invalidate() {
	if r.segment != nil {
		r.segment.Deallocate()
		r.segment = nil
	}
}

// RenderSegment pre-renders a run of rail at zoom.
func (r *RackRenderer) RenderSegment(zoom float64) {
	r.invalidate()

	w := int(math.Ceil(segmentCols * r.grid.Unit * zoom))
	h := int(math.Ceil(r.grid.RailHeight * zoom))
	r.segment = ebiten.NewImage(max(w, 1), max(h, 1))
	r.segmentZoom = zoom

	railW := float32(segmentCols * r.grid.Unit * zoom)
	railH := float32(r.grid.RailHeight * zoom)
	lip := railH * 0.03
	vector.DrawFilledRect(r.segment, 0, 0, railW, railH, r.colors.RailColor, false)
	vector.DrawFilledRect(r.segment, 0, 0, railW, lip, r.colors.RailEdgeColor, false)
	vector.DrawFilledRect(r.segment, 0, railH-lip, railW, lip, r.colors.RailEdgeColor, false)
	shine := LightenColor(r.colors.RailEdgeColor, 40)
	vector.StrokeLine(r.segment, 0, lip, railW, lip, 1, shine, false)
	vector.StrokeLine(r.segment, 0, railH-lip, railW, railH-lip, 1, shine, false)

	unit := float32(r.grid.Unit * zoom)
	hole := unit * 0.3
	for i := 0; i < segmentCols; i++ {
		x := float32(i)*unit + (unit-hole)/2
		vector.DrawFilledRect(r.segment, x, (lip-hole)/2+lip/2, hole, hole/2, r.colors.RailHoleColor, true)
		vector.DrawFilledRect(r.segment, x, railH-lip/2-hole/2, hole, hole/2, r.colors.RailHoleColor, true)
		vector.StrokeLine(r.segment, float32(i)*unit, lip, float32(i)*unit, railH-lip, 1, DarkenColor(r.colors.RailColor), false)
	}
}

// VisibleCells returns the cells of a rails x columns rack that overlap a
// screen of w x h pixels.
func VisibleCells(g rackgrid.Grid, cam Camera, w, h, rails, columns int) CellRange {
	tl := cam.ScreenToRack(rackgrid.Pt(0, 0))
	br := cam.ScreenToRack(rackgrid.Pt(float64(w), float64(h)))
	clamp := func(v, hi int) int {
		return max(0, min(v, hi))
	}
	return CellRange{
		Col0: clamp(int(math.Floor((tl.X-g.Origin.X)/g.Unit)), columns),
		Col1: clamp(int(math.Ceil((br.X-g.Origin.X)/g.Unit)), columns),
		Row0: clamp(int(math.Floor((tl.Y-g.Origin.Y)/g.RailHeight)), rails),
		Row1: clamp(int(math.Ceil((br.Y-g.Origin.Y)/g.RailHeight)), rails),
	}
}

// Draw paints the background, the visible rails and then every plugin in
// manager order, with selected ones highlighted.
func (r *RackRenderer) Draw(screen *ebiten.Image, cam Camera, plugins []rack.Plugin) {
	screen.Fill(r.colors.BackgroundColor)

	zoom := cam.Zoom()
	if r.segment == nil || r.segmentZoom != zoom {
		r.RenderSegment(zoom)
	}

	b := screen.Bounds()
	vis := VisibleCells(r.grid, cam, b.Dx(), b.Dy(), r.rails, r.columns)
	if !vis.Empty() {
		r.drawRails(screen, cam, vis)
	}

	for _, p := range plugins {
		r.drawPlugin(screen, cam, p)
	}
	for _, p := range plugins {
		if p.IsSelected() {
			r.drawSelection(screen, cam, p.Bounds())
		}
	}
}

func (r *RackRenderer) drawRails(screen *ebiten.Image, cam Camera, vis CellRange) {
	start := vis.Col0 - vis.Col0%segmentCols
	for row := vis.Row0; row < vis.Row1; row++ {
		for col := start; col < vis.Col1; col += segmentCols {
			src := r.segment
			if remaining := r.columns - col; remaining < segmentCols {
				w := int(math.Ceil(float64(remaining) * r.grid.Unit * r.segmentZoom))
				src = r.segment.SubImage(image.Rect(0, 0, w, r.segment.Bounds().Dy())).(*ebiten.Image)
			}
			pos := cam.RackToScreen(r.grid.PointOf(rackgrid.Cell{Col: col, Row: row}))
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(math.Round(pos.X), math.Round(pos.Y))
			screen.DrawImage(src, op)
		}
	}
}

func (r *RackRenderer) drawPlugin(screen *ebiten.Image, cam Camera, p rack.Plugin) {
	img := r.images.Image(p.Resource)
	if img == nil {
		img = r.images.Image(r.fallback)
	}
	if img == nil {
		return
	}
	bounds := p.Bounds()
	size := img.Bounds()
	zoom := cam.Zoom()
	pos := cam.RackToScreen(bounds.Min)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(bounds.W*zoom/float64(size.Dx()), bounds.H*zoom/float64(size.Dy()))
	op.GeoM.Translate(pos.X, pos.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (r *RackRenderer) rectPath(cam Camera, bounds rackgrid.Rect) vector.Path {
	tl := cam.RackToScreen(bounds.Min)
	br := cam.RackToScreen(bounds.Max())

	path := vector.Path{}
	path.MoveTo(float32(tl.X), float32(tl.Y))
	path.LineTo(float32(br.X), float32(tl.Y))
	path.LineTo(float32(br.X), float32(br.Y))
	path.LineTo(float32(tl.X), float32(br.Y))
	path.Close()
	return path
}

func (r *RackRenderer) drawSelection(screen *ebiten.Image, cam Camera, bounds rackgrid.Rect) {
	path := r.rectPath(cam, bounds)

	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForFilling(r.fillVs[:0], r.fillIs[:0])
	paintVertices(r.fillVs, r.colors.SelectionFillColor)
	screen.DrawTriangles(r.fillVs, r.fillIs, r.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})

	r.strokeVs, r.strokeIs = path.AppendVerticesAndIndicesForStroke(r.strokeVs[:0], r.strokeIs[:0], &vector.StrokeOptions{
		Width:    r.colors.StrokeWidth,
		LineJoin: vector.LineJoinMiter,
	})
	paintVertices(r.strokeVs, r.colors.SelectionEdgeColor)
	screen.DrawTriangles(r.strokeVs, r.strokeIs, r.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// paintVertices sets premultiplied vertex colors.
func paintVertices(vs []ebiten.Vertex, c color.RGBA) {
	a := float32(c.A) / 255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R) / 255 * a
		vs[i].ColorG = float32(c.G) / 255 * a
		vs[i].ColorB = float32(c.B) / 255 * a
		vs[i].ColorA = a
	}
}
