// pkg/rackgrid/grid.go
package rackgrid

import "math"

// Point is a position in rack space (the same space raw pointer input lives in
// once the viewport has removed zoom and scroll).
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Cell identifies one module-sized slot: the HP column on a rail row.
type Cell struct {
	Col, Row int
}

// Grid holds the three constants every snap and lookup is computed from.
// Placement and hit-testing both go through the same Grid value, so a click
// and a stored module always agree on where a cell is.
type Grid struct {
	Unit       float64 // width of one HP column
	RailHeight float64 // vertical distance between rails
	Origin     Point   // top-left corner of cell (0,0)
}

// Default is the geometry of the stock rack: 1HP = 15.2, one rail = 380,
// first cell at (100,100).
func Default() Grid {
	return Grid{
		Unit:       15.2,
		RailHeight: 380,
		Origin:     Point{X: 100, Y: 100},
	}
}

// Valid reports whether both spacings are positive.
func (g Grid) Valid() bool {
	return g.Unit > 0 && g.RailHeight > 0
}

// MaxIndex is the largest column or rail index a coordinate snaps to.
// Positions on it stay exact to well under a thousandth of a unit.
const MaxIndex = 1 << 20

// index maps a raw coordinate to a grid index along one axis.
// Anything at or before the origin (or NaN) clamps to 0, anything past
// MaxIndex clamps to MaxIndex.
func index(raw, origin, step float64) int {
	rel := raw - origin
	if !(rel > 0) {
		return 0
	}
	i := math.Round(rel / step)
	if i >= MaxIndex {
		return MaxIndex
	}
	return int(i)
}

// SnapX aligns a raw x coordinate to the nearest HP column.
func (g Grid) SnapX(rawX float64) float64 {
	return g.Origin.X + float64(index(rawX, g.Origin.X, g.Unit))*g.Unit
}

// SnapY aligns a raw y coordinate to the nearest rail.
func (g Grid) SnapY(rawY float64) float64 {
	return g.Origin.Y + float64(index(rawY, g.Origin.Y, g.RailHeight))*g.RailHeight
}

// Snap aligns both axes independently.
func (g Grid) Snap(raw Point) Point {
	return Point{X: g.SnapX(raw.X), Y: g.SnapY(raw.Y)}
}

// CellOf maps a snapped position back to its column and row. The input is
// expected to come out of Snap, so rounding only absorbs float error.
func (g Grid) CellOf(p Point) Cell {
	return Cell{
		Col: index(p.X, g.Origin.X, g.Unit),
		Row: index(p.Y, g.Origin.Y, g.RailHeight),
	}
}

// PointOf returns the snapped top-left corner of a cell.
func (g Grid) PointOf(c Cell) Point {
	return Point{
		X: g.Origin.X + float64(c.Col)*g.Unit,
		Y: g.Origin.Y + float64(c.Row)*g.RailHeight,
	}
}

// IsSnapped reports whether p re-snaps to itself within eps on both axes.
func (g Grid) IsSnapped(p Point, eps float64) bool {
	s := g.Snap(p)
	return math.Abs(s.X-p.X) <= eps && math.Abs(s.Y-p.Y) <= eps
}

// CellRect returns the footprint of one cell.
func (g Grid) CellRect(c Cell) Rect {
	return Rect{Min: g.PointOf(c), W: g.Unit, H: g.RailHeight}
}
