package rackgrid

// Contains is the hit test used for every click, selection and deletion
// lookup. The box spans [pos, pos+(w,h)) so a point on a shared edge belongs
// to exactly one of two neighbouring modules.
func Contains(pos Point, w, h float64, probe Point) bool {
	return probe.X >= pos.X && probe.X < pos.X+w &&
		probe.Y >= pos.Y && probe.Y < pos.Y+h
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	Min  Point
	W, H float64
}

// Contains reports whether p lies inside r (half-open on the max edges).
func (r Rect) Contains(p Point) bool {
	return Contains(r.Min, r.W, r.H, p)
}

// Max returns the exclusive bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.Min.X + r.W, Y: r.Min.Y + r.H}
}
