package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-rack-editor/pkg/rackgrid"
)

type fixedCamera struct {
	zoom   float64
	offset rackgrid.Point
}

func (c fixedCamera) Zoom() float64 { return c.zoom }

func (c fixedCamera) RackToScreen(p rackgrid.Point) rackgrid.Point {
	return rackgrid.Pt((p.X-c.offset.X)*c.zoom, (p.Y-c.offset.Y)*c.zoom)
}

func (c fixedCamera) ScreenToRack(p rackgrid.Point) rackgrid.Point {
	return rackgrid.Pt(p.X/c.zoom+c.offset.X, p.Y/c.zoom+c.offset.Y)
}

func TestVisibleCells(t *testing.T) {
	g := rackgrid.Default()
	tests := []struct {
		name string
		cam  fixedCamera
		w, h int
		want CellRange
	}{
		{
			name: "home view",
			cam:  fixedCamera{zoom: 1},
			w:    1200, h: 900,
			// (1200-100)/15.2 = 72.4, (900-100)/380 = 2.1
			want: CellRange{Col0: 0, Col1: 73, Row0: 0, Row1: 3},
		},
		{
			name: "scrolled into the rack",
			cam:  fixedCamera{zoom: 1, offset: rackgrid.Pt(253, 480)},
			w:    150, h: 379,
			want: CellRange{Col0: 10, Col1: 20, Row0: 1, Row1: 2},
		},
		{
			name: "zoomed out clamps to rack size",
			cam:  fixedCamera{zoom: 0.1},
			w:    1200, h: 900,
			want: CellRange{Col0: 0, Col1: 200, Row0: 0, Row1: 24},
		},
		{
			name: "past the rack",
			cam:  fixedCamera{zoom: 1, offset: rackgrid.Pt(10000, 0)},
			w:    100, h: 100,
			want: CellRange{Col0: 200, Col1: 200, Row0: 0, Row1: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleCells(g, tt.cam, tt.w, tt.h, 24, 200)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellRangeEmpty(t *testing.T) {
	assert.True(t, CellRange{Col0: 3, Col1: 3, Row0: 0, Row1: 1}.Empty())
	assert.False(t, CellRange{Col0: 0, Col1: 1, Row0: 0, Row1: 1}.Empty())
}

func TestColorHelpers(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}
	assert.Equal(t, color.RGBA{100, 50, 25, 255}, DarkenColor(c))
	assert.Equal(t, color.RGBA{240, 140, 90, 255}, LightenColor(c, 40))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, LightenColor(c, 200))
}
