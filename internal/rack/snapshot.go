package rack

import (
	"errors"
	"fmt"
	"math"

	"go-rack-editor/pkg/rackgrid"
)

// ErrInvalidState is returned by Restore when a snapshot would break rack
// invariants. The manager is left untouched when it is returned.
var ErrInvalidState = errors.New("invalid rack state")

// snapEpsilon tolerates coordinates written by float32 producers.
const snapEpsilon = 1e-3

// Record is the persisted form of one plugin.
type Record struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Selected bool     `json:"selected"`
	ID       PluginID `json:"id"`
}

// State is the flat, serializable projection of a whole rack, in draw order.
type State struct {
	Plugins []Record `json:"plugins"`
}

// Len returns the number of records.
func (s State) Len() int {
	return len(s.Plugins)
}

// MaxID returns the highest id in s and false when s is empty.
func (s State) MaxID() (PluginID, bool) {
	if len(s.Plugins) == 0 {
		return 0, false
	}
	hi := s.Plugins[0].ID
	for _, r := range s.Plugins[1:] {
		if r.ID > hi {
			hi = r.ID
		}
	}
	return hi, true
}

// Validate checks s against g: every record must sit on a grid position, and
// no id or cell may appear twice.
func (s State) Validate(g rackgrid.Grid) error {
	ids := make(map[PluginID]int, len(s.Plugins))
	cells := make(map[rackgrid.Cell]int, len(s.Plugins))
	for i, r := range s.Plugins {
		p := rackgrid.Pt(r.X, r.Y)
		if !g.IsSnapped(p, snapEpsilon) {
			return fmt.Errorf("%w: plugin %d at (%g, %g) is off the grid", ErrInvalidState, r.ID, r.X, r.Y)
		}
		if r.ID == math.MaxUint64 {
			return fmt.Errorf("%w: id %d leaves no room for new plugins", ErrInvalidState, r.ID)
		}
		if j, dup := ids[r.ID]; dup {
			return fmt.Errorf("%w: records %d and %d share id %d", ErrInvalidState, j, i, r.ID)
		}
		ids[r.ID] = i
		c := g.CellOf(g.Snap(p))
		if j, dup := cells[c]; dup {
			return fmt.Errorf("%w: records %d and %d both occupy column %d on rail %d", ErrInvalidState, j, i, c.Col, c.Row)
		}
		cells[c] = i
	}
	return nil
}
