// internal/rack/plugin.go
package rack

import "go-rack-editor/pkg/rackgrid"

// PluginID identifies a plugin for the lifetime of its Manager.
type PluginID uint64

// Resource is an opaque handle to whatever the renderer draws for a plugin.
// The rack never looks inside it; NoResource means nothing is attached,
// which is how headless code and tests build plugins.
type Resource uint32

// NoResource is the absent handle.
const NoResource Resource = 0

// Plugin is one plate placed on the rack. Its footprint is one HP wide and one
// rail high.
type Plugin struct {
	ID       PluginID
	Position rackgrid.Point
	Resource Resource
	selected bool
	cell     rackgrid.Cell
	grid     rackgrid.Grid
}

// NewPlugin snaps raw onto g and returns an unselected plugin.
func NewPlugin(g rackgrid.Grid, raw rackgrid.Point, res Resource, id PluginID) *Plugin {
	if !g.Valid() {
		panic("rack: plugin built on a grid with non-positive spacing")
	}
	pos := g.Snap(raw)
	return &Plugin{
		ID:       id,
		Position: pos,
		Resource: res,
		cell:     g.CellOf(pos),
		grid:     g,
	}
}

// PluginFromRecord rebuilds a plugin from its snapshot record. The stored
// selection flag is carried over as-is; Manager.Restore decides what to do
// with it.
func PluginFromRecord(g rackgrid.Grid, r Record, res Resource) *Plugin {
	p := NewPlugin(g, rackgrid.Pt(r.X, r.Y), res, r.ID)
	p.selected = r.Selected
	return p
}

// IsAt reports whether probe falls inside the plugin's footprint.
func (p Plugin) IsAt(probe rackgrid.Point) bool {
	return p.Bounds().Contains(probe)
}

// IsAtCell reports whether the plugin occupies c.
func (p Plugin) IsAtCell(c rackgrid.Cell) bool {
	return p.cell == c
}

// Cell returns the occupied grid cell.
func (p Plugin) Cell() rackgrid.Cell {
	return p.cell
}

// Bounds returns the plugin footprint, the rect of its cell.
func (p Plugin) Bounds() rackgrid.Rect {
	return p.grid.CellRect(p.cell)
}

func (p *Plugin) SetSelected(selected bool) {
	p.selected = selected
}

func (p Plugin) IsSelected() bool {
	return p.selected
}

// Record projects the plugin onto its persisted form.
func (p Plugin) Record() Record {
	return Record{
		X:        p.Position.X,
		Y:        p.Position.Y,
		Selected: p.selected,
		ID:       p.ID,
	}
}
