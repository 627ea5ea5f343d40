// internal/rack/manager.go
package rack

import (
	"io"

	"github.com/charmbracelet/log"

	"go-rack-editor/pkg/rackgrid"
)

// Manager owns the plugins of one rack. Insertion order is draw order.
// A Manager is driven from a single goroutine; it holds no locks.
type Manager struct {
	grid    rackgrid.Grid
	plugins []*Plugin
	nextID  PluginID
	logger  *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger routes the manager's debug output to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns an empty rack laid out on g.
func NewManager(g rackgrid.Grid, opts ...Option) *Manager {
	m := &Manager{
		grid:   g,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Grid returns the geometry the manager snaps against.
func (m *Manager) Grid() rackgrid.Grid {
	return m.grid
}

// Add places a plugin on the cell nearest to raw. If the cell is already
// taken the call declines and returns false; the first plugin on a cell keeps it.
func (m *Manager) Add(raw rackgrid.Point, res Resource) (PluginID, bool) {
	if !raw.IsFinite() {
		m.logger.Debug("non-finite position", "x", raw.X, "y", raw.Y)
		return 0, false
	}
	cell := m.grid.CellOf(m.grid.Snap(raw))
	for _, p := range m.plugins {
		if p.IsAtCell(cell) {
			m.logger.Debug("cell occupied", "col", cell.Col, "rail", cell.Row, "by", p.ID)
			return 0, false
		}
	}

	id := m.nextID
	m.nextID++
	p := NewPlugin(m.grid, raw, res, id)
	m.plugins = append(m.plugins, p)
	m.logger.Debug("plugin added", "id", id, "x", p.Position.X, "y", p.Position.Y)
	return id, true
}

func (m *Manager) indexAt(raw rackgrid.Point) int {
	for i, p := range m.plugins {
		if p.IsAt(raw) {
			return i
		}
	}
	return -1
}

// RemoveAt removes the plugin under raw, if any.
func (m *Manager) RemoveAt(raw rackgrid.Point) bool {
	i := m.indexAt(raw)
	if i < 0 {
		return false
	}
	id := m.plugins[i].ID
	m.plugins = append(m.plugins[:i], m.plugins[i+1:]...)
	m.logger.Debug("plugin removed", "id", id)
	return true
}

// SelectAt applies a click at raw. A click on empty space clears the whole
// selection. A plain click on a plugin makes it the only selected one; an
// additive click selects it and leaves everything else as it was.
func (m *Manager) SelectAt(raw rackgrid.Point, additive bool) {
	i := m.indexAt(raw)
	if i < 0 {
		m.DeselectAll()
		return
	}
	if !additive {
		for j, p := range m.plugins {
			if j != i {
				p.SetSelected(false)
			}
		}
	}
	m.plugins[i].SetSelected(true)
}

// DeselectAll clears every selection flag.
func (m *Manager) DeselectAll() {
	for _, p := range m.plugins {
		p.SetSelected(false)
	}
}

// DeleteSelected removes every selected plugin in one pass and returns how
// many were removed. Survivors keep their relative order.
func (m *Manager) DeleteSelected() int {
	kept := m.plugins[:0]
	for _, p := range m.plugins {
		if !p.IsSelected() {
			kept = append(kept, p)
		}
	}
	removed := len(m.plugins) - len(kept)
	for i := len(kept); i < len(m.plugins); i++ {
		m.plugins[i] = nil
	}
	m.plugins = kept
	if removed > 0 {
		m.logger.Debug("selected plugins deleted", "count", removed)
	}
	return removed
}

// Clear removes every plugin. Ids already handed out are not reused.
func (m *Manager) Clear() {
	m.plugins = nil
}

// FindAt returns a copy of the plugin under raw.
func (m *Manager) FindAt(raw rackgrid.Point) (Plugin, bool) {
	i := m.indexAt(raw)
	if i < 0 {
		return Plugin{}, false
	}
	return *m.plugins[i], true
}

// Positions returns plugin positions in draw order.
func (m *Manager) Positions() []rackgrid.Point {
	out := make([]rackgrid.Point, len(m.plugins))
	for i, p := range m.plugins {
		out[i] = p.Position
	}
	return out
}

// Plugins returns copies of the plugins in draw order.
func (m *Manager) Plugins() []Plugin {
	out := make([]Plugin, len(m.plugins))
	for i, p := range m.plugins {
		out[i] = *p
	}
	return out
}

// Selected returns the ids of selected plugins in draw order.
func (m *Manager) Selected() []PluginID {
	var ids []PluginID
	for _, p := range m.plugins {
		if p.IsSelected() {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (m *Manager) SelectedCount() int {
	n := 0
	for _, p := range m.plugins {
		if p.IsSelected() {
			n++
		}
	}
	return n
}

func (m *Manager) Len() int {
	return len(m.plugins)
}

// NextID returns the id the next successful Add will use.
func (m *Manager) NextID() PluginID {
	return m.nextID
}

// Snapshot returns the persisted form of the rack in draw order.
func (m *Manager) Snapshot() State {
	s := State{Plugins: make([]Record, len(m.plugins))}
	for i, p := range m.plugins {
		s.Plugins[i] = p.Record()
	}
	return s
}

// Restore replaces the rack with the plugins in s, attaching res to each.
// Selection is session state and is always cleared, whatever s says.
// Nothing changes if s fails validation.
func (m *Manager) Restore(s State, res Resource) error {
	if err := s.Validate(m.grid); err != nil {
		return err
	}

	plugins := make([]*Plugin, len(s.Plugins))
	for i, r := range s.Plugins {
		p := PluginFromRecord(m.grid, r, res)
		p.SetSelected(false)
		plugins[i] = p
	}
	m.plugins = plugins

	if hi, ok := s.MaxID(); ok && hi+1 > m.nextID {
		m.nextID = hi + 1
	}
	m.logger.Debug("rack restored", "plugins", len(plugins), "next_id", m.nextID)
	return nil
}
