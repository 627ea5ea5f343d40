package rack

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rack-editor/pkg/rackgrid"
)

func newTestManager() *Manager {
	return NewManager(rackgrid.Default())
}

func TestNewManagerStartsEmpty(t *testing.T) {
	m := newTestManager()
	assert.Zero(t, m.Len())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, PluginID(0), m.NextID())
	assert.Empty(t, m.Positions())
}

func TestAddScenarios(t *testing.T) {
	m := newTestManager()

	id, ok := m.Add(rackgrid.Pt(100, 100), NoResource)
	require.True(t, ok)
	assert.Equal(t, PluginID(0), id)
	assert.Equal(t, rackgrid.Pt(100, 100), m.Positions()[0])

	// 0.3 HP to the right still lands on column 0
	_, ok = m.Add(rackgrid.Pt(104.56, 100), NoResource)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	// 1.7 HP rounds to column 2
	id, ok = m.Add(rackgrid.Pt(125.84, 100), NoResource)
	require.True(t, ok)
	assert.Equal(t, PluginID(1), id)
	require.Equal(t, 2, m.Len())
	assert.InDelta(t, 130.4, m.Positions()[1].X, 1e-9)
	assert.Equal(t, 100.0, m.Positions()[1].Y)
}

func TestAddOutOfRangeInput(t *testing.T) {
	m := newTestManager()

	for _, raw := range []rackgrid.Point{
		rackgrid.Pt(math.NaN(), 100),
		rackgrid.Pt(100, math.NaN()),
		rackgrid.Pt(math.Inf(1), 100),
		rackgrid.Pt(math.Inf(-1), 100),
	} {
		_, ok := m.Add(raw, NoResource)
		assert.False(t, ok, "raw %v", raw)
	}
	assert.Zero(t, m.Len())

	// a huge coordinate saturates to the last column instead of wrapping negative
	_, ok := m.Add(rackgrid.Pt(1e30, 100), NoResource)
	require.True(t, ok)
	far := m.Positions()[0]
	assert.Greater(t, far.X, 100.0)
	assert.Equal(t, 100.0, far.Y)
	assert.Equal(t, rackgrid.Cell{Col: rackgrid.MaxIndex, Row: 0}, m.Plugins()[0].Cell())

	_, ok = m.Add(rackgrid.Pt(100, 100), NoResource)
	assert.True(t, ok, "origin cell must stay free")
	assert.Equal(t, 2, m.Len())

	_, ok = m.Add(rackgrid.Pt(1e20, 100), NoResource)
	assert.False(t, ok, "both saturate to the same cell")
	require.NoError(t, m.Snapshot().Validate(m.Grid()))
}

func TestPluginBoundsIsItsCell(t *testing.T) {
	g := rackgrid.Default()
	p := NewPlugin(g, rackgrid.Pt(125.84, 500), NoResource, 0)
	b := p.Bounds()
	assert.Equal(t, g.CellRect(rackgrid.Cell{Col: 2, Row: 1}), b)
	assert.Equal(t, p.Position, b.Min)
	assert.True(t, p.IsAt(b.Min))
	assert.False(t, p.IsAt(rackgrid.Pt(b.Max().X, b.Min.Y+1)))
	assert.False(t, p.IsAt(rackgrid.Pt(b.Min.X+1, b.Max().Y)))
}

func TestAddSameColumnOtherRail(t *testing.T) {
	m := newTestManager()
	_, ok := m.Add(rackgrid.Pt(100, 100), NoResource)
	require.True(t, ok)
	_, ok = m.Add(rackgrid.Pt(100, 500), NoResource)
	require.True(t, ok)
	assert.Equal(t, []rackgrid.Point{rackgrid.Pt(100, 100), rackgrid.Pt(100, 480)}, m.Positions())
}

func TestAddNewPluginUnselected(t *testing.T) {
	m := newTestManager()
	m.Add(rackgrid.Pt(100, 100), NoResource)
	m.SelectAt(rackgrid.Pt(101, 101), false)
	m.Add(rackgrid.Pt(300, 100), NoResource)

	plugins := m.Plugins()
	require.Len(t, plugins, 2)
	assert.True(t, plugins[0].IsSelected())
	assert.False(t, plugins[1].IsSelected())
}

func TestAddKeepsResource(t *testing.T) {
	m := newTestManager()
	m.Add(rackgrid.Pt(100, 100), Resource(42))
	p, ok := m.FindAt(rackgrid.Pt(100, 100))
	require.True(t, ok)
	assert.Equal(t, Resource(42), p.Resource)
}

func TestOccupancyUniqueUnderRandomAdds(t *testing.T) {
	m := newTestManager()
	g := m.Grid()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 3000; i++ {
		raw := rackgrid.Pt(rng.Float64()*900, rng.Float64()*2500)
		before := m.Len()
		_, ok := m.Add(raw, NoResource)
		if ok {
			assert.Equal(t, before+1, m.Len())
		} else {
			assert.Equal(t, before, m.Len())
		}

		seen := make(map[rackgrid.Cell]bool, m.Len())
		for _, pos := range m.Positions() {
			assert.Equal(t, pos, g.Snap(pos), "unsnapped position %v", pos)
			c := g.CellOf(pos)
			require.False(t, seen[c], "cell %v occupied twice after add %d", c, i)
			seen[c] = true
		}
	}
}

func TestIDsStrictlyIncreasingAndNeverReused(t *testing.T) {
	m := newTestManager()
	var ids []PluginID
	for col := 0; col < 5; col++ {
		id, ok := m.Add(rackgrid.Pt(100+float64(col)*15.2, 100), NoResource)
		require.True(t, ok)
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}

	require.True(t, m.RemoveAt(rackgrid.Pt(100+4*15.2+1, 120)))
	id, ok := m.Add(rackgrid.Pt(100+4*15.2, 100), NoResource)
	require.True(t, ok)
	assert.Equal(t, PluginID(5), id)
}

func TestRemoveAt(t *testing.T) {
	m := newTestManager()
	m.Add(rackgrid.Pt(100, 100), NoResource)
	m.Add(rackgrid.Pt(200, 200), NoResource)

	assert.False(t, m.RemoveAt(rackgrid.Pt(9999, 9999)))
	assert.Equal(t, 2, m.Len())

	assert.True(t, m.RemoveAt(rackgrid.Pt(110, 400)))
	assert.Equal(t, 1, m.Len())
	_, found := m.FindAt(rackgrid.Pt(100, 100))
	assert.False(t, found)
	_, found = m.FindAt(rackgrid.Pt(207, 150))
	assert.True(t, found)
}

func TestRemoveAtEmptyManager(t *testing.T) {
	m := newTestManager()
	assert.False(t, m.RemoveAt(rackgrid.Pt(100, 100)))
}

func TestSelectAtExclusive(t *testing.T) {
	m := newTestManager()
	m.Add(rackgrid.Pt(100, 100), NoResource)
	m.Add(rackgrid.Pt(200, 100), NoResource)
	m.Add(rackgrid.Pt(300, 100), NoResource)

	m.SelectAt(rackgrid.Pt(100, 100), true)
	m.SelectAt(rackgrid.Pt(207, 100), true)
	require.Equal(t, 2, m.SelectedCount())

	m.SelectAt(rackgrid.Pt(302, 150), false)
	assert.Equal(t, []PluginID{2}, m.Selected())
}

func TestSelectAtAdditiveAccumulates(t *testing.T) {
	m := newTestManager()
	m.Add(rackgrid.Pt(100, 100), NoResource)
	m.Add(rackgrid.Pt(200, 100), NoResource)

	m.SelectAt(rackgrid.Pt(100, 100), false)
	m.SelectAt(rackgrid.Pt(207, 100), true)
	assert.Equal(t, []PluginID{0, 1}, m.Selected())

	// additive click on an already selected plugin keeps it selected
	m.SelectAt(rackgrid.Pt(207, 100), true)
	assert.Equal(t, []PluginID{0, 1}, m.Selected())
}

func TestSelectAtEmptySpaceClearsAll(t *testing.T) {
	m := newTestManager()
	m.Add(rackgrid.Pt(100, 100), NoResource)
	m.Add(rackgrid.Pt(200, 100), NoResource)
	m.SelectAt(rackgrid.Pt(100, 100), false)
	m.SelectAt(rackgrid.Pt(207, 100), true)

	m.SelectAt(rackgrid.Pt(500, 500), false)
	assert.Zero(t, m.SelectedCount())

	m.SelectAt(rackgrid.Pt(100, 100), false)
	m.SelectAt(rackgrid.Pt(500, 500), true)
	assert.Zero(t, m.SelectedCount(), "empty-space click clears even with the modifier held")
}

func TestSelectThenClickOutside(t *testing.T) {
	m := newTestManager()
	m.Add(rackgrid.Pt(100, 100), NoResource)
	m.SelectAt(rackgrid.Pt(100, 100), false)
	m.SelectAt(rackgrid.Pt(500, 500), false)

	p, ok := m.FindAt(rackgrid.Pt(100, 100))
	require.True(t, ok)
	assert.False(t, p.IsSelected())
}

func TestDeselectAllIdempotent(t *testing.T) {
	m := newTestManager()
	m.Add(rackgrid.Pt(100, 100), NoResource)
	m.SelectAt(rackgrid.Pt(100, 100), false)
	m.DeselectAll()
	m.DeselectAll()
	assert.Zero(t, m.SelectedCount())
	assert.Equal(t, 1, m.Len())
}

func TestDeleteSelected(t *testing.T) {
	m := newTestManager()
	for col := 0; col < 6; col++ {
		m.Add(rackgrid.Pt(100+float64(col)*15.2, 100), NoResource)
	}
	for _, col := range []int{1, 3, 4} {
		m.SelectAt(rackgrid.Pt(101+float64(col)*15.2, 200), true)
	}

	assert.Equal(t, 3, m.DeleteSelected())
	var ids []PluginID
	for _, p := range m.Plugins() {
		ids = append(ids, p.ID)
		assert.False(t, p.IsSelected())
	}
	assert.Equal(t, []PluginID{0, 2, 5}, ids)

	assert.Equal(t, 0, m.DeleteSelected())
	assert.Equal(t, 3, m.Len())
}

func TestFindAtDoesNotMutate(t *testing.T) {
	m := newTestManager()
	m.Add(rackgrid.Pt(100, 100), NoResource)
	p, ok := m.FindAt(rackgrid.Pt(100, 100))
	require.True(t, ok)
	p.SetSelected(true)
	assert.Zero(t, m.SelectedCount())

	_, ok = m.FindAt(rackgrid.Pt(200, 200))
	assert.False(t, ok)
}

func TestClearKeepsIDCounter(t *testing.T) {
	m := newTestManager()
	m.Add(rackgrid.Pt(100, 100), NoResource)
	m.Add(rackgrid.Pt(200, 100), NoResource)
	m.Clear()
	assert.Zero(t, m.Len())
	id, ok := m.Add(rackgrid.Pt(100, 100), NoResource)
	require.True(t, ok)
	assert.Equal(t, PluginID(2), id)
}

func TestAddLogsDeclinedPlacement(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	m := NewManager(rackgrid.Default(), WithLogger(logger))
	m.Add(rackgrid.Pt(100, 100), NoResource)
	m.Add(rackgrid.Pt(101, 100), NoResource)
	assert.Contains(t, buf.String(), "cell occupied")
}
