// internal/app/plugin_management.go
package app

import (
	"slices"

	"go-rack-editor/internal/event"
	"go-rack-editor/internal/rack"
	"go-rack-editor/pkg/rackgrid"
)

// Place puts a plugin at the cell under a screen position.
func (e *Editor) Place(screen rackgrid.Point) (rack.PluginID, bool) {
	id, ok := e.Rack.Add(e.Viewport.ScreenToRack(screen), e.plate)
	if !ok {
		return 0, false
	}
	e.EventDispatcher.Dispatch(event.Added(id))
	return id, true
}

// PluginAt returns the plugin under a screen position.
func (e *Editor) PluginAt(screen rackgrid.Point) (rack.Plugin, bool) {
	return e.Rack.FindAt(e.Viewport.ScreenToRack(screen))
}

// Click applies a selection click at a screen position.
func (e *Editor) Click(screen rackgrid.Point, additive bool) {
	before := e.Rack.Selected()
	e.Rack.SelectAt(e.Viewport.ScreenToRack(screen), additive)
	e.notifySelection(before)
}

// DeselectAll clears the selection.
func (e *Editor) DeselectAll() {
	before := e.Rack.Selected()
	e.Rack.DeselectAll()
	e.notifySelection(before)
}

// RemoveAt deletes the plugin under a screen position.
func (e *Editor) RemoveAt(screen rackgrid.Point) bool {
	if !e.Rack.RemoveAt(e.Viewport.ScreenToRack(screen)) {
		return false
	}
	e.EventDispatcher.Dispatch(event.Removed(1))
	return true
}

// DeleteSelected deletes every selected plugin and returns how many went.
func (e *Editor) DeleteSelected() int {
	n := e.Rack.DeleteSelected()
	if n > 0 {
		e.EventDispatcher.Dispatch(event.Removed(n))
		e.EventDispatcher.Dispatch(event.Selection(nil))
	}
	return n
}

func (e *Editor) notifySelection(before []rack.PluginID) {
	after := e.Rack.Selected()
	if slices.Equal(before, after) {
		return
	}
	e.EventDispatcher.Dispatch(event.Selection(after))
}
