// internal/event/types.go
package event

import (
	"slices"

	"go-rack-editor/internal/rack"
)

const (
	PluginAdded      EventType = "PluginAdded"
	PluginRemoved    EventType = "PluginRemoved"
	SelectionChanged EventType = "SelectionChanged"
	RackSaved        EventType = "RackSaved"
	RackLoaded       EventType = "RackLoaded"
	RackCleared      EventType = "RackCleared"
)

// RackChanges are the events that move the rack away from its saved form.
var RackChanges = []EventType{PluginAdded, PluginRemoved}

// RackSyncs are the events after which the rack matches a file, or is new.
var RackSyncs = []EventType{RackSaved, RackLoaded, RackCleared}

func Added(id rack.PluginID) Event {
	return Event{Type: PluginAdded, Plugin: id}
}

func Removed(n int) Event {
	return Event{Type: PluginRemoved, Count: n}
}

// Selection copies ids so listeners may keep the slice.
func Selection(ids []rack.PluginID) Event {
	return Event{Type: SelectionChanged, Selected: slices.Clone(ids)}
}

func Saved(name string) Event {
	return Event{Type: RackSaved, Name: name}
}

func Loaded(name string) Event {
	return Event{Type: RackLoaded, Name: name}
}

func Cleared() Event {
	return Event{Type: RackCleared}
}

// IsChange reports whether e leaves the rack with unsaved changes.
func (e Event) IsChange() bool {
	return slices.Contains(RackChanges, e.Type)
}

// IsSync reports whether e leaves the rack in step with storage.
func (e Event) IsSync() bool {
	return slices.Contains(RackSyncs, e.Type)
}
