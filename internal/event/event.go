// internal/event/event.go
package event

import "go-rack-editor/internal/rack"

// EventType names an event.
type EventType string

// Event is delivered synchronously to every listener subscribed to its type.
// Only the payload field matching Type is set.
type Event struct {
	Type     EventType
	Plugin   rack.PluginID   // PluginAdded
	Count    int             // PluginRemoved
	Selected []rack.PluginID // SelectionChanged, ids in draw order
	Name     string          // RackSaved, RackLoaded
}

// Listener receives events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Dispatcher fans events out to listeners in subscription order.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers listener for each of types.
func (d *Dispatcher) Subscribe(listener Listener, types ...EventType) {
	for _, t := range types {
		d.listeners[t] = append(d.listeners[t], listener)
	}
}

// SubscribeFunc registers fn for each of types.
func (d *Dispatcher) SubscribeFunc(fn func(Event), types ...EventType) {
	d.Subscribe(ListenerFunc(fn), types...)
}

// Dispatch delivers event to its subscribers.
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}
