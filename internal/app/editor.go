// internal/app/editor.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"go-rack-editor/internal/config"
	"go-rack-editor/internal/event"
	"go-rack-editor/internal/rack"
	"go-rack-editor/internal/storage"
)

// Store is the persistence the editor saves racks to. *storage.FileStore
// satisfies it.
type Store interface {
	Save(ctx context.Context, name string, st rack.State) error
	Load(ctx context.Context, name string) (rack.State, error)
	Exists(name string) bool
}

// Editor is one editing session: the rack, where it is saved, and whether
// it has changed since.
type Editor struct {
	Rack            *rack.Manager
	Viewport        *Viewport
	EventDispatcher *event.Dispatcher

	store       Store
	plate       rack.Resource
	defaultName string
	currentName string
	dirty       bool
	logger      *log.Logger
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithEditorLogger sets the session logger.
func WithEditorLogger(l *log.Logger) EditorOption {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPlate sets the image handle given to every placed plugin.
func WithPlate(res rack.Resource) EditorOption {
	return func(e *Editor) { e.plate = res }
}

// WithDefaultName sets the rack loaded by Startup and used by SaveCurrent
// when no file is open.
func WithDefaultName(name string) EditorOption {
	return func(e *Editor) {
		if name != "" {
			e.defaultName = name
		}
	}
}

// NewEditor wires a session around mgr and store.
func NewEditor(mgr *rack.Manager, store Store, opts ...EditorOption) *Editor {
	if mgr == nil {
		panic("rack manager cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}

	e := &Editor{
		Rack:            mgr,
		Viewport:        NewViewport(),
		EventDispatcher: event.NewDispatcher(),
		store:           store,
		plate:           rack.NoResource,
		defaultName:     storage.DefaultName,
		logger:          log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}

	tracker := &changeTracker{editor: e}
	e.EventDispatcher.Subscribe(tracker, event.RackChanges...)
	e.EventDispatcher.Subscribe(tracker, event.RackSyncs...)
	return e
}

// Startup loads the default rack when one has been saved.
func (e *Editor) Startup(ctx context.Context) error {
	if !e.store.Exists(e.defaultName) {
		e.logger.Info("no saved rack, starting empty", "name", e.defaultName)
		return nil
	}
	if err := e.Load(ctx, e.defaultName); err != nil {
		e.logger.Error("failed to load default rack", "name", e.defaultName, "err", err)
		return err
	}
	return nil
}

// Save writes the rack under name and makes it the current file.
func (e *Editor) Save(ctx context.Context, name string) error {
	if err := e.store.Save(ctx, name, e.Rack.Snapshot()); err != nil {
		e.logger.Error("save failed", "name", name, "err", err)
		return fmt.Errorf("save %s: %w", name, err)
	}
	e.currentName = name
	e.logger.Info("rack saved", "name", name, "plugins", e.Rack.Len())
	e.EventDispatcher.Dispatch(event.Saved(name))
	return nil
}

// SaveCurrent saves to the open file, or to the default name.
func (e *Editor) SaveCurrent(ctx context.Context) error {
	name := e.currentName
	if name == "" {
		name = e.defaultName
	}
	return e.Save(ctx, name)
}

// Load replaces the rack with the one saved under name. On error the
// session is left as it was.
func (e *Editor) Load(ctx context.Context, name string) error {
	st, err := e.store.Load(ctx, name)
	if err != nil {
		e.logger.Error("load failed", "name", name, "err", err)
		return fmt.Errorf("load %s: %w", name, err)
	}
	if err := e.Rack.Restore(st, e.plate); err != nil {
		e.logger.Error("rejected saved rack", "name", name, "err", err)
		return fmt.Errorf("load %s: %w", name, err)
	}
	e.currentName = name
	e.logger.Info("rack loaded", "name", name, "plugins", e.Rack.Len())
	e.EventDispatcher.Dispatch(event.Loaded(name))
	return nil
}

// New empties the rack and forgets the current file.
func (e *Editor) New() {
	e.Rack.Clear()
	e.currentName = ""
	e.EventDispatcher.Dispatch(event.Cleared())
}

// Dirty reports unsaved changes.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// CurrentName returns the open file's name, if any.
func (e *Editor) CurrentName() (string, bool) {
	return e.currentName, e.currentName != ""
}

// Title is the window title: app name and version, the open file, and a
// star while there are unsaved changes.
func (e *Editor) Title() string {
	title := fmt.Sprintf("%s %s", config.AppTitle, config.AppVersion)
	if e.currentName != "" {
		title += " - " + e.currentName + ".json"
	}
	if e.dirty {
		title += " *"
	}
	return title
}

// changeTracker keeps the unsaved flag in step with rack events.
type changeTracker struct {
	editor *Editor
}

func (t *changeTracker) OnEvent(e event.Event) {
	switch {
	case e.IsChange():
		t.editor.dirty = true
	case e.IsSync():
		t.editor.dirty = false
	}
}
