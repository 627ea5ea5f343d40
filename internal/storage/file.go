// Package storage persists rack snapshots as one JSON file per name.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go-rack-editor/internal/rack"
)

const (
	appName = "rack-editor"
	fileExt = ".json"

	// DefaultName is the rack loaded on startup when it exists.
	DefaultName = "default"
)

// Entry describes one saved rack.
type Entry struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// FileStore keeps racks as <dir>/<name>.json.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns the save directory following the XDG data dir
// convention (~/.local/share/rack-editor/saves).
func DefaultDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "saves"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", appName, "saves"), nil
}

// NewFileStore opens (and creates) a save directory. An empty dir selects
// DefaultDir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// CanonicalName trims surrounding space and one .json extension from a name
// typed by the user, so "studio.json" and "studio" name the same rack.
func CanonicalName(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), fileExt)
}

// ValidateName rejects names that are empty, hidden, carry the .json
// extension, or contain a path.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.HasSuffix(name, fileExt):
		return fmt.Errorf("%w: %q already ends in %s", ErrInvalidName, name, fileExt)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`) || name != filepath.Base(name):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// Dir returns the save directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file a validated name maps to.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Exists reports whether a rack is saved under name.
func (s *FileStore) Exists(name string) bool {
	if ValidateName(name) != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Save writes st under name, replacing any previous file atomically.
func (s *FileStore) Save(ctx context.Context, name string, st rack.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, st); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".rack-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write rack file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close rack file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		return fmt.Errorf("replace rack file: %w", err)
	}
	return nil
}

// Load reads the rack saved under name.
func (s *FileStore) Load(ctx context.Context, name string) (rack.State, error) {
	if err := ctx.Err(); err != nil {
		return rack.State{}, err
	}
	if err := ValidateName(name); err != nil {
		return rack.State{}, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.Path(name))
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rack.State{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return rack.State{}, fmt.Errorf("read rack file: %w", err)
	}

	st, err := Decode(bytes.NewReader(data))
	if err != nil {
		return rack.State{}, fmt.Errorf("load %s: %w", name, err)
	}
	return st, nil
}

// Delete removes a saved rack. Deleting a missing rack is not an error.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove rack file: %w", err)
	}
	return nil
}

// List returns saved racks sorted by name.
func (s *FileStore) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read save dir: %w", err)
	}

	var out []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || filepath.Ext(name) != fileExt || strings.HasPrefix(name, ".") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{
			Name:    strings.TrimSuffix(name, fileExt),
			Path:    filepath.Join(s.dir, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
