package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"go-rack-editor/pkg/rackgrid"
)

// GridSettings mirrors rackgrid.Grid in the settings file.
type GridSettings struct {
	Unit       float64 `toml:"unit"`
	RailHeight float64 `toml:"rail_height"`
	OriginX    float64 `toml:"origin_x"`
	OriginY    float64 `toml:"origin_y"`
}

// Settings is the user-editable configuration, read from config.toml.
type Settings struct {
	SaveDir      string       `toml:"save_dir"`
	DefaultRack  string       `toml:"default_rack"`
	WindowWidth  int          `toml:"window_width"`
	WindowHeight int          `toml:"window_height"`
	Rails        int          `toml:"rails"`
	Columns      int          `toml:"columns"`
	Grid         GridSettings `toml:"grid"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		DefaultRack:  "default",
		WindowWidth:  ScreenWidth,
		WindowHeight: ScreenHeight,
		Rails:        RailCount,
		Columns:      RailColumns,
		Grid: GridSettings{
			Unit:       GridUnit,
			RailHeight: RailHeight,
			OriginX:    OriginX,
			OriginY:    OriginY,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/rack-editor/config.toml or the
// ~/.config equivalent.
func DefaultPath() (string, error) {
	if cfgHome := os.Getenv("XDG_CONFIG_HOME"); cfgHome != "" {
		return filepath.Join(cfgHome, "rack-editor", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "rack-editor", "config.toml"), nil
}

// Load reads settings from path on top of Defaults. A missing file is not an
// error.
func Load(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), &s); err != nil {
		return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Defaults(), fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Validate checks the numeric fields.
func (s Settings) Validate() error {
	switch {
	case s.Grid.Unit <= 0:
		return fmt.Errorf("grid.unit must be positive, got %g", s.Grid.Unit)
	case s.Grid.RailHeight <= 0:
		return fmt.Errorf("grid.rail_height must be positive, got %g", s.Grid.RailHeight)
	case s.Rails <= 0:
		return fmt.Errorf("rails must be positive, got %d", s.Rails)
	case s.Columns <= 0:
		return fmt.Errorf("columns must be positive, got %d", s.Columns)
	case s.WindowWidth <= 0 || s.WindowHeight <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", s.WindowWidth, s.WindowHeight)
	case s.DefaultRack == "":
		return errors.New("default_rack must not be empty")
	}
	return nil
}

// RackGrid converts the grid section into the geometry the rack snaps to.
func (s Settings) RackGrid() rackgrid.Grid {
	return rackgrid.Grid{
		Unit:       s.Grid.Unit,
		RailHeight: s.Grid.RailHeight,
		Origin:     rackgrid.Pt(s.Grid.OriginX, s.Grid.OriginY),
	}
}
