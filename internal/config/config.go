// Package config provides YAML-based application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"region-tracer/internal/image"
	"region-tracer/internal/palette"
	"region-tracer/internal/svgdoc"
	"region-tracer/pkg/colorutil"

	"gopkg.in/yaml.v3"
)

const (
	appDir     = "region-tracer"
	configFile = "config.yaml"
)

// Config holds the engine's tunables.
type Config struct {
	// SnapThreshold is the radius in pixels within which a click snaps to a
	// vertex of the first region.
	SnapThreshold float64 `yaml:"snap_threshold"`
	// MaxCanvasWidth fits wider images down to this width. 0 disables fitting.
	MaxCanvasWidth int `yaml:"max_canvas_width"`
	// DefaultCanvas is used for imported documents that carry no size.
	DefaultCanvas svgdoc.Size `yaml:"default_canvas"`
	// DefaultColor is selected at startup.
	DefaultColor string          `yaml:"default_color"`
	Palette      []palette.Entry `yaml:"palette"`
	ImageTypes   []string        `yaml:"image_types"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SnapThreshold:  20,
		MaxCanvasWidth: 1000,
		DefaultCanvas:  svgdoc.DefaultSize,
		DefaultColor:   colorutil.DefaultColor,
		Palette: []palette.Entry{
			{Color: "#ff7043", Name: "Orange"},
			{Color: "#42a5f5", Name: "Blue"},
			{Color: "#66bb6a", Name: "Green"},
			{Color: "#ffca28", Name: "Yellow"},
			{Color: "#ab47bc", Name: "Purple"},
			{Color: "#8d6e63", Name: "Brown"},
		},
		ImageTypes: append([]string(nil), image.DefaultTypes...),
	}
}

// Path returns ~/.config/region-tracer/config.yaml (or the OS equivalent).
func Path() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, configFile)
}

// Load reads the file at path over the defaults. A missing file is not an
// error when path is the default location.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.SnapThreshold < 0:
		return errors.New("snap_threshold must not be negative")
	case c.MaxCanvasWidth < 0:
		return errors.New("max_canvas_width must not be negative")
	case c.DefaultCanvas.Width <= 0 || c.DefaultCanvas.Height <= 0:
		return errors.New("default_canvas must have positive width and height")
	case colorutil.NormalizeKey(c.DefaultColor) == "":
		return errors.New("default_color is empty")
	case len(c.ImageTypes) == 0:
		return errors.New("image_types is empty")
	}
	return nil
}
