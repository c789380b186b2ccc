package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/anthonybishopric/graphwidgets/pkg/focus"
	"github.com/anthonybishopric/graphwidgets/pkg/geom"
	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/layout"
	"github.com/anthonybishopric/graphwidgets/pkg/session"
)

// Config holds graphwidgets configuration.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Random  RandomConfig  `toml:"random"`
	Zoom    ZoomConfig    `toml:"zoom"`
	Force   ForceConfig   `toml:"force"`
	Builder BuilderConfig `toml:"builder"`
}

// CanvasConfig is the drawing area shared by both widgets.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Radius float64 `toml:"radius"`
}

// RandomConfig holds the generator defaults.
type RandomConfig struct {
	Count           int     `toml:"count"`
	SkipProbability float64 `toml:"skip_probability"`
	MaxAttempts     int     `toml:"max_attempts"`
	Renderer        string  `toml:"renderer"` // "d3" or "echarts"
}

// ZoomConfig controls click-to-focus.
type ZoomConfig struct {
	Scale      float64 `toml:"scale"`
	DurationMS int     `toml:"duration_ms"`
}

// ForceConfig controls the builder layout.
type ForceConfig struct {
	LinkDistance  float64 `toml:"link_distance"`
	Charge        float64 `toml:"charge"`
	AlphaMin      float64 `toml:"alpha_min"`
	VelocityDecay float64 `toml:"velocity_decay"`
	MaxTicks      int     `toml:"max_ticks"`
}

// BuilderConfig holds the builder defaults.
type BuilderConfig struct {
	Mode                    string `toml:"mode"` // "undirected" or "directed"
	RejectReverseUndirected bool   `toml:"reject_reverse_undirected"`
	Renderer                string `toml:"renderer"`
}

// Default returns the default configuration.
func Default() *Config {
	lc := layout.DefaultConfig()
	return &Config{
		Canvas: CanvasConfig{Width: lc.Width, Height: lc.Height, Radius: 20},
		Random: RandomConfig{
			Count:           10,
			SkipProbability: 0.5,
			MaxAttempts:     geom.DefaultMaxAttempts,
			Renderer:        "d3",
		},
		Zoom: ZoomConfig{
			Scale:      focus.DefaultScale,
			DurationMS: int(focus.DefaultDuration / time.Millisecond),
		},
		Force: ForceConfig{
			LinkDistance:  lc.LinkDistance,
			Charge:        lc.Charge,
			AlphaMin:      lc.AlphaMin,
			VelocityDecay: lc.VelocityDecay,
			MaxTicks:      session.DefaultMaxTicks,
		},
		Builder: BuilderConfig{Mode: "undirected", Renderer: "d3"},
	}
}

// ConfigDir returns the graphwidgets config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "graphwidgets")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the default config file. A missing file yields the defaults.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads path over the defaults, so keys left out of the file keep
// their default values. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return err
	}
	return f.Close()
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() (created bool, err error) {
	if _, err := os.Stat(Path()); err == nil {
		return false, nil
	}
	return true, Save(Default())
}

// Validate checks values that would make the widgets misbehave.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New("canvas: width and height must be positive")
	}
	if !c.Bounds().Fits(c.Canvas.Radius) {
		return errors.New("canvas: radius does not fit the canvas")
	}
	if !(c.Random.SkipProbability >= 0 && c.Random.SkipProbability <= 1) {
		return errors.New("random: skip_probability must be between 0 and 1")
	}
	if !(c.Zoom.Scale >= focus.MinScale && c.Zoom.Scale <= focus.MaxScale) {
		return fmt.Errorf("zoom: scale must be between %g and %g", focus.MinScale, focus.MaxScale)
	}
	if _, err := graph.ParseMode(c.Builder.Mode); err != nil {
		return fmt.Errorf("builder: %w", err)
	}
	for _, r := range []string{c.Random.Renderer, c.Builder.Renderer} {
		if r != "d3" && r != "echarts" {
			return fmt.Errorf("unknown renderer %q", r)
		}
	}
	return nil
}

// Bounds returns the canvas size.
func (c *Config) Bounds() geom.Bounds {
	return geom.Bounds{Width: c.Canvas.Width, Height: c.Canvas.Height}
}

// ZoomDuration returns the focus animation length.
func (c *Config) ZoomDuration() time.Duration {
	return time.Duration(c.Zoom.DurationMS) * time.Millisecond
}

// Layout returns the force simulation parameters.
func (c *Config) Layout() layout.Config {
	return layout.Config{
		Width:         c.Canvas.Width,
		Height:        c.Canvas.Height,
		LinkDistance:  c.Force.LinkDistance,
		Charge:        c.Force.Charge,
		AlphaMin:      c.Force.AlphaMin,
		VelocityDecay: c.Force.VelocityDecay,
	}
}

// Mode returns the builder's starting mode.
func (c *Config) Mode() graph.Mode {
	m, err := graph.ParseMode(c.Builder.Mode)
	if err != nil {
		return graph.Undirected
	}
	return m
}

// Rules returns the builder edge policy.
func (c *Config) Rules() graph.Rules {
	return graph.Rules{RejectReverseUndirected: c.Builder.RejectReverseUndirected}
}
