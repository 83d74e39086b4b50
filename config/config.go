package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/tilepath/mapgen"
	"github.com/lixenwraith/tilepath/parameter"
)

// Layout kinds
const (
	LayoutMaze = "maze"
	LayoutOpen = "open"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Map     MapConfig     `toml:"map"`
	Search  SearchConfig  `toml:"search"`
	Server  ServerConfig  `toml:"server"`
	Sandbox SandboxConfig `toml:"sandbox"`
}

// MapConfig describes the generated terrain the binaries search over
type MapConfig struct {
	Layout   string  `toml:"layout"`
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Braiding float64 `toml:"braiding"`
	Channels bool    `toml:"channels"`
	Seed     int64   `toml:"seed"`
}

type SearchConfig struct {
	IterationsPerAdvance int  `toml:"iterations_per_advance"`
	MaxAdvanceCalls      int  `toml:"max_advance_calls"`
	Hierarchical         bool `toml:"hierarchical"`
}

type ServerConfig struct {
	Addr       string `toml:"addr"`
	MaxSources int    `toml:"max_sources"`
	Release    bool   `toml:"release"`
}

type SandboxConfig struct {
	TickMs int  `toml:"tick_ms"`
	Sound  bool `toml:"sound"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Map: MapConfig{
			Layout:   LayoutMaze,
			Width:    257,
			Height:   129,
			Braiding: parameter.SandboxBraiding,
			Channels: true,
			Seed:     1,
		},
		Search: SearchConfig{
			IterationsPerAdvance: parameter.NavIterationsPerAdvance,
			MaxAdvanceCalls:      parameter.NavMaxAdvanceCalls,
			Hierarchical:         true,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			MaxSources: 64,
		},
		Sandbox: SandboxConfig{
			TickMs: int(parameter.SandboxTickInterval / time.Millisecond),
			Sound:  true,
		},
	}
}

// Load reads a TOML file over the defaults; an empty path returns the defaults
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML from r over the defaults and validates the result
// Unknown keys are rejected
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Map.Layout {
	case LayoutMaze, LayoutOpen:
	default:
		return fmt.Errorf("%w: map.layout %q, want %q or %q", ErrInvalid, c.Map.Layout, LayoutMaze, LayoutOpen)
	}
	if c.Map.Width < 2 || c.Map.Height < 2 {
		return fmt.Errorf("%w: map size %dx%d below 2x2", ErrInvalid, c.Map.Width, c.Map.Height)
	}
	if c.Map.Braiding < 0 || c.Map.Braiding > 1 {
		return fmt.Errorf("%w: map.braiding %v outside [0,1]", ErrInvalid, c.Map.Braiding)
	}
	if c.Search.IterationsPerAdvance <= 0 {
		return fmt.Errorf("%w: search.iterations_per_advance must be positive", ErrInvalid)
	}
	if c.Search.MaxAdvanceCalls <= 0 {
		return fmt.Errorf("%w: search.max_advance_calls must be positive", ErrInvalid)
	}
	if c.Server.MaxSources <= 0 {
		return fmt.Errorf("%w: server.max_sources must be positive", ErrInvalid)
	}
	if c.Sandbox.TickMs <= 0 {
		return fmt.Errorf("%w: sandbox.tick_ms must be positive", ErrInvalid)
	}
	return nil
}

// BuildLayout generates the terrain described by the map section
func (m MapConfig) BuildLayout() mapgen.Layout {
	if m.Layout == LayoutOpen {
		return mapgen.Open(m.Width, m.Height)
	}
	return mapgen.Maze(mapgen.MazeConfig{
		Width:    m.Width,
		Height:   m.Height,
		Braiding: m.Braiding,
		Channels: m.Channels,
		Seed:     m.Seed,
	})
}

// Encode writes cfg as TOML
func Encode(w io.Writer, cfg Config) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
