package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/glimmer-vis/glimmer/common"
	"github.com/glimmer-vis/glimmer/engine/quality"
)

// Config is the top-level glimmer configuration, loaded from a TOML file.
// Every field has a default, so an absent or partial file is fine.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Quality  QualityConfig  `toml:"quality"`
	Device   DeviceConfig   `toml:"device"`
	Renderer RendererConfig `toml:"renderer"`
	Chat     ChatConfig     `toml:"chat"`
	Log      LogConfig      `toml:"log"`
}

// WindowConfig controls the visualizer window.
type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
}

// QualityConfig controls the adaptive quality controller.
type QualityConfig struct {
	// Initial is the quality level active at startup ("low", "medium", "high", "ultra").
	Initial string `toml:"initial"`

	// Thresholds tunes the automatic transitions. Zero-valued fields keep
	// the production defaults.
	Thresholds ThresholdsConfig `toml:"thresholds"`
}

// ThresholdsConfig mirrors quality.Thresholds for TOML decoding.
type ThresholdsConfig struct {
	DemoteUltra   int `toml:"demote_ultra"`
	DemoteHigh    int `toml:"demote_high"`
	DemoteMedium  int `toml:"demote_medium"`
	PromoteMedium int `toml:"promote_medium"`
	PromoteHigh   int `toml:"promote_high"`
	BatteryFloor  int `toml:"battery_floor"`
}

// DeviceConfig overrides device detection.
type DeviceConfig struct {
	Mobile        bool `toml:"mobile"`
	BatterySaving bool `toml:"battery_saving"`
}

// RendererConfig controls the GPU backend.
type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode string `toml:"present_mode"`

	// ForceSoftware forces the CPU fallback adapter.
	ForceSoftware bool `toml:"force_software"`

	// ShaderPath optionally points to a custom WGSL visualizer shader.
	ShaderPath string `toml:"shader_path"`
}

// ChatConfig controls the scripted chat experience.
type ChatConfig struct {
	// ScriptPath optionally points to a TOML dialog script. Empty uses the
	// built-in script.
	ScriptPath string `toml:"script_path"`

	// FactsSeed seeds the background fact generator. Zero uses a random seed.
	FactsSeed int64 `toml:"facts_seed"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// Level is a zerolog level name ("debug", "info", "warn", "error").
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "glimmer",
			Width:  1280,
			Height: 720,
		},
		Quality: QualityConfig{
			Initial: quality.LevelMedium.String(),
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path and merges it over the defaults.
// A missing file is not an error; the defaults are returned unchanged.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the merged configuration
//   - error: a decode or validation error, or nil
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return applyFallbacks(cfg)
		}
		return cfg, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return applyFallbacks(cfg)
}

// applyFallbacks restores defaults for fields an explicit file may have
// zeroed out, and validates the enumerated fields.
func applyFallbacks(cfg Config) (Config, error) {
	def := Default()

	cfg.Window.Title = common.Coalesce(cfg.Window.Title, def.Window.Title)
	cfg.Window.Width = common.Coalesce(cfg.Window.Width, def.Window.Width)
	cfg.Window.Height = common.Coalesce(cfg.Window.Height, def.Window.Height)
	cfg.Quality.Initial = common.Coalesce(cfg.Quality.Initial, def.Quality.Initial)
	cfg.Renderer.PresentMode = common.Coalesce(cfg.Renderer.PresentMode, def.Renderer.PresentMode)
	cfg.Log.Level = common.Coalesce(cfg.Log.Level, def.Log.Level)

	if _, err := quality.ParseLevel(cfg.Quality.Initial); err != nil {
		return cfg, fmt.Errorf("quality.initial: %w", err)
	}
	switch cfg.Renderer.PresentMode {
	case "vsync", "uncapped":
	default:
		return cfg, fmt.Errorf("renderer.present_mode: unknown mode %q", cfg.Renderer.PresentMode)
	}
	if cfg.Chat.ScriptPath != "" {
		if _, err := os.Stat(cfg.Chat.ScriptPath); err != nil {
			return cfg, fmt.Errorf("chat.script_path: %w", err)
		}
	}

	return cfg, nil
}

// ToThresholds converts the TOML thresholds into a quality.Thresholds, keeping
// defaults for any zero-valued field.
func (c QualityConfig) ToThresholds() quality.Thresholds {
	t := quality.DefaultThresholds()
	t.DemoteUltra = common.Coalesce(c.Thresholds.DemoteUltra, t.DemoteUltra)
	t.DemoteHigh = common.Coalesce(c.Thresholds.DemoteHigh, t.DemoteHigh)
	t.DemoteMedium = common.Coalesce(c.Thresholds.DemoteMedium, t.DemoteMedium)
	t.PromoteMedium = common.Coalesce(c.Thresholds.PromoteMedium, t.PromoteMedium)
	t.PromoteHigh = common.Coalesce(c.Thresholds.PromoteHigh, t.PromoteHigh)
	t.BatteryFloor = common.Coalesce(c.Thresholds.BatteryFloor, t.BatteryFloor)
	return t
}

// InitialLevel parses the configured startup level.
func (c QualityConfig) InitialLevel() quality.Level {
	level, err := quality.ParseLevel(c.Initial)
	if err != nil {
		return quality.LevelMedium
	}
	return level
}
