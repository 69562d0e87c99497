package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glimmer-vis/glimmer/engine/quality"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glimmer.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := Default()
	if cfg.Window.Title != def.Window.Title || cfg.Window.Width != def.Window.Width {
		t.Errorf("window defaults not applied: %+v", cfg.Window)
	}
	if cfg.Quality.Initial != "medium" {
		t.Errorf("Quality.Initial = %q, want medium", cfg.Quality.Initial)
	}
	if cfg.Renderer.PresentMode != "vsync" {
		t.Errorf("Renderer.PresentMode = %q, want vsync", cfg.Renderer.PresentMode)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "demo"
width = 1920

[quality]
initial = "high"

[quality.thresholds]
demote_high = 22

[device]
mobile = true

[renderer]
present_mode = "uncapped"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Window.Title != "demo" {
		t.Errorf("Window.Title = %q, want demo", cfg.Window.Title)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("Window.Width = %d, want 1920", cfg.Window.Width)
	}
	// Height was absent from the file; the default survives.
	if cfg.Window.Height != 720 {
		t.Errorf("Window.Height = %d, want 720", cfg.Window.Height)
	}
	if !cfg.Device.Mobile {
		t.Error("Device.Mobile = false, want true")
	}
	if cfg.Renderer.PresentMode != "uncapped" {
		t.Errorf("Renderer.PresentMode = %q, want uncapped", cfg.Renderer.PresentMode)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}

	thresholds := cfg.Quality.ToThresholds()
	if thresholds.DemoteHigh != 22 {
		t.Errorf("DemoteHigh = %d, want 22", thresholds.DemoteHigh)
	}
	// Untouched thresholds keep production defaults.
	def := quality.DefaultThresholds()
	if thresholds.PromoteHigh != def.PromoteHigh {
		t.Errorf("PromoteHigh = %d, want %d", thresholds.PromoteHigh, def.PromoteHigh)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown quality level", body: "[quality]\ninitial = \"extreme\"\n"},
		{name: "unknown present mode", body: "[renderer]\npresent_mode = \"mailbox\"\n"},
		{name: "missing chat script", body: "[chat]\nscript_path = \"/does/not/exist.toml\"\n"},
		{name: "malformed toml", body: "[window\ntitle = \"x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestInitialLevel(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		want    quality.Level
	}{
		{name: "ultra", initial: "ultra", want: quality.LevelUltra},
		{name: "mixed case", initial: "High", want: quality.LevelHigh},
		{name: "invalid falls back to medium", initial: "nope", want: quality.LevelMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := QualityConfig{Initial: tt.initial}
			if got := c.InitialLevel(); got != tt.want {
				t.Errorf("InitialLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
