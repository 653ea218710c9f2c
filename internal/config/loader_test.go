package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(GetDefaultYAML("breakout"), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBreakoutConfig()) {
		t.Errorf("embedded YAML drifted from DefaultBreakoutConfig():\n got %+v\nwant %+v", cfg, DefaultBreakoutConfig())
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultBreakoutConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestLoadBreakoutCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breakout.yaml")
	data := []byte("paddle:\n  speed: 9\nbricks:\n  hit_policy: first\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout(path)
	if err != nil {
		t.Fatalf("LoadBreakout() failed: %v", err)
	}
	if cfg.Paddle.Speed != 9 {
		t.Errorf("paddle speed = %v, expected 9", cfg.Paddle.Speed)
	}
	if cfg.Bricks.HitPolicy != HitPolicyFirst {
		t.Errorf("hit policy = %q, expected %q", cfg.Bricks.HitPolicy, HitPolicyFirst)
	}
	// Untouched keys keep their defaults
	if cfg.Paddle.Width != 100 || cfg.Bricks.Columns != 8 {
		t.Errorf("defaults lost after partial override: %+v", cfg)
	}
}

func TestLoadBreakoutCustomPathErrors(t *testing.T) {
	if _, err := LoadBreakout(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("bricks:\n  hit_policy: sometimes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadBreakout(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BreakoutConfig)
	}{
		{"zero arena", func(c *BreakoutConfig) { c.Arena.Width = 0 }},
		{"zero radius", func(c *BreakoutConfig) { c.Ball.Radius = 0 }},
		{"paddle wider than arena", func(c *BreakoutConfig) { c.Paddle.Width = 900 }},
		{"negative paddle speed", func(c *BreakoutConfig) { c.Paddle.Speed = -1 }},
		{"no rows", func(c *BreakoutConfig) { c.Bricks.Rows = 0 }},
		{"empty palette", func(c *BreakoutConfig) { c.Bricks.Palette = nil }},
		{"bad palette colour", func(c *BreakoutConfig) { c.Bricks.Palette = []string{"red"} }},
		{"bad ball colour", func(c *BreakoutConfig) { c.Ball.Color = "#12" }},
		{"zero tick rate", func(c *BreakoutConfig) { c.Loop.TickRate = 0 }},
		{"zero catch-up", func(c *BreakoutConfig) { c.Loop.MaxCatchUp = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}
