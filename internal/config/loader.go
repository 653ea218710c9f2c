package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// LoadBreakout loads Breakout configuration.
// Search order: customPath -> ~/.arcade/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "breakout.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad decodes an optional config file. Missing, unreadable or invalid files are skipped.
func tryLoad(path string) (BreakoutConfig, bool) {
	cfg := DefaultBreakoutConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate checks that the configuration describes a playable arena.
func (c BreakoutConfig) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must have a positive size", ErrInvalidConfig)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball radius must be positive", ErrInvalidConfig)
	case c.Paddle.Width <= 0 || c.Paddle.Height <= 0:
		return fmt.Errorf("%w: paddle must have a positive size", ErrInvalidConfig)
	case c.Paddle.Width > c.Arena.Width:
		return fmt.Errorf("%w: paddle is wider than the arena", ErrInvalidConfig)
	case c.Paddle.Speed < 0:
		return fmt.Errorf("%w: paddle speed must not be negative", ErrInvalidConfig)
	case c.Bricks.Rows <= 0 || c.Bricks.Columns <= 0:
		return fmt.Errorf("%w: brick grid needs at least one row and column", ErrInvalidConfig)
	case c.Bricks.Width <= 0 || c.Bricks.Height <= 0:
		return fmt.Errorf("%w: bricks must have a positive size", ErrInvalidConfig)
	case len(c.Bricks.Palette) == 0:
		return fmt.Errorf("%w: brick palette is empty", ErrInvalidConfig)
	case c.Bricks.HitPolicy != HitPolicyMulti && c.Bricks.HitPolicy != HitPolicyFirst:
		return fmt.Errorf("%w: unknown hit policy %q", ErrInvalidConfig, c.Bricks.HitPolicy)
	case c.Scoring.BrickPoints < 0:
		return fmt.Errorf("%w: brick points must not be negative", ErrInvalidConfig)
	case c.Loop.TickRate <= 0:
		return fmt.Errorf("%w: tick rate must be positive", ErrInvalidConfig)
	case c.Loop.MaxCatchUp <= 0:
		return fmt.Errorf("%w: max catch-up must be positive", ErrInvalidConfig)
	}

	colours := append([]string{c.Ball.Color, c.Paddle.Color}, c.Bricks.Palette...)
	for _, hex := range colours {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: bad colour %q", ErrInvalidConfig, hex)
		}
	}
	return nil
}
