package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Ball: BallConfig{
			Radius: 8,
			StartX: 400,
			StartY: 500,
			DX:     4,
			DY:     -4,
			Color:  "#FFFFFF",
		},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       15,
			BottomOffset: 10,
			Speed:        7,
			Color:        "#FFFFFF",
		},
		Bricks: BricksConfig{
			Rows:       5,
			Columns:    8,
			Width:      90,
			Height:     25,
			Padding:    10,
			OffsetTop:  50,
			OffsetLeft: 35,
			Palette:    []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8"},
			HitPolicy:  HitPolicyMulti,
		},
		Scoring: ScoringConfig{
			BrickPoints: 10,
		},
		Loop: LoopConfig{
			TickRate:   60,
			MaxCatchUp: 5,
		},
		Input: InputConfig{
			KeyHoldMS: 120,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "breakout":
		return defaultBreakoutYAML
	default:
		return nil
	}
}
