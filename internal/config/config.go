// Package config provides YAML-based game configuration loading for the arcade.
package config

// Brick hit policies. HitPolicyMulti scans every brick each tick, so a ball
// overlapping several bricks breaks all of them; HitPolicyFirst stops at the
// first hit in scan order.
const (
	HitPolicyMulti = "multi"
	HitPolicyFirst = "first"
)

// BreakoutConfig contains all configuration for the Breakout simulation.
type BreakoutConfig struct {
	Arena   ArenaConfig   `yaml:"arena"`
	Ball    BallConfig    `yaml:"ball"`
	Paddle  PaddleConfig  `yaml:"paddle"`
	Bricks  BricksConfig  `yaml:"bricks"`
	Scoring ScoringConfig `yaml:"scoring"`
	Loop    LoopConfig    `yaml:"loop"`
	Input   InputConfig   `yaml:"input"`
}

// ArenaConfig defines the logical size of the playfield.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig defines the ball's creation-time state.
type BallConfig struct {
	Radius float64 `yaml:"radius"`
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	DX     float64 `yaml:"dx"` // Units per tick
	DY     float64 `yaml:"dy"`
	Color  string  `yaml:"color"`
}

// PaddleConfig defines paddle geometry and movement.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"` // Gap between paddle and arena bottom
	Speed        float64 `yaml:"speed"`         // Units per tick while a key is held
	Color        string  `yaml:"color"`
}

// BricksConfig defines the brick grid layout.
type BricksConfig struct {
	Rows       int      `yaml:"rows"`
	Columns    int      `yaml:"columns"`
	Width      float64  `yaml:"width"`
	Height     float64  `yaml:"height"`
	Padding    float64  `yaml:"padding"`
	OffsetTop  float64  `yaml:"offset_top"`
	OffsetLeft float64  `yaml:"offset_left"`
	Palette    []string `yaml:"palette"` // Assigned by row, cyclic
	HitPolicy  string   `yaml:"hit_policy"`
}

// ScoringConfig defines score increments.
type ScoringConfig struct {
	BrickPoints int `yaml:"brick_points"`
}

// LoopConfig defines the fixed-step scheduler.
type LoopConfig struct {
	TickRate   int `yaml:"tick_rate"`   // Logical ticks per second
	MaxCatchUp int `yaml:"max_catchup"` // Max ticks run per host frame
}

// InputConfig defines host input tuning.
type InputConfig struct {
	// KeyHoldMS is how long a terminal key press counts as held.
	// Terminals report no key releases, so hosts synthesise one after this window.
	KeyHoldMS int `yaml:"key_hold_ms"`
}
