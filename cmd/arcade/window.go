package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/platform/window"
)

var (
	flagScale  float64
	flagStrict bool
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a window sized to the arena and play with the arrow keys or the mouse.

Controls:
  Left/Right  - Move paddle
  Mouse       - Paddle follows the pointer
  P           - Pause
  R           - Restart (after the game ends)
  Q/Esc       - Quit

Examples:
  arcade window
  arcade window --scale 1.5
  arcade window --strict`,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale factor")
	windowCmd.Flags().BoolVar(&flagStrict, "strict", false, "Break at most one brick per tick")
}

func runWindow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig(cmd)
	if err != nil {
		return err
	}
	gameID := "breakout"
	if flagStrict {
		cfg.Bricks.HitPolicy = config.HitPolicyFirst
		gameID = "breakout_strict"
	}

	opts := window.Options{
		GameID: gameID,
		Logger: log.Default(),
		Scale:  flagScale,
	}
	if store := openStore(); store != nil {
		defer store.Close()
		opts.Store = store
	}
	return window.Run(cfg, opts)
}
