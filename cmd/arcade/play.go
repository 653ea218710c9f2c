package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/platform/tui"
	"github.com/vovakirdan/brick-arcade/internal/registry"
)

var flagKeyHold int

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game in the terminal.

Controls:
  Left/A/H     - Move paddle left
  Right/D/L    - Move paddle right
  Mouse        - Paddle follows the pointer
  P/Esc        - Pause
  R            - Restart (after the game ends)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Terminals report no key releases, so a key counts as held for
--key-hold milliseconds after its last press or auto-repeat.

Examples:
  arcade play breakout
  arcade play breakout_strict
  arcade play breakout --fps 120
  arcade play breakout --config ./my-breakout.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagKeyHold, "key-hold", 0, "Key hold window in milliseconds (0 = from config)")
}

// terminalConfig builds the runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	gameCfg, err := loadGameConfig(cmd)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, terminalConfig(), tui.Options{
		Store:   store,
		Logger:  fileLogger("tui"),
		KeyHold: keyHold(gameCfg.Input.KeyHoldMS),
	})
}

// keyHold picks the key hold window: --key-hold, then the config value.
func keyHold(configMS int) time.Duration {
	if flagKeyHold > 0 {
		return time.Duration(flagKeyHold) * time.Millisecond
	}
	return time.Duration(configMS) * time.Millisecond
}

// fileLogger writes logs to ~/.arcade/arcade.log. Full-screen hosts own
// stderr, so their logs go to a rotated file instead.
func fileLogger(prefix string) *log.Logger {
	path := "arcade.log"
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, ".arcade", "arcade.log")
	}
	logger := log.NewWithOptions(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
	}, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	logger.SetLevel(log.GetLevel())
	return logger
}
