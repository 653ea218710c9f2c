// arcade plays Breakout in the terminal, a desktop window or a browser.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game in the terminal
//	arcade menu              - Start menu to pick games interactively
//	arcade window            - Play in a desktop window
//	arcade web               - Serve the game to browsers
//	arcade serve             - Start SSH server for remote play
//	arcade replays           - List or browse recorded games
//	arcade replay <id>       - Re-simulate a recorded game and verify it
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--config <path>      - Custom game config YAML
//	--db <path>          - Set database path (default: ~/.arcade/arcade.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/games/breakout"
	"github.com/vovakirdan/brick-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Brick Arcade - Breakout in your terminal, a window or a browser",
	Long: `Brick Arcade runs a fixed-step Breakout simulation behind several hosts.

Available commands:
  list     - Show all available games
  play     - Play a specific game in the terminal
  menu     - Interactive game picker menu
  window   - Play in a desktop window
  web      - Serve the game over HTTP and websockets
  serve    - Start SSH server for remote play
  replays  - List or browse recorded games
  replay   - Re-simulate a recorded game

Examples:
  arcade list
  arcade play breakout
  arcade window
  arcade web --addr :8080
  arcade serve --ssh :2222
  arcade replay 3`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		breakout.SetConfigPath(flagConfig)
		return setupLogger()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (logical ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/arcade.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// setupLogger configures the default charm logger from --log-level.
func setupLogger() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)
	return nil
}

// loadGameConfig loads the breakout config, applying --fps when given.
func loadGameConfig(cmd *cobra.Command) (config.BreakoutConfig, error) {
	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("fps") {
		cfg.Loop.TickRate = flagFPS
	}
	return cfg, cfg.Validate()
}

// openStore opens the replay database. Hosts keep working without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open replay database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
