package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/platform/web"
)

var (
	flagWebAddr    string
	flagWebLogFile string
	flagWebStrict  bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the game to browsers",
	Long: `Start an HTTP server with a canvas client. Every browser tab that connects
gets its own game, simulated on the server and streamed over a websocket.

Endpoints:
  /         - Game page
  /ws       - Websocket (input in, frames out)
  /healthz  - Liveness check

Examples:
  arcade web
  arcade web --addr :9000 --log-file ./web.log
  arcade web --strict`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
	webCmd.Flags().StringVar(&flagWebLogFile, "log-file", "", "Rotated log file (stderr if empty)")
	webCmd.Flags().BoolVar(&flagWebStrict, "strict", false, "Break at most one brick per tick")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig(cmd)
	if err != nil {
		return err
	}
	gameID := "breakout"
	if flagWebStrict {
		cfg.Bricks.HitPolicy = config.HitPolicyFirst
		gameID = "breakout_strict"
	}

	logger, err := web.NewLogger(flagWebLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srvCfg := web.Config{
		Addr:       flagWebAddr,
		GameID:     gameID,
		GameConfig: cfg,
		Logger:     logger,
	}
	if store := openStore(); store != nil {
		defer store.Close()
		srvCfg.Store = store
	}

	srv, err := web.NewServer(srvCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
