// Package web serves the game to browsers: an embedded canvas page and a
// websocket endpoint where every connection plays its own simulation.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vovakirdan/brick-arcade/internal/config"
)

//go:embed static
var staticFiles embed.FS

// Config configures the web host.
type Config struct {
	Addr       string
	GameID     string
	GameConfig config.BreakoutConfig
	Store      ReplaySaver
	Logger     *zap.SugaredLogger
}

// Server hosts browser sessions.
type Server struct {
	cfg      Config
	log      *zap.SugaredLogger
	upgrader websocket.Upgrader
}

// NewServer validates cfg and creates a server.
func NewServer(cfg Config) (*Server, error) {
	if err := cfg.GameConfig.Validate(); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.GameID == "" {
		cfg.GameID = "breakout"
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Server{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	static, _ := fs.Sub(staticFiles, "static")
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s; open http://localhost%s/", s.cfg.Addr, s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("upgrade", "error", err)
		return
	}

	id := uuid.NewString()
	client := NewClientConn(ws, s.log.With("session", id))
	session := NewSession(id, s.cfg.GameID, s.cfg.GameConfig, client.Enqueue, s.cfg.Store, s.log)

	// r.Context derives from the server's base context; shutdown ends the session.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go client.writePump()
	go client.readPump(session, cancel)

	s.log.Infow("session started", "session", id, "remote", r.RemoteAddr)
	if err := session.Run(ctx); err != nil {
		s.log.Errorw("session failed", "session", id, "error", err)
	}
	client.Close()
	s.log.Infow("session ended", "session", id)
}
