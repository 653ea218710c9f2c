package web

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/games/breakout"
)

// ReplaySaver persists finished sessions.
type ReplaySaver interface {
	SaveReplay(rec breakout.Recording) (int64, error)
}

// Session owns one player's Simulation. Run is the only goroutine touching
// it; other goroutines hand over input through Push.
type Session struct {
	id     string
	gameID string
	cfg    config.BreakoutConfig
	inputs chan ClientMessage
	send   func([]byte)
	saver  ReplaySaver
	log    *zap.SugaredLogger
}

// NewSession creates a session. send is called from the session goroutine
// only; saver may be nil.
func NewSession(id, gameID string, cfg config.BreakoutConfig, send func([]byte), saver ReplaySaver, log *zap.SugaredLogger) *Session {
	return &Session{
		id:     id,
		gameID: gameID,
		cfg:    cfg,
		inputs: make(chan ClientMessage, 256),
		send:   send,
		saver:  saver,
		log:    log.With("session", id),
	}
}

// Push queues a client message without blocking. Returns false when the
// queue is full and the message was dropped.
func (s *Session) Push(msg ClientMessage) bool {
	select {
	case s.inputs <- msg:
		return true
	default:
		return false
	}
}

// Run plays games until ctx is cancelled. After a game ends it waits for a
// restart message and starts over with a fresh simulation.
func (s *Session) Run(ctx context.Context) error {
	s.sendJSON(HelloMessage{
		Type:   MsgHello,
		Game:   s.gameID,
		Width:  s.cfg.Arena.Width,
		Height: s.cfg.Arena.Height,
	})

	for {
		if err := s.play(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		if !s.awaitRestart(ctx) {
			return nil
		}
		s.log.Debugw("restart")
	}
}

// play runs a single game to its end.
func (s *Session) play(ctx context.Context) error {
	sim, err := breakout.NewSimulation(s.cfg)
	if err != nil {
		return err
	}
	surface := NewFrameSurface()
	sched, err := breakout.NewScheduler(sim, surface, s.cfg.Loop)
	if err != nil {
		return err
	}
	rec := breakout.NewRecorder(s.gameID, sim)
	sched.OnTick(s.logTick)

	dirty := true
	err = sched.Run(ctx, breakout.Hooks{
		Before: func() {
			if s.drain(sched, rec) {
				dirty = true
			}
		},
		After: func(ticks int) {
			if ticks == 0 && !dirty {
				return
			}
			dirty = false
			s.sendFrame(sim, surface, sched.Paused())
		},
	})

	s.saveReplay(rec)
	if err == nil {
		s.log.Infow("game over", "phase", sim.Phase(), "score", sim.Score(), "ticks", sim.TickCount())
	}
	return err
}

// drain applies all queued messages. Reports whether anything changed.
func (s *Session) drain(sched *breakout.Scheduler, rec *breakout.Recorder) bool {
	changed := false
	for {
		select {
		case msg := <-s.inputs:
			if ev, ok := msg.InputEvent(); ok {
				if sched.Accepts(ev) {
					rec.Apply(ev)
					changed = true
				}
			} else if msg.Type == MsgPause {
				sched.SetPaused(!sched.Paused())
				changed = true
			}
		default:
			return changed
		}
	}
}

// logTick reports scoring events. Bounces are too frequent to log.
func (s *Session) logTick(res breakout.TickResult) {
	for _, ev := range res.Events {
		switch ev.Kind {
		case breakout.EventBrickBroken:
			s.log.Debugw("brick broken", "tick", res.Tick, "brick", ev.Brick)
		case breakout.EventMiss, breakout.EventCleared:
			s.log.Debugw(ev.Kind.String(), "tick", res.Tick, "phase", res.Phase)
		}
	}
}

// awaitRestart blocks until a restart message arrives or ctx ends.
func (s *Session) awaitRestart(ctx context.Context) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case msg := <-s.inputs:
			if msg.Type == MsgRestart {
				return true
			}
		}
	}
}

func (s *Session) sendFrame(sim *breakout.Simulation, surface *FrameSurface, paused bool) {
	s.sendJSON(FrameMessage{
		Type:   MsgFrame,
		Tick:   sim.TickCount(),
		Phase:  sim.Phase().String(),
		Score:  sim.Score(),
		Paused: paused,
		Ops:    surface.Ops(),
	})
}

func (s *Session) sendJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Errorw("encode message", "error", err)
		return
	}
	s.send(b)
}

func (s *Session) saveReplay(rec *breakout.Recorder) {
	if s.saver == nil {
		return
	}
	r := rec.Recording()
	if r.Ticks == 0 {
		return
	}
	id, err := s.saver.SaveReplay(r)
	if err != nil {
		s.log.Warnw("cannot save replay", "error", err)
		return
	}
	s.log.Debugw("replay saved", "id", id)
}
