package breakout

import (
	"fmt"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
)

// RecordedEvent is an input event tagged with the tick count at the moment
// it was applied. Tick 0 means before the first tick.
type RecordedEvent struct {
	Tick  uint64
	Event core.InputEvent
}

// Recording is one game session: its config, its inputs and how it ended.
type Recording struct {
	GameID string
	Config config.BreakoutConfig
	Events []RecordedEvent

	Ticks uint64
	Phase Phase
	Score int
	Hash  uint64
}

// Recorder logs every input applied to a simulation.
type Recorder struct {
	gameID string
	sim    *Simulation
	events []RecordedEvent
}

// NewRecorder starts recording sim. The simulation must be freshly reset.
func NewRecorder(gameID string, sim *Simulation) *Recorder {
	return &Recorder{gameID: gameID, sim: sim}
}

// Apply records ev and routes it to the simulation.
// Events arriving after the game ended are dropped.
func (r *Recorder) Apply(ev core.InputEvent) {
	if !r.sim.Running() {
		return
	}
	r.events = append(r.events, RecordedEvent{Tick: r.sim.TickCount(), Event: ev})
	r.sim.HandleInput(ev)
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.events)
}

// Recording returns the session recorded so far with the current outcome.
func (r *Recorder) Recording() Recording {
	snap := r.sim.Snapshot()
	events := make([]RecordedEvent, len(r.events))
	copy(events, r.events)

	return Recording{
		GameID: r.gameID,
		Config: r.sim.Config(),
		Events: events,
		Ticks:  snap.Tick,
		Phase:  snap.Phase,
		Score:  snap.Score,
		Hash:   snap.Hash(),
	}
}

// Replay re-simulates a recording from scratch and returns the simulation
// after rec.Ticks ticks, or earlier if it ended.
func Replay(rec Recording) (*Simulation, error) {
	sim, err := NewSimulation(rec.Config)
	if err != nil {
		return nil, fmt.Errorf("breakout: replay: %w", err)
	}

	next := 0
	feed := func() {
		for next < len(rec.Events) && rec.Events[next].Tick == sim.TickCount() {
			sim.HandleInput(rec.Events[next].Event)
			next++
		}
	}

	for sim.Running() && sim.TickCount() < rec.Ticks {
		feed()
		sim.Tick()
	}
	feed()
	return sim, nil
}

// Verify replays rec and reports whether it ends in the recorded state.
func Verify(rec Recording) (bool, error) {
	sim, err := Replay(rec)
	if err != nil {
		return false, err
	}
	snap := sim.Snapshot()
	return snap.Hash() == rec.Hash && snap.Phase == rec.Phase && snap.Score == rec.Score, nil
}
