package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/games/breakout"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// recordSession plays a short scripted session.
func recordSession(t *testing.T, gameID string, ticks int) breakout.Recording {
	t.Helper()
	sim, err := breakout.NewSimulation(config.DefaultBreakoutConfig())
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	rec := breakout.NewRecorder(gameID, sim)

	for i := range ticks {
		switch i % 30 {
		case 0:
			rec.Apply(core.KeyDown("ArrowLeft"))
		case 10:
			rec.Apply(core.KeyUp("ArrowLeft"))
		case 20:
			rec.Apply(core.PointerMove(sim.Ball().X+12.5, 12.5))
		}
		sim.Tick()
	}
	return rec.Recording()
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)
	rec := recordSession(t, "breakout", 200)

	id, err := store.SaveReplay(rec)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	if got.GameID != rec.GameID || got.Ticks != rec.Ticks || got.Score != rec.Score ||
		got.Phase != rec.Phase || got.Hash != rec.Hash {
		t.Errorf("summary mismatch: got %+v", got)
	}
	if len(got.Events) != len(rec.Events) {
		t.Fatalf("events = %d, want %d", len(got.Events), len(rec.Events))
	}
	for i := range rec.Events {
		if got.Events[i] != rec.Events[i] {
			t.Errorf("event %d = %+v, want %+v", i, got.Events[i], rec.Events[i])
		}
	}
	if got.Config.Bricks.HitPolicy != rec.Config.Bricks.HitPolicy || got.Config.Arena != rec.Config.Arena {
		t.Error("config did not round-trip")
	}

	ok, err := breakout.Verify(got)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if !ok {
		t.Error("stored replay does not reproduce the session")
	}
}

func TestStoreReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Replay(42)
	if !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("Replay() error = %v, want ErrReplayNotFound", err)
	}
	if err := store.DeleteReplay(42); !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("DeleteReplay() error = %v, want ErrReplayNotFound", err)
	}
}

func TestStoreListReplays(t *testing.T) {
	store := openTestStore(t)

	for _, gameID := range []string{"breakout", "breakout_strict", "breakout"} {
		if _, err := store.SaveReplay(recordSession(t, gameID, 60)); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}

	all, err := store.ListReplays("", 10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListReplays(all) = %d, want 3", len(all))
	}
	if all[0].ID < all[1].ID || all[1].ID < all[2].ID {
		t.Error("replays should be listed newest first")
	}
	if all[0].EventCount == 0 || all[0].Ticks != 60 {
		t.Errorf("unexpected summary: %+v", all[0])
	}

	strict, err := store.ListReplays("breakout_strict", 10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(strict) != 1 {
		t.Errorf("ListReplays(breakout_strict) = %d, want 1", len(strict))
	}

	limited, err := store.ListReplays("", 2)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ListReplays(limit 2) = %d, want 2", len(limited))
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay(recordSession(t, "breakout", 30))
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.Replay(id); !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("Replay() after delete = %v, want ErrReplayNotFound", err)
	}

	var n int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM replay_events").Scan(&n); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if n != 0 {
		t.Errorf("%d orphaned events left", n)
	}
}
