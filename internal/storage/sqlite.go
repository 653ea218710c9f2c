// Package storage provides SQLite-based persistence for game replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/games/breakout"
)

// ErrReplayNotFound is returned when no replay has the requested ID.
var ErrReplayNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayInfo is the summary row of a stored replay, without its events.
type ReplayInfo struct {
	ID         int64
	GameID     string
	Phase      breakout.Phase
	Ticks      uint64
	Score      int
	EventCount int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			config_yaml TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			phase TEXT NOT NULL,
			score INTEGER NOT NULL,
			state_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);

		CREATE TABLE IF NOT EXISTS replay_events (
			replay_id INTEGER NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			kind INTEGER NOT NULL,
			key_id TEXT NOT NULL DEFAULT '',
			x REAL NOT NULL DEFAULT 0,
			offset_x REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (replay_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a recording and its events in one transaction.
// Returns the ID of the inserted replay.
func (s *Store) SaveReplay(rec breakout.Recording) (int64, error) {
	cfgYAML, err := yaml.Marshal(rec.Config)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode config: %w", err)
	}

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.Exec(
		`INSERT INTO replays (game_id, config_yaml, ticks, phase, score, state_hash)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.GameID, string(cfgYAML), int64(rec.Ticks), rec.Phase.String(), rec.Score, //#nosec G115 -- tick counts fit in int64
		strconv.FormatUint(rec.Hash, 16),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO replay_events (replay_id, seq, tick, kind, key_id, x, offset_x)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for seq, ev := range rec.Events {
		if _, err := stmt.Exec(
			id, seq, int64(ev.Tick), int(ev.Event.Kind), //#nosec G115 -- tick counts fit in int64
			ev.Event.Key, ev.Event.X, ev.Event.Offset,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save replay event %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// Replay loads a full recording by ID.
func (s *Store) Replay(id int64) (breakout.Recording, error) {
	var (
		rec       breakout.Recording
		cfgYAML   string
		ticks     int64
		phase     string
		stateHash string
	)

	err := s.db.QueryRow(
		`SELECT game_id, config_yaml, ticks, phase, score, state_hash
		 FROM replays WHERE id = ?`,
		id,
	).Scan(&rec.GameID, &cfgYAML, &ticks, &phase, &rec.Score, &stateHash)
	if errors.Is(err, sql.ErrNoRows) {
		return breakout.Recording{}, fmt.Errorf("%w: %d", ErrReplayNotFound, id)
	}
	if err != nil {
		return breakout.Recording{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	// Decode onto the defaults so replays survive newly added config fields.
	rec.Config = config.DefaultBreakoutConfig()
	if err := yaml.Unmarshal([]byte(cfgYAML), &rec.Config); err != nil {
		return breakout.Recording{}, fmt.Errorf("storage: cannot decode replay config: %w", err)
	}
	rec.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
	if rec.Phase, err = breakout.ParsePhase(phase); err != nil {
		return breakout.Recording{}, fmt.Errorf("storage: %w", err)
	}
	if rec.Hash, err = strconv.ParseUint(stateHash, 16, 64); err != nil {
		return breakout.Recording{}, fmt.Errorf("storage: bad state hash %q: %w", stateHash, err)
	}

	rows, err := s.db.Query(
		`SELECT tick, kind, key_id, x, offset_x
		 FROM replay_events WHERE replay_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return breakout.Recording{}, fmt.Errorf("storage: cannot query replay events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ev   breakout.RecordedEvent
			tick int64
			kind int
		)
		if err := rows.Scan(&tick, &kind, &ev.Event.Key, &ev.Event.X, &ev.Event.Offset); err != nil {
			return breakout.Recording{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ev.Tick = uint64(tick) //#nosec G115 -- stored from a uint64
		ev.Event.Kind = core.EventKind(kind)
		rec.Events = append(rec.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return breakout.Recording{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// ListReplays returns replay summaries, newest first.
// An empty gameID lists every game. A non-positive limit defaults to 20.
func (s *Store) ListReplays(gameID string, limit int) ([]ReplayInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.game_id, r.phase, r.ticks, r.score, r.created_at,
		        (SELECT COUNT(*) FROM replay_events e WHERE e.replay_id = r.id)
		 FROM replays r
		 WHERE ? = '' OR r.game_id = ?
		 ORDER BY r.id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var infos []ReplayInfo
	for rows.Next() {
		var (
			info      ReplayInfo
			phase     string
			ticks     int64
			createdAt any
		)
		if err := rows.Scan(&info.ID, &info.GameID, &phase, &ticks, &info.Score, &createdAt, &info.EventCount); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if info.Phase, err = breakout.ParsePhase(phase); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		info.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		info.CreatedAt = parseTime(createdAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// DeleteReplay removes a replay and its events.
func (s *Store) DeleteReplay(id int64) error {
	result, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrReplayNotFound, id)
	}

	// The cascade needs foreign keys enabled per connection; clean up explicitly.
	if _, err := s.db.Exec("DELETE FROM replay_events WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay events: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
