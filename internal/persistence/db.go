// Package persistence provides SQLite-based game state storage. The
// engine hands a GameState here at turn end and never looks back; the
// snapshot keyed by game and turn is the whole contract.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/statecraft/internal/game"
)

// DB wraps a SQLite connection for game state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		state_json TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (game_id, turn)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_game_turn ON events(game_id, turn);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSnapshot writes the full state for its current turn. Replaces any
// previous snapshot of the same game and turn, and appends this turn's
// events.
func (db *DB) SaveSnapshot(state *game.GameState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO snapshots (game_id, turn, state_json) VALUES (?, ?, ?)",
		string(state.GameID), state.Turn, string(stateJSON),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	for _, e := range state.Events {
		if e.Turn != state.Turn {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO events (game_id, turn, description, category) VALUES (?, ?, ?, ?)",
			string(state.GameID), e.Turn, e.Description, e.Category,
		); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Debug("snapshot saved", "game", state.GameID, "turn", state.Turn)
	return nil
}

// LoadLatest restores the most recent snapshot of a game. Returns
// (nil, nil) when the game has never been saved.
func (db *DB) LoadLatest(gameID game.GameID) (*game.GameState, error) {
	var stateJSON string
	err := db.conn.Get(&stateJSON,
		"SELECT state_json FROM snapshots WHERE game_id = ? ORDER BY turn DESC LIMIT 1",
		string(gameID),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var state game.GameState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &state, nil
}

// HasGame reports whether any snapshot exists for a game.
func (db *DB) HasGame(gameID game.GameID) (bool, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM snapshots WHERE game_id = ?", string(gameID))
	return n > 0, err
}

// RecentEvents returns the most recent N events of a game.
func (db *DB) RecentEvents(gameID game.GameID, limit int) ([]game.Event, error) {
	var events []game.Event
	err := db.conn.Select(&events,
		"SELECT turn, description, category FROM events WHERE game_id = ? ORDER BY id DESC LIMIT ?",
		string(gameID), limit,
	)
	return events, err
}
