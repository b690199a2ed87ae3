// Package store provides persistence for ledger snapshots: a SQLite
// implementation for production and an in-memory one for tests.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/feltworks/casino-core/internal/ledger"
)

// snapshotKey is the fixed namespace the single snapshot row lives under.
const snapshotKey = "casino"

// SQLite persists ledger snapshots in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers from blocking the per-round snapshot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS ledger (
			key TEXT PRIMARY KEY,
			balance INTEGER NOT NULL,
			total_games INTEGER NOT NULL DEFAULT 0,
			total_won INTEGER NOT NULL DEFAULT 0,
			total_lost INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS game_stats (
			key TEXT NOT NULL,
			game TEXT NOT NULL,
			played INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			lost INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (key, game)
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Save writes the snapshot in one transaction.
func (s *SQLite) Save(snap ledger.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO ledger (key, balance, total_games, total_won, total_lost, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			balance = excluded.balance,
			total_games = excluded.total_games,
			total_won = excluded.total_won,
			total_lost = excluded.total_lost,
			updated_at = CURRENT_TIMESTAMP`,
		snapshotKey, snap.Balance, snap.TotalGames, snap.TotalWon, snap.TotalLost)
	if err != nil {
		return fmt.Errorf("saving balance: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO game_stats (key, game, played, won, lost)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key, game) DO UPDATE SET
			played = excluded.played,
			won = excluded.won,
			lost = excluded.lost`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for game, stats := range snap.Games {
		if _, err := stmt.Exec(snapshotKey, game, stats.Played, stats.Won, stats.Lost); err != nil {
			return fmt.Errorf("saving stats for %s: %w", game, err)
		}
	}

	return tx.Commit()
}

// Load reads the snapshot; found is false when no snapshot has been saved.
func (s *SQLite) Load() (ledger.Snapshot, bool, error) {
	var snap ledger.Snapshot
	err := s.db.QueryRow(
		`SELECT balance, total_games, total_won, total_lost FROM ledger WHERE key = ?`,
		snapshotKey,
	).Scan(&snap.Balance, &snap.TotalGames, &snap.TotalWon, &snap.TotalLost)
	if err == sql.ErrNoRows {
		return ledger.Snapshot{}, false, nil
	}
	if err != nil {
		return ledger.Snapshot{}, false, fmt.Errorf("loading balance: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT game, played, won, lost FROM game_stats WHERE key = ?`, snapshotKey)
	if err != nil {
		return ledger.Snapshot{}, false, fmt.Errorf("loading stats: %w", err)
	}
	defer rows.Close()

	snap.Games = make(map[string]ledger.GameStats)
	for rows.Next() {
		var game string
		var stats ledger.GameStats
		if err := rows.Scan(&game, &stats.Played, &stats.Won, &stats.Lost); err != nil {
			return ledger.Snapshot{}, false, fmt.Errorf("scanning stats: %w", err)
		}
		snap.Games[game] = stats
	}
	if err := rows.Err(); err != nil {
		return ledger.Snapshot{}, false, err
	}

	return snap, true, nil
}

// Clear removes the persisted snapshot.
func (s *SQLite) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ledger WHERE key = ?`, snapshotKey); err != nil {
		return fmt.Errorf("clearing balance: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM game_stats WHERE key = ?`, snapshotKey); err != nil {
		return fmt.Errorf("clearing stats: %w", err)
	}
	return tx.Commit()
}
