// Package storage provides SQLite-based persistence for episode results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only per-episode aggregates are stored; boards are never persisted.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for episode persistence.
type Store struct {
	db *sql.DB
}

// EpisodeRecord is one stored episode result.
type EpisodeRecord struct {
	ID        int64
	RunID     string
	Policy    string
	Episode   int
	Seed      int64
	Score     int
	Reward    float64
	Steps     int
	MaxTile   int
	CreatedAt time.Time
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

	// Test connection
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
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			policy TEXT NOT NULL,
			episode INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			reward REAL NOT NULL,
			steps INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_policy ON episodes(policy);
		CREATE INDEX IF NOT EXISTS idx_episodes_top ON episodes(policy, score DESC);
		CREATE INDEX IF NOT EXISTS idx_episodes_run ON episodes(run_id, episode);
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

// SaveEpisode records one episode result.
// Returns the ID of the inserted record.
func (s *Store) SaveEpisode(rec EpisodeRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO episodes (run_id, policy, episode, seed, score, reward, steps, max_tile)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Policy, rec.Episode, rec.Seed, rec.Score, rec.Reward, rec.Steps, rec.MaxTile,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveEpisodes records a batch of episodes in one transaction.
func (s *Store) SaveEpisodes(recs []EpisodeRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO episodes (run_id, policy, episode, seed, score, reward, steps, max_tile)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.Exec(rec.RunID, rec.Policy, rec.Episode, rec.Seed, rec.Score, rec.Reward, rec.Steps, rec.MaxTile); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot save episode %d: %w", rec.Episode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit episodes: %w", err)
	}
	return nil
}

const episodeColumns = `id, run_id, policy, episode, seed, score, reward, steps, max_tile, created_at`

// TopEpisodes retrieves the top N episodes by score for the given policy.
func (s *Store) TopEpisodes(policy string, limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE policy = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		policy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	return scanEpisodes(rows)
}

// RunEpisodes retrieves all episodes of a run ordered by episode index.
func (s *Store) RunEpisodes(runID string) ([]EpisodeRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE run_id = ?
		 ORDER BY episode ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return scanEpisodes(rows)
}

func scanEpisodes(rows *sql.Rows) ([]EpisodeRecord, error) {
	defer rows.Close()

	var records []EpisodeRecord
	for rows.Next() {
		var r EpisodeRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Policy, &r.Episode, &r.Seed,
			&r.Score, &r.Reward, &r.Steps, &r.MaxTile, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles both time.Time and string datetimes.
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

// BestTile returns the highest max tile reached by the given policy.
// Returns 0 if no episodes exist.
func (s *Store) BestTile(policy string) (int, error) {
	var tile sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(max_tile) FROM episodes WHERE policy = ?",
		policy,
	).Scan(&tile)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best tile: %w", err)
	}

	if !tile.Valid {
		return 0, nil
	}

	return int(tile.Int64), nil
}

// ClearEpisodes deletes all episodes for the given policy.
func (s *Store) ClearEpisodes(policy string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE policy = ?", policy)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}
