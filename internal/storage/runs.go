package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RunRecord is the outcome of one headless simulation run.
type RunRecord struct {
	ID              string // Assigned by SaveRun when empty
	SceneID         string
	Seed            int64
	Resolver        string
	Ticks           int
	Bodies          int
	Collisions      int
	WorldCollisions int
	Score           int
	Hash            uint64 // Final snapshot hash
	Duration        time.Duration
	CreatedAt       time.Time
}

// RunStats contains aggregated run statistics for a scene.
type RunStats struct {
	SceneID       string
	Runs          int
	AvgCollisions float64
	MaxCollisions int
	AvgDuration   time.Duration
	LastRun       time.Time
}

const runColumns = `id, scene_id, seed, resolver, ticks, bodies, collisions,
		        world_collisions, score, hash, duration_ms, created_at`

// SaveRun records a run and returns its ID.
// A new UUID is generated unless the record already carries one.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, scene_id, seed, resolver, ticks, bodies, collisions, world_collisions, score, hash, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.SceneID,
		r.Seed,
		r.Resolver,
		r.Ticks,
		r.Bodies,
		r.Collisions,
		r.WorldCollisions,
		r.Score,
		formatHash(r.Hash),
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return r.ID, nil
}

// RunByID retrieves a run by its ID.
// Returns nil without error when no such run exists.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty sceneID returns runs from every scene.
func (s *Store) RecentRuns(sceneID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		rows *sql.Rows
		err  error
	)
	if sceneID == "" {
		rows, err = s.db.Query(
			`SELECT `+runColumns+`
			 FROM runs
			 ORDER BY created_at DESC, rowid DESC
			 LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT `+runColumns+`
			 FROM runs
			 WHERE scene_id = ?
			 ORDER BY created_at DESC, rowid DESC
			 LIMIT ?`,
			sceneID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// SceneStats retrieves aggregated run statistics for a scene.
func (s *Store) SceneStats(sceneID string) (*RunStats, error) {
	stats := &RunStats{SceneID: sceneID}

	var avgDurationMS float64
	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(collisions), 0), COALESCE(MAX(collisions), 0),
		        COALESCE(AVG(duration_ms), 0), MAX(created_at)
		 FROM runs WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Runs, &stats.AvgCollisions, &stats.MaxCollisions, &avgDurationMS, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}

	stats.AvgDuration = time.Duration(avgDurationMS * float64(time.Millisecond))
	stats.LastRun = parseTime(lastRun)
	return stats, nil
}

// ClearRuns deletes all runs for the given scene.
func (s *Store) ClearRuns(sceneID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scene_id = ?", sceneID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var (
		r          RunRecord
		hash       string
		durationMS int64
		createdAt  any
	)
	err := row.Scan(
		&r.ID,
		&r.SceneID,
		&r.Seed,
		&r.Resolver,
		&r.Ticks,
		&r.Bodies,
		&r.Collisions,
		&r.WorldCollisions,
		&r.Score,
		&hash,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return RunRecord{}, err
	}

	r.Hash, err = strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return RunRecord{}, fmt.Errorf("bad hash %q: %w", hash, err)
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// formatHash stores hashes as fixed-width hex; SQLite integers are signed.
func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}
