package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// DBFileName is the manifest file created inside the output directory.
const DBFileName = "manifest.db"

// Run describes one invocation of the build pipeline.
type Run struct {
	ID             string
	Status         string
	StartedAt      time.Time
	FinishedAt     time.Time
	DataDir        string
	NumShards      int
	NumThreads     int
	ValidationSize float64
	ShuffleSeed    int64
	TotalRecords   int
}

// Shard describes one completed shard file.
type Shard struct {
	RunID       string
	Split       string
	Index       int
	Path        string
	RecordCount int
}

// Store persists runs and shards in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id              TEXT PRIMARY KEY,
    status          TEXT NOT NULL,
    started_at      TEXT NOT NULL,
    finished_at     TEXT,
    data_dir        TEXT NOT NULL,
    num_shards      INTEGER NOT NULL,
    num_threads     INTEGER NOT NULL,
    validation_size REAL NOT NULL,
    shuffle_seed    INTEGER NOT NULL,
    total_records   INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS shards (
    run_id       TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    split        TEXT NOT NULL,
    shard_index  INTEGER NOT NULL,
    path         TEXT NOT NULL,
    record_count INTEGER NOT NULL,
    PRIMARY KEY (run_id, split, shard_index)
);
`

// Open initializes or connects to the manifest database in dir.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open manifest db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply manifest schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the manifest database location.
func (s *Store) Path() string {
	return s.path
}

// BeginRun inserts a new run row in the running state and returns its ID.
func (s *Store) BeginRun(ctx context.Context, run Run) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, status, started_at, data_dir,
            num_shards, num_threads, validation_size, shuffle_seed
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		StatusRunning,
		time.Now().UTC().Format(time.RFC3339Nano),
		run.DataDir,
		run.NumShards,
		run.NumThreads,
		run.ValidationSize,
		run.ShuffleSeed,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// AddShard records a completed shard file. Workers call this concurrently;
// the busy timeout absorbs writer contention.
func (s *Store) AddShard(ctx context.Context, shard Shard) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO shards (run_id, split, shard_index, path, record_count)
         VALUES (?, ?, ?, ?, ?)`,
		shard.RunID,
		shard.Split,
		shard.Index,
		shard.Path,
		shard.RecordCount,
	)
	if err != nil {
		return fmt.Errorf("insert shard %s/%d: %w", shard.Split, shard.Index, err)
	}
	return nil
}

// FinishRun marks the run completed with its final record count.
func (s *Store) FinishRun(ctx context.Context, runID string, totalRecords int) error {
	return s.finish(ctx, runID, StatusCompleted, totalRecords)
}

// FailRun marks the run failed. Shard rows already written stay in place so
// inspect can show how far the run got.
func (s *Store) FailRun(ctx context.Context, runID string) error {
	return s.finish(ctx, runID, StatusFailed, 0)
}

func (s *Store) finish(ctx context.Context, runID, status string, totalRecords int) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET status = ?, finished_at = ?, total_records = ? WHERE id = ?`,
		status,
		time.Now().UTC().Format(time.RFC3339Nano),
		totalRecords,
		runID,
	)
	if err != nil {
		return fmt.Errorf("update run %s: %w", runID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update run %s: %w", runID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update run %s: no such run", runID)
	}
	return nil
}

// LatestRun returns the most recently started run, or nil when the manifest
// is empty.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, status, started_at, COALESCE(finished_at, ''), data_dir,
                num_shards, num_threads, validation_size, shuffle_seed, total_records
         FROM runs ORDER BY started_at DESC LIMIT 1`,
	)

	var run Run
	var started, finished string
	err := row.Scan(
		&run.ID, &run.Status, &started, &finished, &run.DataDir,
		&run.NumShards, &run.NumThreads, &run.ValidationSize, &run.ShuffleSeed, &run.TotalRecords,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}

	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parse run start time: %w", err)
	}
	if finished != "" {
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse run finish time: %w", err)
		}
	}
	return &run, nil
}

// ShardsForRun lists the shard rows of a run ordered by split then index.
func (s *Store) ShardsForRun(ctx context.Context, runID string) ([]Shard, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, split, shard_index, path, record_count
         FROM shards WHERE run_id = ? ORDER BY split, shard_index`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query shards: %w", err)
	}
	defer rows.Close()

	var shards []Shard
	for rows.Next() {
		var shard Shard
		if err := rows.Scan(&shard.RunID, &shard.Split, &shard.Index, &shard.Path, &shard.RecordCount); err != nil {
			return nil, fmt.Errorf("scan shard row: %w", err)
		}
		shards = append(shards, shard)
	}
	return shards, rows.Err()
}
