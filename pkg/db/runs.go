package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/sentiment-wordcount/models"
)

const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunStats mirrors the record statistics a job reports.
type RunStats struct {
	Lines      int   `yaml:"lines"`
	Blank      int   `yaml:"blank"`
	Discarded  int   `yaml:"discarded"`
	Kept       int   `yaml:"kept"`
	Pairs      int   `yaml:"pairs"`
	Partitions int   `yaml:"partitions"`
	Unroutable int   `yaml:"unroutable"`
	Stopwords  int   `yaml:"stopwords"`
	InputBytes int64 `yaml:"input_bytes"`
}

// Run represents a recorded word count job.
type Run struct {
	RunID        int64      `yaml:"run_id"`
	StartedAt    time.Time  `yaml:"started_at"`
	FinishedAt   *time.Time `yaml:"finished_at,omitempty"`
	Status       string     `yaml:"status"`
	InputPath    string     `yaml:"input"`
	InputHash    string     `yaml:"input_hash,omitempty"`
	OutputDir    string     `yaml:"output_dir"`
	StopwordPath string     `yaml:"stopword_file"`
	Workers      int        `yaml:"workers"`
	ChunkSize    int        `yaml:"chunk_size"`
	TopK         int        `yaml:"top_k"`
	Stats        RunStats   `yaml:"stats"`
	ErrorMessage string     `yaml:"error,omitempty"`
}

// CreateRun inserts a run in the running state and returns its ID.
func (db *DB) CreateRun(r Run) (int64, error) {
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}

	result, err := db.Exec(`
		INSERT INTO runs (started_at, status, input_path, input_hash, output_dir,
		                  stopword_path, workers, chunk_size, top_k)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.StartedAt.UTC(), RunStatusRunning, r.InputPath, r.InputHash, r.OutputDir,
		r.StopwordPath, r.Workers, r.ChunkSize, r.TopK)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// FinishRun records the final status and statistics of a run.
// runErr is stored as the error message when non-nil.
func (db *DB) FinishRun(runID int64, status string, stats RunStats, runErr error) error {
	var errMsg sql.NullString
	if runErr != nil {
		errMsg = sql.NullString{String: runErr.Error(), Valid: true}
	}

	result, err := db.Exec(`
		UPDATE runs
		SET finished_at = ?, status = ?,
		    line_count = ?, blank_count = ?, discarded_count = ?, kept_count = ?,
		    pair_count = ?, partition_count = ?, unroutable_count = ?,
		    stopword_count = ?, input_bytes = ?, error_message = ?
		WHERE run_id = ?
	`, time.Now().UTC(), status,
		stats.Lines, stats.Blank, stats.Discarded, stats.Kept,
		stats.Pairs, stats.Partitions, stats.Unroutable,
		stats.Stopwords, stats.InputBytes, errMsg, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check finished run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	return nil
}

// InsertTopWords stores the ranked entries written to one output stream.
func (db *DB) InsertTopWords(runID int64, stream string, entries []models.CountEntry) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO run_top_words (run_id, stream, position, word, occurrences)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare top words insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(runID, stream, i+1, e.Word, e.Count); err != nil {
			return fmt.Errorf("failed to insert top word %q: %w", e.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit top words: %w", err)
	}
	return nil
}

// GetTopWords returns the stored entries of one stream in rank order.
func (db *DB) GetTopWords(runID int64, stream string) ([]models.CountEntry, error) {
	rows, err := db.Query(`
		SELECT word, occurrences
		FROM run_top_words
		WHERE run_id = ? AND stream = ?
		ORDER BY position
	`, runID, stream)
	if err != nil {
		return nil, fmt.Errorf("failed to get top words: %w", err)
	}
	defer rows.Close()

	var entries []models.CountEntry
	for rows.Next() {
		var e models.CountEntry
		if err := rows.Scan(&e.Word, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top word: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const runColumns = `
	run_id, started_at, finished_at, status, input_path, COALESCE(input_hash, ''),
	output_dir, stopword_path, workers, chunk_size, top_k,
	line_count, blank_count, discarded_count, kept_count, pair_count,
	partition_count, unroutable_count, stopword_count, input_bytes, COALESCE(error_message, '')
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var finished sql.NullTime
	err := row.Scan(&r.RunID, &r.StartedAt, &finished, &r.Status, &r.InputPath, &r.InputHash,
		&r.OutputDir, &r.StopwordPath, &r.Workers, &r.ChunkSize, &r.TopK,
		&r.Stats.Lines, &r.Stats.Blank, &r.Stats.Discarded, &r.Stats.Kept, &r.Stats.Pairs,
		&r.Stats.Partitions, &r.Stats.Unroutable, &r.Stats.Stopwords, &r.Stats.InputBytes, &r.ErrorMessage)
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		r.FinishedAt = &finished.Time
	}
	return &r, nil
}

// GetRun returns a run by ID.
func (db *DB) GetRun(runID int64) (*Run, error) {
	row := db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, run_id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// LastSuccessfulRunForInput returns the newest successful run over the same
// input content, or nil when there is none.
func (db *DB) LastSuccessfulRunForInput(inputHash string) (*Run, error) {
	row := db.QueryRow("SELECT "+runColumns+` FROM runs
		WHERE input_hash = ? AND status = ?
		ORDER BY started_at DESC, run_id DESC
		LIMIT 1`, inputHash, RunStatusSuccess)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find previous run: %w", err)
	}
	return r, nil
}
