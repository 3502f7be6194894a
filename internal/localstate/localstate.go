// Package localstate keeps a small SQLite log of workouts run from the
// command line, so completions are preserved even when no server is
// configured.
package localstate

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// LogDB records finished and aborted command-line workout runs.
type LogDB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite log database at dir/runs.db.
func Open(dir string) (*LogDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "runs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening runs db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		plan_name   TEXT NOT NULL,
		started_at  TIMESTAMP NOT NULL,
		ended_at    TIMESTAMP NOT NULL,
		total_secs  INTEGER NOT NULL,
		completed   INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs table: %w", err)
	}

	return &LogDB{db: db}, nil
}

// Record appends one finished or aborted run to the log.
func (l *LogDB) Record(planName string, startedAt, endedAt time.Time, totalSecs int, completed bool) error {
	_, err := l.db.Exec(
		`INSERT INTO runs (plan_name, started_at, ended_at, total_secs, completed) VALUES (?, ?, ?, ?, ?)`,
		planName, startedAt.UTC(), endedAt.UTC(), totalSecs, completed,
	)
	return err
}

// Run is one logged command-line workout.
type Run struct {
	ID        int64
	PlanName  string
	StartedAt time.Time
	EndedAt   time.Time
	TotalSecs int
	Completed bool
}

// Recent returns the most recent runs, newest first.
func (l *LogDB) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(
		`SELECT id, plan_name, started_at, ended_at, total_secs, completed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.PlanName, &r.StartedAt, &r.EndedAt, &r.TotalSecs, &r.Completed); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the log database.
func (l *LogDB) Close() error {
	return l.db.Close()
}
