package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/pacer/internal/models"
)

// InsertSessionRecord stores one finished or aborted session.
func (db *DB) InsertSessionRecord(ctx context.Context, rec models.SessionRecord) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO session_history (id, plan_id, plan_name, started_at, finished_at,
		 total_secs, blocks_total, completed)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT DO NOTHING`,
		rec.ID, rec.PlanID, rec.PlanName, rec.StartedAt, rec.FinishedAt,
		rec.TotalSecs, rec.BlocksTotal, rec.Completed)
	if err != nil {
		return fmt.Errorf("inserting session record: %w", err)
	}
	return nil
}

// QuerySessionHistory returns recent session records, newest first.
func (db *DB) QuerySessionHistory(ctx context.Context, limit int) ([]models.SessionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, plan_id, plan_name, started_at, finished_at, total_secs,
		 blocks_total, completed
		 FROM session_history
		 ORDER BY started_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying session history: %w", err)
	}
	defer rows.Close()

	var result []models.SessionRecord
	for rows.Next() {
		var rec models.SessionRecord
		if err := rows.Scan(&rec.ID, &rec.PlanID, &rec.PlanName, &rec.StartedAt,
			&rec.FinishedAt, &rec.TotalSecs, &rec.BlocksTotal, &rec.Completed); err != nil {
			return nil, fmt.Errorf("scanning session record: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// HistoryStats holds aggregate statistics over all recorded sessions.
type HistoryStats struct {
	TotalSessions     int64      `json:"total_sessions"`
	CompletedSessions int64      `json:"completed_sessions"`
	TotalSeconds      int64      `json:"total_seconds"`
	FirstSession      *time.Time `json:"first_session,omitempty"`
	LastSession       *time.Time `json:"last_session,omitempty"`
	ByPlan            []PlanStat `json:"by_plan"`
}

// PlanStat holds per-plan session counts.
type PlanStat struct {
	PlanName     string `json:"plan_name"`
	Sessions     int64  `json:"sessions"`
	TotalSeconds int64  `json:"total_seconds"`
}

// GetHistoryStats returns aggregate statistics for the session history.
func (db *DB) GetHistoryStats(ctx context.Context) (*HistoryStats, error) {
	stats := &HistoryStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE completed),
		        COALESCE(SUM(total_secs), 0),
		        MIN(started_at), MAX(started_at)
		 FROM session_history`,
	).Scan(&stats.TotalSessions, &stats.CompletedSessions, &stats.TotalSeconds,
		&stats.FirstSession, &stats.LastSession)
	if err != nil {
		return nil, fmt.Errorf("aggregating session history: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT plan_name, COUNT(*), COALESCE(SUM(total_secs), 0)
		 FROM session_history
		 GROUP BY plan_name
		 ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("aggregating sessions by plan: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ps PlanStat
		if err := rows.Scan(&ps.PlanName, &ps.Sessions, &ps.TotalSeconds); err != nil {
			return nil, fmt.Errorf("scanning plan stat: %w", err)
		}
		stats.ByPlan = append(stats.ByPlan, ps)
	}
	return stats, rows.Err()
}
