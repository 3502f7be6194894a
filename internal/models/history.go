package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionRecord is a row ready for insertion into the session_history table.
// One row is written when a session finishes or is aborted.
type SessionRecord struct {
	ID          uuid.UUID `json:"id"`
	PlanID      uuid.UUID `json:"plan_id"`
	PlanName    string    `json:"plan_name"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	TotalSecs   int       `json:"total_secs"`
	BlocksTotal int       `json:"blocks_total"`
	Completed   bool      `json:"completed"`
}
