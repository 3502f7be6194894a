package mcp

import (
	"context"

	"github.com/claude/pacer/internal/models"
	"github.com/claude/pacer/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListPlans(ctx context.Context) ([]models.PlanSummary, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (*models.Plan, error)
	QuerySessionHistory(ctx context.Context, limit int) ([]models.SessionRecord, error)
	GetHistoryStats(ctx context.Context) (*storage.HistoryStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
