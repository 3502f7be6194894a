package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/pacer/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertPlan stores a plan with its sets and exercises in one transaction.
func (db *DB) InsertPlan(ctx context.Context, plan models.Plan) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO plans (id, name, exercise_secs, break_secs, set_break_secs,
		 countdown_secs, countdown_enabled, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		plan.ID, plan.Spec.Name, plan.Spec.ExerciseSecs, plan.Spec.BreakSecs,
		plan.Spec.SetBreakSecs, plan.Spec.CountdownSecs, plan.Spec.CountdownEnabled,
		plan.CreatedAt, plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	if err := insertPlanSets(ctx, tx, plan.ID, plan.Spec.Sets); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdatePlan replaces a plan's fields, sets, and exercises.
func (db *DB) UpdatePlan(ctx context.Context, plan models.Plan) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE plans SET name=$2, exercise_secs=$3, break_secs=$4,
		 set_break_secs=$5, countdown_secs=$6, countdown_enabled=$7, updated_at=$8
		 WHERE id=$1`,
		plan.ID, plan.Spec.Name, plan.Spec.ExerciseSecs, plan.Spec.BreakSecs,
		plan.Spec.SetBreakSecs, plan.Spec.CountdownSecs, plan.Spec.CountdownEnabled,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	// Sets are replaced wholesale; positions are re-derived from array order.
	if _, err := tx.Exec(ctx, `DELETE FROM plan_exercises WHERE plan_id=$1`, plan.ID); err != nil {
		return fmt.Errorf("clearing plan exercises: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM plan_sets WHERE plan_id=$1`, plan.ID); err != nil {
		return fmt.Errorf("clearing plan sets: %w", err)
	}
	if err := insertPlanSets(ctx, tx, plan.ID, plan.Spec.Sets); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertPlanSets(ctx context.Context, tx pgx.Tx, planID uuid.UUID, sets []models.ExerciseSet) error {
	for pos, set := range sets {
		_, err := tx.Exec(ctx,
			`INSERT INTO plan_sets (plan_id, position, name, repeats) VALUES ($1,$2,$3,$4)`,
			planID, pos, set.Name, set.Repeats)
		if err != nil {
			return fmt.Errorf("inserting plan set %d: %w", pos, err)
		}
		for i, ex := range set.Exercises {
			_, err := tx.Exec(ctx,
				`INSERT INTO plan_exercises (plan_id, set_position, position, name)
				 VALUES ($1,$2,$3,$4)`,
				planID, pos, i, ex.Name)
			if err != nil {
				return fmt.Errorf("inserting exercise %d of set %d: %w", i, pos, err)
			}
		}
	}
	return nil
}

// GetPlan retrieves a plan with its sets and exercises.
func (db *DB) GetPlan(ctx context.Context, planID uuid.UUID) (*models.Plan, error) {
	plan := models.Plan{ID: planID}
	err := db.Pool.QueryRow(ctx,
		`SELECT name, exercise_secs, break_secs, set_break_secs, countdown_secs,
		 countdown_enabled, created_at, updated_at
		 FROM plans WHERE id=$1`, planID,
	).Scan(&plan.Spec.Name, &plan.Spec.ExerciseSecs, &plan.Spec.BreakSecs,
		&plan.Spec.SetBreakSecs, &plan.Spec.CountdownSecs, &plan.Spec.CountdownEnabled,
		&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	setRows, err := db.Pool.Query(ctx,
		`SELECT position, name, repeats FROM plan_sets
		 WHERE plan_id=$1 ORDER BY position ASC`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying plan sets: %w", err)
	}
	defer setRows.Close()

	var sets []planSetRow
	for setRows.Next() {
		var row planSetRow
		if err := setRows.Scan(&row.Position, &row.Name, &row.Repeats); err != nil {
			return nil, fmt.Errorf("scanning plan set: %w", err)
		}
		sets = append(sets, row)
	}
	if err := setRows.Err(); err != nil {
		return nil, err
	}

	exRows, err := db.Pool.Query(ctx,
		`SELECT set_position, position, name FROM plan_exercises
		 WHERE plan_id=$1 ORDER BY set_position ASC, position ASC`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying plan exercises: %w", err)
	}
	defer exRows.Close()

	var exercises []planExerciseRow
	for exRows.Next() {
		var row planExerciseRow
		if err := exRows.Scan(&row.SetPosition, &row.Position, &row.Name); err != nil {
			return nil, fmt.Errorf("scanning plan exercise: %w", err)
		}
		exercises = append(exercises, row)
	}
	if err := exRows.Err(); err != nil {
		return nil, err
	}

	plan.Spec.Sets = assembleSets(sets, exercises)
	return &plan, nil
}

type planSetRow struct {
	Position int
	Name     string
	Repeats  int
}

type planExerciseRow struct {
	SetPosition int
	Position    int
	Name        string
}

// assembleSets joins position-ordered set and exercise rows back into the
// wire form. Exercises referencing an unknown set position are dropped.
func assembleSets(sets []planSetRow, exercises []planExerciseRow) []models.ExerciseSet {
	byPosition := make(map[int]int, len(sets)) // set position -> index in result
	result := make([]models.ExerciseSet, 0, len(sets))
	for _, row := range sets {
		byPosition[row.Position] = len(result)
		result = append(result, models.ExerciseSet{Name: row.Name, Repeats: row.Repeats})
	}
	for _, row := range exercises {
		idx, ok := byPosition[row.SetPosition]
		if !ok {
			continue
		}
		result[idx].Exercises = append(result[idx].Exercises,
			models.Exercise{Name: row.Name, Position: row.Position})
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// ListPlans returns summaries of all stored plans, newest first.
func (db *DB) ListPlans(ctx context.Context) ([]models.PlanSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT p.id, p.name, COUNT(s.position), p.created_at, p.updated_at
		 FROM plans p
		 LEFT JOIN plan_sets s ON s.plan_id = p.id
		 GROUP BY p.id, p.name, p.created_at, p.updated_at
		 ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []models.PlanSummary
	for rows.Next() {
		var s models.PlanSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.SetCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan summary: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// DeletePlan removes a plan and its sets. Returns ErrNotFound for unknown IDs.
func (db *DB) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM plans WHERE id=$1`, planID)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
