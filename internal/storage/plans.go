package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maminech/sanitary/internal/common"
	"github.com/maminech/sanitary/internal/model"
)

// SavePlan inserts or updates a plan.
func (s *SQLiteStorage) SavePlan(ctx context.Context, plan *model.Plan) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePlan(plan); err != nil {
		return err
	}

	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	query := `
		INSERT INTO plans (id, name, description, file_type, file_path, file_size, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			file_type = excluded.file_type,
			file_path = excluded.file_path,
			file_size = excluded.file_size,
			status = excluded.status,
			updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		plan.ID, plan.Name, plan.Description, plan.FileType, plan.FilePath,
		plan.FileSize, plan.Status, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save plan %s: %w", plan.Name, err)
	}

	slog.Debug("saved plan", "name", plan.Name, "status", plan.Status)
	return nil
}

// GetPlan returns a plan by its ID.
func (s *SQLiteStorage) GetPlan(ctx context.Context, id string) (*model.Plan, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, description, file_type, file_path, file_size, status, created_at, updated_at
		FROM plans
		WHERE id = ?`

	var (
		plan        model.Plan
		description sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&plan.ID, &plan.Name, &description, &plan.FileType, &plan.FilePath,
		&plan.FileSize, &plan.Status, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", common.ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query plan: %w", err)
	}

	plan.Description = description.String
	return &plan, nil
}

// GetPlans returns all plans, newest first.
func (s *SQLiteStorage) GetPlans(ctx context.Context) ([]model.Plan, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, description, file_type, file_path, file_size, status, created_at, updated_at
		FROM plans
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []model.Plan
	for rows.Next() {
		var (
			plan        model.Plan
			description sql.NullString
		)
		if err := rows.Scan(
			&plan.ID, &plan.Name, &description, &plan.FileType, &plan.FilePath,
			&plan.FileSize, &plan.Status, &plan.CreatedAt, &plan.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plan.Description = description.String
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plans: %w", err)
	}

	return plans, nil
}

// UpdatePlanStatus moves a plan to a new pipeline status.
func (s *SQLiteStorage) UpdatePlanStatus(ctx context.Context, id string, status model.PlanStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE plans SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update plan status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check plan update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", common.ErrPlanNotFound, id)
	}

	slog.Debug("updated plan status", "id", id, "status", status)
	return nil
}

// DeletePlan removes a plan and, via cascade, its detections.
func (s *SQLiteStorage) DeletePlan(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check plan deletion: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", common.ErrPlanNotFound, id)
	}

	slog.Info("deleted plan", "id", id)
	return nil
}
