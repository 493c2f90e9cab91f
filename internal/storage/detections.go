package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/maminech/sanitary/internal/common"
	"github.com/maminech/sanitary/internal/model"
)

// SaveDetectedProducts replaces the stored detections for a plan with the
// given set. Replacing rather than appending keeps re-runs of detection
// idempotent.
func (s *SQLiteStorage) SaveDetectedProducts(ctx context.Context, planID string, detections []model.DetectedProduct) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(planID, "planID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM detected_products WHERE plan_id = ?`, planID); err != nil {
		return fmt.Errorf("failed to clear detections: %w", err)
	}

	insert := `
		INSERT INTO detected_products (
			id, plan_id, product_id, detected_type, name, confidence,
			pos_x, pos_y, pos_z, dim_width, dim_height, dim_depth,
			bounding_box, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	for _, det := range detections {
		var bbox any
		if det.BoundingBox != nil {
			data, err := json.Marshal(det.BoundingBox)
			if err != nil {
				return fmt.Errorf("failed to marshal bounding box: %w", err)
			}
			bbox = string(data)
		}

		var productID any
		if det.ProductID != "" {
			productID = det.ProductID
		}

		createdAt := det.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		if _, err := tx.ExecContext(ctx, insert,
			det.ID, planID, productID, det.DetectedType, det.Name, det.Confidence,
			det.Position.X, det.Position.Y, det.Position.Z,
			det.Dimensions.Width, det.Dimensions.Height, det.Dimensions.Depth,
			bbox, createdAt,
		); err != nil {
			return fmt.Errorf("failed to insert detection %s: %w", det.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit detections: %w", err)
	}

	slog.Debug("saved detections", "plan", planID, "count", len(detections))
	return nil
}

// GetDetectedProducts returns a plan's detections in insertion order.
func (s *SQLiteStorage) GetDetectedProducts(ctx context.Context, planID string) ([]model.DetectedProduct, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(planID, "planID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, plan_id, product_id, detected_type, name, confidence,
			pos_x, pos_y, pos_z, dim_width, dim_height, dim_depth,
			bounding_box, created_at
		FROM detected_products
		WHERE plan_id = ?
		ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	var detections []model.DetectedProduct
	for rows.Next() {
		var (
			det       model.DetectedProduct
			productID sql.NullString
			name      sql.NullString
			bbox      sql.NullString
		)
		if err := rows.Scan(
			&det.ID, &det.PlanID, &productID, &det.DetectedType, &name, &det.Confidence,
			&det.Position.X, &det.Position.Y, &det.Position.Z,
			&det.Dimensions.Width, &det.Dimensions.Height, &det.Dimensions.Depth,
			&bbox, &det.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}

		det.ProductID = productID.String
		det.Name = name.String
		if bbox.Valid && bbox.String != "" {
			var box model.BoundingBox
			if err := json.Unmarshal([]byte(bbox.String), &box); err != nil {
				return nil, fmt.Errorf("failed to unmarshal bounding box: %w", err)
			}
			det.BoundingBox = &box
		}

		detections = append(detections, det)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating detections: %w", err)
	}

	return detections, nil
}

// ResolveDetectedProduct links a detection to a catalog product.
func (s *SQLiteStorage) ResolveDetectedProduct(ctx context.Context, detectionID, productID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(detectionID, "detectionID"); err != nil {
		return err
	}
	if err := validateString(productID, "productID"); err != nil {
		return err
	}

	// The product must exist before we link to it.
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE detected_products SET product_id = ? WHERE id = ?`,
		productID, detectionID)
	if err != nil {
		return fmt.Errorf("failed to resolve detection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check detection update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: detection %s", common.ErrNotFound, detectionID)
	}

	return nil
}
