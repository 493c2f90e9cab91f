package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maminech/sanitary/internal/model"
	"github.com/maminech/sanitary/internal/service"
)

// ReviewConfig holds the configuration for an interactive review session.
type ReviewConfig struct {
	Storage service.Storage
	PlanID  string
}

// RunReview walks the plan's unresolved detections in an interactive
// terminal session and persists the product assignments the user makes.
func RunReview(ctx context.Context, cfg ReviewConfig) error {
	if cfg.Storage == nil {
		return fmt.Errorf("storage is required")
	}

	plan, err := cfg.Storage.GetPlan(ctx, cfg.PlanID)
	if err != nil {
		return err
	}

	detections, err := cfg.Storage.GetDetectedProducts(ctx, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to load detections: %w", err)
	}

	var unresolved []model.DetectedProduct
	for _, det := range detections {
		if !det.Resolved() {
			unresolved = append(unresolved, det)
		}
	}
	if len(unresolved) == 0 {
		slog.Info("nothing to review", "plan", plan.Name)
		return nil
	}

	products, err := cfg.Storage.GetProducts(ctx, service.ProductFilter{})
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(products) == 0 {
		return fmt.Errorf("the catalog is empty; add products or run 'sanitary seed' first")
	}

	program := tea.NewProgram(NewReviewModel(plan.Name, unresolved, products), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("review session failed: %w", err)
	}

	review, ok := final.(ReviewModel)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}

	for _, a := range review.Assignments() {
		if err := cfg.Storage.ResolveDetectedProduct(ctx, a.DetectionID, a.ProductID); err != nil {
			return fmt.Errorf("failed to link detection %s: %w", a.DetectionID, err)
		}
	}

	slog.Info("review session finished",
		"plan", plan.Name,
		"assigned", len(review.Assignments()),
		"reviewed", len(unresolved),
		"completed", review.Done())
	return nil
}
