package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/maminech/sanitary/internal/common"
	"github.com/maminech/sanitary/internal/model"
)

func testPlan(id string) *model.Plan {
	return &model.Plan{
		ID:       id,
		Name:     "ground-floor",
		FilePath: "/plans/ground-floor.json",
		FileType: model.FileTypeScene,
		FileSize: 2048,
		Status:   model.PlanUploaded,
	}
}

func TestSQLiteStorage_SaveAndGetPlan(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.SavePlan(ctx, testPlan("plan-1")); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	got, err := store.GetPlan(ctx, "plan-1")
	if err != nil {
		t.Fatalf("failed to get plan: %v", err)
	}
	if got.Name != "ground-floor" {
		t.Errorf("Name = %q, want ground-floor", got.Name)
	}
	if got.FileType != model.FileTypeScene {
		t.Errorf("FileType = %q, want %q", got.FileType, model.FileTypeScene)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not set on save")
	}
}

func TestSQLiteStorage_GetPlanNotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetPlan(context.Background(), "missing")
	if !errors.Is(err, common.ErrPlanNotFound) {
		t.Errorf("error = %v, want ErrPlanNotFound", err)
	}
}

func TestSQLiteStorage_UpdatePlanStatus(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.SavePlan(ctx, testPlan("plan-1")); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	if err := store.UpdatePlanStatus(ctx, "plan-1", model.PlanProcessed); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	got, err := store.GetPlan(ctx, "plan-1")
	if err != nil {
		t.Fatalf("failed to get plan: %v", err)
	}
	if got.Status != model.PlanProcessed {
		t.Errorf("Status = %q, want PROCESSED", got.Status)
	}

	if err := store.UpdatePlanStatus(ctx, "missing", model.PlanFailed); !errors.Is(err, common.ErrPlanNotFound) {
		t.Errorf("error = %v, want ErrPlanNotFound", err)
	}
}

func TestSQLiteStorage_DeletePlanCascadesDetections(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.SavePlan(ctx, testPlan("plan-1")); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}
	detections := []model.DetectedProduct{
		{ID: "det-1", PlanID: "plan-1", DetectedType: "TOILET", Name: "Toilet_01", Confidence: 0.9},
	}
	if err := store.SaveDetectedProducts(ctx, "plan-1", detections); err != nil {
		t.Fatalf("failed to save detections: %v", err)
	}

	if err := store.DeletePlan(ctx, "plan-1"); err != nil {
		t.Fatalf("failed to delete plan: %v", err)
	}

	var count int
	if err := store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM detected_products WHERE plan_id = ?`, "plan-1").Scan(&count); err != nil {
		t.Fatalf("failed to count detections: %v", err)
	}
	if count != 0 {
		t.Errorf("orphaned detections after delete: %d", count)
	}
}

func TestSQLiteStorage_DetectionsRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.SavePlan(ctx, testPlan("plan-1")); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	detections := []model.DetectedProduct{
		{
			ID:           "det-1",
			PlanID:       "plan-1",
			DetectedType: "TOILET",
			Name:         "Modern Wall-Mounted Toilet",
			Confidence:   0.9,
			Position:     model.Vector3{X: 1.5, Y: 0, Z: 2.0},
			Dimensions:   model.Dimensions{Width: 40, Height: 45, Depth: 60},
			BoundingBox: &model.BoundingBox{
				Min: model.Vector3{X: 0, Y: 0, Z: 0},
				Max: model.Vector3{X: 0.4, Y: 0.45, Z: 0.6},
			},
		},
		{
			ID:           "det-2",
			PlanID:       "plan-1",
			DetectedType: "SINK",
			Name:         "Pedestal Sink",
			Confidence:   0.6,
		},
	}

	if err := store.SaveDetectedProducts(ctx, "plan-1", detections); err != nil {
		t.Fatalf("failed to save detections: %v", err)
	}

	got, err := store.GetDetectedProducts(ctx, "plan-1")
	if err != nil {
		t.Fatalf("failed to get detections: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("detections count = %d, want 2", len(got))
	}

	first := got[0]
	if first.BoundingBox == nil {
		t.Fatal("bounding box not restored")
	}
	if first.BoundingBox.Max.Z != 0.6 {
		t.Errorf("BoundingBox.Max.Z = %v, want 0.6", first.BoundingBox.Max.Z)
	}
	if first.Dimensions.Depth != 60 {
		t.Errorf("Dimensions.Depth = %v, want 60", first.Dimensions.Depth)
	}
	if got[1].BoundingBox != nil {
		t.Error("expected nil bounding box for second detection")
	}
}

func TestSQLiteStorage_SaveDetectionsReplacesPrevious(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.SavePlan(ctx, testPlan("plan-1")); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	first := []model.DetectedProduct{
		{ID: "det-1", PlanID: "plan-1", DetectedType: "TOILET", Name: "Toilet_01", Confidence: 0.6},
		{ID: "det-2", PlanID: "plan-1", DetectedType: "SINK", Name: "Sink_01", Confidence: 0.6},
	}
	if err := store.SaveDetectedProducts(ctx, "plan-1", first); err != nil {
		t.Fatalf("failed to save detections: %v", err)
	}

	second := []model.DetectedProduct{
		{ID: "det-3", PlanID: "plan-1", DetectedType: "SHOWER", Name: "Shower_01", Confidence: 0.9},
	}
	if err := store.SaveDetectedProducts(ctx, "plan-1", second); err != nil {
		t.Fatalf("failed to re-save detections: %v", err)
	}

	got, err := store.GetDetectedProducts(ctx, "plan-1")
	if err != nil {
		t.Fatalf("failed to get detections: %v", err)
	}
	if len(got) != 1 || got[0].ID != "det-3" {
		t.Errorf("detections not replaced: %+v", got)
	}
}

func TestSQLiteStorage_ResolveDetectedProduct(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.SavePlan(ctx, testPlan("plan-1")); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}
	if err := store.SaveProduct(ctx, testProduct("prod-1", "TOILET-001")); err != nil {
		t.Fatalf("failed to save product: %v", err)
	}
	detections := []model.DetectedProduct{
		{ID: "det-1", PlanID: "plan-1", DetectedType: "TOILET", Name: "Toilet_01", Confidence: 0.9},
	}
	if err := store.SaveDetectedProducts(ctx, "plan-1", detections); err != nil {
		t.Fatalf("failed to save detections: %v", err)
	}

	if err := store.ResolveDetectedProduct(ctx, "det-1", "prod-1"); err != nil {
		t.Fatalf("failed to resolve detection: %v", err)
	}

	got, err := store.GetDetectedProducts(ctx, "plan-1")
	if err != nil {
		t.Fatalf("failed to get detections: %v", err)
	}
	if !got[0].Resolved() || got[0].ProductID != "prod-1" {
		t.Errorf("detection not resolved: %+v", got[0])
	}

	if err := store.ResolveDetectedProduct(ctx, "det-1", "no-such-product"); !errors.Is(err, common.ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}
	if err := store.ResolveDetectedProduct(ctx, "no-such-detection", "prod-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
