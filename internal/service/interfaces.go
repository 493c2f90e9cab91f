// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/maminech/sanitary/internal/model"
)

// ProductFilter defines filtering options for catalog queries.
type ProductFilter struct {
	Type    model.ProductType
	InStock *bool
	Limit   int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Catalog operations
	SaveProduct(ctx context.Context, product *model.Product) error
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*model.Product, error)
	GetProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error)

	// Plan operations
	SavePlan(ctx context.Context, plan *model.Plan) error
	GetPlan(ctx context.Context, id string) (*model.Plan, error)
	GetPlans(ctx context.Context) ([]model.Plan, error)
	UpdatePlanStatus(ctx context.Context, id string, status model.PlanStatus) error
	DeletePlan(ctx context.Context, id string) error

	// Detection operations
	SaveDetectedProducts(ctx context.Context, planID string, detections []model.DetectedProduct) error
	GetDetectedProducts(ctx context.Context, planID string) ([]model.DetectedProduct, error)
	ResolveDetectedProduct(ctx context.Context, detectionID, productID string) error

	// Quote operations
	SaveQuote(ctx context.Context, quote *model.Quote) error
	GetQuote(ctx context.Context, id string) (*model.Quote, error)
	GetQuoteByReference(ctx context.Context, reference string) (*model.Quote, error)
	GetQuotes(ctx context.Context) ([]model.Quote, error)
	DeleteQuote(ctx context.Context, id string) error
	CountQuotesCreatedSince(ctx context.Context, since time.Time) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
}
