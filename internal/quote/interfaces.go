package quote

import (
	"context"
	"time"

	"github.com/maminech/sanitary/internal/model"
)

// ProductRepository resolves catalog products for price snapshotting. The
// engine never holds a live reference to a product; it copies what it needs
// at the time an item is added.
type ProductRepository interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

// Store is the persistence contract the engine needs. Implementations must
// persist a quote and its items atomically; the engine recomputes totals
// synchronously and expects the saved aggregate to match what it passed in.
type Store interface {
	GetQuote(ctx context.Context, id string) (*model.Quote, error)
	SaveQuote(ctx context.Context, q *model.Quote) error
	CountQuotesCreatedSince(ctx context.Context, since time.Time) (int, error)
	GetPlan(ctx context.Context, id string) (*model.Plan, error)
	GetDetectedProducts(ctx context.Context, planID string) ([]model.DetectedProduct, error)
}
