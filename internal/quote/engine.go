package quote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/maminech/sanitary/internal/common"
	"github.com/maminech/sanitary/internal/model"
)

// Default terms applied to newly created quotes.
const (
	DefaultTaxRate = 20.0
	validityPeriod = 30 * 24 * time.Hour
)

// Engine applies mutating operations to quote aggregates. Every operation
// recomputes the quote's totals before saving, so persisted subtotal/total
// never disagree with the sum of the items. The engine performs no locking;
// callers serialize writes to the same quote.
type Engine struct {
	store    Store
	products ProductRepository
}

// NewEngine creates a quote engine backed by the given store and catalog.
func NewEngine(store Store, products ProductRepository) *Engine {
	return &Engine{store: store, products: products}
}

// AddItemInput describes a product being added to a quote. Quantity values
// below 1 default to 1.
type AddItemInput struct {
	ProductID        string
	SelectedMaterial string
	Discount         float64
	Quantity         int
}

// ItemPatch is a partial update to a line item. Nil fields are left
// unchanged. Changing the product re-snapshots price and descriptive fields
// from the catalog.
type ItemPatch struct {
	ProductID        *string
	SelectedMaterial *string
	Quantity         *int
	Discount         *float64
}

// Create starts an empty DRAFT quote with default terms and a fresh
// reference.
func (e *Engine) Create(ctx context.Context, title string) (*model.Quote, error) {
	now := time.Now()
	reference, err := NextReference(ctx, e.store, now)
	if err != nil {
		return nil, err
	}

	q := &model.Quote{
		ID:         uuid.NewString(),
		Reference:  reference,
		Notes:      title,
		Status:     model.QuoteDraft,
		TaxRate:    DefaultTaxRate,
		ValidUntil: now.Add(validityPeriod),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	e.recompute(q)

	if err := e.store.SaveQuote(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	slog.Info("created quote", "quote", q.Reference)
	return q, nil
}

// CreateFromPlan builds a DRAFT quote from a plan's resolved detections: one
// line item per detected product with a catalog link, quantity 1, no
// discount. Detections without a product link are skipped.
func (e *Engine) CreateFromPlan(ctx context.Context, planID, title string) (*model.Quote, error) {
	plan, err := e.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	detections, err := e.store.GetDetectedProducts(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load detections for plan %s: %w", plan.ID, err)
	}

	now := time.Now()
	reference, err := NextReference(ctx, e.store, now)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = fmt.Sprintf("Quote for %s", plan.Name)
	}

	q := &model.Quote{
		ID:         uuid.NewString(),
		Reference:  reference,
		PlanID:     plan.ID,
		Notes:      title,
		Status:     model.QuoteDraft,
		TaxRate:    DefaultTaxRate,
		ValidUntil: now.Add(validityPeriod),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, det := range detections {
		if !det.Resolved() {
			continue
		}
		item, err := e.snapshotItem(ctx, q, AddItemInput{ProductID: det.ProductID, Quantity: 1})
		if err != nil {
			return nil, err
		}
		q.Items = append(q.Items, item)
	}

	e.recompute(q)

	if err := e.store.SaveQuote(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	slog.Info("created quote from plan",
		"quote", q.Reference,
		"plan", plan.Name,
		"items", len(q.Items))
	return q, nil
}

// AddItem snapshots the product's current price and descriptive fields into
// a new line item, appends it, and recomputes the quote's totals.
func (e *Engine) AddItem(ctx context.Context, quoteID string, input AddItemInput) (*model.Quote, error) {
	q, err := e.store.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	item, err := e.snapshotItem(ctx, q, input)
	if err != nil {
		return nil, err
	}

	q.Items = append(q.Items, item)
	e.recompute(q)

	if err := e.store.SaveQuote(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	slog.Debug("added quote item",
		"quote", q.Reference,
		"product", item.ProductID,
		"quantity", item.Quantity)
	return q, nil
}

// UpdateItem applies a partial patch to the item at the given position and
// recomputes the item and quote totals. Items are addressed by their current
// index; returns ErrItemNotFound when the index is out of bounds.
func (e *Engine) UpdateItem(ctx context.Context, quoteID string, index int, patch ItemPatch) (*model.Quote, error) {
	q, err := e.store.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(q.Items) {
		return nil, fmt.Errorf("%w: index %d", common.ErrItemNotFound, index)
	}
	item := &q.Items[index]

	if patch.ProductID != nil && *patch.ProductID != item.ProductID {
		product, err := e.resolveProduct(ctx, q, *patch.ProductID)
		if err != nil {
			return nil, err
		}
		item.ProductID = product.ID
		item.SKU = product.SKU
		item.Name = product.Name
		item.Description = product.Description
		item.UnitPrice = product.BasePrice
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Discount != nil {
		item.Discount = *patch.Discount
	}
	if patch.SelectedMaterial != nil {
		if *patch.SelectedMaterial != "" {
			product, err := e.products.GetProduct(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			if _, ok := product.MaterialByType(model.MaterialType(*patch.SelectedMaterial)); !ok {
				return nil, fmt.Errorf("%w: product %s has no %s option",
					common.ErrMaterialNotOffered, product.SKU, *patch.SelectedMaterial)
			}
		}
		item.SelectedMaterial = *patch.SelectedMaterial
	}

	item.Total = ItemTotal(item.UnitPrice, item.Quantity, item.Discount)
	e.recompute(q)

	if err := e.store.SaveQuote(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	return q, nil
}

// RemoveItem deletes the item at the given position; later items shift down
// one index. Returns ErrItemNotFound when the index is out of bounds.
func (e *Engine) RemoveItem(ctx context.Context, quoteID string, index int) (*model.Quote, error) {
	q, err := e.store.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(q.Items) {
		return nil, fmt.Errorf("%w: index %d", common.ErrItemNotFound, index)
	}

	q.Items = append(q.Items[:index], q.Items[index+1:]...)
	e.recompute(q)

	if err := e.store.SaveQuote(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	return q, nil
}

// UpdateTerms changes the quote-wide tax rate, global discount percentage or
// notes, then recomputes totals. Nil fields are left unchanged.
func (e *Engine) UpdateTerms(ctx context.Context, quoteID string, taxRate, globalDiscount *float64, notes *string) (*model.Quote, error) {
	q, err := e.store.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if taxRate != nil {
		q.TaxRate = *taxRate
	}
	if globalDiscount != nil {
		q.GlobalDiscount = *globalDiscount
	}
	if notes != nil {
		q.Notes = *notes
	}

	e.recompute(q)

	if err := e.store.SaveQuote(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	return q, nil
}

// UpdateStatus moves the quote through its workflow. Transitions not
// permitted by the state machine return ErrInvalidStatus.
func (e *Engine) UpdateStatus(ctx context.Context, quoteID string, next model.QuoteStatus) (*model.Quote, error) {
	q, err := e.store.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if !q.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrInvalidStatus, q.Status, next)
	}
	q.Status = next

	if err := e.store.SaveQuote(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	slog.Info("quote status changed", "quote", q.Reference, "status", next)
	return q, nil
}

// snapshotItem resolves the product and builds a line item with catalog
// fields copied at this moment.
func (e *Engine) snapshotItem(ctx context.Context, q *model.Quote, input AddItemInput) (model.LineItem, error) {
	product, err := e.resolveProduct(ctx, q, input.ProductID)
	if err != nil {
		return model.LineItem{}, err
	}

	if input.SelectedMaterial != "" {
		if _, ok := product.MaterialByType(model.MaterialType(input.SelectedMaterial)); !ok {
			return model.LineItem{}, fmt.Errorf("%w: product %s has no %s option",
				common.ErrMaterialNotOffered, product.SKU, input.SelectedMaterial)
		}
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	return model.LineItem{
		ID:               uuid.NewString(),
		ProductID:        product.ID,
		SKU:              product.SKU,
		Name:             product.Name,
		Description:      product.Description,
		SelectedMaterial: input.SelectedMaterial,
		UnitPrice:        product.BasePrice,
		Quantity:         quantity,
		Discount:         input.Discount,
		Total:            ItemTotal(product.BasePrice, quantity, input.Discount),
	}, nil
}

// resolveProduct looks up a catalog product and enforces the quote's
// single-currency policy: the first item pins the currency, later items must
// match it.
func (e *Engine) resolveProduct(ctx context.Context, q *model.Quote, productID string) (*model.Product, error) {
	product, err := e.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if q.Currency == "" {
		q.Currency = product.Currency
	} else if product.Currency != q.Currency {
		return nil, fmt.Errorf("%w: product %s is priced in %s, quote is in %s",
			common.ErrCurrencyMismatch, product.SKU, product.Currency, q.Currency)
	}

	return product, nil
}

// recompute refreshes the quote-level totals from the current items and
// stamps the update time. Item totals are maintained at the mutation sites.
func (e *Engine) recompute(q *model.Quote) {
	inputs := make([]ItemInput, len(q.Items))
	for i, item := range q.Items {
		inputs[i] = ItemInput{
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Discount:  item.Discount,
		}
	}

	calc := Totals(inputs, q.TaxRate, q.GlobalDiscount)
	q.Subtotal = calc.Subtotal
	q.DiscountAmount = calc.Discount
	q.TaxAmount = calc.Tax
	q.Total = calc.Total
	q.UpdatedAt = time.Now()
}
