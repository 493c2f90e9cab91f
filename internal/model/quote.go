package model

import (
	"errors"
	"fmt"
	"time"
)

// QuoteStatus tracks a quote through its approval workflow.
type QuoteStatus string

// Quote workflow states. DRAFT is the initial state; APPROVED, REJECTED and
// EXPIRED are terminal.
const (
	QuoteDraft    QuoteStatus = "DRAFT"
	QuotePending  QuoteStatus = "PENDING"
	QuoteApproved QuoteStatus = "APPROVED"
	QuoteRejected QuoteStatus = "REJECTED"
	QuoteExpired  QuoteStatus = "EXPIRED"
)

// CanTransitionTo reports whether the workflow permits moving from s to next.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	switch s {
	case QuoteDraft:
		return next == QuotePending
	case QuotePending:
		return next == QuoteApproved || next == QuoteRejected || next == QuoteExpired
	default:
		return false
	}
}

// LineItem is one product entry on a quote. UnitPrice and the descriptive
// fields are snapshotted from the catalog when the item is added, so later
// catalog changes do not retroactively alter existing quotes.
//
// Items are addressed by position within the quote; ID is a stable internal
// identifier carried alongside for auditing but is not part of the item
// addressing contract.
type LineItem struct {
	ID               string
	ProductID        string
	SKU              string
	Name             string
	Description      string
	SelectedMaterial string
	UnitPrice        float64
	Discount         float64 // percentage, 0-100, applied to this line only
	Total            float64
	Quantity         int
}

// Quote aggregates an ordered list of line items with quote-wide totals. The
// quote exclusively owns its items: deleting the quote deletes them all.
//
// GlobalDiscount and TaxRate are percentages; DiscountAmount and TaxAmount
// are the absolute figures derived from them at the last recompute, stored so
// that persisted totals can be read without re-running the calculation.
type Quote struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ValidUntil     time.Time
	ID             string
	Reference      string
	PlanID         string
	Currency       string
	Notes          string
	Status         QuoteStatus
	Items          []LineItem
	GlobalDiscount float64 // percentage, 0-100
	TaxRate        float64 // percentage, 0-100
	Subtotal       float64
	DiscountAmount float64
	TaxAmount      float64
	Total          float64
}

// Quote validation errors.
var (
	ErrInvalidQuote    = errors.New("invalid quote")
	ErrInvalidLineItem = errors.New("invalid line item")
)

// Validate checks the quote's required fields and its items.
func (q *Quote) Validate() error {
	if q.Reference == "" {
		return fmt.Errorf("%w: missing reference", ErrInvalidQuote)
	}
	if q.Status == "" {
		return fmt.Errorf("%w: missing status", ErrInvalidQuote)
	}
	for i := range q.Items {
		if err := q.Items[i].Validate(); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks a single line item.
func (li *LineItem) Validate() error {
	if li.ProductID == "" {
		return fmt.Errorf("%w: missing product ID", ErrInvalidLineItem)
	}
	if li.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidLineItem)
	}
	if li.UnitPrice < 0 {
		return fmt.Errorf("%w: unit price must not be negative", ErrInvalidLineItem)
	}
	if li.Discount < 0 || li.Discount > 100 {
		return fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalidLineItem)
	}
	return nil
}

// DisplayStatus returns the status as it should be presented at the given
// time. A PENDING quote whose validity window has elapsed reads as EXPIRED;
// the stored status is not rewritten.
func (q *Quote) DisplayStatus(now time.Time) QuoteStatus {
	if q.Status == QuotePending && !q.ValidUntil.IsZero() && now.After(q.ValidUntil) {
		return QuoteExpired
	}
	return q.Status
}
