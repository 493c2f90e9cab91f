// Package quote implements the quotation engine: deterministic pricing
// arithmetic over line items and the mutating operations that keep a quote's
// persisted totals consistent with its items.
package quote

// ItemInput is the pricing tuple for one line item.
type ItemInput struct {
	UnitPrice float64
	Discount  float64 // percentage, 0-100
	Quantity  int
}

// Calculation holds quote-level totals. Discount and Tax are absolute
// amounts derived from the quote's percentages.
type Calculation struct {
	Subtotal float64
	Discount float64
	Tax      float64
	Total    float64
}

// ItemTotal computes a single line total: unit price times quantity, less
// the per-line discount percentage. The caller is responsible for keeping
// discountPercent within 0-100; out-of-range values are applied as given.
func ItemTotal(unitPrice float64, quantity int, discountPercent float64) float64 {
	subtotal := unitPrice * float64(quantity)
	discountAmount := subtotal * discountPercent / 100
	return subtotal - discountAmount
}

// Totals computes quote-level totals from item pricing tuples: the item
// subtotal, then the global discount on that subtotal, then tax on the
// discounted figure. Pure and idempotent; callable for persisted quotes and
// one-off previews alike.
func Totals(items []ItemInput, taxRate, globalDiscount float64) Calculation {
	var subtotal float64
	for _, item := range items {
		subtotal += ItemTotal(item.UnitPrice, item.Quantity, item.Discount)
	}

	discountAmount := subtotal * globalDiscount / 100
	afterDiscount := subtotal - discountAmount
	taxAmount := afterDiscount * taxRate / 100

	return Calculation{
		Subtotal: subtotal,
		Discount: discountAmount,
		Tax:      taxAmount,
		Total:    afterDiscount + taxAmount,
	}
}
