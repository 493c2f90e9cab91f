package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemTotal(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice float64
		discount  float64
		want      float64
		quantity  int
	}{
		{
			name:      "ten percent discount",
			unitPrice: 450.00,
			quantity:  2,
			discount:  10,
			want:      810.00,
		},
		{
			name:      "no discount is price times quantity",
			unitPrice: 125.50,
			quantity:  3,
			discount:  0,
			want:      376.50,
		},
		{
			name:      "full discount zeroes the line",
			unitPrice: 980.00,
			quantity:  4,
			discount:  100,
			want:      0,
		},
		{
			name:      "single unit",
			unitPrice: 195.00,
			quantity:  1,
			discount:  0,
			want:      195.00,
		},
		{
			name:      "zero price",
			unitPrice: 0,
			quantity:  5,
			discount:  50,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemTotal(tt.unitPrice, tt.quantity, tt.discount)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTotals(t *testing.T) {
	t.Run("global discount then tax", func(t *testing.T) {
		items := []ItemInput{
			{UnitPrice: 450.00, Quantity: 2, Discount: 10}, // 810.00
			{UnitPrice: 195.00, Quantity: 1, Discount: 0},  // 195.00
		}

		calc := Totals(items, 20, 5)

		assert.InDelta(t, 1005.00, calc.Subtotal, 1e-9)
		assert.InDelta(t, 50.25, calc.Discount, 1e-9)
		assert.InDelta(t, 190.95, calc.Tax, 1e-9)
		assert.InDelta(t, 1145.70, calc.Total, 1e-9)
	})

	t.Run("no items", func(t *testing.T) {
		calc := Totals(nil, 20, 5)
		assert.Zero(t, calc.Subtotal)
		assert.Zero(t, calc.Discount)
		assert.Zero(t, calc.Tax)
		assert.Zero(t, calc.Total)
	})

	t.Run("zero rates", func(t *testing.T) {
		calc := Totals([]ItemInput{{UnitPrice: 100, Quantity: 2}}, 0, 0)
		assert.InDelta(t, 200.00, calc.Subtotal, 1e-9)
		assert.InDelta(t, 200.00, calc.Total, 1e-9)
	})

	t.Run("recompute is idempotent", func(t *testing.T) {
		items := []ItemInput{
			{UnitPrice: 33.33, Quantity: 7, Discount: 12.5},
			{UnitPrice: 1850.00, Quantity: 1, Discount: 0},
		}

		first := Totals(items, 19.6, 3)
		second := Totals(items, 19.6, 3)
		assert.Equal(t, first, second)
	})

	t.Run("total equals subtotal minus discount plus tax", func(t *testing.T) {
		items := []ItemInput{
			{UnitPrice: 280.00, Quantity: 2, Discount: 5},
			{UnitPrice: 125.00, Quantity: 4, Discount: 0},
			{UnitPrice: 1850.00, Quantity: 1, Discount: 15},
		}

		calc := Totals(items, 20, 8)
		assert.InDelta(t, calc.Subtotal-calc.Discount+calc.Tax, calc.Total, 1e-9)
	})
}
