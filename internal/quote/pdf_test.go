package quote

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maminech/sanitary/internal/model"
)

func TestWritePDF(t *testing.T) {
	q := &model.Quote{
		Reference:      "QT-202608-0001",
		Status:         model.QuoteDraft,
		Currency:       "EUR",
		TaxRate:        20,
		GlobalDiscount: 5,
		Subtotal:       1005.00,
		DiscountAmount: 50.25,
		TaxAmount:      190.95,
		Total:          1145.70,
		ValidUntil:     time.Now().Add(24 * time.Hour),
		Items: []model.LineItem{
			{SKU: "TOILET-001", Name: "Modern Wall-Mounted Toilet", UnitPrice: 450, Quantity: 2, Discount: 10, Total: 810},
			{SKU: "SINK-002", Name: "Pedestal Sink", UnitPrice: 195, Quantity: 1, Total: 195},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(q, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, buf.Len(), 1000)
}

func TestWritePDFEmptyQuote(t *testing.T) {
	q := &model.Quote{
		Reference: "QT-202608-0002",
		Status:    model.QuoteDraft,
		TaxRate:   20,
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(q, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
