package model

import (
	"strings"
	"testing"
	"time"
)

func TestLineItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		item    LineItem
		wantErr bool
	}{
		{
			name: "valid item",
			item: LineItem{
				ProductID: "prod-1",
				Quantity:  2,
				UnitPrice: 450.00,
				Discount:  10,
			},
			wantErr: false,
		},
		{
			name: "missing product ID",
			item: LineItem{
				Quantity:  1,
				UnitPrice: 100,
			},
			wantErr: true,
			errMsg:  "missing product ID",
		},
		{
			name: "zero quantity",
			item: LineItem{
				ProductID: "prod-1",
				Quantity:  0,
				UnitPrice: 100,
			},
			wantErr: true,
			errMsg:  "quantity must be at least 1",
		},
		{
			name: "negative unit price",
			item: LineItem{
				ProductID: "prod-1",
				Quantity:  1,
				UnitPrice: -1,
			},
			wantErr: true,
			errMsg:  "unit price must not be negative",
		},
		{
			name: "discount above 100",
			item: LineItem{
				ProductID: "prod-1",
				Quantity:  1,
				UnitPrice: 100,
				Discount:  101,
			},
			wantErr: true,
			errMsg:  "discount must be between 0 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestQuoteStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from QuoteStatus
		to   QuoteStatus
		want bool
	}{
		{QuoteDraft, QuotePending, true},
		{QuoteDraft, QuoteApproved, false},
		{QuotePending, QuoteApproved, true},
		{QuotePending, QuoteRejected, true},
		{QuotePending, QuoteExpired, true},
		{QuotePending, QuoteDraft, false},
		{QuoteApproved, QuotePending, false},
		{QuoteRejected, QuotePending, false},
		{QuoteExpired, QuotePending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestQuote_DisplayStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		quote Quote
		want  QuoteStatus
	}{
		{
			name:  "draft never expires",
			quote: Quote{Status: QuoteDraft, ValidUntil: now.Add(-time.Hour)},
			want:  QuoteDraft,
		},
		{
			name:  "pending within validity",
			quote: Quote{Status: QuotePending, ValidUntil: now.Add(time.Hour)},
			want:  QuotePending,
		},
		{
			name:  "pending past validity reads expired",
			quote: Quote{Status: QuotePending, ValidUntil: now.Add(-time.Hour)},
			want:  QuoteExpired,
		},
		{
			name:  "approved is terminal",
			quote: Quote{Status: QuoteApproved, ValidUntil: now.Add(-time.Hour)},
			want:  QuoteApproved,
		},
		{
			name:  "pending with zero validity",
			quote: Quote{Status: QuotePending},
			want:  QuotePending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quote.DisplayStatus(now); got != tt.want {
				t.Errorf("DisplayStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDimensions_Complete(t *testing.T) {
	if (Dimensions{Width: 0.4, Height: 0.75, Depth: 0.6}).Complete() == false {
		t.Error("full triple should be complete")
	}
	if (Dimensions{Width: 0.4, Height: 0.75}).Complete() {
		t.Error("missing depth should not be complete")
	}
	if !(Dimensions{}).Empty() {
		t.Error("zero value should be empty")
	}
}
