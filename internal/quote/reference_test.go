package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maminech/sanitary/internal/model"
)

func TestNextReference(t *testing.T) {
	store := newMockStore()
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	ref, err := NextReference(ctx, store, now)
	require.NoError(t, err)
	assert.Equal(t, "QT-202608-0001", ref)

	// Quotes created earlier this month advance the sequence.
	store.quotes["a"] = &model.Quote{ID: "a", CreatedAt: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)}
	store.quotes["b"] = &model.Quote{ID: "b", CreatedAt: time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)}
	// A quote from a previous month does not.
	store.quotes["c"] = &model.Quote{ID: "c", CreatedAt: time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)}

	ref, err = NextReference(ctx, store, now)
	require.NoError(t, err)
	assert.Equal(t, "QT-202608-0003", ref)
}
