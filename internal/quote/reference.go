package quote

import (
	"context"
	"fmt"
	"time"
)

// NextReference generates the next quote reference for the month of now, in
// the form QT-YYYYMM-NNNN. The sequence restarts each month and is derived
// from the number of quotes already created that month.
func NextReference(ctx context.Context, store Store, now time.Time) (string, error) {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	count, err := store.CountQuotesCreatedSince(ctx, startOfMonth)
	if err != nil {
		return "", fmt.Errorf("failed to count quotes for reference: %w", err)
	}

	return fmt.Sprintf("QT-%04d%02d-%04d", now.Year(), int(now.Month()), count+1), nil
}
