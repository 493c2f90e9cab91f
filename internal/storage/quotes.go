package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maminech/sanitary/internal/common"
	"github.com/maminech/sanitary/internal/model"
)

// SaveQuote persists a quote aggregate and its items atomically. Items are
// rewritten wholesale under the quote's row so that the stored item list and
// totals always come from the same recompute.
func (s *SQLiteStorage) SaveQuote(ctx context.Context, quote *model.Quote) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateQuote(quote); err != nil {
		return err
	}

	now := time.Now()
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = now
	}
	quote.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := `
		INSERT INTO quotes (
			id, reference, plan_id, status, currency, notes,
			global_discount, tax_rate, subtotal, discount_amount, tax_amount, total,
			valid_until, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			reference = excluded.reference,
			plan_id = excluded.plan_id,
			status = excluded.status,
			currency = excluded.currency,
			notes = excluded.notes,
			global_discount = excluded.global_discount,
			tax_rate = excluded.tax_rate,
			subtotal = excluded.subtotal,
			discount_amount = excluded.discount_amount,
			tax_amount = excluded.tax_amount,
			total = excluded.total,
			valid_until = excluded.valid_until,
			updated_at = excluded.updated_at`

	var planID any
	if quote.PlanID != "" {
		planID = quote.PlanID
	}

	if _, err := tx.ExecContext(ctx, upsert,
		quote.ID, quote.Reference, planID, quote.Status, quote.Currency, quote.Notes,
		quote.GlobalDiscount, quote.TaxRate, quote.Subtotal, quote.DiscountAmount,
		quote.TaxAmount, quote.Total, quote.ValidUntil, quote.CreatedAt, quote.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to save quote %s: %w", quote.Reference, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM quote_items WHERE quote_id = ?`, quote.ID); err != nil {
		return fmt.Errorf("failed to clear quote items: %w", err)
	}

	insert := `
		INSERT INTO quote_items (
			id, quote_id, position, product_id, sku, name, description,
			selected_material, unit_price, quantity, discount, total
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i, item := range quote.Items {
		if _, err := tx.ExecContext(ctx, insert,
			item.ID, quote.ID, i, item.ProductID, item.SKU, item.Name, item.Description,
			item.SelectedMaterial, item.UnitPrice, item.Quantity, item.Discount, item.Total,
		); err != nil {
			return fmt.Errorf("failed to insert quote item at index %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quote: %w", err)
	}

	slog.Debug("saved quote", "reference", quote.Reference, "items", len(quote.Items), "total", quote.Total)
	return nil
}

// GetQuote returns a quote aggregate by its ID, items in position order.
func (s *SQLiteStorage) GetQuote(ctx context.Context, id string) (*model.Quote, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.queryQuote(ctx, `WHERE id = ?`, id)
}

// GetQuoteByReference returns a quote aggregate by its reference number.
func (s *SQLiteStorage) GetQuoteByReference(ctx context.Context, reference string) (*model.Quote, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(reference, "reference"); err != nil {
		return nil, err
	}
	return s.queryQuote(ctx, `WHERE reference = ?`, reference)
}

const quoteColumns = `
	id, reference, plan_id, status, currency, notes,
	global_discount, tax_rate, subtotal, discount_amount, tax_amount, total,
	valid_until, created_at, updated_at`

func (s *SQLiteStorage) queryQuote(ctx context.Context, where string, arg any) (*model.Quote, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes `+where, arg)

	quote, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", common.ErrQuoteNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query quote: %w", err)
	}

	items, err := s.loadQuoteItems(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	quote.Items = items

	return quote, nil
}

// GetQuotes returns all quotes with their items, newest first.
func (s *SQLiteStorage) GetQuotes(ctx context.Context) ([]model.Quote, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+quoteColumns+` FROM quotes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []model.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, *quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quotes: %w", err)
	}

	for i := range quotes {
		items, err := s.loadQuoteItems(ctx, quotes[i].ID)
		if err != nil {
			return nil, err
		}
		quotes[i].Items = items
	}

	return quotes, nil
}

// DeleteQuote removes a quote and, via cascade, all its items.
func (s *SQLiteStorage) DeleteQuote(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check quote deletion: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", common.ErrQuoteNotFound, id)
	}

	slog.Info("deleted quote", "id", id)
	return nil
}

// CountQuotesCreatedSince returns how many quotes were created at or after
// the given time. Used for monthly reference sequencing.
func (s *SQLiteStorage) CountQuotesCreatedSince(ctx context.Context, since time.Time) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quotes WHERE created_at >= ?`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return count, nil
}

func scanQuote(row scanner) (*model.Quote, error) {
	var (
		quote      model.Quote
		planID     sql.NullString
		notes      sql.NullString
		validUntil sql.NullTime
	)

	err := row.Scan(
		&quote.ID, &quote.Reference, &planID, &quote.Status, &quote.Currency, &notes,
		&quote.GlobalDiscount, &quote.TaxRate, &quote.Subtotal, &quote.DiscountAmount,
		&quote.TaxAmount, &quote.Total, &validUntil, &quote.CreatedAt, &quote.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	quote.PlanID = planID.String
	quote.Notes = notes.String
	if validUntil.Valid {
		quote.ValidUntil = validUntil.Time
	}

	return &quote, nil
}

func (s *SQLiteStorage) loadQuoteItems(ctx context.Context, quoteID string) ([]model.LineItem, error) {
	query := `
		SELECT id, product_id, sku, name, description, selected_material,
			unit_price, quantity, discount, total
		FROM quote_items
		WHERE quote_id = ?
		ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote items: %w", err)
	}
	defer rows.Close()

	var items []model.LineItem
	for rows.Next() {
		var (
			item                   model.LineItem
			sku, name, description sql.NullString
			selectedMaterial       sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.ProductID, &sku, &name, &description, &selectedMaterial,
			&item.UnitPrice, &item.Quantity, &item.Discount, &item.Total,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quote item: %w", err)
		}
		item.SKU = sku.String
		item.Name = name.String
		item.Description = description.String
		item.SelectedMaterial = selectedMaterial.String
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote items: %w", err)
	}

	return items, nil
}
