package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maminech/sanitary/internal/common"
	"github.com/maminech/sanitary/internal/model"
	"github.com/maminech/sanitary/internal/service"
)

// SaveProduct inserts or updates a catalog product.
func (s *SQLiteStorage) SaveProduct(ctx context.Context, product *model.Product) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	materials, err := json.Marshal(product.Materials)
	if err != nil {
		return fmt.Errorf("failed to marshal materials: %w", err)
	}
	tags, err := json.Marshal(product.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	query := `
		INSERT INTO products (
			id, sku, name, type, description, brand, base_price, currency,
			dim_length, dim_width, dim_height, dim_unit,
			materials, tags, lead_time, in_stock, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sku = excluded.sku,
			name = excluded.name,
			type = excluded.type,
			description = excluded.description,
			brand = excluded.brand,
			base_price = excluded.base_price,
			currency = excluded.currency,
			dim_length = excluded.dim_length,
			dim_width = excluded.dim_width,
			dim_height = excluded.dim_height,
			dim_unit = excluded.dim_unit,
			materials = excluded.materials,
			tags = excluded.tags,
			lead_time = excluded.lead_time,
			in_stock = excluded.in_stock,
			updated_at = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		product.ID, product.SKU, product.Name, product.Type,
		product.Description, product.Brand, product.BasePrice, product.Currency,
		product.Dimensions.Length, product.Dimensions.Width, product.Dimensions.Height, product.Dimensions.Unit,
		string(materials), string(tags), product.LeadTime, product.InStock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save product %s: %w", product.SKU, err)
	}

	slog.Debug("saved product", "sku", product.SKU, "type", product.Type)
	return nil
}

// GetProduct returns a catalog product by its ID.
func (s *SQLiteStorage) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	return s.queryProduct(ctx, `WHERE id = ?`, id)
}

// GetProductBySKU returns a catalog product by its SKU.
func (s *SQLiteStorage) GetProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sku, "sku"); err != nil {
		return nil, err
	}

	return s.queryProduct(ctx, `WHERE sku = ?`, sku)
}

const productColumns = `
	id, sku, name, type, description, brand, base_price, currency,
	dim_length, dim_width, dim_height, dim_unit,
	materials, tags, lead_time, in_stock, created_at, updated_at`

func (s *SQLiteStorage) queryProduct(ctx context.Context, where string, arg any) (*model.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products `+where, arg)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", common.ErrProductNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return product, nil
}

// GetProducts returns catalog products matching the filter, ordered by SKU.
func (s *SQLiteStorage) GetProducts(ctx context.Context, filter service.ProductFilter) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := make([]any, 0, 3)

	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, filter.Type)
	}
	if filter.InStock != nil {
		query += ` AND in_stock = ?`
		args = append(args, *filter.InStock)
	}
	query += ` ORDER BY sku`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*model.Product, error) {
	var (
		product            model.Product
		description, brand sql.NullString
		materials, tags    sql.NullString
	)

	err := row.Scan(
		&product.ID, &product.SKU, &product.Name, &product.Type,
		&description, &brand, &product.BasePrice, &product.Currency,
		&product.Dimensions.Length, &product.Dimensions.Width, &product.Dimensions.Height, &product.Dimensions.Unit,
		&materials, &tags, &product.LeadTime, &product.InStock,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	product.Brand = brand.String

	if materials.Valid && materials.String != "" {
		if err := json.Unmarshal([]byte(materials.String), &product.Materials); err != nil {
			return nil, fmt.Errorf("failed to unmarshal materials: %w", err)
		}
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &product.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}

	return &product, nil
}
