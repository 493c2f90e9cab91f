package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS products (
					id TEXT PRIMARY KEY,
					sku TEXT UNIQUE NOT NULL,
					name TEXT NOT NULL,
					type TEXT NOT NULL,
					description TEXT,
					brand TEXT,
					base_price REAL NOT NULL,
					currency TEXT NOT NULL,
					dim_length REAL DEFAULT 0,
					dim_width REAL DEFAULT 0,
					dim_height REAL DEFAULT 0,
					dim_unit TEXT DEFAULT 'cm',
					materials TEXT,
					tags TEXT,
					lead_time INTEGER DEFAULT 0,
					in_stock INTEGER DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_products_type ON products(type)`,

				`CREATE TABLE IF NOT EXISTS plans (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					description TEXT,
					file_type TEXT NOT NULL,
					file_path TEXT NOT NULL,
					file_size INTEGER DEFAULT 0,
					status TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS detected_products (
					id TEXT PRIMARY KEY,
					plan_id TEXT NOT NULL,
					product_id TEXT,
					detected_type TEXT NOT NULL,
					name TEXT,
					confidence REAL DEFAULT 0,
					pos_x REAL DEFAULT 0,
					pos_y REAL DEFAULT 0,
					pos_z REAL DEFAULT 0,
					dim_width REAL DEFAULT 0,
					dim_height REAL DEFAULT 0,
					dim_depth REAL DEFAULT 0,
					bounding_box TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_detected_products_plan ON detected_products(plan_id)`,

				`CREATE TABLE IF NOT EXISTS quotes (
					id TEXT PRIMARY KEY,
					reference TEXT UNIQUE NOT NULL,
					plan_id TEXT,
					status TEXT NOT NULL,
					currency TEXT DEFAULT '',
					notes TEXT,
					global_discount REAL DEFAULT 0,
					tax_rate REAL DEFAULT 0,
					subtotal REAL DEFAULT 0,
					discount_amount REAL DEFAULT 0,
					tax_amount REAL DEFAULT 0,
					total REAL DEFAULT 0,
					valid_until DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_quotes_status ON quotes(status)`,

				`CREATE TABLE IF NOT EXISTS quote_items (
					id TEXT PRIMARY KEY,
					quote_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					product_id TEXT NOT NULL,
					sku TEXT,
					name TEXT,
					description TEXT,
					selected_material TEXT,
					unit_price REAL NOT NULL,
					quantity INTEGER NOT NULL,
					discount REAL DEFAULT 0,
					total REAL NOT NULL,
					FOREIGN KEY (quote_id) REFERENCES quotes(id) ON DELETE CASCADE,
					UNIQUE (quote_id, position)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add lookup indexes for detections and quote listing",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_detected_products_confidence ON detected_products(confidence DESC)`,
				`CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes(created_at DESC)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate runs all pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
			m.Version, m.Description); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Info("applied migration", "version", m.Version, "description", m.Description)
	}

	return nil
}

// SchemaVersion returns the current schema version of the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
