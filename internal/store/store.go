package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the tables this service owns. Statements are
// idempotent so the call is safe on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS order_lines (
			id BIGSERIAL PRIMARY KEY,
			customer_email TEXT NOT NULL DEFAULT '',
			order_id TEXT NOT NULL DEFAULT '',
			order_date TEXT NOT NULL DEFAULT '',
			first_payment DOUBLE PRECISION,
			product_name TEXT NOT NULL DEFAULT '',
			product_category TEXT,
			product_group TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			payment_status TEXT NOT NULL DEFAULT '',
			loaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_lines_email ON order_lines (customer_email)`,
		`CREATE TABLE IF NOT EXISTS customer_profiles (
			email TEXT PRIMARY KEY,
			recency_days INT NOT NULL,
			frequency INT NOT NULL,
			monetary DOUBLE PRECISION NOT NULL,
			r_score INT NOT NULL,
			f_score INT NOT NULL,
			m_score INT NOT NULL,
			rfm_score TEXT NOT NULL,
			segment TEXT NOT NULL,
			churn_flag INT NOT NULL,
			avg_order_value DOUBLE PRECISION NOT NULL,
			expected_lifespan_years DOUBLE PRECISION NOT NULL,
			clv DOUBLE PRECISION NOT NULL,
			first_purchase_date TIMESTAMPTZ NOT NULL,
			first_product TEXT NOT NULL,
			last_purchase_date TIMESTAMPTZ NOT NULL,
			product_sequence TEXT NOT NULL,
			bought_flagged_category BOOLEAN NOT NULL,
			last_name TEXT,
			first_name TEXT,
			country TEXT,
			payment_status TEXT,
			run_id TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_customer_profiles_segment ON customer_profiles (segment)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
