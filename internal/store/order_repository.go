package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/insight/internal/contracts"
)

// OrderRepository implements contracts.OrderRepository on Postgres.
// Lines are stored exactly as acquired; cleaning happens downstream.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new order line repository
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// GetAll retrieves every stored order line in load order
func (r *OrderRepository) GetAll(ctx context.Context) ([]contracts.RawOrderLine, error) {
	query := `
		SELECT customer_email, order_id, order_date, first_payment,
		       product_name, product_category, product_group,
		       last_name, first_name, country, payment_status
		FROM order_lines
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []contracts.RawOrderLine
	for rows.Next() {
		var l contracts.RawOrderLine
		if err := rows.Scan(
			&l.CustomerEmail, &l.OrderID, &l.OrderDate, &l.FirstPayment,
			&l.ProductName, &l.ProductCategory, &l.ProductGroup,
			&l.LastName, &l.FirstName, &l.Country, &l.PaymentStatus,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// SaveBatch appends multiple order lines in a single batch
func (r *OrderRepository) SaveBatch(ctx context.Context, lines []contracts.RawOrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_lines (
			customer_email, order_id, order_date, first_payment,
			product_name, product_category, product_group,
			last_name, first_name, country, payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			l.CustomerEmail, l.OrderID, l.OrderDate, l.FirstPayment,
			l.ProductName, l.ProductCategory, l.ProductGroup,
			l.LastName, l.FirstName, l.Country, l.PaymentStatus,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range lines {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of stored order lines
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM order_lines`).Scan(&count)
	return count, err
}

// DeleteAll removes every stored order line before a full re-import
func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM order_lines`)
	return err
}
