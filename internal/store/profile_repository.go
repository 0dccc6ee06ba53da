package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/insight/internal/contracts"
)

// ErrProfileNotFound is returned when no profile exists for an email.
var ErrProfileNotFound = errors.New("customer profile not found")

// ProfileRepository implements contracts.ProfileRepository on Postgres.
// The profile table is derived data; each run replaces it wholesale.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `
	email, recency_days, frequency, monetary,
	r_score, f_score, m_score, rfm_score, segment, churn_flag,
	avg_order_value, expected_lifespan_years, clv,
	first_purchase_date, first_product, last_purchase_date,
	product_sequence, bought_flagged_category,
	last_name, first_name, country, payment_status
`

// ReplaceAll swaps the entire profile table for the given run inside a
// single transaction. Readers never observe a partially written run.
func (r *ProfileRepository) ReplaceAll(ctx context.Context, runID string, profiles []contracts.CustomerProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM customer_profiles`); err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}

	query := `
		INSERT INTO customer_profiles (` + profileColumns + `, run_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18,
		        $19, $20, $21, $22, $23)
	`

	batch := &pgx.Batch{}
	for _, p := range profiles {
		batch.Queue(query,
			p.Email, p.RecencyDays, p.Frequency, p.Monetary,
			p.RScore, p.FScore, p.MScore, p.RFMScore, p.Segment, p.ChurnFlag,
			p.AvgOrderValue, p.ExpectedLifespanYears, p.CLV,
			p.FirstPurchaseDate, p.FirstProduct, p.LastPurchaseDate,
			p.ProductSequence, p.BoughtFlaggedCategory,
			p.LastName, p.FirstName, p.Country, p.PaymentStatus,
			runID,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range profiles {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert profile: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// GetAll retrieves all profiles ordered by email
func (r *ProfileRepository) GetAll(ctx context.Context) ([]contracts.CustomerProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM customer_profiles ORDER BY email ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []contracts.CustomerProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetByEmail retrieves a single profile
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*contracts.CustomerProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM customer_profiles WHERE email = $1`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrProfileNotFound
	}

	p, err := scanProfile(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SegmentCounts returns customer counts per segment label
func (r *ProfileRepository) SegmentCounts(ctx context.Context) (map[string]int, error) {
	query := `SELECT segment, COUNT(*) FROM customer_profiles GROUP BY segment`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var segment string
		var count int
		if err := rows.Scan(&segment, &count); err != nil {
			return nil, err
		}
		counts[segment] = count
	}
	return counts, rows.Err()
}

func scanProfile(rows pgx.Rows) (contracts.CustomerProfile, error) {
	var p contracts.CustomerProfile
	err := rows.Scan(
		&p.Email, &p.RecencyDays, &p.Frequency, &p.Monetary,
		&p.RScore, &p.FScore, &p.MScore, &p.RFMScore, &p.Segment, &p.ChurnFlag,
		&p.AvgOrderValue, &p.ExpectedLifespanYears, &p.CLV,
		&p.FirstPurchaseDate, &p.FirstProduct, &p.LastPurchaseDate,
		&p.ProductSequence, &p.BoughtFlaggedCategory,
		&p.LastName, &p.FirstName, &p.Country, &p.PaymentStatus,
	)
	return p, err
}
