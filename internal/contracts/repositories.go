package contracts

import "context"

// OrderRepository stores and retrieves raw order lines. The table is
// the full purchase history; every pipeline run reads all of it.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]RawOrderLine, error)
	SaveBatch(ctx context.Context, lines []RawOrderLine) error
	Count(ctx context.Context) (int, error)
}

// ProfileRepository persists the derived customer profile table. The
// table is disposable: each run replaces it wholesale.
type ProfileRepository interface {
	ReplaceAll(ctx context.Context, runID string, profiles []CustomerProfile) error
	GetAll(ctx context.Context) ([]CustomerProfile, error)
	GetByEmail(ctx context.Context, email string) (*CustomerProfile, error)
	SegmentCounts(ctx context.Context) (map[string]int, error)
}
