package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/internal/external/shopify"
	"github.com/wonny/insight/internal/pipeline"
	"github.com/wonny/insight/internal/store"
	"github.com/wonny/insight/pkg/config"
	"github.com/wonny/insight/pkg/logger"
)

// RefreshJob pulls the full order history from Shopify, reloads the
// order line table and recomputes every customer profile.
type RefreshJob struct {
	shopify  *shopify.Client
	orders   *store.OrderRepository
	profiles contracts.ProfileRepository
	pipeline *pipeline.Pipeline
	cfg      config.ShopifyConfig
	logger   *logger.Logger
}

// NewRefreshJob creates the nightly refresh job
func NewRefreshJob(
	client *shopify.Client,
	orders *store.OrderRepository,
	profiles contracts.ProfileRepository,
	pipe *pipeline.Pipeline,
	cfg config.ShopifyConfig,
	log *logger.Logger,
) *RefreshJob {
	return &RefreshJob{
		shopify:  client,
		orders:   orders,
		profiles: profiles,
		pipeline: pipe,
		cfg:      cfg,
		logger:   log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "profile_refresh"
}

// Schedule runs the refresh every day at 3 AM
func (j *RefreshJob) Schedule() string {
	return "0 0 3 * * *"
}

// Run fetches, reloads and recomputes. The order line table is only
// replaced after a successful fetch; a failed pull leaves the previous
// data in place.
func (j *RefreshJob) Run(ctx context.Context) error {
	lines, err := j.shopify.FetchAllOrderLines(ctx, j.cfg.StartDate)
	if err != nil {
		return fmt.Errorf("order fetch failed: %w", err)
	}
	if len(lines) == 0 {
		return fmt.Errorf("order fetch returned no lines, keeping previous data")
	}

	products, err := j.shopify.FetchProducts(ctx)
	if err != nil {
		// Catalog enrichment is optional; lines already carry categories
		j.logger.WithError(err).Warn("Product catalog fetch failed, skipping backfill")
	} else if filled := shopify.BackfillCategories(lines, products); filled > 0 {
		j.logger.WithField("lines", filled).Info("Backfilled categories from catalog")
	}

	if err := j.orders.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear order lines: %w", err)
	}
	if err := j.orders.SaveBatch(ctx, lines); err != nil {
		return fmt.Errorf("failed to store order lines: %w", err)
	}

	result, err := j.pipeline.Run(ctx, lines)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	if err := j.profiles.ReplaceAll(ctx, result.RunID, result.Profiles); err != nil {
		return fmt.Errorf("failed to store profiles: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":   result.RunID,
		"lines":    len(lines),
		"profiles": len(result.Profiles),
	}).Info("Profile refresh completed")

	return nil
}
