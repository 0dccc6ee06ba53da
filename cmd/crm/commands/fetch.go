package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/insight/internal/external/shopify"
	"github.com/wonny/insight/internal/store"
	"github.com/wonny/insight/pkg/database"
	"github.com/wonny/insight/pkg/httputil"
	redisPkg "github.com/wonny/insight/pkg/redis"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Pull the order history from Shopify into the database",
	Long: `Fetches all orders from the Shopify Admin API with cursor
pagination, flattens them into one row per line item and replaces the
order line table. Requires SHOPIFY_SHOP_URL and SHOPIFY_ACCESS_TOKEN.

Example:
  go run ./cmd/crm fetch
  go run ./cmd/crm fetch --since 2022-01-01`,
	RunE: runFetch,
}

var fetchSince string

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchSince, "since", "", "only fetch orders created on or after this date (YYYY-MM-DD)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if cfg.Shopify.ShopURL == "" || cfg.Shopify.AccessToken == "" {
		return fmt.Errorf("SHOPIFY_SHOP_URL and SHOPIFY_ACCESS_TOKEN must be set")
	}

	since := cfg.Shopify.StartDate
	if fetchSince != "" {
		since = fetchSince
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db.Pool); err != nil {
		return err
	}

	httpClient := httputil.New(log)

	// Shared sliding window on top of the local token bucket keeps
	// multiple processes under the Shopify call budget
	redisClient, err := redisPkg.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, using local rate limit only")
		redisClient = redisPkg.Disabled()
	}
	defer redisClient.Close()
	httpClient.WithRateLimiter(redisPkg.NewRateLimiter(redisClient, "insight"), redisPkg.ShopifyRateLimit)

	client := shopify.NewClient(httpClient, log, cfg.Shopify)

	fmt.Println("Fetching orders from Shopify...")
	lines, err := client.FetchAllOrderLines(ctx, since)
	if err != nil {
		return fmt.Errorf("fetch orders: %w", err)
	}
	if len(lines) == 0 {
		return fmt.Errorf("no order lines fetched, keeping existing data")
	}

	products, err := client.FetchProducts(ctx)
	if err != nil {
		log.WithError(err).Warn("Product catalog fetch failed, skipping backfill")
	} else if filled := shopify.BackfillCategories(lines, products); filled > 0 {
		fmt.Printf("Backfilled categories on %d lines from the catalog\n", filled)
	}

	orders := store.NewOrderRepository(db.Pool)
	if err := orders.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear order lines: %w", err)
	}
	if err := orders.SaveBatch(ctx, lines); err != nil {
		return fmt.Errorf("store order lines: %w", err)
	}

	fmt.Printf("Stored %d order lines\n", len(lines))
	return nil
}
