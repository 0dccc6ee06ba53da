package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/insight/internal/external/shopify"
	"github.com/wonny/insight/internal/pipeline"
	"github.com/wonny/insight/internal/scheduler"
	"github.com/wonny/insight/internal/scheduler/jobs"
	"github.com/wonny/insight/internal/store"
	"github.com/wonny/insight/pkg/database"
	"github.com/wonny/insight/pkg/httputil"
	redisPkg "github.com/wonny/insight/pkg/redis"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the nightly refresh scheduler",
	Long: `Starts the cron scheduler with the profile refresh job: fetch
the order history from Shopify, reload the order line table and
recompute every customer profile.

Example:
  go run ./cmd/crm scheduler
  go run ./cmd/crm scheduler --now`,
	RunE: runScheduler,
}

var schedulerRunNow bool

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().BoolVar(&schedulerRunNow, "now", false, "trigger the refresh job immediately on start")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if cfg.Shopify.ShopURL == "" || cfg.Shopify.AccessToken == "" {
		return fmt.Errorf("SHOPIFY_SHOP_URL and SHOPIFY_ACCESS_TOKEN must be set")
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := store.Migrate(cmd.Context(), db.Pool); err != nil {
		return err
	}

	redisClient, err := redisPkg.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, using local rate limit only")
		redisClient = redisPkg.Disabled()
	}
	defer redisClient.Close()

	httpClient := httputil.New(log)
	httpClient.WithRateLimiter(redisPkg.NewRateLimiter(redisClient, "insight"), redisPkg.ShopifyRateLimit)

	refreshJob := jobs.NewRefreshJob(
		shopify.NewClient(httpClient, log, cfg.Shopify),
		store.NewOrderRepository(db.Pool),
		store.NewProfileRepository(db.Pool),
		pipeline.New(cfg.Analytics, log),
		cfg.Shopify,
		log,
	)

	sched := scheduler.New(log)
	if err := sched.AddJob(refreshJob); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunNow {
		if err := sched.RunJob(refreshJob.Name()); err != nil {
			return err
		}
	}

	fmt.Printf("Scheduler running (%s at %q)\n", refreshJob.Name(), refreshJob.Schedule())
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
