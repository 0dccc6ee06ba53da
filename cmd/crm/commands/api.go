package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/insight/internal/api"
	"github.com/wonny/insight/internal/api/handlers"
	"github.com/wonny/insight/internal/normalize"
	"github.com/wonny/insight/internal/quality"
	"github.com/wonny/insight/internal/store"
	"github.com/wonny/insight/pkg/database"
	redisPkg "github.com/wonny/insight/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Starts the read-only HTTP API over the last computed profile table.

Endpoints:
  GET  /health                - Health check
  GET  /api/profiles          - All customer profiles
  GET  /api/profiles/{email}  - One customer profile
  GET  /api/segments/summary  - Customer counts per segment
  GET  /api/quality           - Dataset quality snapshot

Example:
  go run ./cmd/crm api
  go run ./cmd/crm api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if apiPort != "" {
		cfg.Port = apiPort
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
		log.WithError(err).Warn("Redis unavailable, caching disabled")
		redisClient = redisPkg.Disabled()
	}
	defer redisClient.Close()
	cache := redisPkg.NewCache(redisClient, "insight")

	profileHandler := handlers.NewProfileHandler(
		store.NewProfileRepository(db.Pool),
		store.NewOrderRepository(db.Pool),
		normalize.New(cfg.Analytics.OutlierQuantile, log),
		quality.New(log),
		cache,
		log,
	)

	router := api.NewRouter(profileHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
