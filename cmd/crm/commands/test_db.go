package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/insight/internal/store"
	"github.com/wonny/insight/pkg/database"
)

// testDBCmd represents the test-db command
var testDBCmd = &cobra.Command{
	Use:   "test-db",
	Short: "Test the PostgreSQL connection",
	Long: `Tests the database connection and shows pool statistics.

Example:
  go run ./cmd/crm test-db
  go run ./cmd/crm test-db --env production`,
	RunE: runTestDB,
}

func init() {
	rootCmd.AddCommand(testDBCmd)
}

func runTestDB(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Database Connection Test ===")

	cfg, _, err := setup()
	if err != nil {
		return err
	}
	fmt.Printf("Config loaded (ENV: %s)\n", cfg.Env)
	fmt.Printf("Database URL: %s\n\n", maskPassword(cfg.Database.URL))

	fmt.Println("Connecting to database...")
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Println("Health check results:")
	fmt.Printf("  Healthy: %v\n", status.Healthy)
	fmt.Printf("  Response time: %v\n", status.ResponseTime)
	fmt.Printf("  Connections: %d total, %d idle, %d max\n",
		status.TotalConns, status.IdleConns, status.MaxConns)

	if err := store.Migrate(ctx, db.Pool); err != nil {
		return err
	}
	fmt.Println("Schema up to date")

	orders := store.NewOrderRepository(db.Pool)
	count, err := orders.Count(ctx)
	if err != nil {
		return fmt.Errorf("count order lines: %w", err)
	}
	fmt.Printf("Order line table holds %d rows\n", count)

	fmt.Println("\nAll checks passed")
	return nil
}

// maskPassword hides the credential part of a database URL for display
func maskPassword(url string) string {
	at := strings.LastIndex(url, "@")
	scheme := strings.Index(url, "://")
	if at == -1 || scheme == -1 || at < scheme {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
