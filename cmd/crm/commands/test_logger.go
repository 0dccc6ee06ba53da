package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/insight/pkg/config"
	"github.com/wonny/insight/pkg/logger"
)

// testLoggerCmd represents the test-logger command
var testLoggerCmd = &cobra.Command{
	Use:   "test-logger",
	Short: "Exercise the structured logger",
	Long: `Prints sample log lines in JSON and console format with
structured fields and error context.

Example:
  go run ./cmd/crm test-logger`,
	RunE: runTestLogger,
}

func init() {
	rootCmd.AddCommand(testLoggerCmd)
}

func runTestLogger(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Logger Test ===")

	fmt.Println("1. JSON format (production)")
	fmt.Println("--------------------------------")
	jsonLog := logger.New(&config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
		Database:  config.DatabaseConfig{URL: "dummy"},
	})
	jsonLog.Info("Service started")
	jsonLog.Warn("Order fetch slower than usual")
	fmt.Println()

	fmt.Println("2. Console format (development)")
	fmt.Println("--------------------------------")
	consoleLog := logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
		Database:  config.DatabaseConfig{URL: "dummy"},
	})
	consoleLog.Debug("Normalizer keeping row")
	consoleLog.Info("Pipeline run started")
	fmt.Println()

	fmt.Println("3. Structured fields")
	fmt.Println("--------------------------------")
	jsonLog.WithField("run_id", "c2f1a0").Info("Pipeline run started")
	jsonLog.WithFields(map[string]interface{}{
		"customers": 1824,
		"segment":   "Champions",
		"count":     112,
	}).Info("Segmentation completed")
	fmt.Println()

	fmt.Println("4. Error context")
	fmt.Println("--------------------------------")
	err := errors.New("connection timeout")
	jsonLog.WithError(err).
		WithFields(map[string]interface{}{
			"retry_count": 3,
			"endpoint":    "/admin/api/graphql.json",
		}).
		Error("Order fetch failed after retries")

	fmt.Println("\nAll logger checks completed")
	return nil
}
