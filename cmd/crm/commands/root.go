package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crm",
	Short: "Customer analytics pipeline for retail order data",
	Long: `CRM Insight CLI

Derives RFM scores, lifecycle segments, churn flags, CLV estimates and
purchase journeys from raw order lines.

Usage:
  go run ./cmd/crm [command]

Examples:
  go run ./cmd/crm fetch
  go run ./cmd/crm load orders.csv
  go run ./cmd/crm run --export xlsx
  go run ./cmd/crm api
  go run ./cmd/crm scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
