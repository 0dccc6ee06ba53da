package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/insight/internal/ingest"
	"github.com/wonny/insight/internal/store"
	"github.com/wonny/insight/pkg/database"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Import order lines from a CSV export",
	Long: `Loads raw order lines from a CSV file into the order line table.
Columns are matched by header name; rows are appended as-is and only
cleaned when the pipeline runs.

Example:
  go run ./cmd/crm load orders.csv
  go run ./cmd/crm load orders.csv --replace`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

var loadReplace bool

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().BoolVar(&loadReplace, "replace", false, "clear existing order lines first")
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	lines, err := ingest.ReadOrderLinesCSV(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Read %d order lines from %s\n", len(lines), args[0])

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db.Pool); err != nil {
		return err
	}

	orders := store.NewOrderRepository(db.Pool)
	if loadReplace {
		if err := orders.DeleteAll(ctx); err != nil {
			return fmt.Errorf("clear order lines: %w", err)
		}
	}
	if err := orders.SaveBatch(ctx, lines); err != nil {
		return fmt.Errorf("store order lines: %w", err)
	}

	total, err := orders.Count(ctx)
	if err != nil {
		return fmt.Errorf("count order lines: %w", err)
	}
	fmt.Printf("Order line table now holds %d rows\n", total)

	return nil
}
