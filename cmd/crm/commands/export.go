package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/insight/internal/store"
	"github.com/wonny/insight/pkg/database"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored customer profiles to a file",
	Long: `Writes the last computed profile table to a timestamped file
under EXPORT_DIR.

Example:
  go run ./cmd/crm export --format xlsx
  go run ./cmd/crm export --format csv`,
	RunE: runExport,
}

var exportFormat string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "xlsx", "output format (xlsx|csv|json)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	profiles, err := store.NewProfileRepository(db.Pool).GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	if len(profiles) == 0 {
		return fmt.Errorf("profile table is empty, run the pipeline first")
	}

	path, err := exportProfiles(cfg.ExportDir, log, profiles, exportFormat)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d profiles to %s\n", len(profiles), path)
	return nil
}
