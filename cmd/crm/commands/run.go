package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/internal/export"
	"github.com/wonny/insight/internal/pipeline"
	"github.com/wonny/insight/internal/store"
	"github.com/wonny/insight/pkg/database"
	"github.com/wonny/insight/pkg/logger"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Recompute all customer profiles from stored order lines",
	Long: `Runs the full derivation pipeline over the order line table:
cleaning, journey reconstruction, RFM scoring, segmentation, churn
flagging and CLV estimation. The profile table is replaced wholesale.

Example:
  go run ./cmd/crm run
  go run ./cmd/crm run --export xlsx`,
	RunE: runPipeline,
}

var runExportFormat string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runExportFormat, "export", "", "also export the result (xlsx|csv|json)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
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

	if err := store.Migrate(ctx, db.Pool); err != nil {
		return err
	}

	orders := store.NewOrderRepository(db.Pool)
	profiles := store.NewProfileRepository(db.Pool)

	raw, err := orders.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load order lines: %w", err)
	}
	fmt.Printf("Loaded %d order lines\n", len(raw))

	pipe := pipeline.New(cfg.Analytics, log)
	result, err := pipe.Run(ctx, raw)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	if err := profiles.ReplaceAll(ctx, result.RunID, result.Profiles); err != nil {
		return fmt.Errorf("store profiles: %w", err)
	}

	fmt.Printf("\nRun %s finished in %s\n", result.RunID, result.Duration)
	fmt.Printf("Snapshot date: %s\n", result.SnapshotDate.Format("2006-01-02"))
	fmt.Printf("Profiles: %d\n", len(result.Profiles))
	if q := result.Quality; q != nil {
		fmt.Printf("Rows: %d raw, %d clean (%d missing, %d outliers dropped)\n",
			q.RawRows, q.CleanRows, q.DroppedMissing, q.DroppedOutlier)
	}

	printSegmentBreakdown(result)

	if runExportFormat != "" {
		path, err := exportProfiles(cfg.ExportDir, log, result.Profiles, runExportFormat)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
	}

	return nil
}

func printSegmentBreakdown(result *pipeline.RunResult) {
	counts := make(map[string]int)
	for _, p := range result.Profiles {
		counts[p.Segment]++
	}

	segments := make([]string, 0, len(counts))
	for segment := range counts {
		segments = append(segments, segment)
	}
	sort.Slice(segments, func(i, j int) bool {
		return counts[segments[i]] > counts[segments[j]]
	})

	fmt.Println("\nSegments:")
	for _, segment := range segments {
		fmt.Printf("  %-20s %d\n", segment, counts[segment])
	}
}

// exportProfiles writes profiles in the requested format under dir
func exportProfiles(dir string, log *logger.Logger, profiles []contracts.CustomerProfile, format string) (string, error) {
	e := export.New(dir, log)
	switch format {
	case "xlsx":
		return e.ExportXLSX(profiles, export.TimestampedFilename("customer_profiles", "xlsx"))
	case "csv":
		return e.ExportCSV(profiles, export.TimestampedFilename("customer_profiles", "csv"))
	case "json":
		return e.ExportJSON(profiles, export.TimestampedFilename("customer_profiles", "json"))
	default:
		return "", fmt.Errorf("unknown export format %q (valid: xlsx, csv, json)", format)
	}
}
