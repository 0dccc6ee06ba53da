package quality

import (
	"time"

	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/internal/normalize"
	"github.com/wonny/insight/pkg/logger"
)

// Validator summarizes dataset quality after normalization: how many
// rows survived, and how complete the optional columns are. The
// snapshot is informational; low coverage is logged, never fatal.
type Validator struct {
	logger *logger.Logger
}

// New creates a Validator.
func New(log *logger.Logger) *Validator {
	return &Validator{logger: log}
}

// Snapshot builds the quality snapshot from a normalizer result.
func (v *Validator) Snapshot(result normalize.Result) *contracts.DatasetQualitySnapshot {
	snapshot := &contracts.DatasetQualitySnapshot{
		GeneratedAt:    time.Now().UTC(),
		RawRows:        result.RawRows,
		CleanRows:      len(result.Lines),
		DroppedMissing: result.DroppedMissing,
		DroppedOutlier: result.DroppedOutlier,
		Coverage:       make(map[string]float64),
	}

	if len(result.Lines) == 0 {
		return snapshot
	}

	customers := make(map[string]struct{})
	counts := map[string]int{
		"product_category": 0,
		"product_group":    0,
		"country":          0,
		"payment_status":   0,
	}
	for _, l := range result.Lines {
		customers[l.CustomerEmail] = struct{}{}
		if l.ProductCategory != "" {
			counts["product_category"]++
		}
		if l.ProductGroup != "" {
			counts["product_group"]++
		}
		if l.Country != "" {
			counts["country"]++
		}
		if l.PaymentStatus != "" {
			counts["payment_status"]++
		}
	}

	snapshot.Customers = len(customers)
	total := float64(len(result.Lines))
	for field, n := range counts {
		snapshot.Coverage[field] = float64(n) / total
	}

	v.logger.WithFields(map[string]interface{}{
		"clean_rows": snapshot.CleanRows,
		"customers":  snapshot.Customers,
		"coverage":   snapshot.CoverageRate(),
	}).Info("Dataset quality snapshot")

	return snapshot
}
