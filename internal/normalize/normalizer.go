package normalize

import (
	"strings"
	"time"

	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/pkg/logger"
	"github.com/wonny/insight/pkg/stats"
)

// Date layouts accepted from the acquisition side, day-first
// convention first. ISO forms come from the Shopify pull and the
// database; dotted and slashed forms from spreadsheet loads.
var dateLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2/1/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalizer cleans raw order lines into the canonical typed table.
// Purely a filter/transform: rows violating the mandatory-field
// invariant are dropped, never repaired.
type Normalizer struct {
	outlierQuantile float64
	logger          *logger.Logger
}

// Result is the cleaned table plus what was removed on the way.
type Result struct {
	Lines            []contracts.OrderLine
	RawRows          int
	DroppedMissing   int     // missing email, date or payment
	DroppedOutlier   int     // payment above the outlier threshold
	OutlierThreshold float64 // the computed quantile cut
}

// New creates a Normalizer. outlierQuantile is the payment quantile
// above which rows are treated as monetary outliers, typically 0.99.
func New(outlierQuantile float64, log *logger.Logger) *Normalizer {
	return &Normalizer{
		outlierQuantile: outlierQuantile,
		logger:          log,
	}
}

// Normalize cleans and types the raw rows: trims and lowercases the
// email, parses the order date, drops rows missing a mandatory field,
// then drops monetary outliers above the configured quantile.
func (n *Normalizer) Normalize(raw []contracts.RawOrderLine) Result {
	result := Result{RawRows: len(raw)}

	typed := make([]contracts.OrderLine, 0, len(raw))
	for _, r := range raw {
		line, ok := n.typeRow(r)
		if !ok {
			result.DroppedMissing++
			continue
		}
		typed = append(typed, line)
	}

	if len(typed) == 0 {
		result.Lines = typed
		return result
	}

	// Monetary outlier suppression: a handful of extreme orders must
	// not skew the aggregates
	amounts := make([]float64, len(typed))
	for i, l := range typed {
		amounts[i] = l.FirstPayment
	}
	threshold := stats.Quantile(amounts, n.outlierQuantile)
	result.OutlierThreshold = threshold

	kept := make([]contracts.OrderLine, 0, len(typed))
	for _, l := range typed {
		if l.FirstPayment > threshold {
			result.DroppedOutlier++
			continue
		}
		kept = append(kept, l)
	}
	result.Lines = kept

	n.logger.WithFields(map[string]interface{}{
		"raw":             result.RawRows,
		"clean":           len(kept),
		"dropped_missing": result.DroppedMissing,
		"dropped_outlier": result.DroppedOutlier,
		"threshold":       threshold,
	}).Debug("Normalized order lines")

	return result
}

// typeRow converts a single raw row, reporting whether it satisfies
// the mandatory-field invariant.
func (n *Normalizer) typeRow(r contracts.RawOrderLine) (contracts.OrderLine, bool) {
	email := strings.ToLower(strings.TrimSpace(r.CustomerEmail))
	if email == "" {
		return contracts.OrderLine{}, false
	}

	if r.FirstPayment == nil {
		return contracts.OrderLine{}, false
	}

	date, ok := parseDate(r.OrderDate)
	if !ok {
		return contracts.OrderLine{}, false
	}

	category := ""
	if r.ProductCategory != nil {
		category = *r.ProductCategory
	}

	return contracts.OrderLine{
		CustomerEmail:   email,
		OrderID:         strings.TrimSpace(r.OrderID),
		OrderDate:       date,
		FirstPayment:    *r.FirstPayment,
		ProductName:     r.ProductName,
		ProductCategory: category,
		ProductGroup:    r.ProductGroup,
		LastName:        r.LastName,
		FirstName:       r.FirstName,
		Country:         r.Country,
		PaymentStatus:   r.PaymentStatus,
	}, true
}

// parseDate tries the accepted layouts in order.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
