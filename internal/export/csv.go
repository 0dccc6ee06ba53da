package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/wonny/insight/internal/contracts"
)

// ExportCSV writes profiles to a CSV file and returns its path.
func (e *Exporter) ExportCSV(profiles []contracts.CustomerProfile, name string) (string, error) {
	path, err := e.ensureDir(name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(profileHeaders); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range profiles {
		if err := w.Write(profileRow(p)); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	e.logger.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(profiles),
	}).Info("CSV export completed")

	return path, nil
}

// profileRow renders one profile in profileHeaders order
func profileRow(p contracts.CustomerProfile) []string {
	return []string{
		p.Email,
		strconv.Itoa(p.RecencyDays),
		strconv.Itoa(p.Frequency),
		strconv.FormatFloat(p.Monetary, 'f', 2, 64),
		strconv.Itoa(p.RScore),
		strconv.Itoa(p.FScore),
		strconv.Itoa(p.MScore),
		p.RFMScore,
		p.Segment,
		strconv.Itoa(p.ChurnFlag),
		strconv.FormatFloat(p.AvgOrderValue, 'f', 2, 64),
		strconv.FormatFloat(p.ExpectedLifespanYears, 'f', 2, 64),
		strconv.FormatFloat(p.CLV, 'f', 2, 64),
		p.FirstPurchaseDate.Format(time.RFC3339),
		p.FirstProduct,
		p.LastPurchaseDate.Format(time.RFC3339),
		p.ProductSequence,
		formatBool(p.BoughtFlaggedCategory),
		derefOrEmpty(p.LastName),
		derefOrEmpty(p.FirstName),
		derefOrEmpty(p.Country),
		derefOrEmpty(p.PaymentStatus),
	}
}
