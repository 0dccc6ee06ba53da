package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/wonny/insight/internal/contracts"
)

const profileSheet = "Customer Profiles"

// ExportXLSX writes profiles to an Excel workbook and returns its path.
// The workbook has one sheet with a frozen, bold header row.
func (e *Exporter) ExportXLSX(profiles []contracts.CustomerProfile, name string) (string, error) {
	path, err := e.ensureDir(name)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(profileSheet)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range profileHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(profileSheet, cell, header); err != nil {
			return "", fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(profileSheet, cell, cell, headerStyle); err != nil {
			return "", fmt.Errorf("failed to style header: %w", err)
		}
	}

	for rowIdx, p := range profiles {
		values := []interface{}{
			p.Email,
			p.RecencyDays,
			p.Frequency,
			p.Monetary,
			p.RScore,
			p.FScore,
			p.MScore,
			p.RFMScore,
			p.Segment,
			p.ChurnFlag,
			p.AvgOrderValue,
			p.ExpectedLifespanYears,
			p.CLV,
			p.FirstPurchaseDate.Format(time.RFC3339),
			p.FirstProduct,
			p.LastPurchaseDate.Format(time.RFC3339),
			p.ProductSequence,
			p.BoughtFlaggedCategory,
			derefOrEmpty(p.LastName),
			derefOrEmpty(p.FirstName),
			derefOrEmpty(p.Country),
			derefOrEmpty(p.PaymentStatus),
		}

		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return "", fmt.Errorf("failed to build row cell: %w", err)
		}
		if err := f.SetSheetRow(profileSheet, cell, &values); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := f.SetPanes(profileSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return "", fmt.Errorf("failed to freeze header row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(profiles),
	}).Info("XLSX export completed")

	return path, nil
}
