package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wonny/insight/internal/contracts"
)

// ReadOrderLinesCSV loads raw order lines from a CSV export. The first
// row must be a header; columns are matched by name so column order
// does not matter. Unknown columns are ignored.
func ReadOrderLinesCSV(path string) ([]contracts.RawOrderLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	return readOrderLines(f)
}

func readOrderLines(r io.Reader) ([]contracts.RawOrderLine, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index["customer_email"]; !ok {
		return nil, fmt.Errorf("CSV header missing customer_email column")
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var lines []contracts.RawOrderLine
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		line := contracts.RawOrderLine{
			CustomerEmail: field(record, "customer_email"),
			OrderID:       field(record, "order_id"),
			OrderDate:     field(record, "order_date"),
			ProductName:   field(record, "product_name"),
			ProductGroup:  field(record, "product_group"),
			LastName:      field(record, "last_name"),
			FirstName:     field(record, "first_name"),
			Country:       field(record, "country"),
			PaymentStatus: field(record, "payment_status"),
		}

		if raw := strings.TrimSpace(field(record, "first_payment")); raw != "" {
			// Tolerate decimal commas from spreadsheet exports
			raw = strings.ReplaceAll(raw, ",", ".")
			if amount, err := strconv.ParseFloat(raw, 64); err == nil {
				line.FirstPayment = &amount
			}
		}

		if category := field(record, "product_category"); category != "" {
			line.ProductCategory = &category
		}

		lines = append(lines, line)
	}

	return lines, nil
}
