package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wonny/insight/pkg/logger"
)

// Exporter writes customer profile snapshots to files under a
// configured directory.
type Exporter struct {
	dir    string
	logger *logger.Logger
}

// New creates a new exporter rooted at dir
func New(dir string, log *logger.Logger) *Exporter {
	return &Exporter{dir: dir, logger: log}
}

// profileHeaders is the column order shared by every output format.
var profileHeaders = []string{
	"email",
	"recency_days",
	"frequency",
	"monetary",
	"r_score",
	"f_score",
	"m_score",
	"rfm_score",
	"segment",
	"churn_flag",
	"avg_order_value",
	"expected_lifespan_years",
	"clv",
	"first_purchase_date",
	"first_product",
	"last_purchase_date",
	"product_sequence",
	"bought_flagged_category",
	"last_name",
	"first_name",
	"country",
	"payment_status",
}

// TimestampedFilename builds a filename like customer_profiles_20240301_150405.xlsx
func TimestampedFilename(prefix, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", prefix, timestamp, strings.TrimPrefix(extension, "."))
}

// ensureDir creates the export directory if needed and returns the
// full path for name.
func (e *Exporter) ensureDir(name string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return filepath.Join(e.dir, name), nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
