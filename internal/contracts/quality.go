package contracts

import "time"

// DatasetQualitySnapshot summarizes what the normalizer did to the raw
// dataset and how complete the surviving rows are. Informational only;
// it never gates a run.
type DatasetQualitySnapshot struct {
	GeneratedAt    time.Time          `json:"generated_at"`
	RawRows        int                `json:"raw_rows"`
	CleanRows      int                `json:"clean_rows"`
	DroppedMissing int                `json:"dropped_missing"` // rows missing email, date or payment
	DroppedOutlier int                `json:"dropped_outlier"` // rows above the payment outlier threshold
	Customers      int                `json:"customers"`       // distinct emails after cleaning
	Coverage       map[string]float64 `json:"coverage"`        // share of clean rows carrying each optional field
}

// CoverageRate returns the average coverage across all tracked fields.
func (s *DatasetQualitySnapshot) CoverageRate() float64 {
	if len(s.Coverage) == 0 {
		return 0
	}

	total := 0.0
	for _, rate := range s.Coverage {
		total += rate
	}
	return total / float64(len(s.Coverage))
}
