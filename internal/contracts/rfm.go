package contracts

import "fmt"

// Lifecycle segment labels, in rule priority order.
const (
	SegmentNewCustomers      = "New Customers"
	SegmentChampions         = "Champions"
	SegmentLoyalCustomers    = "Loyal Customers"
	SegmentPotentialLoyalist = "Potential Loyalist"
	SegmentNeedsAttention    = "Needs Attention"
	SegmentAtRisk            = "At Risk"
	SegmentOthers            = "Others"
)

// RFMRecord holds the per-customer recency/frequency/monetary metrics
// and derived scores.
type RFMRecord struct {
	Email       string  `json:"email"`
	RecencyDays int     `json:"recency_days"` // days since last order, relative to the snapshot date
	Frequency   int     `json:"frequency"`    // distinct order count
	Monetary    float64 `json:"monetary"`     // sum of first payment amounts

	RScore    int    `json:"r_score"`
	FScore    int    `json:"f_score"`
	MScore    int    `json:"m_score"`
	RFMScore  string `json:"rfm_score"` // scores concatenated in R, F, M order
	Segment   string `json:"segment"`
	ChurnFlag int    `json:"churn_flag"` // 1 when recency exceeds the churn threshold
}

// ComposeRFMScore concatenates the three scores into the combined
// score string, e.g. R=4 F=3 M=2 -> "432".
func ComposeRFMScore(r, f, m int) string {
	return fmt.Sprintf("%d%d%d", r, f, m)
}

// CLVRecord extends RFMRecord with the lifetime value estimate.
type CLVRecord struct {
	RFMRecord

	AvgOrderValue         float64 `json:"avg_order_value"` // mean payment per order line
	ExpectedLifespanYears float64 `json:"expected_lifespan_years"`
	CLV                   float64 `json:"clv"` // avg order value x frequency x lifespan
}
