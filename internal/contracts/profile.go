package contracts

import "time"

// CustomerProfile is the final output row: journey, RFM scores,
// segment, churn, CLV and static attributes joined per customer email.
// Static attributes are pointers because a customer missing from the
// attribute source keeps the row with nulls instead of being dropped.
type CustomerProfile struct {
	Email string `json:"email"`

	// RFM
	RecencyDays int     `json:"recency_days"`
	Frequency   int     `json:"frequency"`
	Monetary    float64 `json:"monetary"`
	RScore      int     `json:"r_score"`
	FScore      int     `json:"f_score"`
	MScore      int     `json:"m_score"`
	RFMScore    string  `json:"rfm_score"`
	Segment     string  `json:"segment"`
	ChurnFlag   int     `json:"churn_flag"`

	// CLV
	AvgOrderValue         float64 `json:"avg_order_value"`
	ExpectedLifespanYears float64 `json:"expected_lifespan_years"`
	CLV                   float64 `json:"clv"`

	// Journey
	FirstPurchaseDate     time.Time `json:"first_purchase_date"`
	FirstProduct          string    `json:"first_product"`
	LastPurchaseDate      time.Time `json:"last_purchase_date"`
	ProductSequence       string    `json:"product_sequence"`
	BoughtFlaggedCategory bool      `json:"bought_flagged_category"`

	// Static attributes, first-seen by order date
	LastName      *string `json:"last_name"`
	FirstName     *string `json:"first_name"`
	Country       *string `json:"country"`
	PaymentStatus *string `json:"payment_status"`
}
