package contracts

import "time"

// CustomerJourney describes the purchase narrative of one customer:
// where they started, where they last were, and everything in between.
type CustomerJourney struct {
	Email                 string    `json:"email"`
	FirstPurchaseDate     time.Time `json:"first_purchase_date"`
	FirstProduct          string    `json:"first_product"`
	LastPurchaseDate      time.Time `json:"last_purchase_date"`
	ProductSequence       string    `json:"product_sequence"` // chronological category tokens, separator-joined
	BoughtFlaggedCategory bool      `json:"bought_flagged_category"`
}
