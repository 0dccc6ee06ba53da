package contracts

import "time"

// RawOrderLine is one order line exactly as delivered by the
// acquisition side (Shopify pull or file load), before any cleaning.
// Dates stay strings and optional values stay pointers so the
// normalizer owns all typing decisions.
type RawOrderLine struct {
	CustomerEmail   string   `json:"customer_email"`
	OrderID         string   `json:"order_id"`
	OrderDate       string   `json:"order_date"` // day-first or ISO, parsed by the normalizer
	FirstPayment    *float64 `json:"first_payment"`
	ProductName     string   `json:"product_name"`
	ProductCategory *string  `json:"product_category"`
	ProductGroup    string   `json:"product_group"`
	LastName        string   `json:"last_name"`
	FirstName       string   `json:"first_name"`
	Country         string   `json:"country"`
	PaymentStatus   string   `json:"payment_status"`
}

// OrderLine is a cleaned, typed order line. After normalization every
// line has a non-empty email, a valid date and a payment amount.
type OrderLine struct {
	CustomerEmail   string    `json:"customer_email"`
	OrderID         string    `json:"order_id"`
	OrderDate       time.Time `json:"order_date"`
	FirstPayment    float64   `json:"first_payment"`
	ProductName     string    `json:"product_name"`
	ProductCategory string    `json:"product_category"` // empty when the source had none
	ProductGroup    string    `json:"product_group"`
	LastName        string    `json:"last_name"`
	FirstName       string    `json:"first_name"`
	Country         string    `json:"country"`
	PaymentStatus   string    `json:"payment_status"`
}
