package models

import "time"

// OrderSummary is the order header shown on the post-checkout
// confirmation page.
type OrderSummary struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email"`
	CreatedAt     time.Time `json:"created_at"`
}
