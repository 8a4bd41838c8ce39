package domain

import "time"

// QuoteHistory is an archived spot quote.
type QuoteHistory struct {
	ID         int64     `json:"id"`
	Pair       Pair      `json:"pair"`
	Price      float64   `json:"price"`
	QuotedAt   time.Time `json:"quoted_at"`
	Source     string    `json:"source"`
	InsertedAt time.Time `json:"inserted_at"`
}
