package domain

import "time"

// Quote is a spot rate: one unit of Pair.Base() buys Price of Pair.Quote().
type Quote struct {
	Pair      Pair
	Price     float64
	UpdatedAt time.Time
}
