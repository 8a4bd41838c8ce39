package application

import (
	"context"
	"fmt"
	"math"

	"kawase-service/internal/domain"
)

// Conversion is the outcome of a successful convert action.
type Conversion struct {
	Result  float64             `json:"result"`
	Rate    float64             `json:"rate"`
	Message string              `json:"message"`
	Entry   domain.HistoryEntry `json:"entry"`
}

// Convert multiplies amount by the effective rate and appends the result to
// the session history. A zero amount or a missing rate leaves the history
// untouched.
func (s *KawaseService) Convert(ctx context.Context, id string, amount float64) (Conversion, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return Conversion{}, fmt.Errorf("%w: amount must not be negative", ErrBadRequest)
	}
	var out Conversion
	_, err := s.update(ctx, id, func(sess *domain.Session) error {
		if amount == 0 {
			return ErrZeroAmount
		}
		rate, _ := EffectiveRate(*sess)
		if rate == nil {
			return ErrRateUnavailable
		}
		at := s.clock.Now()
		result := domain.Convert(amount, *rate)
		entry := domain.NewHistoryEntry(sess.From, sess.To, amount, result, *rate, at)
		sess.History = append(sess.History, entry)
		out = Conversion{
			Result: result,
			Rate:   *rate,
			Entry:  entry,
			Message: fmt.Sprintf("%s is about %s (rate: 1 %s = %s %s)",
				entry.Input, entry.Output, sess.From, domain.FormatRate(*rate), sess.To),
		}
		return nil
	})
	if err != nil {
		return Conversion{}, err
	}
	return out, nil
}
