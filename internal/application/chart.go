package application

import (
	"context"
	"fmt"

	"kawase-service/internal/domain"
)

// RateSeries fetches the chart data for the session's pair over the last
// days days. days == 0 reuses the session's window.
func (s *KawaseService) RateSeries(ctx context.Context, id string, days int) (domain.RateSeries, error) {
	if days != 0 && !domain.ValidChartDays(days) {
		return domain.RateSeries{}, fmt.Errorf("%w: days must be between %d and %d", ErrBadRequest, domain.MinChartDays, domain.MaxChartDays)
	}
	sess, err := s.update(ctx, id, func(sess *domain.Session) error {
		if days != 0 {
			sess.ChartDays = days
		}
		if !domain.ValidChartDays(sess.ChartDays) {
			sess.ChartDays = domain.DefaultChartDays
		}
		return nil
	})
	if err != nil {
		return domain.RateSeries{}, err
	}
	start, end := domain.ChartWindow(s.clock.Now(), sess.ChartDays)
	series, err := s.rates.Series(ctx, sess.Pair(), start, end)
	if err != nil {
		return domain.RateSeries{}, fmt.Errorf("%w: %w", ErrSeriesFetch, err)
	}
	return series, nil
}
