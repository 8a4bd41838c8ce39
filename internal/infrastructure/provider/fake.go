package provider

import (
	"context"
	"math"
	"time"

	"kawase-service/internal/application"
	"kawase-service/internal/domain"
)

// Ensure Fake implements application.RateProvider.
var _ application.RateProvider = (*Fake)(nil)

// Fake serves a fixed price and a gently oscillating daily series.
type Fake struct {
	price float64
}

func NewFake(price float64) *Fake { return &Fake{price: price} }

func (f *Fake) Latest(_ context.Context, pair domain.Pair) (domain.Quote, error) {
	return domain.Quote{
		Pair:      pair,
		Price:     f.price,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func (f *Fake) Series(_ context.Context, pair domain.Pair, start, end time.Time) (domain.RateSeries, error) {
	var points []domain.RatePoint
	for d, i := start, 0; !d.After(end); d, i = d.AddDate(0, 0, 1), i+1 {
		points = append(points, domain.RatePoint{Date: d, Rate: f.price * (1 + 0.01*math.Sin(float64(i)/3))})
	}
	return domain.NewRateSeries(pair, start, end, points), nil
}
