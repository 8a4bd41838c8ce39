package application

import (
	"context"
	"time"

	"kawase-service/internal/domain"
)

type RateProvider interface {
	// Latest returns the spot rate of pair.Quote() per one pair.Base().
	Latest(ctx context.Context, pair domain.Pair) (domain.Quote, error)
	// Series returns daily rates for the inclusive range [start, end].
	Series(ctx context.Context, pair domain.Pair, start, end time.Time) (domain.RateSeries, error)
}

// PredictionClient forwards a free-text prompt to a language model.
type PredictionClient interface {
	Predict(ctx context.Context, prompt string) (string, error)
}

type SessionStore interface {
	Get(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, s domain.Session) error
	Delete(ctx context.Context, id string) error
}

type QuoteRepo interface {
	GetLast(ctx context.Context, pair string) (domain.Quote, error)
	Upsert(ctx context.Context, q domain.Quote) error
	AppendHistory(ctx context.Context, q domain.QuoteHistory) error
	// ListHistory returns up to limit archived quotes for pair, newest first.
	ListHistory(ctx context.Context, pair string, limit int) ([]domain.QuoteHistory, error)
}
