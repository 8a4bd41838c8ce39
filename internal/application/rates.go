package application

import (
	"context"
	"fmt"
	"math"

	"kawase-service/internal/domain"

	"go.uber.org/zap"
)

// RefreshRate refetches the live rate for the session's pair. On failure the
// cached rate is cleared, the session is still saved and ErrRateFetch is
// returned.
func (s *KawaseService) RefreshRate(ctx context.Context, id string) (domain.Session, error) {
	var fetchErr error
	sess, err := s.update(ctx, id, func(sess *domain.Session) error {
		fetchErr = s.loadLiveRate(ctx, sess)
		return nil
	})
	if err != nil {
		return sess, err
	}
	return sess, fetchErr
}

func (s *KawaseService) loadLiveRate(ctx context.Context, sess *domain.Session) error {
	pair := sess.Pair()
	sess.LiveRateLoaded = true
	q, err := s.rates.Latest(ctx, pair)
	if err != nil {
		sess.LiveRate = nil
		sess.LiveRateErr = err.Error()
		s.log.Warn("rate_fetch_failed", zap.String("pair", string(pair)), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRateFetch, err)
	}
	price := q.Price
	sess.LiveRate = &price
	sess.LiveRateErr = ""
	s.archive(ctx, q)
	return nil
}

// archive records a fetched quote. Archive failures never fail the action.
func (s *KawaseService) archive(ctx context.Context, q domain.Quote) {
	if s.quotes == nil {
		return
	}
	if err := s.quotes.AppendHistory(ctx, domain.QuoteHistory{
		Pair:     q.Pair,
		Price:    q.Price,
		QuotedAt: q.UpdatedAt,
		Source:   "live",
	}); err != nil {
		s.log.Warn("quote_archive_failed", zap.String("pair", string(q.Pair)), zap.Error(err))
	}
	if err := s.quotes.Upsert(ctx, q); err != nil {
		s.log.Warn("quote_upsert_failed", zap.String("pair", string(q.Pair)), zap.Error(err))
	}
}

// SetRateSource switches between the API rate and manual entry. A nil
// manualRate keeps the previously entered value.
func (s *KawaseService) SetRateSource(ctx context.Context, id string, source domain.RateSource, manualRate *float64) (domain.Session, error) {
	if !source.Valid() {
		return domain.Session{}, fmt.Errorf("%w: unknown rate source %q", ErrBadRequest, source)
	}
	if manualRate != nil {
		r := *manualRate
		if math.IsNaN(r) || math.IsInf(r, 0) || r < domain.MinManualRate {
			return domain.Session{}, fmt.Errorf("%w: manual rate must be at least %g", ErrBadRequest, domain.MinManualRate)
		}
	}
	return s.update(ctx, id, func(sess *domain.Session) error {
		sess.RateSource = source
		if manualRate != nil {
			r := *manualRate
			sess.ManualRate = &r
		}
		return nil
	})
}

// FetchFailureNotice reports the last failed live fetch, in any rate
// source mode.
func FetchFailureNotice(sess domain.Session) *domain.Notice {
	if sess.LiveRateErr == "" {
		return nil
	}
	return &domain.Notice{
		Level:   domain.NoticeError,
		Message: "Failed to fetch the exchange rate: " + sess.LiveRateErr,
	}
}

// EffectiveRate resolves the rate a conversion would use. With the API
// source and no cached rate it falls back to the manual value and returns a
// warning asking for manual entry. A nil rate means none is available.
func EffectiveRate(sess domain.Session) (*float64, *domain.Notice) {
	if sess.RateSource == domain.RateSourceAPI {
		if sess.LiveRate != nil {
			return sess.LiveRate, nil
		}
		return sess.ManualRate, &domain.Notice{
			Level:   domain.NoticeWarning,
			Message: "The latest rate could not be fetched; enter the rate manually.",
		}
	}
	return sess.ManualRate, nil
}

// LastQuote returns the most recently archived spot quote for pair.
func (s *KawaseService) LastQuote(ctx context.Context, pair string) (domain.Quote, error) {
	if !domain.ValidatePair(pair) {
		return domain.Quote{}, domain.ErrUnsupportedPair
	}
	if s.quotes == nil {
		return domain.Quote{}, ErrNotFound
	}
	return s.quotes.GetLast(ctx, pair)
}

const (
	DefaultQuoteHistoryLimit = 30
	MaxQuoteHistoryLimit     = 500
)

// QuoteHistory lists archived spot quotes for pair, newest first. limit 0
// selects the default.
func (s *KawaseService) QuoteHistory(ctx context.Context, pair string, limit int) ([]domain.QuoteHistory, error) {
	if !domain.ValidatePair(pair) {
		return nil, domain.ErrUnsupportedPair
	}
	if limit == 0 {
		limit = DefaultQuoteHistoryLimit
	}
	if limit < 0 || limit > MaxQuoteHistoryLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrBadRequest, MaxQuoteHistoryLimit)
	}
	if s.quotes == nil {
		return []domain.QuoteHistory{}, nil
	}
	out, err := s.quotes.ListHistory(ctx, pair, limit)
	if err != nil {
		return nil, fmt.Errorf("list quote history: %w", err)
	}
	if out == nil {
		out = []domain.QuoteHistory{}
	}
	return out, nil
}
