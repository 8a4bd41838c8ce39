package application

import (
	"context"
	"errors"
	"fmt"

	"kawase-service/internal/domain"

	"go.uber.org/zap"
)

// KawaseService exposes one operation per user action. Every operation
// loads the caller's session, applies the action and saves it back.
type KawaseService struct {
	sessions  SessionStore
	rates     RateProvider
	predictor PredictionClient
	quotes    QuoteRepo
	clock     Clock
	idgen     IDGen
	log       *zap.Logger
	locks     *sessionLocks

	refreshOnPairChange bool
}

type Option func(*KawaseService)

func WithClock(c Clock) Option { return func(s *KawaseService) { s.clock = c } }
func WithIDGen(g IDGen) Option { return func(s *KawaseService) { s.idgen = g } }
func WithLogger(l *zap.Logger) Option { return func(s *KawaseService) { s.log = l } }

// WithRefreshOnPairChange refetches the live rate whenever the pair changes.
func WithRefreshOnPairChange(on bool) Option {
	return func(s *KawaseService) { s.refreshOnPairChange = on }
}

func NewKawaseService(sessions SessionStore, rates RateProvider, predictor PredictionClient, quotes QuoteRepo, opts ...Option) *KawaseService {
	s := &KawaseService{
		sessions:  sessions,
		rates:     rates,
		predictor: predictor,
		quotes:    quotes,
		locks:     newSessionLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.idgen == nil {
		s.idgen = defaultIDGen{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// OpenSession returns the session for id, creating a fresh one when id is
// empty or unknown. A fresh session performs its single initial rate fetch;
// a failure there is reported through the view, not as an error.
func (s *KawaseService) OpenSession(ctx context.Context, id string) (domain.Session, error) {
	if id != "" {
		sess, err := s.sessions.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return domain.Session{}, err
		}
	}
	sess := domain.NewSession(s.idgen.NewID(), s.clock.Now())
	if err := s.loadLiveRate(ctx, &sess); err != nil {
		s.log.Warn("initial_rate_fetch_failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	s.log.Info("session_opened", zap.String("session_id", sess.ID))
	return sess, nil
}

// update applies fn to the stored session and saves it when fn succeeds.
// Updates of the same session run one at a time, so a slow fn (a rate
// fetch) cannot overwrite a concurrent action's result.
func (s *KawaseService) update(ctx context.Context, id string, fn func(*domain.Session) error) (domain.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if err := fn(&sess); err != nil {
		return sess, err
	}
	sess.UpdatedAt = s.clock.Now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// SelectPair applies the currency selectors. The target falls back to the
// first remaining option when it would equal the source.
func (s *KawaseService) SelectPair(ctx context.Context, id string, from, to string) (domain.Session, error) {
	fromCur, err := domain.ParseCurrency(from)
	if err != nil {
		return domain.Session{}, err
	}
	var toCur domain.Currency
	if to != "" {
		if toCur, err = domain.ParseCurrency(to); err != nil {
			return domain.Session{}, err
		}
	}
	var fetchErr error
	sess, err := s.update(ctx, id, func(sess *domain.Session) error {
		target, err := domain.ResolveTarget(fromCur, toCur)
		if err != nil {
			return err
		}
		changed := sess.From != fromCur || sess.To != target
		sess.From, sess.To = fromCur, target
		if changed && s.refreshOnPairChange {
			fetchErr = s.loadLiveRate(ctx, sess)
		}
		return nil
	})
	if err != nil {
		return sess, err
	}
	return sess, fetchErr
}

// CloseSession discards the session. Closing an unknown session is not an
// error.
func (s *KawaseService) CloseSession(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.log.Info("session_closed", zap.String("session_id", id))
	return nil
}
