package application

import (
	"context"
	"errors"
	"time"

	"kawase-service/internal/domain"
)

var (
	ErrRepo = errors.New("repo error")
)

type fakeSessionStore struct {
	store map[string]domain.Session
	err   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{store: map[string]domain.Session{}}
}

func (f *fakeSessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	if f.err != nil {
		return domain.Session{}, f.err
	}
	s, ok := f.store[id]
	if !ok {
		return domain.Session{}, ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) Save(_ context.Context, s domain.Session) error {
	if f.err != nil {
		return f.err
	}
	f.store[s.ID] = s
	return nil
}

func (f *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(f.store, id)
	return nil
}

type fakeQuoteRepo struct {
	store   map[string]domain.Quote
	history []domain.QuoteHistory
	err     error
}

func (f *fakeQuoteRepo) GetLast(_ context.Context, pair string) (domain.Quote, error) {
	if f.err != nil {
		return domain.Quote{}, f.err
	}
	q, ok := f.store[pair]
	if !ok {
		return domain.Quote{}, ErrNotFound
	}
	return q, nil
}

func (f *fakeQuoteRepo) Upsert(_ context.Context, q domain.Quote) error {
	if f.err != nil {
		return f.err
	}
	if f.store == nil {
		f.store = map[string]domain.Quote{}
	}
	f.store[string(q.Pair)] = q
	return nil
}

func (f *fakeQuoteRepo) AppendHistory(_ context.Context, h domain.QuoteHistory) error {
	if f.err != nil {
		return f.err
	}
	f.history = append(f.history, h)
	return nil
}

func (f *fakeQuoteRepo) ListHistory(_ context.Context, pair string, limit int) ([]domain.QuoteHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.QuoteHistory
	for i := len(f.history) - 1; i >= 0 && len(out) < limit; i-- {
		if string(f.history[i].Pair) == pair {
			out = append(out, f.history[i])
		}
	}
	return out, nil
}

type fakeRateProvider struct {
	price  float64
	err    error
	series domain.RateSeries
	calls  int

	lastPair  domain.Pair
	lastStart time.Time
	lastEnd   time.Time
}

func (f *fakeRateProvider) Latest(_ context.Context, pair domain.Pair) (domain.Quote, error) {
	f.calls++
	f.lastPair = pair
	if f.err != nil {
		return domain.Quote{}, f.err
	}
	return domain.Quote{Pair: pair, Price: f.price, UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func (f *fakeRateProvider) Series(_ context.Context, pair domain.Pair, start, end time.Time) (domain.RateSeries, error) {
	f.lastPair, f.lastStart, f.lastEnd = pair, start, end
	if f.err != nil {
		return domain.RateSeries{}, f.err
	}
	out := f.series
	out.Pair, out.Start, out.End = pair, start, end
	return out, nil
}

type fakePredictor struct {
	text    string
	err     error
	prompts []string
}

func (f *fakePredictor) Predict(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return "session-" + string(rune('0'+g.n))
}
