package memory

import (
	"context"
	"sync"

	"kawase-service/internal/application"
	"kawase-service/internal/domain"
)

var _ application.QuoteRepo = (*QuoteRepo)(nil)

// QuoteRepo keeps the last quote per pair and a bounded archive.
type QuoteRepo struct {
	mu      sync.RWMutex
	last    map[string]domain.Quote
	history []domain.QuoteHistory
	limit   int
	nextID  int64
}

func NewQuoteRepo(limit int) *QuoteRepo {
	return &QuoteRepo{last: map[string]domain.Quote{}, limit: limit}
}

func (r *QuoteRepo) GetLast(_ context.Context, pair string) (domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.last[pair]
	if !ok {
		return domain.Quote{}, application.ErrNotFound
	}
	return q, nil
}

func (r *QuoteRepo) Upsert(_ context.Context, q domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last[string(q.Pair)] = q
	return nil
}

func (r *QuoteRepo) AppendHistory(_ context.Context, h domain.QuoteHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	h.ID = r.nextID
	r.history = append(r.history, h)
	if r.limit > 0 && len(r.history) > r.limit {
		r.history = r.history[len(r.history)-r.limit:]
	}
	return nil
}

func (r *QuoteRepo) ListHistory(_ context.Context, pair string, limit int) ([]domain.QuoteHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.QuoteHistory
	for i := len(r.history) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if string(r.history[i].Pair) == pair {
			out = append(out, r.history[i])
		}
	}
	return out, nil
}
