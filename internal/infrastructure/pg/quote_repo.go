package pg

import (
	"context"
	"errors"

	"kawase-service/internal/application"
	"kawase-service/internal/domain"

	"github.com/jackc/pgx/v5"
)

var _ application.QuoteRepo = (*QuoteRepo)(nil)

type QuoteRepo struct{ db *DB }

func NewQuoteRepo(db *DB) *QuoteRepo { return &QuoteRepo{db: db} }

func (r *QuoteRepo) GetLast(ctx context.Context, pair string) (domain.Quote, error) {
	const q = `SELECT pair, price::float8, updated_at FROM quotes WHERE pair=$1`
	var out domain.Quote
	err := r.db.Pool.QueryRow(ctx, q, pair).Scan(&out.Pair, &out.Price, &out.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quote{}, application.ErrNotFound
	}
	if err != nil {
		return domain.Quote{}, err
	}
	return out, nil
}

func (r *QuoteRepo) Upsert(ctx context.Context, q domain.Quote) error {
	const up = `
        INSERT INTO quotes(pair, price, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (pair) DO UPDATE
          SET price=EXCLUDED.price, updated_at=EXCLUDED.updated_at`
	_, err := r.db.Pool.Exec(ctx, up, string(q.Pair), q.Price, q.UpdatedAt)
	return err
}

// AppendHistory archives a quote; the same quote from the same source is
// stored once.
func (r *QuoteRepo) AppendHistory(ctx context.Context, h domain.QuoteHistory) error {
	_, err := r.db.Pool.Exec(ctx, `
        INSERT INTO quotes_history(pair, price, quoted_at, source)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (pair, quoted_at, source) DO NOTHING
    `, string(h.Pair), h.Price, h.QuotedAt, h.Source)
	return err
}

// ListHistory returns up to limit archived quotes for pair, newest first.
func (r *QuoteRepo) ListHistory(ctx context.Context, pair string, limit int) ([]domain.QuoteHistory, error) {
	rows, err := r.db.Pool.Query(ctx, `
        SELECT id, pair, price::float8, quoted_at, source, inserted_at
        FROM quotes_history
        WHERE pair=$1
        ORDER BY quoted_at DESC
        LIMIT $2
    `, pair, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.QuoteHistory
	for rows.Next() {
		var h domain.QuoteHistory
		if err := rows.Scan(&h.ID, &h.Pair, &h.Price, &h.QuotedAt, &h.Source, &h.InsertedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
