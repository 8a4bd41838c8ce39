package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"kawase-service/internal/domain"
)

const (
	HistoryFileName = "kawase_history.csv"
	HistoryMIMEType = "text/csv"
)

// History returns the conversions of the session in insertion order.
func (s *KawaseService) History(ctx context.Context, id string) ([]domain.HistoryEntry, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.History, nil
}

func (s *KawaseService) ClearHistory(ctx context.Context, id string) (domain.Session, error) {
	return s.update(ctx, id, func(sess *domain.Session) error {
		sess.History = []domain.HistoryEntry{}
		return nil
	})
}

// ExportHistoryCSV writes the session history as CSV with a header row.
func (s *KawaseService) ExportHistoryCSV(ctx context.Context, id string, w io.Writer) error {
	entries, err := s.History(ctx, id)
	if err != nil {
		return err
	}
	return WriteHistoryCSV(w, entries)
}

func WriteHistoryCSV(w io.Writer, entries []domain.HistoryEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.HistoryColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(e.Record()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
