package memory

import (
	"context"
	"sync"

	"kawase-service/internal/application"
	"kawase-service/internal/domain"
)

var _ application.SessionStore = (*SessionStore)(nil)

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
	}
}

func (s *SessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, application.ErrNotFound
	}
	return clone(sess), nil
}

func (s *SessionStore) Save(_ context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = clone(sess)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// clone detaches the history slice so callers cannot mutate stored state.
func clone(sess domain.Session) domain.Session {
	h := make([]domain.HistoryEntry, len(sess.History))
	copy(h, sess.History)
	sess.History = h
	return sess
}
