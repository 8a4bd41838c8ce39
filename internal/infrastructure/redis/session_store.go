package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kawase-service/internal/application"
	"kawase-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kawase:session:"

var _ application.SessionStore = (*Store)(nil)

// Store keeps sessions as JSON documents that expire TTL after their last save.
type Store struct {
	Client *redis.Client
	TTL    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{Client: client, TTL: ttl}
}

func key(id string) string { return keyPrefix + id }

func (s *Store) Get(ctx context.Context, id string) (domain.Session, error) {
	data, err := s.Client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, application.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return sess, nil
}

func (s *Store) Save(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	return s.Client.Set(ctx, key(sess.ID), data, s.TTL).Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, key(id)).Err()
}
