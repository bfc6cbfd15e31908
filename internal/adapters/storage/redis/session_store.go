package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hireflow/interview-agent/internal/domain"
)

const (
	sessionKeyPrefix = "interview:session:"
	defaultTTL       = 24 * time.Hour
)

// SessionStore keeps live sessions in Redis as JSON values with a TTL, so
// abandoned conversations age out on their own. The dialogue service
// already serializes all events for a correlation key, so plain SET/GET is
// enough; no optimistic locking.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) GetOrCreate(ctx context.Context, key domain.SessionKey, create func() *domain.Session) (*domain.Session, bool, error) {
	sess, err := s.Get(ctx, key)
	if err == nil {
		return sess, false, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, false, err
	}

	sess = create()
	if err := s.set(ctx, sess); err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

func (s *SessionStore) Get(ctx context.Context, key domain.SessionKey) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session %s: %w", key, err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", key, err)
	}
	return &sess, nil
}

func (s *SessionStore) Update(ctx context.Context, sess *domain.Session) error {
	return s.set(ctx, sess)
}

func (s *SessionStore) Remove(ctx context.Context, key domain.SessionKey) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del session %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}

func (s *SessionStore) set(ctx context.Context, sess *domain.Session) error {
	val, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.Key, err)
	}
	if err := s.client.Set(ctx, s.key(sess.Key), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", sess.Key, err)
	}
	return nil
}

func (s *SessionStore) key(key domain.SessionKey) string {
	return sessionKeyPrefix + string(key)
}
