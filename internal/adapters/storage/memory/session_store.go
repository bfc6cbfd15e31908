package memory

import (
	"context"
	"sync"

	"github.com/hireflow/interview-agent/internal/domain"
)

// SessionStore keeps live sessions in a process-local map. In-flight
// sessions are lost on restart; interviews are short-lived, single-process
// interactions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionKey]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionKey]*domain.Session),
	}
}

func (s *SessionStore) GetOrCreate(ctx context.Context, key domain.SessionKey, create func() *domain.Session) (*domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[key]; ok {
		return sess, false, nil
	}

	sess := create()
	s.sessions[key] = sess
	return sess, true, nil
}

func (s *SessionStore) Get(ctx context.Context, key domain.SessionKey) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Update(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.Key]; !ok {
		return domain.ErrSessionNotFound
	}
	s.sessions[sess.Key] = sess
	return nil
}

func (s *SessionStore) Remove(ctx context.Context, key domain.SessionKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)
	return nil
}
