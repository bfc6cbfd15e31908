package dialogue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hireflow/interview-agent/internal/domain"
	"github.com/hireflow/interview-agent/internal/observability"
)

// Service is the handleInboundEvent entry point shared by all channel
// adapters. It serializes events per correlation key, drives the machine
// for the session's flow, and on terminal transitions persists the
// transcript before evicting the session.
type Service struct {
	flows       map[string]*Flow
	gateway     *Gateway
	sessions    domain.SessionStore
	transcripts domain.TranscriptStore
	now         func() time.Time

	// mu guards locks. Per-key mutexes are retained for the process
	// lifetime; key cardinality is bounded by call/chat volume.
	mu    sync.Mutex
	locks map[domain.SessionKey]*sync.Mutex
}

func NewService(
	flows map[string]*Flow,
	gateway *Gateway,
	sessions domain.SessionStore,
	transcripts domain.TranscriptStore,
) *Service {
	return &Service{
		flows:       flows,
		gateway:     gateway,
		sessions:    sessions,
		transcripts: transcripts,
		now:         time.Now,
		locks:       make(map[domain.SessionKey]*sync.Mutex),
	}
}

// Start begins a fresh session for key and returns the first outbound
// content. Any previous session under the same key is discarded: after a
// terminal transition the key is free, and a channel re-dialing with the
// same identifier is a new conversation.
func (s *Service) Start(ctx context.Context, key domain.SessionKey, flowName, candidate string) (Reply, error) {
	flow, ok := s.flows[flowName]
	if !ok {
		return Reply{}, fmt.Errorf("unknown flow %q", flowName)
	}

	lk := s.keyLock(key)
	lk.Lock()
	defer lk.Unlock()

	if err := s.sessions.Remove(ctx, key); err != nil {
		return Reply{}, fmt.Errorf("resetting session %s: %w", key, err)
	}

	sess, _, err := s.sessions.GetOrCreate(ctx, key, func() *domain.Session {
		return s.newSession(key, flowName, candidate)
	})
	if err != nil {
		return Reply{}, fmt.Errorf("creating session %s: %w", key, err)
	}

	observability.LoggerFromContext(ctx).Info("session started",
		"session_key", key,
		"flow", flowName)

	m := NewMachine(flow, s.gateway)
	reply, err := m.Start(ctx, sess)
	if err != nil {
		return Reply{}, err
	}

	sess.UpdatedAt = s.now()
	if err := s.sessions.Update(ctx, sess); err != nil {
		return Reply{}, fmt.Errorf("saving session %s: %w", key, err)
	}
	return reply, nil
}

// HandleInbound processes one inbound message, creating the session on
// first contact. This is the entry point for channels without an explicit
// call-setup event (the chat webhook).
func (s *Service) HandleInbound(ctx context.Context, key domain.SessionKey, flowName, text string) (Reply, error) {
	flow, ok := s.flows[flowName]
	if !ok {
		return Reply{}, fmt.Errorf("unknown flow %q", flowName)
	}

	lk := s.keyLock(key)
	lk.Lock()
	defer lk.Unlock()

	sess, created, err := s.sessions.GetOrCreate(ctx, key, func() *domain.Session {
		sess := s.newSession(key, flowName, "")
		if flow.ConsentPrompt != "" {
			sess.Stage = domain.StageIntro
		} else {
			sess.Stage = domain.StageInterview
		}
		return sess
	})
	if err != nil {
		return Reply{}, fmt.Errorf("session %s: %w", key, err)
	}
	if created {
		observability.LoggerFromContext(ctx).Info("session started",
			"session_key", key,
			"flow", flowName)

		// Without a consent stage there is no pending question yet; the
		// first inbound message just opens the conversation and gets the
		// first question back, not recorded as an answer.
		if flow.ConsentPrompt == "" {
			m := NewMachine(flow, s.gateway)
			reply, err := m.Start(ctx, sess)
			if err != nil {
				return Reply{}, err
			}
			sess.UpdatedAt = s.now()
			if err := s.sessions.Update(ctx, sess); err != nil {
				return Reply{}, fmt.Errorf("saving session %s: %w", key, err)
			}
			return reply, nil
		}
	}

	return s.advance(ctx, sess, text)
}

// HandleAnswer processes one candidate answer for an existing session.
// Returns domain.ErrSessionNotFound when the key has no live session so the
// channel adapter can render an apology.
func (s *Service) HandleAnswer(ctx context.Context, key domain.SessionKey, text string) (Reply, error) {
	lk := s.keyLock(key)
	lk.Lock()
	defer lk.Unlock()

	sess, err := s.sessions.Get(ctx, key)
	if err != nil {
		return Reply{}, err
	}
	return s.advance(ctx, sess, text)
}

// ForceEnd terminates a session on a channel disconnect (hang-up, timeout).
// Whatever partial history exists is persisted as-is. Unknown keys are a
// no-op.
func (s *Service) ForceEnd(ctx context.Context, key domain.SessionKey) error {
	lk := s.keyLock(key)
	lk.Lock()
	defer lk.Unlock()

	sess, err := s.sessions.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	sess.Stage = domain.StageDone
	return s.finish(ctx, sess, Reply{Terminal: true, EarlyExit: true})
}

func (s *Service) advance(ctx context.Context, sess *domain.Session, text string) (Reply, error) {
	flow, ok := s.flows[sess.Flow]
	if !ok {
		return Reply{}, fmt.Errorf("session %s references unknown flow %q", sess.Key, sess.Flow)
	}

	m := NewMachine(flow, s.gateway)
	reply, err := m.Advance(ctx, sess, text)
	if err != nil {
		return Reply{}, err
	}

	sess.UpdatedAt = s.now()
	if reply.Terminal {
		if err := s.finish(ctx, sess, reply); err != nil {
			return Reply{}, err
		}
		return reply, nil
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		return Reply{}, fmt.Errorf("saving session %s: %w", sess.Key, err)
	}
	return reply, nil
}

// finish persists the transcript and then evicts the session. Persistence
// happens-before eviction; a persist failure is logged but never blocks the
// candidate's closing message.
func (s *Service) finish(ctx context.Context, sess *domain.Session, reply Reply) error {
	log := observability.LoggerFromContext(ctx).With(
		"session_key", sess.Key,
		"flow", sess.Flow,
		"turns", sess.TurnIndex,
		"early_exit", reply.EarlyExit)

	rec := &domain.TranscriptRecord{
		ID:         domain.RecordID(uuid.NewString()),
		SessionKey: sess.Key,
		Flow:       sess.Flow,
		Candidate:  sess.Candidate,
		StartedAt:  sess.CreatedAt,
		EndedAt:    s.now(),
		Turns:      sess.History,
		Evaluation: reply.Evaluation,
		EarlyExit:  reply.EarlyExit,
	}

	if id, err := s.transcripts.Persist(ctx, rec); err != nil {
		log.Error("failed to persist transcript", "error", err)
	} else {
		log.Info("transcript persisted", "record_id", id)
	}

	if err := s.sessions.Remove(ctx, sess.Key); err != nil {
		return fmt.Errorf("evicting session %s: %w", sess.Key, err)
	}
	log.Info("session finished")
	return nil
}

func (s *Service) newSession(key domain.SessionKey, flowName, candidate string) *domain.Session {
	now := s.now()
	return &domain.Session{
		Key:       key,
		Flow:      flowName,
		Candidate: candidate,
		Stage:     domain.StageInterview,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Service) keyLock(key domain.SessionKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lk, ok := s.locks[key]
	if !ok {
		lk = &sync.Mutex{}
		s.locks[key] = lk
	}
	return lk
}
