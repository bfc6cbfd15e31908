package domain

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned for an inbound event whose correlation key
// has no live session. Channel adapters render a channel-appropriate
// apology instead of crashing.
var ErrSessionNotFound = errors.New("session not found")

// ErrRecordExists is returned when persisting a transcript that has already
// been written. Transcript records are write-once.
var ErrRecordExists = errors.New("transcript record already exists")

// LLMClient defines how the core talks to an external text-generation
// service. Implementations perform exactly one attempt per call.
type LLMClient interface {
	Generate(ctx context.Context, messages []ChatMessage, maxTokens int) (string, error)
}

// SessionStore maps correlation key -> live session. Callers must serialize
// all operations for a given key; concurrent keys are independent.
type SessionStore interface {
	// GetOrCreate returns the existing session for key, or stores and
	// returns the result of create. created reports which happened.
	GetOrCreate(ctx context.Context, key SessionKey, create func() *Session) (sess *Session, created bool, err error)

	// Get returns the session for key or ErrSessionNotFound.
	Get(ctx context.Context, key SessionKey) (*Session, error)

	// Update persists the session's current state.
	Update(ctx context.Context, sess *Session) error

	// Remove evicts the session. Removing an absent key is a no-op.
	Remove(ctx context.Context, key SessionKey) error
}

// TranscriptStore persists one finished session as a durable record.
type TranscriptStore interface {
	Persist(ctx context.Context, rec *TranscriptRecord) (RecordID, error)
}
