package memory

import (
	"context"
	"sync"

	"github.com/hireflow/interview-agent/internal/domain"
)

// TranscriptStore keeps finished transcripts in memory. Development and
// test use only.
type TranscriptStore struct {
	mu      sync.RWMutex
	records map[domain.RecordID]*domain.TranscriptRecord
	order   []domain.RecordID
}

func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		records: make(map[domain.RecordID]*domain.TranscriptRecord),
	}
}

func (s *TranscriptStore) Persist(ctx context.Context, rec *domain.TranscriptRecord) (domain.RecordID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; ok {
		return "", domain.ErrRecordExists
	}
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return rec.ID, nil
}

// All returns persisted records in insertion order.
func (s *TranscriptStore) All() []*domain.TranscriptRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.TranscriptRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}
