package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/hireflow/interview-agent/internal/domain"
)

// MockClient is a scriptable domain.LLMClient for tests and local runs.
// When GenerateFunc is nil it returns Reply (or a canned question) and Err.
type MockClient struct {
	Reply        string
	Err          error
	GenerateFunc func(ctx context.Context, messages []domain.ChatMessage, maxTokens int) (string, error)

	mu    sync.Mutex
	calls [][]domain.ChatMessage
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, messages []domain.ChatMessage, maxTokens int) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, messages)
	n := len(m.calls)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages, maxTokens)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return fmt.Sprintf("Mock question #%d: how would you design this system?", n), nil
}

// Calls returns the message sequences received so far.
func (m *MockClient) Calls() [][]domain.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]domain.ChatMessage, len(m.calls))
	copy(out, m.calls)
	return out
}
