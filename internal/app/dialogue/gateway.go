package dialogue

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hireflow/interview-agent/internal/domain"
	"github.com/hireflow/interview-agent/internal/observability"
)

const defaultGenerateTimeout = 10 * time.Second

// Generation is the typed result of one gateway call. Text is always
// usable; Degraded distinguishes fallback output from a genuine reply so
// callers can log the difference.
type Generation struct {
	Text     string
	Degraded bool
	Cause    error
}

// Gateway sends a prompt to the LLM client with a bounded timeout and
// converts every failure into fallback text. One attempt per call; the
// interview tolerates an occasional generic question, not added latency.
type Gateway struct {
	client  domain.LLMClient
	timeout time.Duration
}

func NewGateway(client domain.LLMClient, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &Gateway{client: client, timeout: timeout}
}

// Generate returns the trimmed generated text, or fallback when the call
// errors, times out, or produces only whitespace.
func (g *Gateway) Generate(ctx context.Context, messages []domain.ChatMessage, maxTokens int, fallback string) Generation {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.client.Generate(ctx, messages, maxTokens)
	if err == nil {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return Generation{Text: trimmed}
		}
		err = errors.New("empty generation")
	}

	observability.LoggerFromContext(ctx).Warn("llm generation degraded to fallback",
		"error", err,
		"fallback", fallback)

	return Generation{Text: fallback, Degraded: true, Cause: err}
}
