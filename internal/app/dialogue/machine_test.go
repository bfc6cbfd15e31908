package dialogue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hireflow/interview-agent/internal/adapters/llm"
	"github.com/hireflow/interview-agent/internal/app/dialogue"
	"github.com/hireflow/interview-agent/internal/domain"
)

func newMachine(t *testing.T, flowName string, client domain.LLMClient) (*dialogue.Machine, *domain.Session) {
	t.Helper()

	flow, ok := dialogue.DefaultFlows()[flowName]
	if !ok {
		t.Fatalf("unknown flow %q", flowName)
	}
	gw := dialogue.NewGateway(client, time.Second)
	sess := &domain.Session{Key: "test-key", Flow: flowName}
	return dialogue.NewMachine(flow, gw), sess
}

func checkHistoryInvariant(t *testing.T, sess *domain.Session) {
	t.Helper()

	if len(sess.History) != sess.TurnIndex {
		t.Fatalf("history length %d != turn index %d", len(sess.History), sess.TurnIndex)
	}
	for i, turn := range sess.History {
		if turn.Index != i+1 {
			t.Fatalf("turn %d has index %d", i, turn.Index)
		}
	}
}

func TestScreeningFlowStageSequence(t *testing.T) {
	ctx := context.Background()
	m, sess := newMachine(t, dialogue.FlowScreening, llm.NewMockClient())

	reply, err := m.Start(ctx, sess)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if sess.Stage != domain.StageInterview {
		t.Fatalf("expected interview stage, got %s", sess.Stage)
	}
	if reply.Terminal {
		t.Fatal("first question must not be terminal")
	}

	answers := []string{
		"I use Python and Go",
		"I'd check logs and add monitoring",
		"I optimized a slow query using indexing",
	}
	for i, answer := range answers {
		reply, err = m.Advance(ctx, sess, answer)
		if err != nil {
			t.Fatalf("Advance(%d) failed: %v", i+1, err)
		}
		checkHistoryInvariant(t, sess)

		last := i == len(answers)-1
		if reply.Terminal != last {
			t.Fatalf("answer %d: terminal=%v, want %v", i+1, reply.Terminal, last)
		}
	}

	if sess.Stage != domain.StageDone {
		t.Fatalf("expected done stage, got %s", sess.Stage)
	}
	if sess.TurnIndex != 3 {
		t.Fatalf("expected exactly 3 turns, got %d", sess.TurnIndex)
	}
	if reply.EarlyExit {
		t.Fatal("completed script must not be early exit")
	}
	if reply.Evaluation != nil {
		t.Fatal("screening flow must not evaluate")
	}
}

func TestOutreachConsentRepeatsUntilYes(t *testing.T) {
	ctx := context.Background()
	m, sess := newMachine(t, dialogue.FlowOutreach, llm.NewMockClient())

	reply, err := m.Start(ctx, sess)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if sess.Stage != domain.StageIntro {
		t.Fatalf("expected intro stage, got %s", sess.Stage)
	}
	consent := reply.Text

	reply, err = m.Advance(ctx, sess, "hello there")
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if sess.Stage != domain.StageIntro || reply.Text != consent {
		t.Fatalf("expected repeated consent prompt, got stage=%s text=%q", sess.Stage, reply.Text)
	}

	reply, err = m.Advance(ctx, sess, "YES, let's do it")
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if sess.Stage != domain.StageInterview {
		t.Fatalf("expected interview stage after consent, got %s", sess.Stage)
	}
	if reply.Text == consent {
		t.Fatal("expected a question after consent")
	}
}

func driveOutreachToBudget(t *testing.T, ctx context.Context, m *dialogue.Machine, sess *domain.Session) {
	t.Helper()

	if _, err := m.Start(ctx, sess); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := m.Advance(ctx, sess, "yes"); err != nil {
		t.Fatalf("consent failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := m.Advance(ctx, sess, "a reasonable technical answer"); err != nil {
			t.Fatalf("answer %d failed: %v", i+1, err)
		}
	}
	if sess.Stage != domain.StageBudget {
		t.Fatalf("expected budget stage after 3 questions, got %s", sess.Stage)
	}
}

func TestBudgetKeywordBranchesToNegotiate(t *testing.T) {
	ctx := context.Background()
	m, sess := newMachine(t, dialogue.FlowOutreach, llm.NewMockClient())
	driveOutreachToBudget(t, ctx, m, sess)

	reply, err := m.Advance(ctx, sess, "I'd want more, around $5000")
	if err != nil {
		t.Fatalf("budget answer failed: %v", err)
	}
	if sess.Stage != domain.StageNegotiate {
		t.Fatalf("expected negotiate stage, got %s", sess.Stage)
	}
	if reply.Terminal {
		t.Fatal("negotiate prompt must not be terminal")
	}

	reply, err = m.Advance(ctx, sess, "something around 4500 would work")
	if err != nil {
		t.Fatalf("negotiate answer failed: %v", err)
	}
	if !reply.Terminal || sess.Stage != domain.StageDone {
		t.Fatalf("expected terminal done, got terminal=%v stage=%s", reply.Terminal, sess.Stage)
	}
	checkHistoryInvariant(t, sess)
}

func TestBudgetWithoutKeywordClosesDirectly(t *testing.T) {
	ctx := context.Background()
	m, sess := newMachine(t, dialogue.FlowOutreach, llm.NewMockClient())
	driveOutreachToBudget(t, ctx, m, sess)

	reply, err := m.Advance(ctx, sess, "sure, that works")
	if err != nil {
		t.Fatalf("budget answer failed: %v", err)
	}
	if !reply.Terminal || sess.Stage != domain.StageDone {
		t.Fatalf("expected direct close, got terminal=%v stage=%s", reply.Terminal, sess.Stage)
	}
	checkHistoryInvariant(t, sess)
}

func TestExitTokenEndsWithoutEvaluation(t *testing.T) {
	ctx := context.Background()
	m, sess := newMachine(t, dialogue.FlowOpen, llm.NewMockClient())

	if _, err := m.Start(ctx, sess); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := m.Advance(ctx, sess, "my first answer"); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	reply, err := m.Advance(ctx, sess, "EXIT")
	if err != nil {
		t.Fatalf("exit failed: %v", err)
	}
	if !reply.Terminal || !reply.EarlyExit {
		t.Fatalf("expected early terminal reply, got %+v", reply)
	}
	if reply.Evaluation != nil {
		t.Fatal("early exit must not produce an evaluation")
	}
	if sess.TurnIndex != 1 {
		t.Fatalf("expected exactly 1 completed turn, got %d", sess.TurnIndex)
	}
	checkHistoryInvariant(t, sess)
}

func TestGatewayFailureStillCompletesInterview(t *testing.T) {
	ctx := context.Background()
	client := llm.NewMockClient()
	client.Err = errors.New("llm unreachable")

	m, sess := newMachine(t, dialogue.FlowOpen, client)
	flow := dialogue.DefaultFlows()[dialogue.FlowOpen]

	reply, err := m.Start(ctx, sess)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if reply.Text != flow.QuestionFallback {
		t.Fatalf("expected fallback question %q, got %q", flow.QuestionFallback, reply.Text)
	}

	for i := 0; i < 5; i++ {
		reply, err = m.Advance(ctx, sess, "an answer")
		if err != nil {
			t.Fatalf("answer %d failed: %v", i+1, err)
		}
		if i < 4 && reply.Text != flow.QuestionFallback {
			t.Fatalf("question %d: expected fallback, got %q", i+2, reply.Text)
		}
	}

	if !reply.Terminal || sess.Stage != domain.StageDone {
		t.Fatalf("expected terminal done, got terminal=%v stage=%s", reply.Terminal, sess.Stage)
	}
	if reply.Evaluation == nil {
		t.Fatal("expected an evaluation report")
	}
	if !reply.Evaluation.Degraded {
		t.Fatal("evaluation from failed gateway must be degraded")
	}
	if reply.Evaluation.Feedback != flow.EvaluationFallback {
		t.Fatalf("expected evaluation fallback, got %q", reply.Evaluation.Feedback)
	}
	if sess.TurnIndex != 5 {
		t.Fatalf("expected 5 turns, got %d", sess.TurnIndex)
	}
	checkHistoryInvariant(t, sess)
}
