package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/hireflow/interview-agent/internal/domain"
)

const (
	questionMaxTokens   = 300
	evaluationMaxTokens = 600
)

// Reply is the outbound content the machine hands back to the channel
// adapter for delivery.
type Reply struct {
	Text string

	// Terminal marks the session finished; the service persists the
	// transcript and evicts the session after delivery.
	Terminal bool

	// EarlyExit marks a terminal reply caused by the exit token or a
	// forced disconnect rather than a completed script.
	EarlyExit bool

	Evaluation *domain.EvaluationReport
}

// Machine advances one session through its flow's stage graph. Stage
// transitions are a pure function of answer content and count; only the
// generated question text depends on the LLM (and degrades to fallback
// text without changing the transition sequence).
type Machine struct {
	flow    *Flow
	gateway *Gateway
}

func NewMachine(flow *Flow, gateway *Gateway) *Machine {
	return &Machine{flow: flow, gateway: gateway}
}

// Start moves a fresh session out of its initial state: consent flows emit
// the consent prompt, all others ask the first question.
func (m *Machine) Start(ctx context.Context, sess *domain.Session) (Reply, error) {
	if m.flow.ConsentPrompt != "" {
		sess.Stage = domain.StageIntro
		return Reply{Text: m.flow.ConsentPrompt}, nil
	}
	sess.Stage = domain.StageInterview
	return m.ask(ctx, sess)
}

// Advance processes one inbound candidate utterance and returns the next
// outbound content.
func (m *Machine) Advance(ctx context.Context, sess *domain.Session, answer string) (Reply, error) {
	switch sess.Stage {
	case domain.StageIntro:
		return m.advanceIntro(ctx, sess, answer)
	case domain.StageInterview:
		return m.advanceInterview(ctx, sess, answer)
	case domain.StageBudget:
		return m.advanceBudget(sess, answer)
	case domain.StageNegotiate:
		return m.advanceNegotiate(sess, answer)
	case domain.StageDone:
		return Reply{}, domain.ErrSessionNotFound
	default:
		return Reply{}, fmt.Errorf("session %s in unknown stage %q", sess.Key, sess.Stage)
	}
}

func (m *Machine) advanceIntro(ctx context.Context, sess *domain.Session, answer string) (Reply, error) {
	if !containsAny(answer, m.flow.ConsentKeywords) {
		return Reply{Text: m.flow.ConsentPrompt}, nil
	}
	sess.Stage = domain.StageInterview
	return m.ask(ctx, sess)
}

func (m *Machine) advanceInterview(ctx context.Context, sess *domain.Session, answer string) (Reply, error) {
	if m.flow.ExitToken != "" && strings.EqualFold(strings.TrimSpace(answer), m.flow.ExitToken) {
		// The pending question stays unanswered; only completed turns
		// make it into the transcript.
		sess.Pending = ""
		sess.Stage = domain.StageDone
		return Reply{Text: m.flow.EarlyClosing, Terminal: true, EarlyExit: true}, nil
	}

	sess.CompleteTurn(answer)

	if sess.TurnIndex < m.flow.MaxQuestions {
		return m.ask(ctx, sess)
	}

	if m.flow.Budget != nil {
		sess.Stage = domain.StageBudget
		sess.Pending = m.flow.Budget.Prompt
		return Reply{Text: m.flow.Budget.Prompt}, nil
	}

	if m.flow.Evaluate {
		report := m.evaluate(ctx, sess)
		sess.Stage = domain.StageDone
		return Reply{Text: m.flow.Closing, Terminal: true, Evaluation: report}, nil
	}

	sess.Stage = domain.StageDone
	return Reply{Text: m.flow.Closing, Terminal: true}, nil
}

func (m *Machine) advanceBudget(sess *domain.Session, answer string) (Reply, error) {
	sess.CompleteTurn(answer)

	if containsAny(answer, m.flow.Budget.Keywords) {
		sess.Stage = domain.StageNegotiate
		sess.Pending = m.flow.Budget.NegotiatePrompt
		return Reply{Text: m.flow.Budget.NegotiatePrompt}, nil
	}

	sess.Stage = domain.StageDone
	return Reply{Text: m.flow.Budget.AcceptClosing, Terminal: true}, nil
}

func (m *Machine) advanceNegotiate(sess *domain.Session, answer string) (Reply, error) {
	sess.CompleteTurn(answer)
	sess.Stage = domain.StageDone
	return Reply{Text: m.flow.Budget.NegotiateClosing, Terminal: true}, nil
}

// ask selects or generates the next question and records it as pending.
func (m *Machine) ask(ctx context.Context, sess *domain.Session) (Reply, error) {
	n := sess.TurnIndex + 1

	var question string
	if len(m.flow.Questions) > 0 {
		if n > len(m.flow.Questions) {
			return Reply{}, fmt.Errorf("flow %s has no question #%d", m.flow.Name, n)
		}
		question = m.flow.Questions[n-1]
	} else {
		gen := m.gateway.Generate(ctx,
			BuildQuestionPrompt(m.roleContext(sess), sess.History, n),
			questionMaxTokens,
			m.flow.QuestionFallback)
		question = gen.Text
	}

	sess.Pending = question
	return Reply{Text: question}, nil
}

func (m *Machine) evaluate(ctx context.Context, sess *domain.Session) *domain.EvaluationReport {
	gen := m.gateway.Generate(ctx,
		BuildEvaluationPrompt(m.roleContext(sess), sess.History),
		evaluationMaxTokens,
		m.flow.EvaluationFallback)

	report := ParseEvaluation(gen.Text)
	report.Degraded = gen.Degraded
	return report
}

func (m *Machine) roleContext(sess *domain.Session) string {
	if sess.Candidate == "" {
		return m.flow.RoleContext
	}
	return m.flow.RoleContext + " The candidate's name is " + sess.Candidate + "."
}
