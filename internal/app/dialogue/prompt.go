package dialogue

import (
	"fmt"
	"strings"

	"github.com/hireflow/interview-agent/internal/domain"
)

// lastAnswerExcerptLen bounds how much of the previous answer is carried
// into the next question prompt. The full history never goes into question
// prompts; that keeps the payload bounded and latency predictable.
const lastAnswerExcerptLen = 100

// BuildQuestionPrompt returns the instruction asking the LLM for the n-th
// technical question. Pure function of its inputs.
func BuildQuestionPrompt(roleContext string, history []domain.Turn, n int) []domain.ChatMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Ask technical interview question #%d about programming (be specific, one question only).", n)

	if len(history) > 0 {
		last := history[len(history)-1].Response
		// Truncate on rune boundaries so multibyte answers stay valid UTF-8.
		if runes := []rune(last); len(runes) > lastAnswerExcerptLen {
			last = string(runes[:lastAnswerExcerptLen])
		}
		fmt.Fprintf(&b, " Consider this previous answer: %s...", last)
	}

	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: roleContext},
		{Role: domain.RoleUser, Content: b.String()},
	}
}

// BuildEvaluationPrompt returns the instruction asking the LLM to score the
// candidate over the full formatted history.
func BuildEvaluationPrompt(roleContext string, history []domain.Turn) []domain.ChatMessage {
	var b strings.Builder
	b.WriteString("Candidate Interview History:\n")
	b.WriteString(FormatHistory(history))
	b.WriteString("\n\nEvaluate this candidate for a software developer position considering:\n")
	b.WriteString("1. Technical accuracy (0-10)\n")
	b.WriteString("2. Depth of knowledge (0-10)\n")
	b.WriteString("3. Communication clarity (0-10)\n")
	b.WriteString("4. Problem-solving approach (0-10)\n\n")
	b.WriteString("Provide:\n")
	b.WriteString("- Overall score (0-100)\n")
	b.WriteString("- Strengths\n")
	b.WriteString("- Areas for improvement\n")
	b.WriteString("- Hiring recommendation (Strong Yes/Yes/No/Strong No)\n")
	b.WriteString("- Brief written feedback\n")

	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: roleContext},
		{Role: domain.RoleUser, Content: b.String()},
	}
}

// FormatHistory renders turns as "Qn: ... / A: ..." lines.
func FormatHistory(history []domain.Turn) string {
	lines := make([]string, 0, len(history))
	for _, t := range history {
		lines = append(lines, fmt.Sprintf("Q%d: %s\nA: %s", t.Index, t.Prompt, t.Response))
	}
	return strings.Join(lines, "\n")
}
