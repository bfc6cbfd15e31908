package dialogue_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hireflow/interview-agent/internal/app/dialogue"
	"github.com/hireflow/interview-agent/internal/domain"
)

func TestBuildQuestionPromptFirstQuestion(t *testing.T) {
	msgs := dialogue.BuildQuestionPrompt("role context", nil, 1)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != domain.RoleSystem || msgs[0].Content != "role context" {
		t.Fatalf("unexpected system message: %+v", msgs[0])
	}
	if !strings.Contains(msgs[1].Content, "question #1") {
		t.Fatalf("prompt missing question number: %q", msgs[1].Content)
	}
	if strings.Contains(msgs[1].Content, "previous answer") {
		t.Fatalf("first question must not reference a previous answer: %q", msgs[1].Content)
	}
}

func TestBuildQuestionPromptTruncatesLastAnswer(t *testing.T) {
	long := strings.Repeat("x", 100) + strings.Repeat("z", 50)
	history := []domain.Turn{
		{Index: 1, Prompt: "Q one", Response: "short"},
		{Index: 2, Prompt: "Q two", Response: long},
	}

	msgs := dialogue.BuildQuestionPrompt("ctx", history, 3)
	user := msgs[1].Content

	if !strings.Contains(user, strings.Repeat("x", 100)+"...") {
		t.Fatalf("prompt missing truncated answer excerpt: %q", user)
	}
	if strings.Contains(user, "xz") {
		t.Fatalf("prompt must truncate the last answer to 100 characters: %q", user)
	}
	// Only the latest answer travels with the question prompt.
	if strings.Contains(user, "short") || strings.Contains(user, "Q one") {
		t.Fatalf("prompt must not embed the full history: %q", user)
	}
}

func TestBuildQuestionPromptTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 150)
	history := []domain.Turn{
		{Index: 1, Prompt: "Q", Response: long},
	}

	msgs := dialogue.BuildQuestionPrompt("ctx", history, 2)
	user := msgs[1].Content

	if !utf8.ValidString(user) {
		t.Fatalf("prompt contains invalid UTF-8: %q", user)
	}
	if !strings.Contains(user, strings.Repeat("é", 100)+"...") {
		t.Fatalf("excerpt must keep 100 whole runes: %q", user)
	}
	if strings.Contains(user, strings.Repeat("é", 101)) {
		t.Fatalf("excerpt must not exceed 100 runes: %q", user)
	}
}

func TestBuildEvaluationPromptEmbedsFullHistory(t *testing.T) {
	history := []domain.Turn{
		{Index: 1, Prompt: "What is a goroutine?", Response: "A lightweight thread"},
		{Index: 2, Prompt: "Explain indexes", Response: "They speed up lookups"},
	}

	msgs := dialogue.BuildEvaluationPrompt("ctx", history)
	user := msgs[1].Content

	for _, want := range []string{
		"Q1: What is a goroutine?",
		"A: A lightweight thread",
		"Q2: Explain indexes",
		"Technical accuracy",
		"Strong Yes/Yes/No/Strong No",
	} {
		if !strings.Contains(user, want) {
			t.Fatalf("evaluation prompt missing %q:\n%s", want, user)
		}
	}
}

func TestFormatHistory(t *testing.T) {
	got := dialogue.FormatHistory([]domain.Turn{
		{Index: 1, Prompt: "P", Response: "R"},
	})
	want := "Q1: P\nA: R"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
