package file_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	filestore "github.com/hireflow/interview-agent/internal/adapters/storage/file"
	"github.com/hireflow/interview-agent/internal/domain"
)

func sampleRecord() *domain.TranscriptRecord {
	started := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	return &domain.TranscriptRecord{
		ID:         "r-1",
		SessionKey: "CA-123",
		Flow:       "screening",
		Candidate:  "Ada",
		StartedAt:  started,
		EndedAt:    started.Add(5 * time.Minute),
		Turns: []domain.Turn{
			{Index: 1, Prompt: "What are you working on?", Response: "A billing service in Go."},
			{Index: 2, Prompt: "How do you debug production issues?", Response: "Logs and traces."},
		},
		Evaluation: &domain.EvaluationReport{
			OverallScore:   82,
			Recommendation: domain.RecommendationYes,
			Feedback:       "Solid fundamentals.",
		},
	}
}

func TestPersistWritesReadableTranscript(t *testing.T) {
	store, err := filestore.NewTranscriptStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTranscriptStore failed: %v", err)
	}

	id, err := store.Persist(context.Background(), sampleRecord())
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	data, err := os.ReadFile(string(id))
	if err != nil {
		t.Fatalf("reading transcript at returned id: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"Candidate: Ada",
		"Flow: screening",
		"Overall score: 82/100",
		"Recommendation: Yes",
		"Q1: What are you working on?",
		"A: Logs and traces.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("transcript missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "terminated early") {
		t.Error("completed interview must not carry the early-exit note")
	}
}

func TestPersistMarksEarlyExit(t *testing.T) {
	store, err := filestore.NewTranscriptStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTranscriptStore failed: %v", err)
	}

	rec := sampleRecord()
	rec.EarlyExit = true
	rec.Evaluation = nil

	id, err := store.Persist(context.Background(), rec)
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	data, err := os.ReadFile(string(id))
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	if !strings.Contains(string(data), "Note: interview terminated early.") {
		t.Error("expected the early-exit note")
	}
	if strings.Contains(string(data), "Evaluation:") {
		t.Error("record without evaluation must not render an evaluation block")
	}
}

func TestPersistRejectsDuplicate(t *testing.T) {
	store, err := filestore.NewTranscriptStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTranscriptStore failed: %v", err)
	}

	rec := sampleRecord()
	if _, err := store.Persist(context.Background(), rec); err != nil {
		t.Fatalf("first Persist failed: %v", err)
	}
	if _, err := store.Persist(context.Background(), rec); !errors.Is(err, domain.ErrRecordExists) {
		t.Fatalf("expected ErrRecordExists, got %v", err)
	}
}
