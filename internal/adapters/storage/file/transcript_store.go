package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hireflow/interview-agent/internal/domain"
)

// TranscriptStore writes one human-readable text file per finished
// interview. Files are write-once; the returned record id is the file path.
type TranscriptStore struct {
	dir string
}

func NewTranscriptStore(dir string) (*TranscriptStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating transcript directory: %w", err)
	}
	return &TranscriptStore{dir: dir}, nil
}

func (s *TranscriptStore) Persist(ctx context.Context, rec *domain.TranscriptRecord) (domain.RecordID, error) {
	name := fmt.Sprintf("interview_%s_%s.txt",
		sanitize(string(rec.SessionKey)),
		rec.EndedAt.Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", domain.ErrRecordExists
		}
		return "", fmt.Errorf("creating transcript file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(render(rec)); err != nil {
		return "", fmt.Errorf("writing transcript file: %w", err)
	}
	return domain.RecordID(path), nil
}

func render(rec *domain.TranscriptRecord) string {
	var b strings.Builder

	candidate := rec.Candidate
	if candidate == "" {
		candidate = string(rec.SessionKey)
	}
	fmt.Fprintf(&b, "Candidate: %s\n", candidate)
	fmt.Fprintf(&b, "Flow: %s\n", rec.Flow)
	fmt.Fprintf(&b, "Started: %s\n", rec.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Ended: %s\n", rec.EndedAt.Format("2006-01-02 15:04:05"))

	if rec.EarlyExit {
		b.WriteString("Note: interview terminated early.\n")
	}

	if ev := rec.Evaluation; ev != nil {
		b.WriteString("\nEvaluation:\n")
		if ev.Degraded {
			b.WriteString("(generated from fallback text)\n")
		}
		if ev.OverallScore > 0 {
			fmt.Fprintf(&b, "Overall score: %d/100\n", ev.OverallScore)
		}
		if ev.Recommendation != domain.RecommendationUnknown {
			fmt.Fprintf(&b, "Recommendation: %s\n", ev.Recommendation)
		}
		b.WriteString(ev.Feedback)
		b.WriteString("\n")
	}

	b.WriteString("\nFull Interview:\n")
	for _, t := range rec.Turns {
		fmt.Fprintf(&b, "Q%d: %s\nA: %s\n", t.Index, t.Prompt, t.Response)
	}
	return b.String()
}

// sanitize keeps correlation keys filesystem-safe.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
