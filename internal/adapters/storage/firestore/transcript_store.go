package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hireflow/interview-agent/internal/domain"
)

const transcriptsCollection = "transcripts"

// TranscriptStore persists finished interviews as Firestore documents.
type TranscriptStore struct {
	client *firestore.Client
}

func NewTranscriptStore(ctx context.Context, projectID string) (*TranscriptStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore transcript store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &TranscriptStore{client: client}, nil
}

type turnDoc struct {
	Index    int    `firestore:"index"`
	Prompt   string `firestore:"prompt"`
	Response string `firestore:"response"`
}

type evaluationDoc struct {
	OverallScore        int    `firestore:"overall_score"`
	TechnicalScore      int    `firestore:"technical_score"`
	DepthScore          int    `firestore:"depth_score"`
	ClarityScore        int    `firestore:"clarity_score"`
	ProblemSolvingScore int    `firestore:"problem_solving_score"`
	Recommendation      string `firestore:"recommendation"`
	Feedback            string `firestore:"feedback"`
	Degraded            bool   `firestore:"degraded"`
}

type transcriptDoc struct {
	SessionKey string         `firestore:"session_key"`
	Flow       string         `firestore:"flow"`
	Candidate  string         `firestore:"candidate"`
	StartedAt  time.Time      `firestore:"started_at"`
	EndedAt    time.Time      `firestore:"ended_at"`
	Turns      []turnDoc      `firestore:"turns"`
	Evaluation *evaluationDoc `firestore:"evaluation"`
	EarlyExit  bool           `firestore:"early_exit"`
}

// Persist writes the record with Create so an existing document is never
// overwritten; transcripts are write-once.
func (s *TranscriptStore) Persist(ctx context.Context, rec *domain.TranscriptRecord) (domain.RecordID, error) {
	doc := transcriptDoc{
		SessionKey: string(rec.SessionKey),
		Flow:       rec.Flow,
		Candidate:  rec.Candidate,
		StartedAt:  rec.StartedAt,
		EndedAt:    rec.EndedAt,
		EarlyExit:  rec.EarlyExit,
	}
	for _, t := range rec.Turns {
		doc.Turns = append(doc.Turns, turnDoc{Index: t.Index, Prompt: t.Prompt, Response: t.Response})
	}
	if ev := rec.Evaluation; ev != nil {
		doc.Evaluation = &evaluationDoc{
			OverallScore:        ev.OverallScore,
			TechnicalScore:      ev.TechnicalScore,
			DepthScore:          ev.DepthScore,
			ClarityScore:        ev.ClarityScore,
			ProblemSolvingScore: ev.ProblemSolvingScore,
			Recommendation:      string(ev.Recommendation),
			Feedback:            ev.Feedback,
			Degraded:            ev.Degraded,
		}
	}

	ref := s.client.Collection(transcriptsCollection).Doc(string(rec.ID))
	if _, err := ref.Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", domain.ErrRecordExists
		}
		return "", fmt.Errorf("firestore persist transcript: %w", err)
	}
	return rec.ID, nil
}

func (s *TranscriptStore) Close() error {
	return s.client.Close()
}
