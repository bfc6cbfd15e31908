package dialogue_test

import (
	"testing"

	"github.com/hireflow/interview-agent/internal/app/dialogue"
	"github.com/hireflow/interview-agent/internal/domain"
)

const sampleEvaluation = `The candidate showed solid fundamentals.

1. Technical accuracy: 8/10
2. Depth of knowledge: 7/10
3. Communication clarity: 9/10
4. Problem-solving approach: 6/10

Overall score: 82

Strengths: clear explanations, practical experience with databases.
Areas for improvement: distributed systems depth.

Hiring recommendation: Strong Yes

A promising candidate overall.`

func TestParseEvaluationExtractsFields(t *testing.T) {
	report := dialogue.ParseEvaluation(sampleEvaluation)

	if report.OverallScore != 82 {
		t.Fatalf("overall score: got %d, want 82", report.OverallScore)
	}
	if report.TechnicalScore != 8 {
		t.Fatalf("technical score: got %d, want 8", report.TechnicalScore)
	}
	if report.DepthScore != 7 {
		t.Fatalf("depth score: got %d, want 7", report.DepthScore)
	}
	if report.ClarityScore != 9 {
		t.Fatalf("clarity score: got %d, want 9", report.ClarityScore)
	}
	if report.ProblemSolvingScore != 6 {
		t.Fatalf("problem-solving score: got %d, want 6", report.ProblemSolvingScore)
	}
	if report.Recommendation != domain.RecommendationStrongYes {
		t.Fatalf("recommendation: got %q", report.Recommendation)
	}
	if report.Feedback == "" {
		t.Fatal("feedback must keep the full text")
	}
}

func TestParseEvaluationRecommendationVariants(t *testing.T) {
	cases := []struct {
		text string
		want domain.Recommendation
	}{
		{"Recommendation: Strong Yes", domain.RecommendationStrongYes},
		{"Recommendation: strong no, unfortunately", domain.RecommendationStrongNo},
		{"Hiring recommendation: Yes", domain.RecommendationYes},
		{"recommendation: No", domain.RecommendationNo},
		{"nothing conclusive here", domain.RecommendationUnknown},
	}

	for _, tc := range cases {
		report := dialogue.ParseEvaluation(tc.text)
		if report.Recommendation != tc.want {
			t.Errorf("ParseEvaluation(%q).Recommendation = %q, want %q", tc.text, report.Recommendation, tc.want)
		}
	}
}

func TestParseEvaluationToleratesMissingFields(t *testing.T) {
	report := dialogue.ParseEvaluation("Evaluation unavailable. Please review the transcript manually.")

	if report.OverallScore != 0 || report.TechnicalScore != 0 {
		t.Fatalf("missing scores must stay zero, got %+v", report)
	}
	if report.Recommendation != domain.RecommendationUnknown {
		t.Fatalf("expected unknown recommendation, got %q", report.Recommendation)
	}
	if report.Feedback == "" {
		t.Fatal("feedback must keep the raw text")
	}
}

func TestParseEvaluationClampsOutOfRangeScores(t *testing.T) {
	report := dialogue.ParseEvaluation("Overall score: 250\nTechnical accuracy: 55")

	if report.OverallScore != 100 {
		t.Fatalf("overall score must clamp to 100, got %d", report.OverallScore)
	}
	if report.TechnicalScore != 10 {
		t.Fatalf("technical score must clamp to 10, got %d", report.TechnicalScore)
	}
}
