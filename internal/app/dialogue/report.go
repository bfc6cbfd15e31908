package dialogue

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hireflow/interview-agent/internal/domain"
)

var (
	overallScoreRe = regexp.MustCompile(`(?i)overall\s+score\D{0,10}(\d{1,3})`)

	dimensionRes = map[string]*regexp.Regexp{
		"technical": regexp.MustCompile(`(?i)technical\s+accuracy\D{0,10}(\d{1,2})`),
		"depth":     regexp.MustCompile(`(?i)depth\s+of\s+knowledge\D{0,10}(\d{1,2})`),
		"clarity":   regexp.MustCompile(`(?i)(?:communication\s+)?clarity\D{0,10}(\d{1,2})`),
		"problem":   regexp.MustCompile(`(?i)problem.solving(?:\s+approach)?\D{0,10}(\d{1,2})`),
	}

	recommendationLineRe = regexp.MustCompile(`(?i)recommendation[^\n]*`)

	strongYesRe = regexp.MustCompile(`(?i)\bstrong\s+yes\b`)
	strongNoRe  = regexp.MustCompile(`(?i)\bstrong\s+no\b`)
	yesRe       = regexp.MustCompile(`(?i)\byes\b`)
	noRe        = regexp.MustCompile(`(?i)\bno\b`)
)

// ParseEvaluation extracts the structured fields from generated evaluation
// text. The model's prose is unreliable, so parsing is lenient: fields the
// text does not contain stay zero-valued and the full text is kept as
// Feedback.
func ParseEvaluation(text string) *domain.EvaluationReport {
	report := &domain.EvaluationReport{
		Feedback:       strings.TrimSpace(text),
		Recommendation: parseRecommendation(text),
	}

	if m := overallScoreRe.FindStringSubmatch(text); m != nil {
		report.OverallScore = clamp(atoi(m[1]), 0, 100)
	}
	if m := dimensionRes["technical"].FindStringSubmatch(text); m != nil {
		report.TechnicalScore = clamp(atoi(m[1]), 0, 10)
	}
	if m := dimensionRes["depth"].FindStringSubmatch(text); m != nil {
		report.DepthScore = clamp(atoi(m[1]), 0, 10)
	}
	if m := dimensionRes["clarity"].FindStringSubmatch(text); m != nil {
		report.ClarityScore = clamp(atoi(m[1]), 0, 10)
	}
	if m := dimensionRes["problem"].FindStringSubmatch(text); m != nil {
		report.ProblemSolvingScore = clamp(atoi(m[1]), 0, 10)
	}

	return report
}

// parseRecommendation prefers the explicit recommendation line when the
// text has one, then falls back to scanning the whole text. "Strong Yes"
// and "Strong No" are checked before the bare words they contain.
func parseRecommendation(text string) domain.Recommendation {
	scope := text
	if line := recommendationLineRe.FindString(text); line != "" {
		scope = line
	}

	switch {
	case strongYesRe.MatchString(scope):
		return domain.RecommendationStrongYes
	case strongNoRe.MatchString(scope):
		return domain.RecommendationStrongNo
	case yesRe.MatchString(scope):
		return domain.RecommendationYes
	case noRe.MatchString(scope):
		return domain.RecommendationNo
	default:
		return domain.RecommendationUnknown
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
