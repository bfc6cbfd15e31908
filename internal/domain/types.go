package domain

import "time"

type SessionKey string
type RecordID string

// Stage is the dialogue's current scripted phase.
type Stage string

const (
	// StageIntro waits for the candidate's consent to begin (outreach flow only).
	StageIntro Stage = "intro"
	// StageInterview is the question/answer loop.
	StageInterview Stage = "interview"
	// StageBudget waits for the candidate's reaction to the budget line.
	StageBudget Stage = "budget"
	// StageNegotiate waits for the candidate's expected salary range.
	StageNegotiate Stage = "negotiate"
	// StageDone is terminal; no further events are accepted for the session.
	StageDone Stage = "done"
)

// MessageRole tags one chat message in an LLM request.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is a single role-tagged message sent to the LLM service.
type ChatMessage struct {
	Role    MessageRole
	Content string
}

// Recommendation is the fixed hiring recommendation enumeration.
type Recommendation string

const (
	RecommendationStrongYes Recommendation = "Strong Yes"
	RecommendationYes       Recommendation = "Yes"
	RecommendationNo        Recommendation = "No"
	RecommendationStrongNo  Recommendation = "Strong No"
	RecommendationUnknown   Recommendation = ""
)

type Timestamp = time.Time
