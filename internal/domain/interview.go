package domain

// Turn is one question/answer exchange within a session.
type Turn struct {
	Index    int    `json:"index"`
	Prompt   string `json:"prompt"`
	Response string `json:"response,omitempty"`
}

// Session is one candidate conversation, keyed by the channel's correlation
// key (call id, chat id, or a generated id for a CLI run). All fields are
// JSON-serializable so the session can live in Redis as well as in memory.
type Session struct {
	Key       SessionKey `json:"key"`
	Flow      string     `json:"flow"`
	Candidate string     `json:"candidate,omitempty"`
	Stage     Stage      `json:"stage"`
	TurnIndex int        `json:"turn_index"`
	History   []Turn     `json:"history"`

	// Pending holds the question already delivered to the candidate and
	// not yet answered. Empty outside of an awaiting-answer state.
	Pending string `json:"pending,omitempty"`

	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// CompleteTurn appends the answer to the pending question as a finished
// turn. History stays append-only and len(History) == TurnIndex always.
func (s *Session) CompleteTurn(answer string) {
	s.History = append(s.History, Turn{
		Index:    s.TurnIndex + 1,
		Prompt:   s.Pending,
		Response: answer,
	})
	s.TurnIndex++
	s.Pending = ""
}

// EvaluationReport is the structured result of the final evaluation call.
// Strengths and improvement areas remain inside Feedback as free text; the
// numeric fields and the recommendation are extracted leniently from the
// generated text and are zero-valued when the model did not provide them.
type EvaluationReport struct {
	OverallScore        int            `json:"overall_score"`
	TechnicalScore      int            `json:"technical_score"`
	DepthScore          int            `json:"depth_score"`
	ClarityScore        int            `json:"clarity_score"`
	ProblemSolvingScore int            `json:"problem_solving_score"`
	Recommendation      Recommendation `json:"recommendation"`
	Feedback            string         `json:"feedback"`

	// Degraded marks a report produced from fallback text after a
	// generation failure.
	Degraded bool `json:"degraded"`
}

// TranscriptRecord is the durable, write-once record of a finished session.
type TranscriptRecord struct {
	ID         RecordID          `json:"id"`
	SessionKey SessionKey        `json:"session_key"`
	Flow       string            `json:"flow"`
	Candidate  string            `json:"candidate,omitempty"`
	StartedAt  Timestamp         `json:"started_at"`
	EndedAt    Timestamp         `json:"ended_at"`
	Turns      []Turn            `json:"turns"`
	Evaluation *EvaluationReport `json:"evaluation,omitempty"`

	// EarlyExit marks a session that ended before completing its script
	// (exit token, hang-up, channel disconnect). Partial transcripts are
	// valid records, not errors.
	EarlyExit bool `json:"early_exit"`
}
