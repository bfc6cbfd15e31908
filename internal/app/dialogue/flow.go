package dialogue

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in flow names.
const (
	FlowOpen      = "open"      // CLI: generated questions + final evaluation
	FlowScreening = "screening" // voice: scripted questions, no scoring
	FlowOutreach  = "outreach"  // chat: consent intro, budget branch
)

// Flow is the stage graph driving one interview variant. The machine is
// generic; each channel supplies a Flow instead of its own sequencing code.
type Flow struct {
	Name string `yaml:"-"`

	// RoleContext is the fixed system context sent with every LLM request.
	RoleContext string `yaml:"role_context"`

	// ConsentPrompt, when set, puts new sessions in the intro stage: the
	// prompt is repeated until an inbound message contains one of the
	// consent keywords (case-insensitive substring match).
	ConsentPrompt   string   `yaml:"consent_prompt"`
	ConsentKeywords []string `yaml:"consent_keywords"`

	// Questions are scripted utterances asked in order. When empty, each
	// question is generated through the LLM gateway instead.
	Questions    []string `yaml:"questions"`
	MaxQuestions int      `yaml:"max_questions"`

	// Evaluate requests a final LLM evaluation over the full history
	// before closing.
	Evaluate bool `yaml:"evaluate"`

	// ExitToken ends the session immediately when an inbound message
	// equals it (case-insensitive). Empty disables user-initiated exit.
	ExitToken string `yaml:"exit_token"`

	Budget *BudgetStage `yaml:"budget"`

	Closing      string `yaml:"closing"`
	EarlyClosing string `yaml:"early_closing"`

	QuestionFallback   string `yaml:"question_fallback"`
	EvaluationFallback string `yaml:"evaluation_fallback"`
}

// BudgetStage is the branching stage entered after the technical questions.
// The answer's content, not its count, decides the next stage.
type BudgetStage struct {
	Prompt string `yaml:"prompt"`

	// Keywords trigger the negotiation branch on case-insensitive
	// substring match. Known precision issue: "$" inside an unrelated
	// token also matches.
	Keywords []string `yaml:"keywords"`

	NegotiatePrompt  string `yaml:"negotiate_prompt"`
	AcceptClosing    string `yaml:"accept_closing"`
	NegotiateClosing string `yaml:"negotiate_closing"`
}

// DefaultFlows returns the three built-in interview flows.
func DefaultFlows() map[string]*Flow {
	flows := map[string]*Flow{
		FlowOpen: {
			RoleContext: "You are interviewing a candidate for a mid-level software developer position ($3500 monthly budget). " +
				"Ask specific, practical technical questions.",
			MaxQuestions:       5,
			Evaluate:           true,
			ExitToken:          "exit",
			Closing:            "That concludes the interview. Thank you for your time.",
			EarlyClosing:       "Interview terminated early.",
			QuestionFallback:   "[AI unavailable]",
			EvaluationFallback: "Evaluation unavailable. Please review the transcript manually.",
		},
		FlowScreening: {
			RoleContext: "You are conducting a concise technical phone screening for a software engineering position.",
			Questions: []string{
				"Thank you for joining this interview. We'll discuss three key technical topics. First, " +
					"can you walk me through your experience with backend development and which technologies you're most proficient in?",
				"Thank you. Next question: How would you approach debugging a production issue that's affecting multiple users?",
				"Interesting. Final question: Can you explain a challenging technical problem you solved recently and how you approached it?",
			},
			Closing:          "Thank you for your time and detailed answers. We'll review your responses and be in touch. Have a great day!",
			EarlyClosing:     "Thank you for your time. Goodbye.",
			QuestionFallback: "Let's move on to the next question.",
		},
		FlowOutreach: {
			RoleContext: "You are screening a candidate for a software developer role over chat. " +
				"Ask one short technical interview question at a time.",
			ConsentPrompt:   "Hi, are you interested in this job opportunity? Reply 'yes' to begin.",
			ConsentKeywords: []string{"yes"},
			MaxQuestions:    3,
			Budget: &BudgetStage{
				Prompt:           "The budget for this role is $3500/month. Does this align with your expectations?",
				Keywords:         []string{"more", "less", "negotiate", "$", "₹"},
				NegotiatePrompt:  "Let us know your expected range, and we'll see what we can do.",
				AcceptClosing:    "Great! You're being considered for the role. We'll get back to you shortly.",
				NegotiateClosing: "Thanks for sharing. We'll review your expectations and respond soon.",
			},
			Closing:          "Thanks for your time. We'll be in touch.",
			EarlyClosing:     "Thanks for your time. We'll be in touch.",
			QuestionFallback: "Let's move on to the next question.",
		},
	}

	for name, f := range flows {
		f.Name = name
		f.normalize()
	}
	return flows
}

// LoadFlows returns the built-in flows, with any flow present in the YAML
// script file at path replacing its default wholly. An empty path returns
// the defaults unchanged.
func LoadFlows(path string) (map[string]*Flow, error) {
	flows := DefaultFlows()
	if path == "" {
		return flows, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script file: %w", err)
	}

	var file struct {
		Flows map[string]*Flow `yaml:"flows"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing script file: %w", err)
	}

	for name, f := range file.Flows {
		f.Name = name
		f.normalize()
		flows[name] = f
	}
	return flows, nil
}

func (f *Flow) normalize() {
	if f.MaxQuestions <= 0 {
		f.MaxQuestions = len(f.Questions)
	}
	if f.ConsentPrompt != "" && len(f.ConsentKeywords) == 0 {
		f.ConsentKeywords = []string{"yes"}
	}
	if f.QuestionFallback == "" {
		f.QuestionFallback = "Let's move on to the next question."
	}
	if f.EvaluationFallback == "" {
		f.EvaluationFallback = "Evaluation unavailable. Please review the transcript manually."
	}
	if f.EarlyClosing == "" {
		f.EarlyClosing = f.Closing
	}
}

// containsAny reports whether text contains any of the keywords,
// case-insensitively.
func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
