package ideas

import (
	"context"

	"github.com/umairazmat/Ai-Codify/internal/assist"
)

// position in the forward-only wizard
type Step int

const (
	StepCollectingTopic Step = iota
	StepCollectingDetails
	StepDisplayingResult
)

func (s Step) String() string {
	switch s {
	case StepCollectingTopic:
		return "collecting_topic"
	case StepCollectingDetails:
		return "collecting_details"
	case StepDisplayingResult:
		return "displaying_result"
	default:
		return "unknown"
	}
}

// follow-up answers gathered in step 1
type Answers struct {
	Problem  string `json:"problem"`
	Impact   string `json:"impact"`
	Skills   string `json:"skills"`
	Platform string `json:"platform"`
}

// one session's progress through the wizard. transitions take a State
// and return the next one; nothing here is shared between sessions.
type State struct {
	Step    Step    `json:"step"`
	Topic   string  `json:"topic"`
	Answers Answers `json:"answers"`
	Prompt  string  `json:"prompt,omitempty"`

	// set at most once per entry into StepDisplayingResult
	GeneratedIdea *string            `json:"generated_idea,omitempty"`
	Failure       assist.FailureKind `json:"failure,omitempty"`
}

// produces an idea from an assembled prompt
type Generator interface {
	GenerateIdea(ctx context.Context, prompt string) assist.Outcome
}
