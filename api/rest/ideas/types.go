package ideas

import (
	"github.com/umairazmat/Ai-Codify/internal/assist"
	"github.com/umairazmat/Ai-Codify/internal/ideas"
)

// TopicRequest is the step 0 form
type TopicRequest struct {
	Topic string `json:"topic"`
}

// DetailsRequest is the step 1 form
type DetailsRequest struct {
	Problem  string `json:"problem"`
	Impact   string `json:"impact"`
	Skills   string `json:"skills"`
	Platform string `json:"platform"`
}

// StateResponse describes where the session is in the wizard
type StateResponse struct {
	SessionID string           `json:"session_id"`
	Step      int              `json:"step"`
	StepName  string           `json:"step_name"`
	Topic     string           `json:"topic,omitempty"`
	Answers   *ideas.Answers   `json:"answers,omitempty"`
	Questions []ideas.Question `json:"questions,omitempty"`
	Idea      *IdeaResponse    `json:"idea,omitempty"`
}

// IdeaResponse carries the rendered result of step 2
type IdeaResponse struct {
	Title   string             `json:"title"`
	Text    string             `json:"text"`
	Failed  bool               `json:"failed"`
	Failure assist.FailureKind `json:"failure,omitempty"`
}

func newStateResponse(sessionID string, state ideas.State) StateResponse {
	resp := StateResponse{
		SessionID: sessionID,
		Step:      int(state.Step),
		StepName:  state.Step.String(),
		Topic:     state.Topic,
		Questions: ideas.Questions(state),
	}

	if state.Step == ideas.StepDisplayingResult {
		answers := state.Answers
		resp.Answers = &answers
	}

	if state.GeneratedIdea != nil {
		resp.Idea = &IdeaResponse{
			Title:   assist.IdeaTitle,
			Text:    *state.GeneratedIdea,
			Failed:  state.Failure != assist.FailureNone,
			Failure: state.Failure,
		}
	}

	return resp
}
