package ideas

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/umairazmat/Ai-Codify/internal/assist"
)

// returns the starting state
func NewState() State {
	return State{Step: StepCollectingTopic}
}

// moves from collecting the topic to collecting details
func SubmitTopic(state State, topic string) (State, error) {
	if state.Step != StepCollectingTopic {
		return state, fmt.Errorf("%w: topic submitted at step %s", ErrInvalidTransition, state.Step)
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return state, ErrEmptyTopic
	}

	next := state
	next.Topic = topic
	next.Step = StepCollectingDetails

	return next, nil
}

// moves from collecting details to displaying the result, assembling the prompt
func SubmitDetails(state State, answers Answers) (State, error) {
	if state.Step != StepCollectingDetails {
		return state, fmt.Errorf("%w: details submitted at step %s", ErrInvalidTransition, state.Step)
	}

	answers = Answers{
		Problem:  strings.TrimSpace(answers.Problem),
		Impact:   strings.TrimSpace(answers.Impact),
		Skills:   strings.TrimSpace(answers.Skills),
		Platform: strings.TrimSpace(answers.Platform),
	}

	if answers.Problem == "" || answers.Impact == "" || answers.Skills == "" || answers.Platform == "" {
		return state, ErrIncompleteAnswers
	}

	next := state
	next.Answers = answers
	next.Prompt = BuildPrompt(state.Topic, answers)
	next.GeneratedIdea = nil
	next.Failure = assist.FailureNone
	next.Step = StepDisplayingResult

	return next, nil
}

// fills the fixed idea template
func BuildPrompt(topic string, answers Answers) string {
	return fmt.Sprintf(
		"I want to work in %s, solve the problem of %s, create an impact on %s, and learn %s. I will mainly use %s.",
		topic, answers.Problem, answers.Impact, answers.Skills, answers.Platform,
	)
}

// returns the idea for step 2, calling the generator only if no result is
// stored yet. a failed call is kept too, so re-rendering never re-spends,
// unless the caller canceled it: then nothing is stored and the next render
// calls the generator again.
func Render(ctx context.Context, state State, gen Generator) (State, assist.Outcome, error) {
	if state.Step != StepDisplayingResult {
		return state, assist.Outcome{}, fmt.Errorf("%w: render at step %s", ErrInvalidTransition, state.Step)
	}

	if state.GeneratedIdea != nil {
		return state, assist.Outcome{
			Text:   *state.GeneratedIdea,
			Failed: state.Failure != assist.FailureNone,
			Kind:   state.Failure,
		}, nil
	}

	out := gen.GenerateIdea(ctx, state.Prompt)

	if out.Failed && (out.Kind == assist.FailureCanceled || errors.Is(ctx.Err(), context.Canceled)) {
		out.Kind = assist.FailureCanceled
		return state, out, nil
	}

	next := state
	text := out.Text
	next.GeneratedIdea = &text
	next.Failure = out.Kind

	if out.Failed && next.Failure == assist.FailureNone {
		next.Failure = assist.FailureUnknown
	}

	return next, out, nil
}

// "Generate Another Idea": only allowed once a result is on screen
func Reset(state State) (State, error) {
	if state.Step != StepDisplayingResult {
		return state, fmt.Errorf("%w: reset at step %s", ErrInvalidTransition, state.Step)
	}

	return NewState(), nil
}
