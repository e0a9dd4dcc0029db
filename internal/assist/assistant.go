package assist

import (
	"context"
	"fmt"

	"github.com/umairazmat/Ai-Codify/internal/llm"
)

// dispatches prompts to one configured vendor adapter and normalizes
// every failure into an Outcome. nothing is retried or cached.
type Assistant struct {
	generator     llm.TextGenerator
	modelOverride string
}

type Option func(*Assistant)

// forces every call onto one model, for vendors that do not
// understand the default OpenAI model identifiers
func WithModel(model string) Option {
	return func(a *Assistant) {
		a.modelOverride = model
	}
}

func New(generator llm.TextGenerator, opts ...Option) *Assistant {
	a := &Assistant{generator: generator}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// runs one CodeMentor action against code
func (a *Assistant) Run(ctx context.Context, action Action, code string) Outcome {
	spec, err := ParseAction(string(action))
	if err != nil {
		return failed("Sorry, that action is not available.", err)
	}

	return a.dispatch(ctx, spec.prompt(code), spec.Apology)
}

func (a *Assistant) ReviewCode(ctx context.Context, code string) Outcome {
	return a.Run(ctx, ActionReview, code)
}

func (a *Assistant) RefactorCode(ctx context.Context, code string) Outcome {
	return a.Run(ctx, ActionRefactor, code)
}

func (a *Assistant) FeedbackCode(ctx context.Context, code string) Outcome {
	return a.Run(ctx, ActionFeedback, code)
}

func (a *Assistant) BestPractices(ctx context.Context, code string) Outcome {
	return a.Run(ctx, ActionBestPractices, code)
}

func (a *Assistant) RemoveErrors(ctx context.Context, code string) Outcome {
	return a.Run(ctx, ActionRemoveErrors, code)
}

// generates a business idea from an assembled wizard prompt
func (a *Assistant) GenerateIdea(ctx context.Context, prompt string) Outcome {
	return a.dispatch(ctx, ideaSpec.prompt(prompt), ideaSpec.Apology)
}

func (a *Assistant) dispatch(ctx context.Context, p PromptRequest, apology string) (out Outcome) {
	// a panicking adapter must degrade like any other failure
	defer func() {
		if r := recover(); r != nil {
			out = failed(apology, fmt.Errorf("adapter panic: %v", r))
		}
	}()

	model := p.Model
	if a.modelOverride != "" {
		model = a.modelOverride
	}

	resp, err := a.generator.GenerateText(ctx, llm.TextGenerationRequest{
		Model:        model,
		SystemPrompt: p.SystemMessage,
		Messages:     []llm.Message{{Role: "user", Content: p.UserMessage}},
		MaxTokens:    p.MaxTokens,
	})
	if err != nil {
		return failed(apology, err)
	}

	return succeeded(resp.Text, resp.Model)
}
