package assist

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umairazmat/Ai-Codify/internal/llm"
)

// implements llm.TextGenerator for testing
type mockGenerator struct {
	generateTextFunc func(ctx context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error)
	calls            []llm.TextGenerationRequest
}

func (m *mockGenerator) GenerateText(ctx context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	m.calls = append(m.calls, req)

	if m.generateTextFunc != nil {
		return m.generateTextFunc(ctx, req)
	}

	return &llm.TextGenerationResponse{Text: "fine", Model: req.Model}, nil
}

func (m *mockGenerator) Model() string {
	return "mock-model"
}

func TestRunUsesActionSpec(t *testing.T) {
	gen := &mockGenerator{}
	a := New(gen)

	out := a.Run(context.Background(), ActionRefactor, "x = 1")

	require.False(t, out.Failed)
	assert.Equal(t, "fine", out.Text)
	assert.Equal(t, FailureNone, out.Kind)

	require.Len(t, gen.calls, 1)
	req := gen.calls[0]
	assert.Equal(t, modelFull, req.Model)
	assert.Equal(t, codeMaxTokens, req.MaxTokens)
	assert.Contains(t, req.SystemPrompt, "refactors code")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, "Refactor the following code:\n\nx = 1", req.Messages[0].Content)
}

func TestReviewSendsCodeVerbatim(t *testing.T) {
	gen := &mockGenerator{}
	a := New(gen)

	a.ReviewCode(context.Background(), "def f():\n    pass\n")

	require.Len(t, gen.calls, 1)
	assert.Equal(t, modelMini, gen.calls[0].Model)
	assert.Equal(t, "def f():\n    pass\n", gen.calls[0].Messages[0].Content)
}

func TestEachActionIsAFreshCall(t *testing.T) {
	gen := &mockGenerator{}
	a := New(gen)
	ctx := context.Background()

	a.ReviewCode(ctx, "code")
	a.RefactorCode(ctx, "code")
	a.FeedbackCode(ctx, "code")
	a.BestPractices(ctx, "code")
	a.RemoveErrors(ctx, "code")
	a.ReviewCode(ctx, "code")

	assert.Len(t, gen.calls, 6, "nothing is cached between actions")
}

func TestFailureReturnsApology(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionReview, "Sorry, an error occurred while reviewing your code. Please try again later."},
		{ActionRefactor, "Sorry, an error occurred while refactoring your code. Please try again later."},
		{ActionFeedback, "Sorry, an error occurred while generating feedback for your code. Please try again later."},
		{ActionBestPractices, "Sorry, an error occurred while suggesting best practices. Please try again later."},
		{ActionRemoveErrors, "Sorry, an error occurred while removing errors from your code. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			gen := &mockGenerator{
				generateTextFunc: func(context.Context, llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
					return nil, errors.New("boom")
				},
			}

			out := New(gen).Run(context.Background(), tt.action, "code")

			assert.True(t, out.Failed)
			assert.Equal(t, tt.want, out.Text)
			assert.Equal(t, FailureUnknown, out.Kind)
			assert.EqualError(t, out.Err, "boom")
			assert.Len(t, gen.calls, 1, "failures are never retried")
		})
	}
}

func TestPanickingAdapterDegrades(t *testing.T) {
	gen := &mockGenerator{
		generateTextFunc: func(context.Context, llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			panic("nil map")
		},
	}

	var out Outcome
	require.NotPanics(t, func() {
		out = New(gen).RefactorCode(context.Background(), "code")
	})

	assert.True(t, out.Failed)
	assert.Equal(t, "Sorry, an error occurred while refactoring your code. Please try again later.", out.Text)
}

func TestGenerateIdea(t *testing.T) {
	gen := &mockGenerator{}
	a := New(gen)

	out := a.GenerateIdea(context.Background(), "I want to work in energy")
	require.False(t, out.Failed)

	req := gen.calls[0]
	assert.Equal(t, modelIdea, req.Model)
	assert.Equal(t, ideaMaxTokens, req.MaxTokens)
	assert.Equal(t, "You are an AI assistant who knows everything.", req.SystemPrompt)
	assert.Equal(t, "I want to work in energy", req.Messages[0].Content)

	gen.generateTextFunc = func(context.Context, llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
		return nil, &llm.APIError{StatusCode: 401}
	}

	out = a.GenerateIdea(context.Background(), "x")
	assert.True(t, out.Failed)
	assert.Equal(t, FailureAuth, out.Kind)
	assert.Equal(t, "Sorry, an error occurred while generating your idea. Please try again later.", out.Text)
}

func TestWithModelOverride(t *testing.T) {
	gen := &mockGenerator{}
	a := New(gen, WithModel("claude-3-5-sonnet-20241022"))

	a.RemoveErrors(context.Background(), "code")
	a.GenerateIdea(context.Background(), "idea")

	for _, call := range gen.calls {
		assert.Equal(t, "claude-3-5-sonnet-20241022", call.Model)
	}
}

func TestRunUnknownAction(t *testing.T) {
	gen := &mockGenerator{}

	out := New(gen).Run(context.Background(), Action("translate"), "code")

	assert.True(t, out.Failed)
	assert.Empty(t, gen.calls)
}

func TestParseAction(t *testing.T) {
	spec, err := ParseAction(" Best-Practices ")
	require.NoError(t, err)
	assert.Equal(t, "best_practices.txt", spec.Filename)

	_, err = ParseAction("deploy")
	assert.Error(t, err)

	filenames := make([]string, 0, 5)
	for _, s := range Actions() {
		filenames = append(filenames, s.Filename)
	}

	assert.Equal(t, []string{
		"code_review.txt",
		"refactored_code.txt",
		"code_feedback.txt",
		"best_practices.txt",
		"error_removal_suggestions.txt",
	}, filenames)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	assert.Equal(t, FailureNone, Classify(nil))
	assert.Equal(t, FailureTimeout, Classify(fmt.Errorf("wrap: %w", context.DeadlineExceeded)))
	assert.Equal(t, FailureCanceled, Classify(fmt.Errorf("wrap: %w", context.Canceled)))
	assert.Equal(t, FailureAuth, Classify(&llm.APIError{StatusCode: 403}))
	assert.Equal(t, FailureUpstream, Classify(&llm.APIError{StatusCode: 502}))
	assert.Equal(t, FailureMalformed, Classify(fmt.Errorf("%w: eof", llm.ErrMalformedResponse)))
	assert.Equal(t, FailureMalformed, Classify(llm.ErrEmptyResponse))
	assert.Equal(t, FailureTimeout, Classify(fmt.Errorf("send: %w", timeoutErr{})))
	assert.Equal(t, FailureNetwork, Classify(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	assert.Equal(t, FailureUnknown, Classify(errors.New("odd")))
}

func TestDownloadHint(t *testing.T) {
	spec, err := ParseAction("best-practices")
	require.NoError(t, err)

	assert.Equal(t, "You can download the best practices suggestions as best_practices.txt", spec.DownloadHint())
}
