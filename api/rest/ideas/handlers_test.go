package ideas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umairazmat/Ai-Codify/internal/assist"
	"github.com/umairazmat/Ai-Codify/internal/errors"
	"github.com/umairazmat/Ai-Codify/internal/sessions"
)

type mockGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	outcome assist.Outcome
}

func (m *mockGenerator) GenerateIdea(ctx context.Context, prompt string) assist.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.prompts = append(m.prompts, prompt)

	if err := ctx.Err(); err != nil {
		return assist.Outcome{Text: "Sorry", Failed: true, Kind: assist.Classify(err), Err: err}
	}

	return m.outcome
}

func (m *mockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type testClient struct {
	t         *testing.T
	router    *gin.Engine
	sessionID string
}

func setup(t *testing.T, gen *mockGenerator) *testClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr := sessions.NewManager(time.Hour)
	t.Cleanup(mgr.Stop)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(sessions.Middleware(mgr, sessions.CookieOptions{Secret: "0123456789abcdef0123456789abcdef", MaxAge: 3600}))
	RegisterRoutes(api, mgr, gen)

	return &testClient{t: t, router: router}
}

func (tc *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	tc.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(tc.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tc.sessionID != "" {
		req.Header.Set(sessions.HeaderName, tc.sessionID)
	}

	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)

	if id := w.Header().Get(sessions.HeaderName); id != "" {
		tc.sessionID = id
	}

	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) StateResponse {
	t.Helper()

	var resp StateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errors.ErrorResponse {
	t.Helper()

	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

var validDetails = DetailsRequest{
	Problem:  "long wait times",
	Impact:   "patients",
	Skills:   "Go",
	Platform: "AWS",
}

func TestInitialState(t *testing.T) {
	tc := setup(t, &mockGenerator{})

	w := tc.do(http.MethodGet, "/api/v1/ideas", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeState(t, w)
	assert.Equal(t, 0, resp.Step)
	assert.Equal(t, "collecting_topic", resp.StepName)
	assert.Equal(t, tc.sessionID, resp.SessionID)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "topic", resp.Questions[0].Field)
}

func TestFullFlowGeneratesOnce(t *testing.T) {
	gen := &mockGenerator{outcome: assist.Outcome{Text: "A triage app", Model: "gpt-4o-mini-2024-07-18"}}
	tc := setup(t, gen)

	w := tc.do(http.MethodPost, "/api/v1/ideas/topic", TopicRequest{Topic: "Healthcare"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeState(t, w)
	assert.Equal(t, 1, resp.Step)
	require.Len(t, resp.Questions, 4)
	assert.Contains(t, resp.Questions[0].Label, "'Healthcare'")

	w = tc.do(http.MethodPost, "/api/v1/ideas/details", validDetails)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decodeState(t, w).Step)

	for range 3 {
		w = tc.do(http.MethodPost, "/api/v1/ideas/generate", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp = decodeState(t, w)
		require.NotNil(t, resp.Idea)
		assert.Equal(t, "A triage app", resp.Idea.Text)
		assert.Equal(t, assist.IdeaTitle, resp.Idea.Title)
		assert.False(t, resp.Idea.Failed)
	}

	assert.Equal(t, 1, gen.Calls())
	assert.Equal(t,
		"I want to work in Healthcare, solve the problem of long wait times, create an impact on patients, and learn Go. I will mainly use AWS.",
		gen.prompts[0],
	)

	// reading the state afterwards must not call the model either
	w = tc.do(http.MethodGet, "/api/v1/ideas", nil)
	require.NotNil(t, decodeState(t, w).Idea)
	assert.Equal(t, 1, gen.Calls())
}

func TestConcurrentGenerateCallsModelOnce(t *testing.T) {
	gen := &mockGenerator{outcome: assist.Outcome{Text: "idea"}}
	tc := setup(t, gen)

	tc.do(http.MethodPost, "/api/v1/ideas/topic", TopicRequest{Topic: "Education"})
	tc.do(http.MethodPost, "/api/v1/ideas/details", validDetails)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/ideas/generate", nil)
			req.Header.Set(sessions.HeaderName, tc.sessionID)
			tc.router.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, gen.Calls())
}

func TestGenerateFailureShowsApology(t *testing.T) {
	apology := "Sorry, an error occurred while generating your idea. Please try again later."
	gen := &mockGenerator{outcome: assist.Outcome{
		Text:   apology,
		Failed: true,
		Kind:   assist.FailureAuth,
		Err:    fmt.Errorf("status 401"),
	}}
	tc := setup(t, gen)

	tc.do(http.MethodPost, "/api/v1/ideas/topic", TopicRequest{Topic: "Finance"})
	tc.do(http.MethodPost, "/api/v1/ideas/details", validDetails)

	w := tc.do(http.MethodPost, "/api/v1/ideas/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeState(t, w)
	require.NotNil(t, resp.Idea)
	assert.Equal(t, apology, resp.Idea.Text)
	assert.True(t, resp.Idea.Failed)
	assert.Equal(t, assist.FailureAuth, resp.Idea.Failure)
	assert.NotContains(t, w.Body.String(), "status 401")

	tc.do(http.MethodPost, "/api/v1/ideas/generate", nil)
	assert.Equal(t, 1, gen.Calls())
}

func TestBlankTopicIsRejected(t *testing.T) {
	tc := setup(t, &mockGenerator{})

	w := tc.do(http.MethodPost, "/api/v1/ideas/topic", TopicRequest{Topic: "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeError(t, w)
	assert.Equal(t, errors.CodeValidationError, body.Error)
	assert.Equal(t, msgEmptyTopic, body.Message)

	w = tc.do(http.MethodGet, "/api/v1/ideas", nil)
	assert.Equal(t, 0, decodeState(t, w).Step)
}

func TestIncompleteDetailsAreRejected(t *testing.T) {
	tc := setup(t, &mockGenerator{})
	tc.do(http.MethodPost, "/api/v1/ideas/topic", TopicRequest{Topic: "Retail"})

	partial := validDetails
	partial.Platform = ""

	w := tc.do(http.MethodPost, "/api/v1/ideas/details", partial)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgIncompleteAnswers, decodeError(t, w).Message)

	w = tc.do(http.MethodGet, "/api/v1/ideas", nil)
	assert.Equal(t, 1, decodeState(t, w).Step)
}

func TestOutOfOrderCallsConflict(t *testing.T) {
	gen := &mockGenerator{}
	tc := setup(t, gen)

	w := tc.do(http.MethodPost, "/api/v1/ideas/generate", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, errors.CodeInvalidStep, decodeError(t, w).Error)

	w = tc.do(http.MethodPost, "/api/v1/ideas/details", validDetails)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = tc.do(http.MethodPost, "/api/v1/ideas/reset", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.Equal(t, 0, gen.Calls())
}

func TestResetStartsOver(t *testing.T) {
	gen := &mockGenerator{outcome: assist.Outcome{Text: "first"}}
	tc := setup(t, gen)

	tc.do(http.MethodPost, "/api/v1/ideas/topic", TopicRequest{Topic: "Healthcare"})
	tc.do(http.MethodPost, "/api/v1/ideas/details", validDetails)
	tc.do(http.MethodPost, "/api/v1/ideas/generate", nil)

	w := tc.do(http.MethodPost, "/api/v1/ideas/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeState(t, w)
	assert.Equal(t, 0, resp.Step)
	assert.Empty(t, resp.Topic)
	assert.Nil(t, resp.Idea)

	tc.do(http.MethodPost, "/api/v1/ideas/topic", TopicRequest{Topic: "Agriculture"})
	tc.do(http.MethodPost, "/api/v1/ideas/details", validDetails)
	tc.do(http.MethodPost, "/api/v1/ideas/generate", nil)

	assert.Equal(t, 2, gen.Calls())
}

func TestSessionsAreIsolated(t *testing.T) {
	gen := &mockGenerator{}
	a := setup(t, gen)

	a.do(http.MethodPost, "/api/v1/ideas/topic", TopicRequest{Topic: "Healthcare"})

	b := &testClient{t: t, router: a.router}
	w := b.do(http.MethodGet, "/api/v1/ideas", nil)

	assert.NotEqual(t, a.sessionID, b.sessionID)
	assert.Equal(t, 0, decodeState(t, w).Step)
}

func TestMalformedBody(t *testing.T) {
	tc := setup(t, &mockGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ideas/topic", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errors.CodeBadRequest, decodeError(t, w).Error)
}

func TestCanceledGenerateIsRetried(t *testing.T) {
	gen := &mockGenerator{outcome: assist.Outcome{Text: "A triage app"}}
	tc := setup(t, gen)

	tc.do(http.MethodPost, "/api/v1/ideas/topic", TopicRequest{Topic: "Healthcare"})
	tc.do(http.MethodPost, "/api/v1/ideas/details", validDetails)

	// the client goes away mid-call
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ideas/generate", nil).WithContext(ctx)
	req.Header.Set(sessions.HeaderName, tc.sessionID)
	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeState(t, w).Idea)

	w = tc.do(http.MethodPost, "/api/v1/ideas/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeState(t, w)
	require.NotNil(t, resp.Idea)
	assert.Equal(t, "A triage app", resp.Idea.Text)
	assert.False(t, resp.Idea.Failed)
	assert.Equal(t, 2, gen.Calls())
}
