package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"sync"
)

const sessionHeader = "X-Session-ID"

// talks to the Ai-Codify REST API, carrying the wizard session between calls
type Client struct {
	endpoint   string
	httpClient *http.Client

	mu        sync.Mutex
	sessionID string
}

// creates a new REST client
func NewClient() *Client {
	endpoint := os.Getenv("AICODIFY_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// returns the session the server bound us to, empty before the first call
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Client) IdeaState(ctx context.Context) (*IdeaState, error) {
	var out IdeaState
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/ideas", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) SubmitTopic(ctx context.Context, topic string) (*IdeaState, error) {
	var out IdeaState
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/ideas/topic", map[string]string{"topic": topic}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) SubmitDetails(ctx context.Context, answers Answers) (*IdeaState, error) {
	var out IdeaState
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/ideas/details", answers, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) GenerateIdea(ctx context.Context) (*IdeaState, error) {
	var out IdeaState
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/ideas/generate", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ResetIdeas(ctx context.Context) (*IdeaState, error) {
	var out IdeaState
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/ideas/reset", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) Validate(ctx context.Context, sub CodeSubmission) (*Validation, error) {
	var out Validation
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/mentor/validate", sub, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) RunAction(ctx context.Context, action string, sub CodeSubmission) (*ActionResult, error) {
	var out ActionResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/mentor/"+action, sub, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// fetches a previously shown result as an attachment, returning its bytes
// and the server-chosen filename
func (c *Client) Download(ctx context.Context, action, result string) ([]byte, string, error) {
	resp, body, err := c.do(ctx, http.MethodPost, "/api/v1/mentor/"+action+"/download", CodeSubmission{Result: &result})
	if err != nil {
		return nil, "", err
	}

	filename := action + ".txt"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		filename = params["filename"]
	}

	return body, filename, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	_, body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var reader io.Reader

	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		reader = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if sid := c.SessionID(); sid != "" {
		req.Header.Set(sessionHeader, sid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if sid := resp.Header.Get(sessionHeader); sid != "" {
		c.mu.Lock()
		c.sessionID = sid
		c.mu.Unlock()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	// handle error responses
	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, nil, &APIError{StatusCode: resp.StatusCode, Code: errResp.Error, Message: errResp.Message}
		}

		return nil, nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return resp, body, nil
}

// REST API request/response types

type Question struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

type Answers struct {
	Problem  string `json:"problem"`
	Impact   string `json:"impact"`
	Skills   string `json:"skills"`
	Platform string `json:"platform"`
}

type Idea struct {
	Title   string `json:"title"`
	Text    string `json:"text"`
	Failed  bool   `json:"failed"`
	Failure string `json:"failure,omitempty"`
}

type IdeaState struct {
	SessionID string     `json:"session_id"`
	Step      int        `json:"step"`
	StepName  string     `json:"step_name"`
	Topic     string     `json:"topic,omitempty"`
	Questions []Question `json:"questions,omitempty"`
	Idea      *Idea      `json:"idea,omitempty"`
}

type Upload struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type CodeSubmission struct {
	Code   string  `json:"code,omitempty"`
	Upload *Upload `json:"upload,omitempty"`
	Result *string `json:"result,omitempty"`
}

type Validation struct {
	Enabled  bool   `json:"enabled"`
	Source   string `json:"source,omitempty"`
	Filename string `json:"filename,omitempty"`
	Lines    int    `json:"lines"`
	Words    int    `json:"words"`
	Message  string `json:"message"`
}

type ActionResult struct {
	Action       string `json:"action"`
	Title        string `json:"title"`
	Text         string `json:"text"`
	Model        string `json:"model,omitempty"`
	Failed       bool   `json:"failed"`
	Failure      string `json:"failure,omitempty"`
	Filename     string `json:"filename"`
	DownloadHint string `json:"download_hint"`
	Source       string `json:"source"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// an error body returned by the server; Message is meant for the user
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}
