package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultAnthropicBaseURL   = "https://api.anthropic.com"
	anthropicVersion          = "2023-06-01"
	defaultAnthropicModel     = "claude-3-5-sonnet-20241022"
	defaultAnthropicMaxTokens = 1000
)

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

// the messages endpoint and some compatible proxies disagree on shape:
// content may be a list of blocks, a bare string, or missing in favour of
// a flat "completion"/"text" field
type messagesResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Role       string          `json:"role"`
	Model      string          `json:"model"`
	Content    json.RawMessage `json:"content"`
	Completion string          `json:"completion"`
	Text       string          `json:"text"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type AnthropicConfig struct {
	APIKey    string
	BaseURL   string
	Model     string // e.g., "claude-3-5-sonnet-20241022"
	MaxTokens int
}

type AnthropicGenerator struct {
	config     AnthropicConfig
	endpoint   string
	httpClient *http.Client
}

func NewAnthropicGenerator(config AnthropicConfig) *AnthropicGenerator {
	if config.Model == "" {
		config.Model = defaultAnthropicModel
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultAnthropicMaxTokens
	}

	base := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if base == "" {
		base = defaultAnthropicBaseURL
	}

	return &AnthropicGenerator{
		config:     config,
		endpoint:   strings.TrimSuffix(base, "/v1") + "/v1/messages",
		httpClient: defaultHTTPClient,
	}
}

func (g *AnthropicGenerator) Model() string {
	return g.config.Model
}

func (g *AnthropicGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	// the messages API takes the system prompt out of band
	messages := make([]Message, 0, len(req.Messages))
	messages = append(messages, req.Messages...)

	model := req.Model
	if model == "" {
		model = g.config.Model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	jsonData, err := json.Marshal(messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    req.SystemPrompt,
		Messages:  messages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", g.config.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return nil, &APIError{Provider: ProviderAnthropic, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var apiResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	text, err := apiResp.text()
	if err != nil {
		return nil, err
	}

	if text == "" {
		return nil, ErrEmptyResponse
	}

	respModel := apiResp.Model
	if respModel == "" {
		respModel = model
	}

	return &TextGenerationResponse{
		Text:  text,
		Model: respModel,
		Usage: Usage{
			InputTokens:  apiResp.Usage.InputTokens,
			OutputTokens: apiResp.Usage.OutputTokens,
		},
	}, nil
}

// flattens whichever response shape arrived into plain text
func (r *messagesResponse) text() (string, error) {
	raw := bytes.TrimSpace(r.Content)

	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		var flat string
		if err := json.Unmarshal(raw, &flat); err == nil {
			return flat, nil
		}

		var blocks []contentBlock
		if err := json.Unmarshal(raw, &blocks); err != nil {
			return "", fmt.Errorf("%w: unexpected content shape: %v", ErrMalformedResponse, err)
		}

		var b strings.Builder
		for _, block := range blocks {
			// tool_use and other non-text blocks carry nothing to show
			if block.Type == "" || block.Type == "text" {
				b.WriteString(block.Text)
			}
		}

		return b.String(), nil
	}

	if r.Completion != "" {
		return r.Completion, nil
	}

	return r.Text, nil
}
