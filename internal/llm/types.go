package llm

import "context"

// represents different LLM providers
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// generates text from a system prompt and a list of role-tagged messages
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
	Model() string
}

// represents a single conversation turn
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // message content
}

// contains all inputs for a single completion call
type TextGenerationRequest struct {
	Model        string // optional, falls back to the adapter's configured model
	SystemPrompt string
	Messages     []Message
	MaxTokens    int // optional, falls back to the adapter's configured limit
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type TextGenerationResponse struct {
	Text  string
	Model string
	Usage Usage
}

// holds configuration for adapter selection
type Config struct {
	Provider Provider

	OpenAIAPIKey  string
	OpenAIBaseURL string // e.g. "https://api.aimlapi.com" or "https://api.openai.com/v1"

	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModel   string // e.g. "claude-3-5-sonnet-20241022"
}
