package config

import "time"

type Config struct {
	// LLM provider selection: "openai" (default) or "anthropic"
	LLMProvider string

	OpenAIKey     string
	OpenAIBaseURL string

	AnthropicKey     string
	AnthropicBaseURL string
	AnthropicModel   string

	SessionSecret string
	SessionTTL    time.Duration

	AllowedOrigins []string
	Port           string
	Environment    string
}

// reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
