package llm

import (
	"fmt"
	"net/http"
	"time"
)

// shared HTTP client for vendor API calls
var defaultHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// creates the generator for the configured provider
func NewGenerator(config *Config) (TextGenerator, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch config.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIGenerator(OpenAIConfig{
			APIKey:  config.OpenAIAPIKey,
			BaseURL: config.OpenAIBaseURL,
		}), nil
	case ProviderAnthropic:
		return NewAnthropicGenerator(AnthropicConfig{
			APIKey:  config.AnthropicAPIKey,
			BaseURL: config.AnthropicBaseURL,
			Model:   config.AnthropicModel,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
