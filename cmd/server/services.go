package main

import (
	"fmt"

	"github.com/umairazmat/Ai-Codify/internal/assist"
	"github.com/umairazmat/Ai-Codify/internal/config"
	"github.com/umairazmat/Ai-Codify/internal/llm"
	"github.com/umairazmat/Ai-Codify/internal/logger"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config) (*Services, error) {
	generator, err := llm.NewGenerator(&llm.Config{
		Provider:         llm.Provider(cfg.LLMProvider),
		OpenAIAPIKey:     cfg.OpenAIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		AnthropicAPIKey:  cfg.AnthropicKey,
		AnthropicBaseURL: cfg.AnthropicBaseURL,
		AnthropicModel:   cfg.AnthropicModel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	var opts []assist.Option

	// the per-action model names are OpenAI identifiers
	if llm.Provider(cfg.LLMProvider) == llm.ProviderAnthropic {
		opts = append(opts, assist.WithModel(generator.Model()))
	}

	if !hasKey(cfg) {
		logger.Warn("no API key configured, every model call will return an apology", "provider", cfg.LLMProvider)
	}

	return &Services{
		Generator: generator,
		Assistant: assist.New(generator, opts...),
	}, nil
}

func hasKey(cfg *config.Config) bool {
	if llm.Provider(cfg.LLMProvider) == llm.ProviderAnthropic {
		return cfg.AnthropicKey != ""
	}

	return cfg.OpenAIKey != ""
}
