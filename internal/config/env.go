package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "8080"
	defaultSessionTTL     = 24 * time.Hour
	defaultAnthropicModel = "claude-3-5-sonnet-20241022"
	defaultAllowedOrigins = "http://localhost:3000,http://localhost:8080"
)

// loads configuration from environment variables.
// API keys are optional; a missing key surfaces as an auth failure on the
// first model call.
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		provider = "openai"
	}

	if provider != "openai" && provider != "anthropic" {
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q (expected openai or anthropic)", provider)
	}

	sessionTTL := defaultSessionTTL
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}

		if ttl <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", raw)
		}

		sessionTTL = ttl
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		if environment == "production" {
			return nil, fmt.Errorf("SESSION_SECRET environment variable is required in production")
		}

		// development only: cookies will not survive a restart
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}

		sessionSecret = secret
	}

	anthropicModel := os.Getenv("ANTHROPIC_MODEL")
	if anthropicModel == "" {
		anthropicModel = defaultAnthropicModel
	}

	allowedOrigins := splitOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(allowedOrigins) == 0 {
		allowedOrigins = splitOrigins(defaultAllowedOrigins)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	return &Config{
		LLMProvider:      provider,
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_API_BASE"),
		AnthropicKey:     os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicBaseURL: os.Getenv("ANTHROPIC_API_BASE"),
		AnthropicModel:   anthropicModel,
		SessionSecret:    sessionSecret,
		SessionTTL:       sessionTTL,
		AllowedOrigins:   allowedOrigins,
		Port:             port,
		Environment:      environment,
	}, nil
}

// parses a comma-separated origin list, dropping blanks
func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}

	return origins
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}

	return hex.EncodeToString(b), nil
}
