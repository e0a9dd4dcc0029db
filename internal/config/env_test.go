package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ENVIRONMENT", "LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_API_BASE",
		"ANTHROPIC_API_KEY", "ANTHROPIC_API_BASE", "ANTHROPIC_MODEL",
		"SESSION_SECRET", "SESSION_TTL", "CORS_ALLOWED_ORIGINS", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadEnvironmentVariablesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, defaultAnthropicModel, cfg.AnthropicModel)
	assert.NotEmpty(t, cfg.SessionSecret, "development should get a generated secret")
	assert.Empty(t, cfg.OpenAIKey, "missing keys are not validated up front")
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.AllowedOrigins)
}

func TestLoadEnvironmentVariablesOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("OPENAI_API_BASE", "https://api.aimlapi.com")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLMProvider)
	assert.Equal(t, "https://api.aimlapi.com", cfg.OpenAIBaseURL)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
}

func TestLoadEnvironmentVariablesRejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "mistral")

	_, err := LoadEnvironmentVariables()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM_PROVIDER")
}

func TestLoadEnvironmentVariablesProductionNeedsSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	_, err := LoadEnvironmentVariables()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadEnvironmentVariablesBadTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "-5m")

	_, err := LoadEnvironmentVariables()
	assert.Error(t, err)
}
