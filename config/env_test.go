package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("POSTGRES_URI", "postgres://app@localhost/careerly")
	t.Setenv("POSTGRES_SERVICE_URI", "")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://careerly.app ,")

	e := LoadEnv()

	assert.Equal(t, "8080", e.Port)
	assert.Equal(t, "gemini", e.LLMProvider)
	assert.Equal(t, "gem-key", e.LLMAPIKey)
	assert.Equal(t, e.PostgresURI, e.PostgresServiceURI)
	assert.Equal(t, "https://proj.supabase.co", e.SupabaseURL)
	assert.Equal(t, []string{"http://localhost:3000", "https://careerly.app"}, e.CORSOrigins)
}

func TestLoadEnvOpenAIKeyFallback(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	e := LoadEnv()

	assert.Equal(t, "openai", e.LLMProvider)
	assert.Equal(t, "sk-test", e.LLMAPIKey)
}

func TestLoadEnvRedisPrecedence(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_URI", "redis://cache:6379/0")
	t.Setenv("REDIS_URL", "redis://other:6379/0")

	assert.Equal(t, "redis://cache:6379/0", LoadEnv().RedisURL)
}
