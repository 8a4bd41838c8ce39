package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "RATE_API_BASE", "HTTP_MAX_RETRIES", "REFRESH_ON_PAIR_CHANGE", "SESSION_BACKEND", "LLM_PROVIDER", "CORS_ALLOWED_ORIGINS", "LLM_API_KEY", "GEMINI_API_KEY", "LLM_BASE_URL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "https://api.frankfurter.app", cfg.RateAPIBase)
	require.Equal(t, 0, cfg.HTTPMaxRetries)
	require.False(t, cfg.RefreshOnPairChange)
	require.Equal(t, "memory", cfg.SessionBackend)
	require.Equal(t, "fake", cfg.LLMProvider)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	require.Empty(t, cfg.LLMAPIKey)
	require.Empty(t, cfg.LLMBaseURL)
}

func TestLoad_LLMAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "legacy")
	require.Equal(t, "legacy", Load().LLMAPIKey)

	t.Setenv("LLM_API_KEY", "primary")
	require.Equal(t, "primary", Load().LLMAPIKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_MS", "2500")
	t.Setenv("REFRESH_ON_PAIR_CHANGE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_DB", "not-a-number")
	cfg := Load()
	require.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout)
	require.True(t, cfg.RefreshOnPairChange)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 0, cfg.RedisDB)
}
