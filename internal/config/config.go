package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port               string
	CORSAllowedOrigins []string
	// Rate provider
	RateProvider   string
	RateAPIBase    string
	RequestTimeout time.Duration
	HTTPMaxRetries int
	// Session
	RefreshOnPairChange bool
	SessionBackend      string
	SessionTTL          time.Duration
	// Redis (sessions)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Quote archive
	Storage     string
	DatabaseURL string
	// Prediction. LLMProvider picks one backend at deploy time; the key and
	// base URL belong to that backend. LLM_API_KEY falls back to GEMINI_API_KEY.
	LLMProvider  string
	LLMAPIKey    string
	LLMModel     string
	LLMBaseURL   string
	LLMMaxTokens int
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:                 getEnv("ENV", "local"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Port:                getEnv("PORT", "8080"),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RateProvider:        getEnv("RATE_PROVIDER", "frankfurter"),
		RateAPIBase:         getEnv("RATE_API_BASE", "https://api.frankfurter.app"),
		RequestTimeout:      time.Duration(atoiDef(getEnv("REQUEST_TIMEOUT_MS", "10000"), 10000)) * time.Millisecond,
		HTTPMaxRetries:      atoiDef(getEnv("HTTP_MAX_RETRIES", "0"), 0),
		RefreshOnPairChange: boolDef(getEnv("REFRESH_ON_PAIR_CHANGE", "false"), false),
		SessionBackend:      getEnv("SESSION_BACKEND", "memory"),
		SessionTTL:          time.Duration(atoiDef(getEnv("SESSION_TTL_MS", "86400000"), 86400000)) * time.Millisecond,
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             atoiDef(getEnv("REDIS_DB", "0"), 0),
		Storage:             getEnv("STORAGE", "memory"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		LLMProvider:         getEnv("LLM_PROVIDER", "fake"),
		LLMAPIKey:           getEnv("LLM_API_KEY", getEnv("GEMINI_API_KEY", "")),
		LLMModel:            getEnv("LLM_MODEL", "gemini-1.5-flash"),
		LLMBaseURL:          getEnv("LLM_BASE_URL", ""),
		LLMMaxTokens:        atoiDef(getEnv("LLM_MAX_TOKENS", "200"), 200),
	}
}
