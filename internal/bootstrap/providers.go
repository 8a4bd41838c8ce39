package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"kawase-service/internal/application"
	"kawase-service/internal/config"
	"kawase-service/internal/infrastructure/httpx"
	"kawase-service/internal/infrastructure/llm"
	"kawase-service/internal/infrastructure/logx"
	"kawase-service/internal/infrastructure/memory"
	"kawase-service/internal/infrastructure/pg"
	"kawase-service/internal/infrastructure/provider"
	redisstore "kawase-service/internal/infrastructure/redis"

	infraconfig "kawase-service/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrMissingDBURL   = errors.New("DATABASE_URL is required for STORAGE=pg")
	ErrMissingLLMBase = errors.New("LLM_BASE_URL is required for LLM_PROVIDER=completion")
)

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

// ProvideHTTPClient builds the shared outbound client used by the rate API
// and the completion endpoint.
func ProvideHTTPClient(cfg config.Config, token string) *httpx.Client {
	retries := cfg.HTTPMaxRetries
	if retries < 0 {
		retries = 0
	}
	return &httpx.Client{
		HTTP:       &http.Client{Timeout: cfg.RequestTimeout},
		Token:      token,
		MaxRetries: uint64(retries),
	}
}

func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	dbURL := cfg.DatabaseURL
	if dbURL == "" {
		return nil, func() {}, ErrMissingDBURL
	}
	db, err := pg.Connect(ctx, dbURL)
	if err != nil {
		return nil, func() {}, err
	}
	if err := pg.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, func() {}, err
	}
	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return db, cleanup, nil
}

// ProvideQuoteRepo returns the quote archive selected by STORAGE along with
// its readiness probe.
func ProvideQuoteRepo(ctx context.Context, log *zap.Logger, cfg config.Config) (application.QuoteRepo, func(context.Context) error, func(), error) {
	switch cfg.Storage {
	case "pg":
		db, cleanup, err := ProvideDB(ctx, log, cfg)
		if err != nil {
			return nil, nil, func() {}, err
		}
		return pg.NewQuoteRepo(db), db.Ping, cleanup, nil
	case "", "memory":
		return memory.NewQuoteRepo(infraconfig.DefaultQuoteArchiveCap), nil, func() {}, nil
	default:
		return nil, nil, func() {}, fmt.Errorf("unsupported STORAGE=%q", cfg.Storage)
	}
}

func ProvideRedisClient(cfg config.Config) (*redis.Client, func()) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return client, func() { _ = client.Close() }
}

// ProvideSessionStore returns the session store selected by SESSION_BACKEND
// along with its readiness probe.
func ProvideSessionStore(cfg config.Config) (application.SessionStore, func(context.Context) error, func(), error) {
	switch cfg.SessionBackend {
	case "redis":
		client, cleanup := ProvideRedisClient(cfg)
		ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return redisstore.New(client, cfg.SessionTTL), ping, cleanup, nil
	case "", "memory":
		return memory.NewSessionStore(), nil, func() {}, nil
	default:
		return nil, nil, func() {}, fmt.Errorf("unsupported SESSION_BACKEND=%q", cfg.SessionBackend)
	}
}

func ProvideRateProvider(cfg config.Config) (application.RateProvider, error) {
	switch cfg.RateProvider {
	case "frankfurter":
		return &provider.FrankfurterProvider{
			BaseURL: cfg.RateAPIBase,
			Client:  ProvideHTTPClient(cfg, ""),
		}, nil
	case "fake":
		return provider.NewFake(infraconfig.DefaultFakeRate), nil
	default:
		return nil, fmt.Errorf("unsupported RATE_PROVIDER=%q", cfg.RateProvider)
	}
}

// ProvidePredictionClient builds the single backend named by LLM_PROVIDER.
// LLM_API_KEY is that backend's credential. LLM_BASE_URL is the completion
// endpoint, or an optional override for ark; gemini ignores it.
func ProvidePredictionClient(ctx context.Context, cfg config.Config) (application.PredictionClient, error) {
	switch cfg.LLMProvider {
	case "gemini":
		return llm.NewGeminiClient(ctx, cfg.LLMAPIKey, cfg.LLMModel, &http.Client{Timeout: cfg.RequestTimeout})
	case "completion":
		if cfg.LLMBaseURL == "" {
			return nil, ErrMissingLLMBase
		}
		return &llm.CompletionClient{
			Endpoint:  cfg.LLMBaseURL,
			Model:     cfg.LLMModel,
			MaxTokens: cfg.LLMMaxTokens,
			Client:    ProvideHTTPClient(cfg, cfg.LLMAPIKey),
		}, nil
	case "ark":
		return llm.NewArkClient(ctx, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL, cfg.LLMMaxTokens)
	case "", "fake":
		return llm.NewFake(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER=%q", cfg.LLMProvider)
	}
}

func ProvideKawaseService(log *zap.Logger, cfg config.Config, sessions application.SessionStore, rates application.RateProvider, predictor application.PredictionClient, quotes application.QuoteRepo) *application.KawaseService {
	return application.NewKawaseService(sessions, rates, predictor, quotes,
		application.WithLogger(log),
		application.WithRefreshOnPairChange(cfg.RefreshOnPairChange),
	)
}
