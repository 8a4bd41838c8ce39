package logx

import (
	"context"
	"strings"
	"sync"

	"kawase-service/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once   sync.Once
	logger *zap.Logger
)

type ctxKey struct{}

// New builds a logger from cfg. An unknown LOG_LEVEL leaves the level at info.
func New(cfg config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.LogLevel != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(cfg.LogLevel)))
	}
	zapCfg.InitialFields = map[string]any{"service": "kawase", "env": cfg.Env}
	return zapCfg.Build(zap.AddCaller())
}

// L returns the package-level logger. It is built on first use, so the
// environment (including a .env file loaded by main) is read at that point.
func L() *zap.Logger {
	once.Do(func() {
		l, err := New(config.Load())
		if err != nil {
			panic(err)
		}
		logger = l
	})
	return logger
}

// WithContext stores a request scoped logger in ctx.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request scoped logger, or the base logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return L()
}
