package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kawase-service/internal/bootstrap"
	"kawase-service/internal/config"
	infraconfig "kawase-service/internal/infrastructure/config"
	"kawase-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	defer func() { _ = logger.Sync() }()
	cfg := config.Load()
	addr := ":" + cfg.Port

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler, cleanup, err := bootstrap.InitAPI(ctx, cfg)
	if err != nil {
		logger.Fatal("bootstrap api", zap.Error(err))
	}
	defer cleanup()

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  infraconfig.DefaultReadTimeout,
		WriteTimeout: infraconfig.DefaultWriteTimeout,
	}

	go func() {
		logger.Info("server started",
			zap.String("addr", addr),
			zap.String("rate_provider", cfg.RateProvider),
			zap.String("llm_provider", cfg.LLMProvider),
			zap.String("session_backend", cfg.SessionBackend),
			zap.String("storage", cfg.Storage),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
