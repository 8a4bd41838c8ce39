package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"kawase-service/internal/config"
	httpserver "kawase-service/internal/infrastructure/http"

	infraconfig "kawase-service/internal/infrastructure/config"
)

// InitAPI wires the HTTP handler from cfg. The returned cleanup releases
// every opened connection in reverse order.
func InitAPI(ctx context.Context, cfg config.Config) (http.Handler, func(), error) {
	log := ProvideLogger()
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(err error) (http.Handler, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	sessions, sessionPing, closeSessions, err := ProvideSessionStore(cfg)
	if err != nil {
		return fail(fmt.Errorf("session store: %w", err))
	}
	cleanups = append(cleanups, closeSessions)

	quotes, quotePing, closeQuotes, err := ProvideQuoteRepo(ctx, log, cfg)
	if err != nil {
		return fail(fmt.Errorf("quote repo: %w", err))
	}
	cleanups = append(cleanups, closeQuotes)

	rates, err := ProvideRateProvider(cfg)
	if err != nil {
		return fail(err)
	}
	predictor, err := ProvidePredictionClient(ctx, cfg)
	if err != nil {
		return fail(fmt.Errorf("prediction client: %w", err))
	}

	svc := ProvideKawaseService(log, cfg, sessions, rates, predictor, quotes)
	srv := httpserver.NewServer(svc)
	srv.SetReadyCheck(readyCheck(sessionPing, quotePing))

	h := httpserver.NewRouter(srv, httpserver.RouterOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		CookieSecure:   cfg.Env == "production",
	})
	return h, cleanup, nil
}

func readyCheck(probes ...func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, infraconfig.DefaultPGPingInterval*4)
		defer cancel()
		var errs []error
		for _, p := range probes {
			if p == nil {
				continue
			}
			if err := p(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
