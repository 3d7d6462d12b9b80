package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/installments-admin/handler"
	"github.com/dmitrymomot/installments-admin/modules/catalog"
	"github.com/dmitrymomot/installments-admin/modules/checkout"
	"github.com/dmitrymomot/installments-admin/pkg/basicauth"
	"github.com/dmitrymomot/installments-admin/pkg/billing"
	"github.com/dmitrymomot/installments-admin/pkg/config"
	"github.com/dmitrymomot/installments-admin/pkg/environment"
	"github.com/dmitrymomot/installments-admin/pkg/httpserver"
	"github.com/dmitrymomot/installments-admin/pkg/logger"
	"github.com/dmitrymomot/installments-admin/pkg/requestid"
)

const serviceName = "installments-admin"

type appConfig struct {
	Env    environment.Environment `env:"APP_ENV" envDefault:"development"`
	AppURL string                  `env:"APP_URL" envDefault:"http://localhost:8080"`

	// LogLevel and LogFormat override the per-environment logger defaults
	// when set.
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		appCfg     appConfig
		httpCfg    httpserver.Config
		stripeCfg  billing.StripeConfig
		authCfg    basicauth.Config
		catalogCfg catalog.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&stripeCfg)
	config.MustLoad(&authCfg)
	config.MustLoad(&catalogCfg)

	log := newLogger(appCfg)
	logger.SetAsDefault(log)

	// A bad or missing API key fails startup, not the first request.
	provider, err := billing.NewStripeProvider(stripeCfg)
	if err != nil {
		log.Error("billing provider initialization failed", logger.Error(err))
		os.Exit(1)
	}

	checkoutSvc := checkout.NewService(provider, appCfg.AppURL, checkout.WithLogger(log))
	catalogSvc := catalog.NewService(provider, catalogCfg, catalog.WithLogger(log))
	errHandler := handler.NewErrorHandler(log)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(appCfg.Env))
	// Webhook deliveries authenticate via signature, health probes not at
	// all; everything else is operator-only.
	r.Use(basicauth.Middleware(authCfg, appCfg.Env, "/webhooks", "/health"))

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log))
	catalog.Register(r, catalogSvc, errHandler)
	checkout.Register(r, checkoutSvc, errHandler)

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg appConfig) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(string(cfg.Env), serviceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	}
	if cfg.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
			opts = append(opts, logger.WithLevel(lvl))
		}
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	return logger.New(opts...)
}
