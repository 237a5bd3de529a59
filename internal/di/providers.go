package di

import (
	"fmt"
	"time"

	"VolSense/internal/handler/api"
	"VolSense/internal/service/ratelimit"
	"VolSense/internal/services/garch"
	"VolSense/internal/usecase"
	"VolSense/pkg/config"
	xhttp "VolSense/pkg/http"
	applogger "VolSense/pkg/logger"
	"VolSense/pkg/metrics"
	"VolSense/pkg/queue"
	"VolSense/pkg/server"
)

// ServerOptions is a named slice so wire can provide it as one value.
type ServerOptions []xhttp.ServerOption

// ProvideLogger creates the application logger with an aggregating
// collector for repeated errors.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 100,
	})
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvidePool creates the worker pool that runs CPU-bound estimations.
func ProvidePool(cfg *config.Config, lgr *applogger.Logger) *queue.Pool {
	return queue.NewPool(lgr, &queue.Config{
		Workers:   cfg.Engine.Workers,
		QueueSize: cfg.Engine.QueueSize,
	})
}

// ProvideEstimateOptions maps engine config onto the optimizer budget.
func ProvideEstimateOptions(cfg *config.Config) garch.EstimateOptions {
	return garch.EstimateOptions{
		MaxIterations: cfg.Engine.MaxIterations,
		Tolerance:     cfg.Engine.Tolerance,
		Budget:        cfg.Engine.FitTimeout,
	}
}

// ProvideAnalyzer creates the volatility analyzer use case.
func ProvideAnalyzer(lgr *applogger.Logger, pool *queue.Pool, rec *metrics.Recorder, opts garch.EstimateOptions) *usecase.VolatilityAnalyzer {
	return usecase.NewVolatilityAnalyzer(lgr, pool, rec, opts)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(lgr *applogger.Logger, analyzer *usecase.VolatilityAnalyzer) *api.GarchEchoHandler {
	return api.NewGarchEchoHandler(lgr, analyzer)
}

// ProvideServerOptions assembles optional server middleware from config.
func ProvideServerOptions(cfg *config.Config) ServerOptions {
	var opts ServerOptions
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.New()
		opts = append(opts, xhttp.WithMiddleware(
			ratelimit.Middleware(limiter, cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec),
		))
	}
	return opts
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	lgr *applogger.Logger,
	pool *queue.Pool,
	handler *api.GarchEchoHandler,
	opts ServerOptions,
) *server.App {
	return server.New(cfg, lgr, pool, handler, opts...)
}
