package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"VolSense/pkg/config"
	xhttp "VolSense/pkg/http"
	applogger "VolSense/pkg/logger"
	"VolSense/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	pool        *queue.Pool
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	serverOpts  []xhttp.ServerOption
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, lgr *applogger.Logger, pool *queue.Pool, handler xhttp.Handler, opts ...xhttp.ServerOption) *App {
	return &App{
		cfg:         cfg,
		logger:      lgr,
		pool:        pool,
		httpHandler: handler,
		serverOpts:  opts,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	opts := append([]xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}, a.serverOpts...)
	if !a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(""))
	} else if a.cfg.Metrics.Path != "" {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	}

	a.httpServer = xhttp.NewServer(a.httpHandler, opts...)
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("service started", applogger.Int("port", a.cfg.Server.Port), applogger.String("env", a.cfg.Environment))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.pool != nil {
		a.pool.Close()
	}
	a.logger.RemoveCollector()

	a.logger.Info("shutdown complete")
	return nil
}
