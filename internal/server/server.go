// Package server assembles the controller, the HTTP routes and the
// background metrics loop into a runnable process.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/okian/squads/internal/adapters/http/api"
	"github.com/okian/squads/internal/adapters/http/site"
	"github.com/okian/squads/internal/adapters/http/swagger"
	"github.com/okian/squads/internal/adapters/ingest"
	service "github.com/okian/squads/internal/app"
	"github.com/okian/squads/internal/config"
	"github.com/okian/squads/pkg/logger"
	"github.com/okian/squads/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// NewService builds the controller from cfg.
func NewService(cfg *config.Config, log logger.Logger) *service.Service {
	return service.New(
		service.WithLogger(log),
		service.WithDefaultSort(cfg.DefaultSort),
		service.WithTeamNames(cfg.TeamNames),
	)
}

// Preload loads cfg.RosterPath into svc. An empty path is a no-op.
func Preload(ctx context.Context, svc *service.Service, cfg *config.Config) error {
	if cfg.RosterPath == "" {
		return nil
	}
	roster, err := ingest.LoadFile(ctx, cfg.RosterPath, ingest.WithDelimiter(cfg.Delimiter()))
	if err != nil {
		return fmt.Errorf("preload %s: %w", cfg.RosterPath, err)
	}
	return svc.LoadRoster(ctx, roster)
}

// NewHandler registers the front end, docs and business routes on a fresh mux.
func NewHandler(ctx context.Context, svc *service.Service, cfg *config.Config, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc,
		api.WithTeamSizeBounds(cfg.MinTeamSize, cfg.MaxTeamSize),
		api.WithMaxUploadBytes(cfg.MaxUploadBytes),
		api.WithDelimiter(cfg.Delimiter()),
		api.WithLogger(log.Named("api")),
	).Register(ctx, mux)
	return mux
}

// Run serves the API on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	svc := NewService(cfg, log.Named("service"))
	if err := Preload(ctx, svc, cfg); err != nil {
		return err
	}

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(ctx, svc, cfg, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater refreshes system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	updateSystemMetrics()
	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
