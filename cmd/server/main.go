package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parley/internal/dialogue/backend"
	"parley/internal/dialogue/handler"
	"parley/internal/platform/config"
	"parley/internal/platform/httpserver"
	"parley/internal/platform/logger"
	"parley/internal/platform/metrics"
	"parley/pkg/platform/httputil"
)

// main wires config, the dialogue store and its decorators, and the HTTP
// router, and keeps the server lifecycle small.
func main() {
	cfg := config.FromEnv()
	log, err := logger.New(cfg.Log, os.Stdout)
	if err != nil {
		slog.Error("invalid log config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)
	store, closer, err := backend.New(ctx, cfg, log, m)
	if err != nil {
		log.Error("failed to initialise dialogue storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("failed to close dialogue storage", "error", err)
		}
	}()

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthHandler(closer))
	handler.New(store, log, m).Register(r)

	srv := httpserver.New(cfg.Server.Addr, r)
	log.Info("starting parley", "addr", cfg.Server.Addr, "backend", cfg.Storage.Backend)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

type healthChecker interface {
	Health(ctx context.Context) error
}

// healthHandler reports backend health when the backend can check it
// (currently Redis); other backends are healthy once opened.
func healthHandler(backendResource any) http.HandlerFunc {
	checker, _ := backendResource.(healthChecker)
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.Health(r.Context()); err != nil {
				httputil.WriteError(w, httputil.StatusFor(err), "storage unavailable")
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
