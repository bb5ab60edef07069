package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kaset_news/internal/aggregator"
	"kaset_news/internal/config"
	"kaset_news/internal/fetcher"
	"kaset_news/internal/logger"
	"kaset_news/internal/metrics"
	"kaset_news/internal/parser"
	"kaset_news/internal/server"
	"kaset_news/internal/view"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Config load error: %v", err)
	}
	logger.Init(cfg.LogLevel)
	defer logger.Log.Info("Application stopped")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	feeds := fetcher.New(
		cfg.ProxyURL,
		fetcher.WithClient(fetcher.NewClient(cfg.FetchTimeout())),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithConcurrency(cfg.MaxConcurrency),
	)
	agg := aggregator.New(
		feeds,
		parser.New(),
		cfg.Feeds,
		aggregator.WithMetrics(metrics.New(reg)),
		aggregator.WithTimeout(cfg.FetchTimeout()),
	)

	srv, err := server.NewServer(
		agg,
		view.NewPresenter(cfg.Locale),
		server.Limits{Preview: cfg.PreviewLimit, Page: cfg.PageLimit, Max: cfg.MaxLimit},
		reg,
	)
	if err != nil {
		logger.Log.Fatalf("Server init error: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.WithField("feeds", len(cfg.Feeds)).Infof("Starting HTTP server on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()

	logger.Log.Info("Shutting down...")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		logger.Log.Errorf("Forced shutdown: %v", err)
	}
}
