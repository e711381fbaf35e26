package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"golang.org/x/exp/slog"

	"querytrack/internal/app/server/api"
	"querytrack/internal/app/server/config"
	"querytrack/internal/domain/summary"
	"querytrack/internal/infrastructure/storage"
	"querytrack/internal/infrastructure/summarizer"
	"querytrack/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	log.Info("starting querytrack server", "env", cfg.Env, "driver", cfg.DB.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// без URL генерация описаний отключена, а не падает на каждом запросе
	var sum summary.Summarizer
	if cfg.Summarizer.URL != "" {
		sum = summarizer.New(cfg.Summarizer.URL, cfg.Summarizer.APIKey, cfg.Summarizer.Timeout, log)
	} else {
		log.Warn("SUMMARIZER_URL is not set, summaries are disabled")
	}

	server := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           api.New(store, cfg, sum, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", cfg.Server.RunAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	waitForShutdown(log, server)
}

func waitForShutdown(log *slog.Logger, server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
