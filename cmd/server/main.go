package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkframe/inkframe/backend-go/internal/api"
	"github.com/inkframe/inkframe/backend-go/internal/config"
	"github.com/inkframe/inkframe/backend-go/internal/engine"
	"github.com/inkframe/inkframe/backend-go/internal/session"
	"github.com/inkframe/inkframe/backend-go/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var st store.Store
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, documents are kept in memory")
		st = store.NewMemory()
	} else {
		pool, err := store.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			slog.Error("migrate database", "error", err)
			os.Exit(1)
		}
		st = pg
	}

	sessions := session.NewManager(cfg.JWTSecret, cfg.SessionIdleTimeout,
		engine.WithHistoryLimit(cfg.HistoryLimit),
		engine.WithLogger(slog.Default()),
	)
	if cfg.SessionIdleTimeout > 0 {
		go sessions.Run(ctx, max(cfg.SessionIdleTimeout/4, time.Second))
	}

	handler := api.NewHandler(sessions, st)
	r := api.NewRouter(handler, cfg.Origins())

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server", "open_sessions", sessions.Len())
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "history_limit", cfg.HistoryLimit)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
