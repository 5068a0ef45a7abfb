package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linemk/medicines/internal/app"
	"github.com/linemk/medicines/internal/config"
	"github.com/linemk/medicines/internal/lib/logger"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env, os.Stdout)
	log.Info("starting sandbox", slog.String("env", cfg.Env))

	// хранилище выбирается в конфиге: memory, sqlite или postgres
	sandbox, err := app.NewSandbox(log, cfg)
	if err != nil {
		log.Error("failed to initialize sandbox", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize sandbox"))
	}
	defer sandbox.Close()

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      sandbox.Router(),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
