package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/linemk/medicines/internal/app"
	"github.com/linemk/medicines/internal/config"
	"github.com/linemk/medicines/internal/controller"
	"github.com/linemk/medicines/internal/lib/logger"
	"github.com/linemk/medicines/internal/view/terminal"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// логи в stderr, stdout занят страницей
	log := logger.SetupLogger(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	page := terminal.NewPage(os.Stdin, os.Stdout)

	application, err := app.NewApp(log, cfg, controller.View{
		Status:   page.Status,
		Table:    page.Table,
		Prompter: page.Console,
	})
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	log.Debug("starting client", slog.String("env", cfg.Env), slog.String("api", application.Client.BaseURL()))

	application.Bootstrap(ctx, app.Page{
		CreateForm: page.CreateForm,
		UpdateForm: page.UpdateForm,
		Refresh:    page.Refresh,
		Rows:       page.Table,
		Search:     page,
	})

	if err := page.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("terminal loop stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
