package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/linemk/medicines/internal/apiclient"
	"github.com/linemk/medicines/internal/config"
	"github.com/linemk/medicines/internal/controller"
	"github.com/linemk/medicines/internal/view"
)

// App клиент: конфиг, логгер, HTTP клиент и контроллер
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Client     *apiclient.Client
	Controller *controller.Controller
}

// Page элементы страницы, к которым привязываются обработчики. Любой может быть nil
type Page struct {
	CreateForm view.Form
	UpdateForm view.Form
	Refresh    view.Button
	Rows       view.ActionSource
	Search     view.Search
}

// NewApp создаёт новый экземпляр App. Базовый URL фиксируется здесь
func NewApp(log *slog.Logger, cfg *config.Config, v controller.View) (*App, error) {
	opts := []apiclient.Option{apiclient.WithLogger(log)}
	if cfg.API.Timeout > 0 {
		opts = append(opts, apiclient.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}))
	}

	client, err := apiclient.New(cfg.API.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	app := &App{
		Config:     cfg,
		Logger:     log,
		Client:     client,
		Controller: controller.New(log, client, v),
	}

	return app, nil
}

// Bootstrap привязывает обработчики к элементам страницы и один раз загружает список
func (a *App) Bootstrap(ctx context.Context, page Page) {
	ctrl := a.Controller

	if page.CreateForm != nil {
		form := page.CreateForm
		form.OnSubmit(func(ctx context.Context) { ctrl.Create(ctx, form) })
	}
	if page.UpdateForm != nil {
		form := page.UpdateForm
		form.OnSubmit(func(ctx context.Context) { ctrl.Update(ctx, form) })
	}
	if page.Refresh != nil {
		page.Refresh.OnClick(ctrl.LoadMedicines)
	}
	if page.Rows != nil {
		page.Rows.OnAction(ctrl.Dispatch)
	}
	if page.Search != nil {
		page.Search.OnSearch(ctrl.Show)
	}

	ctrl.LoadMedicines(ctx)
}
