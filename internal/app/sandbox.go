package app

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/linemk/medicines/internal/app/handlers"
	"github.com/linemk/medicines/internal/config"
	"github.com/linemk/medicines/internal/lib/logger/handlers/urllog"
	"github.com/linemk/medicines/internal/service"
	"github.com/linemk/medicines/internal/storage"
)

// Sandbox локальный бэкенд с тем же HTTP контрактом, что ждёт клиент
type Sandbox struct {
	Config  *config.Config
	Logger  *slog.Logger
	Service service.MedicineService

	closer io.Closer
}

// NewSandbox открывает хранилище, выбранное в cfg.Storage.Driver
func NewSandbox(log *slog.Logger, cfg *config.Config) (*Sandbox, error) {
	repo, closer, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	log.Info("storage opened", slog.String("driver", cfg.Storage.Driver))

	return NewSandboxWithStorage(log, cfg, repo, closer), nil
}

// NewSandboxWithStorage собирает sandbox поверх готового хранилища. closer может быть nil
func NewSandboxWithStorage(log *slog.Logger, cfg *config.Config, repo storage.MedicineStorage, closer io.Closer) *Sandbox {
	return &Sandbox{
		Config:  cfg,
		Logger:  log,
		Service: service.NewMedicineService(log, repo),
		closer:  closer,
	}
}

// Router настраивает middleware и эндпоинты.
// middleware.URLFormat не подключаем: он отрезает ".ext" у имён в пути.
func (s *Sandbox) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(s.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/medicines", handlers.ListHandler(s.Logger, s.Service))
	router.Get("/medicines/{name}", handlers.GetHandler(s.Logger, s.Service))
	router.Post("/create", handlers.CreateHandler(s.Logger, s.Service))
	router.Post("/update", handlers.UpdateHandler(s.Logger, s.Service))
	router.Delete("/delete", handlers.DeleteHandler(s.Logger, s.Service))

	return router
}

func (s *Sandbox) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func openStorage(cfg *config.Config) (storage.MedicineStorage, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory, "":
		return storage.NewMemoryRepository(), nil, nil
	case config.StorageSQLite:
		db, err := storage.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return storage.NewSQLiteRepository(db), db, nil
	case config.StoragePostgres:
		if cfg.Database.Password == "" {
			return nil, nil, fmt.Errorf("DB_PASSWORD environment variable is not set")
		}

		db, err := sql.Open("postgres", PostgresDSN(cfg.Database))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return storage.NewPostgresRepository(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// PostgresDSN собирает строку подключения (DSN) из отдельных параметров
func PostgresDSN(db config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
	)
}
