package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/medicines/internal/domain/models"
	"github.com/linemk/medicines/internal/storage"
)

// MedicineService бизнес-логика sandbox поверх хранилища
type MedicineService interface {
	List(ctx context.Context) ([]models.Medicine, error)
	Get(ctx context.Context, name string) (*models.Medicine, error)
	Create(ctx context.Context, name string, price float64) error
	Update(ctx context.Context, name string, price float64) error
	Delete(ctx context.Context, name string) error
}

type medicineService struct {
	log  *slog.Logger
	repo storage.MedicineStorage
}

func NewMedicineService(log *slog.Logger, repo storage.MedicineStorage) MedicineService {
	return &medicineService{
		log:  log,
		repo: repo,
	}
}

func (s *medicineService) List(ctx context.Context) ([]models.Medicine, error) {
	const op = "service.MedicineService.List"

	medicines, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list medicines", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return medicines, nil
}

func (s *medicineService) Get(ctx context.Context, name string) (*models.Medicine, error) {
	const op = "service.MedicineService.Get"

	med, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return med, nil
}

// Create добавляет лекарство; имя уникально
func (s *medicineService) Create(ctx context.Context, name string, price float64) error {
	const op = "service.MedicineService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("name", name))

	if err := s.repo.Create(ctx, models.Medicine{Name: name, Price: price}); err != nil {
		logger.Warn("failed to create medicine", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("medicine created", slog.Float64("price", price))
	return nil
}

// Update меняет цену существующего лекарства
func (s *medicineService) Update(ctx context.Context, name string, price float64) error {
	const op = "service.MedicineService.Update"
	logger := s.log.With(slog.String("op", op), slog.String("name", name))

	if err := s.repo.UpdatePrice(ctx, name, price); err != nil {
		logger.Warn("failed to update medicine", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("medicine updated", slog.Float64("price", price))
	return nil
}

func (s *medicineService) Delete(ctx context.Context, name string) error {
	const op = "service.MedicineService.Delete"
	logger := s.log.With(slog.String("op", op), slog.String("name", name))

	if err := s.repo.Delete(ctx, name); err != nil {
		logger.Warn("failed to delete medicine", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("medicine deleted")
	return nil
}
