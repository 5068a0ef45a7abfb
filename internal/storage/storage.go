package storage

import (
	"context"
	"errors"

	"github.com/linemk/medicines/internal/domain/models"
)

var (
	ErrMedicineNotFound = errors.New("medicine not found")
	ErrMedicineExists   = errors.New("medicine already exists")
)

// MedicineStorage описывает методы для работы с таблицей лекарств.
// Порядок List - порядок добавления.
type MedicineStorage interface {
	List(ctx context.Context) ([]models.Medicine, error)
	GetByName(ctx context.Context, name string) (*models.Medicine, error)
	Create(ctx context.Context, med models.Medicine) error
	UpdatePrice(ctx context.Context, name string, price float64) error
	Delete(ctx context.Context, name string) error
}
