package storage

import (
	"context"
	"sync"

	"github.com/linemk/medicines/internal/domain/models"
)

// memoryRepository хранилище в памяти для sandbox без БД
type memoryRepository struct {
	mu        sync.RWMutex
	medicines []models.Medicine
}

// NewMemoryRepository seed задаёт начальный список
func NewMemoryRepository(seed ...models.Medicine) MedicineStorage {
	r := &memoryRepository{}
	r.medicines = append(r.medicines, seed...)
	return r
}

func (r *memoryRepository) List(_ context.Context) ([]models.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Medicine, len(r.medicines))
	copy(out, r.medicines)
	return out, nil
}

func (r *memoryRepository) GetByName(_ context.Context, name string) (*models.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(name); i >= 0 {
		med := r.medicines[i]
		return &med, nil
	}
	return nil, ErrMedicineNotFound
}

func (r *memoryRepository) Create(_ context.Context, med models.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(med.Name) >= 0 {
		return ErrMedicineExists
	}
	r.medicines = append(r.medicines, med)
	return nil
}

func (r *memoryRepository) UpdatePrice(_ context.Context, name string, price float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return ErrMedicineNotFound
	}
	r.medicines[i].Price = price
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return ErrMedicineNotFound
	}
	r.medicines = append(r.medicines[:i], r.medicines[i+1:]...)
	return nil
}

func (r *memoryRepository) indexOf(name string) int {
	for i, med := range r.medicines {
		if med.Name == name {
			return i
		}
	}
	return -1
}
