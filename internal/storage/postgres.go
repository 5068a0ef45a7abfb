package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/linemk/medicines/internal/domain/models"
)

// код unique_violation в PostgreSQL
const pqUniqueViolation = "23505"

// postgresRepository — реализация MedicineStorage поверх PostgreSQL
type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository создаёт репозиторий лекарств. Схема - migrations/
func NewPostgresRepository(db *sql.DB) MedicineStorage {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context) ([]models.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name, price FROM medicines ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	medicines := []models.Medicine{}
	for rows.Next() {
		var med models.Medicine
		if err := rows.Scan(&med.Name, &med.Price); err != nil {
			return nil, err
		}
		medicines = append(medicines, med)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*models.Medicine, error) {
	med := &models.Medicine{}
	row := r.db.QueryRowContext(ctx, "SELECT name, price FROM medicines WHERE name = $1", name)
	if err := row.Scan(&med.Name, &med.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMedicineNotFound
		}
		return nil, err
	}
	return med, nil
}

func (r *postgresRepository) Create(ctx context.Context, med models.Medicine) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO medicines (name, price) VALUES ($1, $2)", med.Name, med.Price)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrMedicineExists
		}
		return err
	}
	return nil
}

func (r *postgresRepository) UpdatePrice(ctx context.Context, name string, price float64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE medicines SET price = $1 WHERE name = $2", price, name)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *postgresRepository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM medicines WHERE name = $1", name)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrMedicineNotFound
	}
	return nil
}
