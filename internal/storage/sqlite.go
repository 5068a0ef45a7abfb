package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/linemk/medicines/internal/domain/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS medicines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    price REAL NOT NULL
);`

// sqliteRepository — MedicineStorage поверх SQLite через sqlx
type sqliteRepository struct {
	db *sqlx.DB
}

// OpenSQLite открывает файл БД (или ":memory:") и создаёт схему
func OpenSQLite(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite не любит конкурентные записи
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func NewSQLiteRepository(db *sqlx.DB) MedicineStorage {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) List(ctx context.Context) ([]models.Medicine, error) {
	medicines := []models.Medicine{}
	if err := r.db.SelectContext(ctx, &medicines, "SELECT name, price FROM medicines ORDER BY id"); err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *sqliteRepository) GetByName(ctx context.Context, name string) (*models.Medicine, error) {
	var med models.Medicine
	if err := r.db.GetContext(ctx, &med, "SELECT name, price FROM medicines WHERE name = ?", name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMedicineNotFound
		}
		return nil, err
	}
	return &med, nil
}

func (r *sqliteRepository) Create(ctx context.Context, med models.Medicine) error {
	_, err := r.db.NamedExecContext(ctx, "INSERT INTO medicines (name, price) VALUES (:name, :price)", med)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrMedicineExists
		}
		return err
	}
	return nil
}

func (r *sqliteRepository) UpdatePrice(ctx context.Context, name string, price float64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE medicines SET price = ? WHERE name = ?", price, name)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *sqliteRepository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM medicines WHERE name = ?", name)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
