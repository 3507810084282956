package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stpnv0/DocBooker/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type DoctorRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewDoctorRepo(db *dbpg.DB) *DoctorRepository {
	return &DoctorRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *DoctorRepository) Create(ctx context.Context, d *domain.Doctor) error {
	query := `INSERT INTO doctors (id, name, specialization, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`
	now := time.Now().UTC()
	_, err := r.db.ExecWithRetry(ctx, r.strategy, query, d.ID, d.Name, d.Specialization, now, now)
	if err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}

	return nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	query := `SELECT id, name, specialization, created_at, updated_at
			  FROM doctors
			  WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}

	var d domain.Doctor
	if err = row.Scan(&d.ID, &d.Name, &d.Specialization, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("scan doctor: %w", err)
	}

	return &d, nil
}

func (r *DoctorRepository) List(ctx context.Context) ([]*domain.Doctor, error) {
	query := `SELECT id, name, specialization, created_at, updated_at
			  FROM doctors
			  ORDER BY name`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	var res []*domain.Doctor
	for rows.Next() {
		var d domain.Doctor
		if err = rows.Scan(&d.ID, &d.Name, &d.Specialization, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		res = append(res, &d)
	}

	return res, rows.Err()
}
