package ports

import (
	"context"

	"github.com/stpnv0/DocBooker/internal/domain"
)

type DoctorRepo interface {
	Create(ctx context.Context, d *domain.Doctor) error
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	List(ctx context.Context) ([]*domain.Doctor, error)
}
