package ports

import (
	"context"

	"github.com/stpnv0/DocBooker/internal/domain"
)

type SlotRepo interface {
	Create(ctx context.Context, s *domain.Slot) error
	GetDetails(ctx context.Context, id string) (*domain.SlotDetails, error)
	List(ctx context.Context) ([]*domain.SlotDetails, error)
}
