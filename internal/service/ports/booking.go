package ports

import (
	"context"
	"time"

	"github.com/stpnv0/DocBooker/internal/domain"
)

// BookingRepo is the transactional reservation engine. Reserve, Confirm,
// Cancel and ExpireOverdue are each all-or-nothing units spanning the seat
// ledger and the booking record.
type BookingRepo interface {
	Reserve(ctx context.Context, b *domain.Booking) error
	Confirm(ctx context.Context, id, email string, now time.Time) error
	Cancel(ctx context.Context, id, email string) error
	ExpireOverdue(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	GetDetails(ctx context.Context, id string) (*domain.BookingDetails, error)
	ListBySlot(ctx context.Context, slotID string) ([]*domain.BookingDetails, error)
	ListByOwner(ctx context.Context, email string) ([]*domain.BookingDetails, error)
	ListAll(ctx context.Context) ([]*domain.BookingDetails, error)
}
