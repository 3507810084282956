package ports

import (
	"context"

	"github.com/stpnv0/DocBooker/internal/domain"
)

// BookingNotifier delivers operational notifications. Implementations are
// fire-and-forget and must not fail the calling operation.
type BookingNotifier interface {
	NotifyBookingConfirmed(ctx context.Context, d *domain.BookingDetails)
	NotifyBookingsExpired(ctx context.Context, count int)
}
