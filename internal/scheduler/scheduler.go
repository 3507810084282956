package scheduler

import (
	"context"
	"time"

	"github.com/stpnv0/DocBooker/internal/domain"
	"github.com/wb-go/wbf/logger"
)

type BookingExpirer interface {
	ExpireOverdue(ctx context.Context) ([]*domain.Booking, error)
}

// Scheduler runs the expiry sweep on a fixed interval, independent of
// request traffic. A failed sweep is logged and the next tick proceeds.
type Scheduler struct {
	bookingService BookingExpirer
	interval       time.Duration
	logger         logger.Logger
}

func New(
	bookingService BookingExpirer,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		interval:       interval,
		logger:         logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	expired, err := s.bookingService.ExpireOverdue(ctx)
	if err != nil {
		s.logger.Error("sweep failed",
			logger.String("error", err.Error()),
		)
		return
	}

	for _, b := range expired {
		s.logger.Info("booking expired",
			logger.String("booking_id", b.ID),
			logger.String("slot_id", b.SlotID),
			logger.Int("seats_released", b.SeatsBooked),
		)
	}
}
