package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/DocBooker/internal/domain"
	"github.com/stpnv0/DocBooker/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// BookingService coordinates a reservation as one atomic unit over the
// repository's seat ledger and booking records.
type BookingService struct {
	bookingRepo ports.BookingRepo
	notifier    ports.BookingNotifier
	holdTTL     time.Duration
	logger      logger.Logger
}

func NewBookingService(
	bookingRepo ports.BookingRepo,
	notifier ports.BookingNotifier,
	holdTTL time.Duration,
	logger logger.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		holdTTL:     holdTTL,
		logger:      logger,
	}
}

// Reserve places a PENDING hold on the requested seats. The hold expires
// after the configured TTL unless confirmed; a failed allocation creates no
// booking record at all.
func (s *BookingService) Reserve(ctx context.Context, input domain.ReserveInput) (*domain.BookingDetails, error) {
	if input.Seats < 1 {
		return nil, fmt.Errorf("%w: seats_booked must be at least 1", domain.ErrValidation)
	}
	if input.UserName == "" {
		return nil, fmt.Errorf("%w: user_name is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.holdTTL)
	booking := &domain.Booking{
		ID:          uuid.New().String(),
		SlotID:      input.SlotID,
		UserName:    input.UserName,
		UserEmail:   strings.ToLower(input.UserEmail),
		SeatsBooked: input.Seats,
		Status:      domain.BookingStatusPending,
		ExpiresAt:   &expiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookingRepo.Reserve(ctx, booking); err != nil {
		return nil, fmt.Errorf("reserve: %w", err)
	}

	s.logger.Info("seats held",
		logger.String("booking_id", booking.ID),
		logger.String("slot_id", booking.SlotID),
		logger.Int("seats", booking.SeatsBooked),
	)

	// Денормализованные поля читаются уже вне транзакции.
	details, err := s.bookingRepo.GetDetails(ctx, booking.ID)
	if err != nil {
		s.logger.Error("failed to load booking details",
			logger.String("booking_id", booking.ID),
			logger.String("error", err.Error()),
		)
		return &domain.BookingDetails{Booking: *booking}, nil
	}

	return details, nil
}

// Confirm flips the caller's PENDING hold to CONFIRMED.
func (s *BookingService) Confirm(ctx context.Context, bookingID, requesterEmail string) error {
	email := strings.ToLower(requesterEmail)
	if err := s.bookingRepo.Confirm(ctx, bookingID, email, time.Now().UTC()); err != nil {
		return fmt.Errorf("confirm booking: %w", err)
	}

	s.logger.Info("booking confirmed",
		logger.String("booking_id", bookingID),
		logger.String("user_email", email),
	)

	details, err := s.bookingRepo.GetDetails(ctx, bookingID)
	if err != nil {
		s.logger.Error("failed to load booking for notification",
			logger.String("booking_id", bookingID),
			logger.String("error", err.Error()),
		)
		return nil
	}

	go s.notifier.NotifyBookingConfirmed(context.WithoutCancel(ctx), details)

	return nil
}

// Cancel releases the booking's seats and removes the record. Only the owner
// (matched case-insensitively by email) may cancel, and FAILED bookings are
// refused.
func (s *BookingService) Cancel(ctx context.Context, bookingID, requesterEmail string) error {
	email := strings.ToLower(requesterEmail)
	if err := s.bookingRepo.Cancel(ctx, bookingID, email); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	s.logger.Info("booking cancelled",
		logger.String("booking_id", bookingID),
		logger.String("user_email", email),
	)

	return nil
}

// ExpireOverdue fails all lapsed PENDING holds and returns them. A hold that
// a concurrent cancel already removed is simply not part of the sweep.
func (s *BookingService) ExpireOverdue(ctx context.Context) ([]*domain.Booking, error) {
	expired, err := s.bookingRepo.ExpireOverdue(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("expire overdue: %w", err)
	}

	if len(expired) > 0 {
		s.logger.Info("expired bookings failed",
			logger.Int("count", len(expired)),
		)
		go s.notifier.NotifyBookingsExpired(context.WithoutCancel(ctx), len(expired))
	}

	return expired, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.BookingDetails, error) {
	return s.bookingRepo.GetDetails(ctx, id)
}

func (s *BookingService) ListBySlot(ctx context.Context, slotID string) ([]*domain.BookingDetails, error) {
	return s.bookingRepo.ListBySlot(ctx, slotID)
}

func (s *BookingService) ListByOwner(ctx context.Context, email string) ([]*domain.BookingDetails, error) {
	return s.bookingRepo.ListByOwner(ctx, strings.ToLower(email))
}

func (s *BookingService) ListAll(ctx context.Context) ([]*domain.BookingDetails, error) {
	return s.bookingRepo.ListAll(ctx)
}
