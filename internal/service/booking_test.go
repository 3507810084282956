package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stpnv0/DocBooker/internal/domain"
	"github.com/stpnv0/DocBooker/internal/service/ports"
	"github.com/stpnv0/DocBooker/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

func TestBookingService_Reserve_PlacesPendingHold(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	var created *domain.Booking
	bookingRepo.EXPECT().Reserve(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, b *domain.Booking) {
			created = b
		}).
		Return(nil)
	bookingRepo.EXPECT().GetDetails(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, id string) (*domain.BookingDetails, error) {
			return &domain.BookingDetails{Booking: *created, DoctorName: "Dr. Orlova"}, nil
		})

	details, err := svc.Reserve(context.Background(), domain.ReserveInput{
		SlotID:    "s1",
		UserName:  "Alice",
		UserEmail: "Alice@Example.COM",
		Seats:     2,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, domain.BookingStatusPending, created.Status)
	assert.Equal(t, "alice@example.com", created.UserEmail)
	assert.Equal(t, 2, created.SeatsBooked)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.ExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().Add(2*time.Minute), *created.ExpiresAt, 5*time.Second)
	assert.Equal(t, "Dr. Orlova", details.DoctorName)
}

func TestBookingService_Reserve_RejectsNonPositiveSeats(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	for _, seats := range []int{0, -1} {
		_, err := svc.Reserve(context.Background(), domain.ReserveInput{
			SlotID:    "s1",
			UserName:  "Alice",
			UserEmail: "alice@example.com",
			Seats:     seats,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	// Валидация должна срезать запрос до обращения к репозиторию.
	bookingRepo.AssertNotCalled(t, "Reserve")
}

func TestBookingService_Reserve_RequiresUserName(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	_, err := svc.Reserve(context.Background(), domain.ReserveInput{
		SlotID:    "s1",
		UserEmail: "alice@example.com",
		Seats:     1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Reserve_InsufficientSeats(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	bookingRepo.EXPECT().Reserve(mock.Anything, mock.Anything).
		Return(&domain.InsufficientSeatsError{Requested: 3, Remaining: 1})

	_, err := svc.Reserve(context.Background(), domain.ReserveInput{
		SlotID:    "s1",
		UserName:  "Alice",
		UserEmail: "alice@example.com",
		Seats:     3,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)

	var insufficient *domain.InsufficientSeatsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Remaining)
}

func TestBookingService_Reserve_DetailsReadFailureIsNotFatal(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	bookingRepo.EXPECT().Reserve(mock.Anything, mock.Anything).Return(nil)
	bookingRepo.EXPECT().GetDetails(mock.Anything, mock.Anything).
		Return(nil, errors.New("read replica down"))

	details, err := svc.Reserve(context.Background(), domain.ReserveInput{
		SlotID:    "s1",
		UserName:  "Alice",
		UserEmail: "alice@example.com",
		Seats:     1,
	})

	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, domain.BookingStatusPending, details.Booking.Status)
	assert.Empty(t, details.DoctorName)
}

func TestBookingService_Confirm_NotifiesOwner(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	details := &domain.BookingDetails{
		Booking:    domain.Booking{ID: "b1", Status: domain.BookingStatusConfirmed},
		DoctorName: "Dr. Orlova",
	}

	notified := make(chan struct{})
	bookingRepo.EXPECT().Confirm(mock.Anything, "b1", "alice@example.com", mock.Anything).Return(nil)
	bookingRepo.EXPECT().GetDetails(mock.Anything, "b1").Return(details, nil)
	notifier.EXPECT().NotifyBookingConfirmed(mock.Anything, details).
		Run(func(ctx context.Context, d *domain.BookingDetails) {
			close(notified)
		}).
		Return()

	err := svc.Confirm(context.Background(), "b1", "Alice@Example.com")

	require.NoError(t, err)

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("notifier was not called")
	}
}

func TestBookingService_Confirm_Forbidden(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	bookingRepo.EXPECT().Confirm(mock.Anything, "b1", "mallory@example.com", mock.Anything).
		Return(domain.ErrForbidden)

	err := svc.Confirm(context.Background(), "b1", "mallory@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	notifier.AssertNotCalled(t, "NotifyBookingConfirmed")
}

func TestBookingService_Confirm_ExpiredHold(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	bookingRepo.EXPECT().Confirm(mock.Anything, "b1", "alice@example.com", mock.Anything).
		Return(domain.ErrBookingExpired)

	err := svc.Confirm(context.Background(), "b1", "alice@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBookingExpired)
}

func TestBookingService_Cancel(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	bookingRepo.EXPECT().Cancel(mock.Anything, "b1", "alice@example.com").Return(nil)

	err := svc.Cancel(context.Background(), "b1", "Alice@example.com")

	require.NoError(t, err)
}

func TestBookingService_Cancel_NotFound(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	bookingRepo.EXPECT().Cancel(mock.Anything, "missing", "alice@example.com").
		Return(domain.ErrBookingNotFound)

	err := svc.Cancel(context.Background(), "missing", "alice@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingService_ExpireOverdue_NotifiesCount(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	expired := []*domain.Booking{
		{ID: "b1", Status: domain.BookingStatusFailed},
		{ID: "b2", Status: domain.BookingStatusFailed},
	}

	notified := make(chan struct{})
	bookingRepo.EXPECT().ExpireOverdue(mock.Anything, mock.Anything).Return(expired, nil)
	notifier.EXPECT().NotifyBookingsExpired(mock.Anything, 2).
		Run(func(ctx context.Context, count int) {
			close(notified)
		}).
		Return()

	got, err := svc.ExpireOverdue(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("notifier was not called")
	}
}

func TestBookingService_ExpireOverdue_NothingToDo(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	bookingRepo.EXPECT().ExpireOverdue(mock.Anything, mock.Anything).Return(nil, nil)

	got, err := svc.ExpireOverdue(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
	notifier.AssertNotCalled(t, "NotifyBookingsExpired")
}

func TestBookingService_ListByOwner_NormalizesEmail(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	notifier := mocks.NewMockBookingNotifier(t)
	log := newTestLogger(t)

	svc := NewBookingService(bookingRepo, notifier, 2*time.Minute, log)

	bookingRepo.EXPECT().ListByOwner(mock.Anything, "alice@example.com").
		Return([]*domain.BookingDetails{}, nil)

	_, err := svc.ListByOwner(context.Background(), "ALICE@example.com")

	require.NoError(t, err)
}

// fakeSeatLedger backs the concurrency test with a real mutex-guarded seat
// count instead of mock expectations.
type fakeSeatLedger struct {
	ports.BookingRepo

	mu        sync.Mutex
	available int
	bookings  map[string]*domain.Booking
}

func newFakeSeatLedger(available int) *fakeSeatLedger {
	return &fakeSeatLedger{
		available: available,
		bookings:  make(map[string]*domain.Booking),
	}
}

func (f *fakeSeatLedger) Reserve(_ context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.available < b.SeatsBooked {
		return &domain.InsufficientSeatsError{Requested: b.SeatsBooked, Remaining: f.available}
	}

	f.available -= b.SeatsBooked
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeSeatLedger) Cancel(_ context.Context, id, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if !strings.EqualFold(b.UserEmail, email) {
		return domain.ErrForbidden
	}

	f.available += b.SeatsBooked
	delete(f.bookings, id)
	return nil
}

func (f *fakeSeatLedger) GetDetails(_ context.Context, id string) (*domain.BookingDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &domain.BookingDetails{Booking: *b}, nil
}

func TestBookingService_CancelThenReserve_RestoresSeats(t *testing.T) {
	log := newTestLogger(t)
	notifier := mocks.NewMockBookingNotifier(t)

	ledger := newFakeSeatLedger(2)
	svc := NewBookingService(ledger, notifier, 2*time.Minute, log)

	first, err := svc.Reserve(context.Background(), domain.ReserveInput{
		SlotID:    "s1",
		UserName:  "Alice",
		UserEmail: "alice@example.com",
		Seats:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.available)

	// Отмена возвращает места; владелец сверяется без учёта регистра.
	require.NoError(t, svc.Cancel(context.Background(), first.Booking.ID, "ALICE@Example.com"))
	assert.Equal(t, 2, ledger.available)

	second, err := svc.Reserve(context.Background(), domain.ReserveInput{
		SlotID:    "s1",
		UserName:  "Alice",
		UserEmail: "alice@example.com",
		Seats:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, second.Booking.Status)
	assert.Equal(t, 0, ledger.available)
}

func TestBookingService_Cancel_StrangerIsForbidden(t *testing.T) {
	log := newTestLogger(t)
	notifier := mocks.NewMockBookingNotifier(t)

	ledger := newFakeSeatLedger(2)
	svc := NewBookingService(ledger, notifier, 2*time.Minute, log)

	booked, err := svc.Reserve(context.Background(), domain.ReserveInput{
		SlotID:    "s1",
		UserName:  "Alice",
		UserEmail: "alice@example.com",
		Seats:     2,
	})
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), booked.Booking.ID, "mallory@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, ledger.available) // seats still held
}

func TestBookingService_Reserve_ConcurrentHoldsNeverOversell(t *testing.T) {
	log := newTestLogger(t)
	notifier := mocks.NewMockBookingNotifier(t)

	ledger := newFakeSeatLedger(2)
	svc := NewBookingService(ledger, notifier, 2*time.Minute, log)

	// Два места, две гонки: запрос на 2 и запрос на 1. Ровно один проходит.
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, seats := range []int{2, 1} {
		wg.Add(1)
		go func(seats int) {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), domain.ReserveInput{
				SlotID:    "s1",
				UserName:  "racer",
				UserEmail: "racer@example.com",
				Seats:     seats,
			})
			results <- err
		}(seats)
	}
	wg.Wait()
	close(results)

	var ok, rejected int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, domain.ErrInsufficientSeats)
		rejected++
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	assert.GreaterOrEqual(t, ledger.available, 0)
}

func TestBookingService_Reserve_ManyConcurrentSingleSeatHolds(t *testing.T) {
	log := newTestLogger(t)
	notifier := mocks.NewMockBookingNotifier(t)

	const total = 5
	ledger := newFakeSeatLedger(total)
	svc := NewBookingService(ledger, notifier, 2*time.Minute, log)

	const workers = 20
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), domain.ReserveInput{
				SlotID:    "s1",
				UserName:  "racer",
				UserEmail: "racer@example.com",
				Seats:     1,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientSeats)
		}
	}

	assert.Equal(t, total, ok)
	assert.Equal(t, 0, ledger.available)
}
