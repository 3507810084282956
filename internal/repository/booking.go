package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/stpnv0/DocBooker/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

const bookingColumns = `id, slot_id, user_name, user_email, seats_booked, status, expires_at, created_at, updated_at`

type BookingRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewBookingRepo(db *dbpg.DB) *BookingRepository {
	return &BookingRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

// Reserve allocates seats and inserts the booking in one transaction. The
// two mutations commit or roll back together: a failed allocation never
// leaves a booking behind, and a failed insert returns the seats.
func (r *BookingRepository) Reserve(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err = allocateSeats(ctx, tx, b.SlotID, b.SeatsBooked); err != nil {
		return err
	}

	query := `INSERT INTO bookings (` + bookingColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = tx.ExecContext(
		ctx, query,
		b.ID, b.SlotID, b.UserName, b.UserEmail,
		b.SeatsBooked, b.Status, b.ExpiresAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	return tx.Commit()
}

// Confirm flips a PENDING hold to CONFIRMED and clears expires_at. The row is
// locked first so a concurrent sweep cannot expire the same hold mid-flight.
func (r *BookingRepository) Confirm(ctx context.Context, id, email string, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	b, err := lockBooking(ctx, tx, id)
	if err != nil {
		return err
	}

	if err = guardConfirm(b, email, now); err != nil {
		return err
	}

	query := `UPDATE bookings
			  SET status = $2, expires_at = NULL, updated_at = now()
			  WHERE id = $1`
	if _, err = tx.ExecContext(ctx, query, id, domain.BookingStatusConfirmed); err != nil {
		return fmt.Errorf("confirm booking: %w", err)
	}

	return tx.Commit()
}

// Cancel releases the booking's seats and deletes the record as one unit.
// Racing a sweep on the same row is resolved by the row lock: whichever
// transaction commits first wins, the loser observes the changed state.
func (r *BookingRepository) Cancel(ctx context.Context, id, email string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	b, err := lockBooking(ctx, tx, id)
	if err != nil {
		return err
	}

	if err = guardCancel(b, email); err != nil {
		return err
	}

	if err = releaseSeats(ctx, tx, b.SlotID, b.SeatsBooked); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	return tx.Commit()
}

// ExpireOverdue fails every PENDING booking whose hold has lapsed and returns
// the seats, all in one transaction. Rows a concurrent cancel already holds
// are skipped and picked up by a later sweep if still relevant.
func (r *BookingRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE status = $1 AND expires_at < $2
			  FOR UPDATE SKIP LOCKED`
	rows, err := tx.QueryContext(ctx, query, domain.BookingStatusPending, now)
	if err != nil {
		return nil, fmt.Errorf("find expired: %w", err)
	}

	var expired []*domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err = scanBooking(rows, &b); err != nil {
			rows.Close()
			return nil, err
		}
		expired = append(expired, &b)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate expired: %w", err)
	}
	rows.Close()

	if len(expired) == 0 {
		return nil, tx.Commit()
	}

	// Группируем по слоту, чтобы вернуть места одним UPDATE на слот.
	seatsBySlot := make(map[string]int)
	ids := make([]string, 0, len(expired))
	for _, b := range expired {
		seatsBySlot[b.SlotID] += b.SeatsBooked
		ids = append(ids, b.ID)
	}

	for slotID, seats := range seatsBySlot {
		if err = releaseSeats(ctx, tx, slotID, seats); err != nil {
			return nil, err
		}
	}

	update := `UPDATE bookings
			   SET status = $2, updated_at = now()
			   WHERE id = ANY($1)`
	if _, err = tx.ExecContext(ctx, update, pq.Array(ids), domain.BookingStatusFailed); err != nil {
		return nil, fmt.Errorf("fail expired bookings: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sweep: %w", err)
	}

	for _, b := range expired {
		b.Status = domain.BookingStatusFailed
	}

	return expired, nil
}

const bookingDetailsQuery = `
	SELECT b.id, b.slot_id, b.user_name, b.user_email, b.seats_booked,
		   b.status, b.expires_at, b.created_at, b.updated_at,
		   s.start_time, d.id, d.name, d.specialization
	FROM bookings b
	JOIN slots s ON s.id = b.slot_id
	JOIN doctors d ON d.id = s.doctor_id`

func (r *BookingRepository) GetDetails(ctx context.Context, id string) (*domain.BookingDetails, error) {
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, bookingDetailsQuery+` WHERE b.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get booking details: %w", err)
	}

	var d domain.BookingDetails
	if err = scanBookingDetails(row, &d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	return &d, nil
}

func (r *BookingRepository) ListBySlot(ctx context.Context, slotID string) ([]*domain.BookingDetails, error) {
	return r.listDetails(ctx, bookingDetailsQuery+` WHERE b.slot_id = $1 ORDER BY b.created_at DESC`, slotID)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, email string) ([]*domain.BookingDetails, error) {
	return r.listDetails(ctx, bookingDetailsQuery+` WHERE b.user_email = $1 ORDER BY b.created_at DESC`, email)
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]*domain.BookingDetails, error) {
	return r.listDetails(ctx, bookingDetailsQuery+` ORDER BY b.created_at DESC`)
}

func (r *BookingRepository) listDetails(ctx context.Context, query string, args ...any) ([]*domain.BookingDetails, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var res []*domain.BookingDetails
	for rows.Next() {
		var d domain.BookingDetails
		if err = scanBookingDetails(rows, &d); err != nil {
			return nil, err
		}
		res = append(res, &d)
	}

	return res, rows.Err()
}

// guardConfirm checks that email owns the booking (case-insensitively) and
// that the hold is still PENDING and unexpired at now.
func guardConfirm(b *domain.Booking, email string, now time.Time) error {
	if !strings.EqualFold(b.UserEmail, email) {
		return domain.ErrForbidden
	}
	switch b.Status {
	case domain.BookingStatusFailed:
		return domain.ErrBookingFailed
	case domain.BookingStatusConfirmed:
		return domain.ErrBookingNotPending
	}
	if b.ExpiresAt != nil && b.ExpiresAt.Before(now) {
		// Просрочено: места вернёт свипер, здесь ничего не трогаем.
		return domain.ErrBookingExpired
	}

	return nil
}

// guardCancel checks ownership and refuses FAILED bookings, which hold no
// seats to return.
func guardCancel(b *domain.Booking, email string) error {
	if !strings.EqualFold(b.UserEmail, email) {
		return domain.ErrForbidden
	}
	if b.Status == domain.BookingStatusFailed {
		return domain.ErrBookingFailed
	}

	return nil
}

func lockBooking(ctx context.Context, tx *sql.Tx, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE id = $1
			  FOR UPDATE`

	var b domain.Booking
	if err := scanBooking(tx.QueryRowContext(ctx, query, id), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner, b *domain.Booking) error {
	var expiresAt sql.NullTime
	if err := row.Scan(
		&b.ID, &b.SlotID, &b.UserName, &b.UserEmail,
		&b.SeatsBooked, &b.Status, &expiresAt, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("scan booking: %w", err)
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		b.ExpiresAt = &t
	}

	return nil
}

func scanBookingDetails(row rowScanner, d *domain.BookingDetails) error {
	var expiresAt sql.NullTime
	if err := row.Scan(
		&d.Booking.ID, &d.Booking.SlotID, &d.Booking.UserName, &d.Booking.UserEmail,
		&d.Booking.SeatsBooked, &d.Booking.Status, &expiresAt,
		&d.Booking.CreatedAt, &d.Booking.UpdatedAt,
		&d.StartTime, &d.DoctorID, &d.DoctorName, &d.Specialization,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("scan booking details: %w", err)
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		d.Booking.ExpiresAt = &t
	}

	return nil
}
