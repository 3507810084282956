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

// querier is satisfied by both *sql.DB and *sql.Tx, so the seat ledger
// statements below can run standalone or inside a reservation transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// allocateSeats is the seat CAS: the predicate and the decrement are
// evaluated as one statement, so concurrent allocations serialize on the row
// and can never drive available_seats below zero. A separate read followed by
// a write is not allowed here. Ordering across competing allocations is
// whatever the row-lock queue yields; FIFO is not guaranteed.
func allocateSeats(ctx context.Context, q querier, slotID string, seats int) (*domain.Slot, error) {
	query := `UPDATE slots
			  SET available_seats = available_seats - $2, updated_at = now()
			  WHERE id = $1
			    AND available_seats >= $2
			    AND start_time > now()
			  RETURNING id, doctor_id, start_time, total_seats, available_seats, created_at, updated_at`

	var s domain.Slot
	err := q.QueryRowContext(ctx, query, slotID, seats).Scan(
		&s.ID, &s.DoctorID, &s.StartTime,
		&s.TotalSeats, &s.AvailableSeats, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("allocate seats: %w", err)
	}

	return nil, classifyRejection(ctx, q, slotID, seats)
}

// Определяем причину отказа: слот не найден, уже в прошлом или мест не хватило.
func classifyRejection(ctx context.Context, q querier, slotID string, seats int) error {
	var available int
	var startTime time.Time
	err := q.QueryRowContext(
		ctx, `SELECT available_seats, start_time FROM slots WHERE id = $1`, slotID,
	).Scan(&available, &startTime)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("recheck slot: %w", err)
	}
	if !startTime.After(time.Now()) {
		return domain.ErrSlotInPast
	}

	return &domain.InsufficientSeatsError{Requested: seats, Remaining: available}
}

// releaseSeats returns seats to the slot. The increment is clamped to
// total_seats; if the invariants hold elsewhere the clamp never fires.
func releaseSeats(ctx context.Context, q querier, slotID string, seats int) error {
	query := `UPDATE slots
			  SET available_seats = LEAST(total_seats, available_seats + $2), updated_at = now()
			  WHERE id = $1`

	res, err := q.ExecContext(ctx, query, slotID, seats)
	if err != nil {
		return fmt.Errorf("release seats: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("release rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrSlotNotFound
	}

	return nil
}

type SlotRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewSlotRepo(db *dbpg.DB) *SlotRepository {
	return &SlotRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *SlotRepository) Create(ctx context.Context, s *domain.Slot) error {
	query := `INSERT INTO slots (id, doctor_id, start_time, total_seats, available_seats, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now().UTC()
	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		s.ID, s.DoctorID, s.StartTime, s.TotalSeats, s.AvailableSeats, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}

	return nil
}

func (r *SlotRepository) GetDetails(ctx context.Context, id string) (*domain.SlotDetails, error) {
	query := `SELECT s.id, s.doctor_id, s.start_time, s.total_seats, s.available_seats,
					 s.created_at, s.updated_at, d.name, d.specialization
			  FROM slots s
			  JOIN doctors d ON d.id = s.doctor_id
			  WHERE s.id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get slot details: %w", err)
	}

	var d domain.SlotDetails
	if err = row.Scan(
		&d.Slot.ID, &d.Slot.DoctorID, &d.Slot.StartTime,
		&d.Slot.TotalSeats, &d.Slot.AvailableSeats,
		&d.Slot.CreatedAt, &d.Slot.UpdatedAt,
		&d.DoctorName, &d.Specialization,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("scan slot details: %w", err)
	}

	return &d, nil
}

func (r *SlotRepository) List(ctx context.Context) ([]*domain.SlotDetails, error) {
	query := `SELECT s.id, s.doctor_id, s.start_time, s.total_seats, s.available_seats,
					 s.created_at, s.updated_at, d.name, d.specialization
			  FROM slots s
			  JOIN doctors d ON d.id = s.doctor_id
			  ORDER BY s.start_time`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var res []*domain.SlotDetails
	for rows.Next() {
		var d domain.SlotDetails
		if err = rows.Scan(
			&d.Slot.ID, &d.Slot.DoctorID, &d.Slot.StartTime,
			&d.Slot.TotalSeats, &d.Slot.AvailableSeats,
			&d.Slot.CreatedAt, &d.Slot.UpdatedAt,
			&d.DoctorName, &d.Specialization,
		); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		res = append(res, &d)
	}

	return res, rows.Err()
}
