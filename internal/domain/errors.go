package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrSlotInPast        = errors.New("cannot book a slot in the past")
	ErrInsufficientSeats = errors.New("not enough seats available")
	ErrForbidden         = errors.New("booking belongs to another user")
	ErrBookingNotPending = errors.New("booking is not in pending status")
	ErrBookingExpired    = errors.New("booking hold has expired")
	ErrBookingFailed     = errors.New("booking has already failed")
)

var (
	ErrValidation = errors.New("validation error")
)

// InsufficientSeatsError carries the live remaining count so a losing caller
// can decide to rebook with fewer seats.
type InsufficientSeatsError struct {
	Requested int
	Remaining int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("only %d seat(s) available, but %d requested", e.Remaining, e.Requested)
}

func (e *InsufficientSeatsError) Is(target error) bool {
	return target == ErrInsufficientSeats
}
