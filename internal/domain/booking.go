package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusFailed    BookingStatus = "FAILED"
)

// HeldStatuses are the statuses whose bookings currently hold seats.
var HeldStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// Booking is a claim on some number of a slot's seats. A PENDING booking
// holds its seats until ExpiresAt; CONFIRMED holds them until cancelled;
// FAILED is terminal and holds nothing.
type Booking struct {
	ID          string        `json:"id"`
	SlotID      string        `json:"slot_id"`
	UserName    string        `json:"user_name"`
	UserEmail   string        `json:"user_email"`
	SeatsBooked int           `json:"seats_booked"`
	Status      BookingStatus `json:"status"`
	ExpiresAt   *time.Time    `json:"expires_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BookingDetails is the booking plus denormalized slot/doctor display fields,
// read outside the reservation transaction.
type BookingDetails struct {
	Booking        Booking   `json:"booking"`
	StartTime      time.Time `json:"start_time"`
	DoctorID       string    `json:"doctor_id"`
	DoctorName     string    `json:"doctor_name"`
	Specialization string    `json:"specialization"`
}

type ReserveInput struct {
	SlotID    string
	UserName  string
	UserEmail string
	Seats     int
}
