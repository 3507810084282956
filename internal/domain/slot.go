package domain

import "time"

// Slot is a bookable time-boxed unit of capacity for one doctor.
// available_seats is mutated only through the repository's seat ledger;
// 0 <= AvailableSeats <= TotalSeats holds at all times.
type Slot struct {
	ID             string    `json:"id"`
	DoctorID       string    `json:"doctor_id"`
	StartTime      time.Time `json:"start_time"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SlotDetails struct {
	Slot           Slot   `json:"slot"`
	DoctorName     string `json:"doctor_name"`
	Specialization string `json:"specialization"`
}

type CreateSlotInput struct {
	DoctorID   string
	StartTime  time.Time
	TotalSeats int
}
