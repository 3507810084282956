package dto

import (
	"time"

	"github.com/stpnv0/DocBooker/internal/domain"
)

type DoctorResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	CreatedAt      string `json:"created_at"`
}

type SlotResponse struct {
	ID             string `json:"id"`
	DoctorID       string `json:"doctor_id"`
	DoctorName     string `json:"doctor_name"`
	Specialization string `json:"specialization"`
	StartTime      string `json:"start_time"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	CreatedAt      string `json:"created_at"`
}

type BookingResponse struct {
	ID             string  `json:"id"`
	SlotID         string  `json:"slot_id"`
	UserName       string  `json:"user_name"`
	UserEmail      string  `json:"user_email"`
	SeatsBooked    int     `json:"seats_booked"`
	Status         string  `json:"status"`
	StartTime      string  `json:"start_time"`
	DoctorID       string  `json:"doctor_id"`
	DoctorName     string  `json:"doctor_name"`
	Specialization string  `json:"specialization"`
	ExpiresAt      *string `json:"expires_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type UserResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type SweepResponse struct {
	Expired int `json:"expired"`
}

type ErrorResponse struct {
	Error          string `json:"error"`
	AvailableSeats *int   `json:"available_seats,omitempty"`
}

func ToDoctorResponse(d *domain.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:             d.ID,
		Name:           d.Name,
		Specialization: d.Specialization,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
	}
}

func ToSlotResponse(d *domain.SlotDetails) SlotResponse {
	return SlotResponse{
		ID:             d.Slot.ID,
		DoctorID:       d.Slot.DoctorID,
		DoctorName:     d.DoctorName,
		Specialization: d.Specialization,
		StartTime:      d.Slot.StartTime.Format(time.RFC3339),
		TotalSeats:     d.Slot.TotalSeats,
		AvailableSeats: d.Slot.AvailableSeats,
		CreatedAt:      d.Slot.CreatedAt.Format(time.RFC3339),
	}
}

func ToBookingResponse(d *domain.BookingDetails) BookingResponse {
	resp := BookingResponse{
		ID:             d.Booking.ID,
		SlotID:         d.Booking.SlotID,
		UserName:       d.Booking.UserName,
		UserEmail:      d.Booking.UserEmail,
		SeatsBooked:    d.Booking.SeatsBooked,
		Status:         string(d.Booking.Status),
		StartTime:      d.StartTime.Format(time.RFC3339),
		DoctorID:       d.DoctorID,
		DoctorName:     d.DoctorName,
		Specialization: d.Specialization,
		CreatedAt:      d.Booking.CreatedAt.Format(time.RFC3339),
	}
	if d.Booking.ExpiresAt != nil {
		expires := d.Booking.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &expires
	}

	return resp
}
