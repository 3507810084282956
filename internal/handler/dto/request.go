package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization"`
}

type CreateSlotRequest struct {
	DoctorID   string `json:"doctor_id" binding:"required,uuid"`
	StartTime  string `json:"start_time" binding:"required"`
	TotalSeats int    `json:"total_seats" binding:"required,gt=0"`
}

type ReserveRequest struct {
	SlotID      string `json:"slot_id" binding:"required,uuid"`
	UserName    string `json:"user_name" binding:"required"`
	SeatsBooked int    `json:"seats_booked" binding:"required,gt=0"`
}
