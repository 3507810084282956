package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/DocBooker/internal/auth"
	"github.com/stpnv0/DocBooker/internal/domain"
	"github.com/stpnv0/DocBooker/internal/handler/dto"
	"github.com/stpnv0/DocBooker/internal/middleware"
	"github.com/wb-go/wbf/ginext"
)

type AuthSvc interface {
	Login(email, password string) (string, auth.Credential, error)
}

type DoctorSvc interface {
	Create(ctx context.Context, input domain.CreateDoctorInput) (*domain.Doctor, error)
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	List(ctx context.Context) ([]*domain.Doctor, error)
}

type SlotSvc interface {
	Create(ctx context.Context, input domain.CreateSlotInput) (*domain.SlotDetails, error)
	GetDetails(ctx context.Context, id string) (*domain.SlotDetails, error)
	List(ctx context.Context) ([]*domain.SlotDetails, error)
}

type BookingSvc interface {
	Reserve(ctx context.Context, input domain.ReserveInput) (*domain.BookingDetails, error)
	Confirm(ctx context.Context, bookingID, requesterEmail string) error
	Cancel(ctx context.Context, bookingID, requesterEmail string) error
	ExpireOverdue(ctx context.Context) ([]*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.BookingDetails, error)
	ListBySlot(ctx context.Context, slotID string) ([]*domain.BookingDetails, error)
	ListByOwner(ctx context.Context, email string) ([]*domain.BookingDetails, error)
	ListAll(ctx context.Context) ([]*domain.BookingDetails, error)
}

type Handler struct {
	authService    AuthSvc
	doctorService  DoctorSvc
	slotService    SlotSvc
	bookingService BookingSvc
}

func NewHandler(authService AuthSvc, doctorService DoctorSvc, slotService SlotSvc, bookingService BookingSvc) *Handler {
	return &Handler{
		authService:    authService,
		doctorService:  doctorService,
		slotService:    slotService,
		bookingService: bookingService,
	}
}

// Auth

func (h *Handler) Login(c *ginext.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	token, cred, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
			return
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			Email: cred.Email,
			Role:  cred.Role,
			Name:  cred.Name,
		},
	})
}

func (h *Handler) Me(c *ginext.Context) {
	c.JSON(http.StatusOK, dto.UserResponse{
		Email: c.GetString(middleware.ContextEmailKey),
		Role:  c.GetString(middleware.ContextRoleKey),
		Name:  c.GetString(middleware.ContextNameKey),
	})
}

// Doctors

func (h *Handler) CreateDoctor(c *ginext.Context) {
	var req dto.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	doctor, err := h.doctorService.Create(c.Request.Context(), domain.CreateDoctorInput{
		Name:           req.Name,
		Specialization: req.Specialization,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDoctorResponse(doctor))
}

func (h *Handler) GetDoctor(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid doctor id"})
		return
	}

	doctor, err := h.doctorService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDoctorResponse(doctor))
}

func (h *Handler) ListDoctors(c *ginext.Context) {
	doctors, err := h.doctorService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		resp = append(resp, dto.ToDoctorResponse(d))
	}

	c.JSON(http.StatusOK, resp)
}

// Slots

func (h *Handler) CreateSlot(c *ginext.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid start_time format, expected RFC3339",
		})
		return
	}

	slot, err := h.slotService.Create(c.Request.Context(), domain.CreateSlotInput{
		DoctorID:   req.DoctorID,
		StartTime:  startTime,
		TotalSeats: req.TotalSeats,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSlotResponse(slot))
}

func (h *Handler) GetSlot(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid slot id"})
		return
	}

	slot, err := h.slotService.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSlotResponse(slot))
}

func (h *Handler) ListSlots(c *ginext.Context) {
	slots, err := h.slotService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.SlotResponse, 0, len(slots))
	for _, s := range slots {
		resp = append(resp, dto.ToSlotResponse(s))
	}

	c.JSON(http.StatusOK, resp)
}

// Bookings

func (h *Handler) CreateBooking(c *ginext.Context) {
	var req dto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.bookingService.Reserve(c.Request.Context(), domain.ReserveInput{
		SlotID:    req.SlotID,
		UserName:  req.UserName,
		UserEmail: c.GetString(middleware.ContextEmailKey),
		Seats:     req.SeatsBooked,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *Handler) ConfirmBooking(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid booking id"})
		return
	}

	email := c.GetString(middleware.ContextEmailKey)
	if err := h.bookingService.Confirm(c.Request.Context(), id, email); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"status": "confirmed"})
}

func (h *Handler) CancelBooking(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid booking id"})
		return
	}

	email := c.GetString(middleware.ContextEmailKey)
	if err := h.bookingService.Cancel(c.Request.Context(), id, email); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"status": "cancelled"})
}

func (h *Handler) GetBooking(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid booking id"})
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) ListMyBookings(c *ginext.Context) {
	email := c.GetString(middleware.ContextEmailKey)
	bookings, err := h.bookingService.ListByOwner(c.Request.Context(), email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *Handler) ListBookings(c *ginext.Context) {
	bookings, err := h.bookingService.ListAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *Handler) ListSlotBookings(c *ginext.Context) {
	slotID := c.Param("id")
	if _, err := uuid.Parse(slotID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid slot id"})
		return
	}

	bookings, err := h.bookingService.ListBySlot(c.Request.Context(), slotID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// SweepExpired triggers the expiry sweep on demand, outside the scheduler.
func (h *Handler) SweepExpired(c *ginext.Context) {
	expired, err := h.bookingService.ExpireOverdue(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SweepResponse{Expired: len(expired)})
}

func toBookingResponses(bookings []*domain.BookingDetails) []dto.BookingResponse {
	resp := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, dto.ToBookingResponse(b))
	}
	return resp
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	var insufficient *domain.InsufficientSeatsError
	if errors.As(err, &insufficient) {
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:          insufficient.Error(),
			AvailableSeats: &insufficient.Remaining,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrDoctorNotFound),
		errors.Is(err, domain.ErrSlotNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrInsufficientSeats),
		errors.Is(err, domain.ErrBookingNotPending),
		errors.Is(err, domain.ErrBookingExpired),
		errors.Is(err, domain.ErrBookingFailed):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrSlotInPast),
		errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
