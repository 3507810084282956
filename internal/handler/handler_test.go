package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/DocBooker/internal/auth"
	"github.com/stpnv0/DocBooker/internal/domain"
	"github.com/stpnv0/DocBooker/internal/handler/dto"
	hmocks "github.com/stpnv0/DocBooker/internal/handler/mocks"
	"github.com/stpnv0/DocBooker/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"
)

// testIdentity stands in for the auth middleware and injects a verified
// caller into the request context.
func testIdentity(email, role, name string) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		c.Set(middleware.ContextEmailKey, email)
		c.Set(middleware.ContextRoleKey, role)
		c.Set(middleware.ContextNameKey, name)
		c.Next()
	}
}

type testMocks struct {
	authSvc    *hmocks.MockAuthSvc
	doctorSvc  *hmocks.MockDoctorSvc
	slotSvc    *hmocks.MockSlotSvc
	bookingSvc *hmocks.MockBookingSvc
}

func setupRouter(t *testing.T) (testMocks, http.Handler) {
	t.Helper()
	m := testMocks{
		authSvc:    hmocks.NewMockAuthSvc(t),
		doctorSvc:  hmocks.NewMockDoctorSvc(t),
		slotSvc:    hmocks.NewMockSlotSvc(t),
		bookingSvc: hmocks.NewMockBookingSvc(t),
	}

	h := NewHandler(m.authSvc, m.doctorSvc, m.slotSvc, m.bookingSvc)

	r := ginext.New("test")
	api := r.Group("/api")
	{
		api.POST("/auth/login", h.Login)
		api.GET("/auth/me", testIdentity("alice@example.com", auth.RoleUser, "Alice"), h.Me)

		api.POST("/doctors", h.CreateDoctor)
		api.GET("/doctors", h.ListDoctors)
		api.GET("/doctors/:id", h.GetDoctor)

		api.POST("/slots", h.CreateSlot)
		api.GET("/slots", h.ListSlots)
		api.GET("/slots/:id", h.GetSlot)
		api.GET("/slots/:id/bookings", h.ListSlotBookings)

		bookings := api.Group("/bookings", testIdentity("alice@example.com", auth.RoleUser, "Alice"))
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("/my", h.ListMyBookings)
			bookings.GET("", h.ListBookings)
			bookings.POST("/sweep", h.SweepExpired)
			bookings.GET("/:id", h.GetBooking)
			bookings.POST("/:id/confirm", h.ConfirmBooking)
			bookings.DELETE("/:id", h.CancelBooking)
		}
	}

	return m, r
}

func doJSON(t *testing.T, r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// --- Auth ---

func TestHandler_Login_Success(t *testing.T) {
	m, r := setupRouter(t)

	cred := auth.Credential{Email: "alice@example.com", Role: auth.RoleUser, Name: "Alice"}
	m.authSvc.EXPECT().Login("alice@example.com", "secret").Return("token-123", cred, nil)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token-123", resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	m, r := setupRouter(t)

	m.authSvc.EXPECT().Login("alice@example.com", "wrong").
		Return("", auth.Credential{}, auth.ErrInvalidCredentials)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Me(t *testing.T) {
	_, r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, auth.RoleUser, resp.Role)
}

// --- Doctors ---

func TestHandler_CreateDoctor_Success(t *testing.T) {
	m, r := setupRouter(t)

	doctor := &domain.Doctor{
		ID:             uuid.New().String(),
		Name:           "Dr. Orlova",
		Specialization: "cardiology",
		CreatedAt:      time.Now(),
	}
	m.doctorSvc.EXPECT().Create(mock.Anything, mock.Anything).Return(doctor, nil)

	w := doJSON(t, r, http.MethodPost, "/api/doctors", dto.CreateDoctorRequest{
		Name:           "Dr. Orlova",
		Specialization: "cardiology",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.DoctorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Dr. Orlova", resp.Name)
}

func TestHandler_CreateDoctor_BadRequest(t *testing.T) {
	_, r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/doctors", map[string]string{"name": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetDoctor_NotFound(t *testing.T) {
	m, r := setupRouter(t)

	id := uuid.New().String()
	m.doctorSvc.EXPECT().GetByID(mock.Anything, id).Return(nil, domain.ErrDoctorNotFound)

	w := doJSON(t, r, http.MethodGet, "/api/doctors/"+id, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetDoctor_InvalidID(t *testing.T) {
	_, r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/doctors/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Slots ---

func TestHandler_CreateSlot_Success(t *testing.T) {
	m, r := setupRouter(t)

	doctorID := uuid.New().String()
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	details := &domain.SlotDetails{
		Slot: domain.Slot{
			ID:             uuid.New().String(),
			DoctorID:       doctorID,
			StartTime:      start,
			TotalSeats:     3,
			AvailableSeats: 3,
			CreatedAt:      time.Now(),
		},
		DoctorName: "Dr. Orlova",
	}
	m.slotSvc.EXPECT().Create(mock.Anything, mock.Anything).Return(details, nil)

	w := doJSON(t, r, http.MethodPost, "/api/slots", dto.CreateSlotRequest{
		DoctorID:   doctorID,
		StartTime:  start.Format(time.RFC3339),
		TotalSeats: 3,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.SlotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.AvailableSeats)
}

func TestHandler_CreateSlot_InvalidStartTime(t *testing.T) {
	_, r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/slots", dto.CreateSlotRequest{
		DoctorID:   uuid.New().String(),
		StartTime:  "not-a-date",
		TotalSeats: 3,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateSlot_PastStart(t *testing.T) {
	m, r := setupRouter(t)

	m.slotSvc.EXPECT().Create(mock.Anything, mock.Anything).
		Return(nil, domain.ErrValidation)

	w := doJSON(t, r, http.MethodPost, "/api/slots", dto.CreateSlotRequest{
		DoctorID:   uuid.New().String(),
		StartTime:  time.Now().Add(-time.Hour).Format(time.RFC3339),
		TotalSeats: 3,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Bookings ---

func TestHandler_CreateBooking_Success(t *testing.T) {
	m, r := setupRouter(t)

	slotID := uuid.New().String()
	expires := time.Now().Add(2 * time.Minute)
	details := &domain.BookingDetails{
		Booking: domain.Booking{
			ID:          uuid.New().String(),
			SlotID:      slotID,
			UserName:    "Alice",
			UserEmail:   "alice@example.com",
			SeatsBooked: 2,
			Status:      domain.BookingStatusPending,
			ExpiresAt:   &expires,
			CreatedAt:   time.Now(),
		},
		DoctorName: "Dr. Orlova",
	}

	m.bookingSvc.EXPECT().
		Reserve(mock.Anything, domain.ReserveInput{
			SlotID:    slotID,
			UserName:  "Alice",
			UserEmail: "alice@example.com",
			Seats:     2,
		}).
		Return(details, nil)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", dto.ReserveRequest{
		SlotID:      slotID,
		UserName:    "Alice",
		SeatsBooked: 2,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.BookingStatusPending), resp.Status)
	require.NotNil(t, resp.ExpiresAt)
}

func TestHandler_CreateBooking_InsufficientSeats(t *testing.T) {
	m, r := setupRouter(t)

	slotID := uuid.New().String()
	m.bookingSvc.EXPECT().Reserve(mock.Anything, mock.Anything).
		Return(nil, &domain.InsufficientSeatsError{Requested: 3, Remaining: 1})

	w := doJSON(t, r, http.MethodPost, "/api/bookings", dto.ReserveRequest{
		SlotID:      slotID,
		UserName:    "Alice",
		SeatsBooked: 3,
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.AvailableSeats)
	assert.Equal(t, 1, *resp.AvailableSeats)
}

func TestHandler_CreateBooking_SlotInPast(t *testing.T) {
	m, r := setupRouter(t)

	m.bookingSvc.EXPECT().Reserve(mock.Anything, mock.Anything).
		Return(nil, domain.ErrSlotInPast)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", dto.ReserveRequest{
		SlotID:      uuid.New().String(),
		UserName:    "Alice",
		SeatsBooked: 1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateBooking_ZeroSeatsRejectedByBinding(t *testing.T) {
	_, r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", map[string]any{
		"slot_id":      uuid.New().String(),
		"user_name":    "Alice",
		"seats_booked": 0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ConfirmBooking_Success(t *testing.T) {
	m, r := setupRouter(t)

	id := uuid.New().String()
	m.bookingSvc.EXPECT().Confirm(mock.Anything, id, "alice@example.com").Return(nil)

	w := doJSON(t, r, http.MethodPost, "/api/bookings/"+id+"/confirm", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"confirmed"}`, w.Body.String())
}

func TestHandler_ConfirmBooking_Forbidden(t *testing.T) {
	m, r := setupRouter(t)

	id := uuid.New().String()
	m.bookingSvc.EXPECT().Confirm(mock.Anything, id, "alice@example.com").
		Return(domain.ErrForbidden)

	w := doJSON(t, r, http.MethodPost, "/api/bookings/"+id+"/confirm", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_ConfirmBooking_Expired(t *testing.T) {
	m, r := setupRouter(t)

	id := uuid.New().String()
	m.bookingSvc.EXPECT().Confirm(mock.Anything, id, "alice@example.com").
		Return(domain.ErrBookingExpired)

	w := doJSON(t, r, http.MethodPost, "/api/bookings/"+id+"/confirm", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_CancelBooking_Success(t *testing.T) {
	m, r := setupRouter(t)

	id := uuid.New().String()
	m.bookingSvc.EXPECT().Cancel(mock.Anything, id, "alice@example.com").Return(nil)

	w := doJSON(t, r, http.MethodDelete, "/api/bookings/"+id, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"cancelled"}`, w.Body.String())
}

func TestHandler_CancelBooking_NotFound(t *testing.T) {
	m, r := setupRouter(t)

	id := uuid.New().String()
	m.bookingSvc.EXPECT().Cancel(mock.Anything, id, "alice@example.com").
		Return(domain.ErrBookingNotFound)

	w := doJSON(t, r, http.MethodDelete, "/api/bookings/"+id, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetBooking_InternalError(t *testing.T) {
	m, r := setupRouter(t)

	id := uuid.New().String()
	m.bookingSvc.EXPECT().GetBooking(mock.Anything, id).
		Return(nil, errors.New("connection refused"))

	w := doJSON(t, r, http.MethodGet, "/api/bookings/"+id, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
}

func TestHandler_ListMyBookings(t *testing.T) {
	m, r := setupRouter(t)

	m.bookingSvc.EXPECT().ListByOwner(mock.Anything, "alice@example.com").
		Return([]*domain.BookingDetails{
			{Booking: domain.Booking{ID: "b1", Status: domain.BookingStatusConfirmed}},
		}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/bookings/my", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []dto.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "b1", resp[0].ID)
}

func TestHandler_SweepExpired(t *testing.T) {
	m, r := setupRouter(t)

	m.bookingSvc.EXPECT().ExpireOverdue(mock.Anything).
		Return([]*domain.Booking{{ID: "b1"}, {ID: "b2"}}, nil)

	w := doJSON(t, r, http.MethodPost, "/api/bookings/sweep", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SweepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Expired)
}

func TestHandler_ListSlotBookings(t *testing.T) {
	m, r := setupRouter(t)

	slotID := uuid.New().String()
	m.bookingSvc.EXPECT().ListBySlot(mock.Anything, slotID).
		Return([]*domain.BookingDetails{}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/slots/"+slotID+"/bookings", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
