package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/DocBooker/internal/domain"
	"github.com/stpnv0/DocBooker/internal/service/ports"
)

type SlotService struct {
	repo       ports.SlotRepo
	doctorRepo ports.DoctorRepo
}

func NewSlotService(repo ports.SlotRepo, doctorRepo ports.DoctorRepo) *SlotService {
	return &SlotService{
		repo:       repo,
		doctorRepo: doctorRepo,
	}
}

func (s *SlotService) Create(ctx context.Context, input domain.CreateSlotInput) (*domain.SlotDetails, error) {
	if input.TotalSeats < 1 {
		return nil, fmt.Errorf("%w: total_seats must be at least 1", domain.ErrValidation)
	}
	if !input.StartTime.After(time.Now()) {
		return nil, fmt.Errorf("%w: start_time must be in the future", domain.ErrValidation)
	}

	doctor, err := s.doctorRepo.GetByID(ctx, input.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("check doctor: %w", err)
	}

	now := time.Now().UTC()
	slot := &domain.Slot{
		ID:             uuid.New().String(),
		DoctorID:       input.DoctorID,
		StartTime:      input.StartTime,
		TotalSeats:     input.TotalSeats,
		AvailableSeats: input.TotalSeats,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err = s.repo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	return &domain.SlotDetails{
		Slot:           *slot,
		DoctorName:     doctor.Name,
		Specialization: doctor.Specialization,
	}, nil
}

func (s *SlotService) GetDetails(ctx context.Context, id string) (*domain.SlotDetails, error) {
	return s.repo.GetDetails(ctx, id)
}

func (s *SlotService) List(ctx context.Context) ([]*domain.SlotDetails, error) {
	return s.repo.List(ctx)
}
