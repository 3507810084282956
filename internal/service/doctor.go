package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/DocBooker/internal/domain"
	"github.com/stpnv0/DocBooker/internal/service/ports"
)

type DoctorService struct {
	repo ports.DoctorRepo
}

func NewDoctorService(repo ports.DoctorRepo) *DoctorService {
	return &DoctorService{repo: repo}
}

func (s *DoctorService) Create(ctx context.Context, input domain.CreateDoctorInput) (*domain.Doctor, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	doctor := &domain.Doctor{
		ID:             uuid.New().String(),
		Name:           input.Name,
		Specialization: input.Specialization,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}

	return doctor, nil
}

func (s *DoctorService) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) List(ctx context.Context) ([]*domain.Doctor, error) {
	return s.repo.List(ctx)
}
