package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bananabill/internal/domain"
	"bananabill/internal/port"
)

// FarmerInput is the DTO for farmer creation and updates.
type FarmerInput struct {
	Mobile  string `json:"mobile" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// FarmerService defines the farmer directory contract. Every operation is
// scoped to the owning trader.
type FarmerService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input FarmerInput) (*domain.Farmer, error)
	Get(ctx context.Context, ownerID, farmerID uuid.UUID) (*domain.Farmer, error)
	List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Farmer, int, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string) ([]domain.Farmer, error)
	Update(ctx context.Context, ownerID, farmerID uuid.UUID, input FarmerInput) (*domain.Farmer, error)
	Delete(ctx context.Context, ownerID, farmerID uuid.UUID) error
}

type farmerService struct {
	farmerRepo port.FarmerRepository
	billRepo   port.BillRepository
}

// NewFarmerService creates a new FarmerService implementation.
func NewFarmerService(farmerRepo port.FarmerRepository, billRepo port.BillRepository) FarmerService {
	return &farmerService{farmerRepo: farmerRepo, billRepo: billRepo}
}

func (s *farmerService) Create(ctx context.Context, ownerID uuid.UUID, input FarmerInput) (*domain.Farmer, error) {
	if !mobileRe.MatchString(input.Mobile) {
		return nil, domain.ErrInvalidMobile
	}

	if _, err := s.farmerRepo.GetByMobile(ctx, ownerID, input.Mobile); err == nil {
		return nil, domain.ErrDuplicateMobile
	} else if !errors.Is(err, domain.ErrFarmerNotFound) {
		return nil, fmt.Errorf("farmer.Create: %w", err)
	}

	farmer := &domain.Farmer{
		Mobile:    input.Mobile,
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		CreatedBy: ownerID,
	}
	if err := s.farmerRepo.Create(ctx, farmer); err != nil {
		return nil, err
	}
	return farmer, nil
}

func (s *farmerService) Get(ctx context.Context, ownerID, farmerID uuid.UUID) (*domain.Farmer, error) {
	return s.farmerRepo.GetByID(ctx, ownerID, farmerID)
}

func (s *farmerService) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Farmer, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.farmerRepo.List(ctx, ownerID, offset, limit)
}

func (s *farmerService) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]domain.Farmer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Farmer{}, nil
	}
	return s.farmerRepo.Search(ctx, ownerID, query, 20)
}

func (s *farmerService) Update(ctx context.Context, ownerID, farmerID uuid.UUID, input FarmerInput) (*domain.Farmer, error) {
	if !mobileRe.MatchString(input.Mobile) {
		return nil, domain.ErrInvalidMobile
	}

	farmer, err := s.farmerRepo.GetByID(ctx, ownerID, farmerID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.farmerRepo.GetByMobile(ctx, ownerID, input.Mobile); err == nil && existing.ID != farmerID {
		return nil, domain.ErrDuplicateMobile
	} else if err != nil && !errors.Is(err, domain.ErrFarmerNotFound) {
		return nil, fmt.Errorf("farmer.Update: %w", err)
	}

	farmer.Mobile = input.Mobile
	farmer.Name = strings.TrimSpace(input.Name)
	farmer.Address = strings.TrimSpace(input.Address)
	if err := s.farmerRepo.Update(ctx, farmer); err != nil {
		return nil, err
	}
	return farmer, nil
}

func (s *farmerService) Delete(ctx context.Context, ownerID, farmerID uuid.UUID) error {
	return s.farmerRepo.Delete(ctx, ownerID, farmerID)
}
