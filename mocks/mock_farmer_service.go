package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
	"bananabill/internal/service"
)

// MockFarmerService is a mock implementation of service.FarmerService.
type MockFarmerService struct {
	mock.Mock
}

func (m *MockFarmerService) Create(ctx context.Context, ownerID uuid.UUID, input service.FarmerInput) (*domain.Farmer, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Farmer), args.Error(1)
}

func (m *MockFarmerService) Get(ctx context.Context, ownerID, farmerID uuid.UUID) (*domain.Farmer, error) {
	args := m.Called(ctx, ownerID, farmerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Farmer), args.Error(1)
}

func (m *MockFarmerService) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Farmer, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Farmer), args.Int(1), args.Error(2)
}

func (m *MockFarmerService) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]domain.Farmer, error) {
	args := m.Called(ctx, ownerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Farmer), args.Error(1)
}

func (m *MockFarmerService) Update(ctx context.Context, ownerID, farmerID uuid.UUID, input service.FarmerInput) (*domain.Farmer, error) {
	args := m.Called(ctx, ownerID, farmerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Farmer), args.Error(1)
}

func (m *MockFarmerService) Delete(ctx context.Context, ownerID, farmerID uuid.UUID) error {
	args := m.Called(ctx, ownerID, farmerID)
	return args.Error(0)
}
