package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
)

// MockFarmerRepo is a mock implementation of port.FarmerRepository.
type MockFarmerRepo struct {
	mock.Mock
}

func (m *MockFarmerRepo) Create(ctx context.Context, farmer *domain.Farmer) error {
	args := m.Called(ctx, farmer)
	return args.Error(0)
}

func (m *MockFarmerRepo) GetByID(ctx context.Context, ownerID, farmerID uuid.UUID) (*domain.Farmer, error) {
	args := m.Called(ctx, ownerID, farmerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Farmer), args.Error(1)
}

func (m *MockFarmerRepo) GetByMobile(ctx context.Context, ownerID uuid.UUID, mobile string) (*domain.Farmer, error) {
	args := m.Called(ctx, ownerID, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Farmer), args.Error(1)
}

func (m *MockFarmerRepo) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Farmer, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Farmer), args.Int(1), args.Error(2)
}

func (m *MockFarmerRepo) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]domain.Farmer, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Farmer), args.Error(1)
}

func (m *MockFarmerRepo) Update(ctx context.Context, farmer *domain.Farmer) error {
	args := m.Called(ctx, farmer)
	return args.Error(0)
}

func (m *MockFarmerRepo) Delete(ctx context.Context, ownerID, farmerID uuid.UUID) error {
	args := m.Called(ctx, ownerID, farmerID)
	return args.Error(0)
}
