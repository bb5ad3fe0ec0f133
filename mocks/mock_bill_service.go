package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
	"bananabill/internal/service"
)

// MockBillService is a mock implementation of service.BillService.
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) Create(ctx context.Context, ownerID uuid.UUID, input service.CreateBillInput) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) Get(ctx context.Context, ownerID, billID uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) GetByNumber(ctx context.Context, ownerID uuid.UUID, billNumber string) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) List(ctx context.Context, ownerID uuid.UUID, filters domain.BillFilters, offset, limit int) ([]domain.Bill, int, error) {
	args := m.Called(ctx, ownerID, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillService) Update(ctx context.Context, ownerID, billID uuid.UUID, input service.UpdateBillInput) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) Delete(ctx context.Context, ownerID, billID uuid.UUID) error {
	args := m.Called(ctx, ownerID, billID)
	return args.Error(0)
}
