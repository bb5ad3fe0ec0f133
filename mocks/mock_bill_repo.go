package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
)

// MockBillRepo is a mock implementation of port.BillRepository.
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) Create(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepo) GetByID(ctx context.Context, ownerID, billID uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepo) GetByNumber(ctx context.Context, ownerID uuid.UUID, billNumber string) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepo) List(ctx context.Context, ownerID uuid.UUID, filters domain.BillFilters, offset, limit int) ([]domain.Bill, int, error) {
	args := m.Called(ctx, ownerID, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillRepo) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.Bill, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepo) ListByFarmer(ctx context.Context, ownerID, farmerID uuid.UUID, filters domain.BillFilters) ([]domain.Bill, error) {
	args := m.Called(ctx, ownerID, farmerID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepo) ListByDateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Bill, error) {
	args := m.Called(ctx, ownerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepo) Update(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepo) Delete(ctx context.Context, ownerID, billID uuid.UUID) error {
	args := m.Called(ctx, ownerID, billID)
	return args.Error(0)
}

func (m *MockBillRepo) CountToday(ctx context.Context, ownerID uuid.UUID, dayStart time.Time) (int, error) {
	args := m.Called(ctx, ownerID, dayStart)
	return args.Int(0), args.Error(1)
}

func (m *MockBillRepo) CountTotal(ctx context.Context, ownerID uuid.UUID) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockBillRepo) CountUnpaid(ctx context.Context, ownerID uuid.UUID) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockBillRepo) TotalUnpaidAmount(ctx context.Context, ownerID uuid.UUID) (float64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBillRepo) DistinctMonths(ctx context.Context, ownerID uuid.UUID) ([]time.Time, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}
