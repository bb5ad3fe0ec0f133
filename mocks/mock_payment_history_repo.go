package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
)

// MockPaymentHistoryRepo is a mock implementation of port.PaymentHistoryRepository.
type MockPaymentHistoryRepo struct {
	mock.Mock
}

func (m *MockPaymentHistoryRepo) Create(ctx context.Context, entry *domain.PaymentHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPaymentHistoryRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.PaymentHistory, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentHistory), args.Error(1)
}

func (m *MockPaymentHistoryRepo) ListByFarmer(ctx context.Context, farmerID uuid.UUID, offset, limit int) ([]domain.PaymentHistory, int, error) {
	args := m.Called(ctx, farmerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PaymentHistory), args.Int(1), args.Error(2)
}
