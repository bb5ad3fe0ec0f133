package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
	"bananabill/internal/service"
)

// MockPaymentService is a mock implementation of service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, ownerID, billID uuid.UUID, input service.RecordPaymentInput) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockPaymentService) MarkAsPaid(ctx context.Context, ownerID, billID uuid.UUID, notes string) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockPaymentService) UpdatePaymentStatus(ctx context.Context, ownerID, billID uuid.UUID, input service.UpdateStatusInput) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockPaymentService) History(ctx context.Context, ownerID, billID uuid.UUID) ([]domain.PaymentHistory, error) {
	args := m.Called(ctx, ownerID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentHistory), args.Error(1)
}
