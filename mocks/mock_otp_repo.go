package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
)

// MockOTPRepo is a mock implementation of port.OTPRepository.
type MockOTPRepo struct {
	mock.Mock
}

func (m *MockOTPRepo) Create(ctx context.Context, otp *domain.OTP) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockOTPRepo) GetLatest(ctx context.Context, mobile string, action domain.OTPAction) (*domain.OTP, error) {
	args := m.Called(ctx, mobile, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTP), args.Error(1)
}

func (m *MockOTPRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOTPRepo) InvalidateForMobile(ctx context.Context, mobile string, action domain.OTPAction) error {
	args := m.Called(ctx, mobile, action)
	return args.Error(0)
}
