package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSMSSender is a mock implementation of port.SMSSender.
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) SendOTP(ctx context.Context, mobile, code string) error {
	args := m.Called(ctx, mobile, code)
	return args.Error(0)
}
