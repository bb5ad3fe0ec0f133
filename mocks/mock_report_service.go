package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Monthly(ctx context.Context, ownerID uuid.UUID, year int, month time.Month) (*domain.MonthlyReport, error) {
	args := m.Called(ctx, ownerID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyReport), args.Error(1)
}

func (m *MockReportService) AvailableMonths(ctx context.Context, ownerID uuid.UUID) ([]domain.MonthInfo, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthInfo), args.Error(1)
}

func (m *MockReportService) DateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Bill, error) {
	args := m.Called(ctx, ownerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockReportService) FarmerReport(ctx context.Context, ownerID, farmerID uuid.UUID, filters domain.BillFilters) (*domain.FarmerReport, error) {
	args := m.Called(ctx, ownerID, farmerID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmerReport), args.Error(1)
}

func (m *MockReportService) Dashboard(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
