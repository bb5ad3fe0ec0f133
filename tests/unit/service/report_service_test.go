package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
	"bananabill/internal/service"
	"bananabill/mocks"
)

func TestReportService_Monthly_RollsUpByFarmer(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	svc := service.NewReportService(billRepo, new(mocks.MockFarmerRepo))

	ownerID := uuid.New()
	farmerA := uuid.New()
	farmerB := uuid.New()
	bills := []domain.Bill{
		{FarmerID: farmerA, TotalAmount: 1000, FinalNetWeight: 20, Farmer: &domain.Farmer{Name: "Anil", Mobile: "9876543210"}},
		{FarmerID: farmerB, TotalAmount: 5000, FinalNetWeight: 100, Farmer: &domain.Farmer{Name: "Bharat", Mobile: "9123456780"}},
		{FarmerID: farmerA, TotalAmount: 2000, FinalNetWeight: 40, Farmer: &domain.Farmer{Name: "Anil", Mobile: "9876543210"}},
	}

	start := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.Local)
	billRepo.On("ListByDateRange", mock.Anything, ownerID, start, start.AddDate(0, 1, 0)).
		Return(bills, nil)

	report, err := svc.Monthly(context.Background(), ownerID, 2025, time.August)

	assert.NoError(t, err)
	assert.Equal(t, 3, report.TotalBills)
	assert.Equal(t, 8000.0, report.TotalAmount)
	assert.Equal(t, 160.0, report.TotalWeight)
	assert.InDelta(t, 2666.67, report.AverageAmount, 0.01)

	// Farmers are sorted by total amount, largest first.
	assert.Len(t, report.Farmers, 2)
	assert.Equal(t, "Bharat", report.Farmers[0].Name)
	assert.Equal(t, 5000.0, report.Farmers[0].TotalAmount)
	assert.Equal(t, 2, report.Farmers[1].BillCount)
	assert.Equal(t, 3000.0, report.Farmers[1].TotalAmount)
}

func TestReportService_Monthly_EmptyMonth(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	svc := service.NewReportService(billRepo, new(mocks.MockFarmerRepo))

	ownerID := uuid.New()
	billRepo.On("ListByDateRange", mock.Anything, ownerID, mock.Anything, mock.Anything).
		Return([]domain.Bill{}, nil)

	report, err := svc.Monthly(context.Background(), ownerID, 2025, time.January)

	assert.NoError(t, err)
	assert.Equal(t, 0, report.TotalBills)
	assert.Equal(t, 0.0, report.AverageAmount)
	assert.Empty(t, report.Farmers)
}

func TestReportService_AvailableMonths_Labels(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	svc := service.NewReportService(billRepo, new(mocks.MockFarmerRepo))

	ownerID := uuid.New()
	billRepo.On("DistinctMonths", mock.Anything, ownerID).Return([]time.Time{
		time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	months, err := svc.AvailableMonths(context.Background(), ownerID)

	assert.NoError(t, err)
	assert.Len(t, months, 2)
	assert.Equal(t, "August 2025", months[0].Label)
	assert.Equal(t, time.July, months[1].Month)
}

func TestReportService_DateRange_EndInclusive(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	svc := service.NewReportService(billRepo, new(mocks.MockFarmerRepo))

	ownerID := uuid.New()
	start := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	billRepo.On("ListByDateRange", mock.Anything, ownerID, start, end.AddDate(0, 0, 1)).
		Return([]domain.Bill{}, nil)

	_, err := svc.DateRange(context.Background(), ownerID, start, end)
	assert.NoError(t, err)
	billRepo.AssertExpectations(t)
}

func TestReportService_DateRange_RejectsInvertedRange(t *testing.T) {
	svc := service.NewReportService(new(mocks.MockBillRepo), new(mocks.MockFarmerRepo))

	start := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	_, err := svc.DateRange(context.Background(), uuid.New(), start, start.AddDate(0, 0, -7))
	assert.ErrorIs(t, err, domain.ErrInvalidBillInput)
}

func TestReportService_FarmerReport_UnpaidMath(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	farmerRepo := new(mocks.MockFarmerRepo)
	svc := service.NewReportService(billRepo, farmerRepo)

	ownerID := uuid.New()
	farmerID := uuid.New()
	farmerRepo.On("GetByID", mock.Anything, ownerID, farmerID).
		Return(&domain.Farmer{ID: farmerID, Name: "Anil"}, nil)
	billRepo.On("ListByFarmer", mock.Anything, ownerID, farmerID, domain.BillFilters{}).
		Return([]domain.Bill{
			{NetAmount: 5000, PaidAmount: 5000, TotalAmount: 5500, FinalNetWeight: 110, PaymentStatus: domain.PaymentStatusPaid},
			{NetAmount: 3000, PaidAmount: 1000, TotalAmount: 3200, FinalNetWeight: 64, PaymentStatus: domain.PaymentStatusPartial},
			{NetAmount: 2000, PaidAmount: 0, TotalAmount: 2100, FinalNetWeight: 42, PaymentStatus: domain.PaymentStatusUnpaid},
		}, nil)

	report, err := svc.FarmerReport(context.Background(), ownerID, farmerID, domain.BillFilters{})

	assert.NoError(t, err)
	assert.Equal(t, 3, report.TotalBills)
	assert.Equal(t, 2, report.UnpaidBills)
	assert.Equal(t, 4000.0, report.UnpaidAmount)
	assert.Equal(t, 10800.0, report.TotalAmount)
	assert.False(t, report.IsFiltered)
}

func TestReportService_Dashboard_Aggregates(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	svc := service.NewReportService(billRepo, new(mocks.MockFarmerRepo))

	ownerID := uuid.New()
	recent := []domain.Bill{{BillNumber: "BB250800009"}}
	billRepo.On("CountToday", mock.Anything, ownerID, mock.AnythingOfType("time.Time")).Return(3, nil)
	billRepo.On("CountTotal", mock.Anything, ownerID).Return(120, nil)
	billRepo.On("CountUnpaid", mock.Anything, ownerID).Return(14, nil)
	billRepo.On("TotalUnpaidAmount", mock.Anything, ownerID).Return(48250.5, nil)
	billRepo.On("ListRecent", mock.Anything, ownerID, 5).Return(recent, nil)

	stats, err := svc.Dashboard(context.Background(), ownerID)

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.TodayBills)
	assert.Equal(t, 120, stats.TotalBills)
	assert.Equal(t, 14, stats.UnpaidBills)
	assert.Equal(t, 48250.5, stats.TotalUnpaidAmount)
	assert.Equal(t, recent, stats.RecentBills)
}
