package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"bananabill/internal/domain"
	"bananabill/internal/port"
)

// ReportService produces billing rollups and the dashboard headline numbers.
type ReportService interface {
	Monthly(ctx context.Context, ownerID uuid.UUID, year int, month time.Month) (*domain.MonthlyReport, error)
	AvailableMonths(ctx context.Context, ownerID uuid.UUID) ([]domain.MonthInfo, error)
	DateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Bill, error)
	FarmerReport(ctx context.Context, ownerID, farmerID uuid.UUID, filters domain.BillFilters) (*domain.FarmerReport, error)
	Dashboard(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardStats, error)
}

type reportService struct {
	billRepo   port.BillRepository
	farmerRepo port.FarmerRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(billRepo port.BillRepository, farmerRepo port.FarmerRepository) ReportService {
	return &reportService{billRepo: billRepo, farmerRepo: farmerRepo}
}

func (s *reportService) Monthly(ctx context.Context, ownerID uuid.UUID, year int, month time.Month) (*domain.MonthlyReport, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	bills, err := s.billRepo.ListByDateRange(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	report := &domain.MonthlyReport{
		Year:       year,
		Month:      month,
		MonthName:  month.String(),
		TotalBills: len(bills),
		Bills:      bills,
	}

	byFarmer := make(map[uuid.UUID]*domain.FarmerTotals)
	for i := range bills {
		b := &bills[i]
		report.TotalAmount += b.TotalAmount
		report.TotalWeight += b.FinalNetWeight

		ft, ok := byFarmer[b.FarmerID]
		if !ok {
			ft = &domain.FarmerTotals{FarmerID: b.FarmerID}
			if b.Farmer != nil {
				ft.Name = b.Farmer.Name
				ft.Mobile = b.Farmer.Mobile
			}
			byFarmer[b.FarmerID] = ft
		}
		ft.BillCount++
		ft.TotalAmount += b.TotalAmount
		ft.TotalWeight += b.FinalNetWeight
	}

	if report.TotalBills > 0 {
		report.AverageAmount = report.TotalAmount / float64(report.TotalBills)
	}

	report.Farmers = make([]domain.FarmerTotals, 0, len(byFarmer))
	for _, ft := range byFarmer {
		report.Farmers = append(report.Farmers, *ft)
	}
	sort.Slice(report.Farmers, func(i, j int) bool {
		return report.Farmers[i].TotalAmount > report.Farmers[j].TotalAmount
	})

	return report, nil
}

func (s *reportService) AvailableMonths(ctx context.Context, ownerID uuid.UUID) ([]domain.MonthInfo, error) {
	months, err := s.billRepo.DistinctMonths(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	infos := make([]domain.MonthInfo, 0, len(months))
	for _, m := range months {
		infos = append(infos, domain.MonthInfo{
			Year:      m.Year(),
			Month:     m.Month(),
			MonthName: m.Month().String(),
			Label:     fmt.Sprintf("%s %d", m.Month(), m.Year()),
		})
	}
	return infos, nil
}

func (s *reportService) DateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Bill, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidBillInput
	}
	// End date is inclusive day-wise.
	return s.billRepo.ListByDateRange(ctx, ownerID, start, end.AddDate(0, 0, 1))
}

func (s *reportService) FarmerReport(ctx context.Context, ownerID, farmerID uuid.UUID, filters domain.BillFilters) (*domain.FarmerReport, error) {
	farmer, err := s.farmerRepo.GetByID(ctx, ownerID, farmerID)
	if err != nil {
		return nil, err
	}

	bills, err := s.billRepo.ListByFarmer(ctx, ownerID, farmerID, filters)
	if err != nil {
		return nil, err
	}

	report := &domain.FarmerReport{
		Farmer:     farmer,
		Bills:      bills,
		TotalBills: len(bills),
		IsFiltered: filters.StartDate != nil || filters.EndDate != nil || filters.PaymentStatus != "",
	}
	for i := range bills {
		b := &bills[i]
		report.TotalAmount += b.TotalAmount
		report.TotalWeight += b.FinalNetWeight
		if b.PaymentStatus != domain.PaymentStatusPaid {
			report.UnpaidBills++
			report.UnpaidAmount += b.NetAmount - b.PaidAmount
		}
	}
	return report, nil
}

func (s *reportService) Dashboard(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	todayBills, err := s.billRepo.CountToday(ctx, ownerID, dayStart)
	if err != nil {
		return nil, err
	}
	totalBills, err := s.billRepo.CountTotal(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	unpaidBills, err := s.billRepo.CountUnpaid(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	unpaidAmount, err := s.billRepo.TotalUnpaidAmount(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	recent, err := s.billRepo.ListRecent(ctx, ownerID, 5)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TodayBills:        todayBills,
		TotalBills:        totalBills,
		UnpaidBills:       unpaidBills,
		TotalUnpaidAmount: unpaidAmount,
		RecentBills:       recent,
	}, nil
}
