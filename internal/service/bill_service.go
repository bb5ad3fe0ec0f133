package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"bananabill/internal/billing"
	"bananabill/internal/config"
	"bananabill/internal/domain"
	"bananabill/internal/port"
)

// CreateBillInput is the DTO for bill creation. Only raw intake measurements
// are accepted; every derived field is computed server-side.
type CreateBillInput struct {
	FarmerID      uuid.UUID  `json:"farmer_id" binding:"required"`
	VehicleNumber string     `json:"vehicle_number"`
	GrossWeight   float64    `json:"gross_weight" binding:"required,gt=0"`
	PattiWeight   float64    `json:"patti_weight" binding:"gte=0"`
	BoxCount      int        `json:"box_count" binding:"gte=0"`
	TutWastage    float64    `json:"tut_wastage" binding:"gte=0"`
	RatePerKg     float64    `json:"rate_per_kg" binding:"required,gt=0"`
	Majuri        float64    `json:"majuri" binding:"gte=0"`
	DueDate       *time.Time `json:"due_date"`
}

// UpdateBillInput is the DTO for bill edits. Derived fields are recomputed
// from scratch on every update.
type UpdateBillInput struct {
	FarmerID      uuid.UUID  `json:"farmer_id" binding:"required"`
	VehicleNumber string     `json:"vehicle_number"`
	GrossWeight   float64    `json:"gross_weight" binding:"required,gt=0"`
	PattiWeight   float64    `json:"patti_weight" binding:"gte=0"`
	BoxCount      int        `json:"box_count" binding:"gte=0"`
	TutWastage    float64    `json:"tut_wastage" binding:"gte=0"`
	RatePerKg     float64    `json:"rate_per_kg" binding:"required,gt=0"`
	Majuri        float64    `json:"majuri" binding:"gte=0"`
	DueDate       *time.Time `json:"due_date"`
}

// BillService defines the bill lifecycle contract.
type BillService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateBillInput) (*domain.Bill, error)
	Get(ctx context.Context, ownerID, billID uuid.UUID) (*domain.Bill, error)
	GetByNumber(ctx context.Context, ownerID uuid.UUID, billNumber string) (*domain.Bill, error)
	List(ctx context.Context, ownerID uuid.UUID, filters domain.BillFilters, offset, limit int) ([]domain.Bill, int, error)
	Update(ctx context.Context, ownerID, billID uuid.UUID, input UpdateBillInput) (*domain.Bill, error)
	Delete(ctx context.Context, ownerID, billID uuid.UUID) error
}

type billService struct {
	billRepo   port.BillRepository
	farmerRepo port.FarmerRepository
	seqRepo    port.SequenceRepository
	calc       *billing.Calculator
	cfg        config.BillingConfig
}

// NewBillService creates a new BillService implementation.
func NewBillService(
	billRepo port.BillRepository,
	farmerRepo port.FarmerRepository,
	seqRepo port.SequenceRepository,
	calc *billing.Calculator,
	cfg config.BillingConfig,
) BillService {
	return &billService{
		billRepo:   billRepo,
		farmerRepo: farmerRepo,
		seqRepo:    seqRepo,
		calc:       calc,
		cfg:        cfg,
	}
}

func (s *billService) Create(ctx context.Context, ownerID uuid.UUID, input CreateBillInput) (*domain.Bill, error) {
	if err := validateBillInput(input.GrossWeight, input.PattiWeight, input.RatePerKg, input.TutWastage, input.Majuri, input.BoxCount); err != nil {
		return nil, err
	}

	if _, err := s.farmerRepo.GetByID(ctx, ownerID, input.FarmerID); err != nil {
		return nil, err
	}

	number, err := s.nextBillNumber(ctx)
	if err != nil {
		return nil, err
	}

	bill := &domain.Bill{
		BillNumber:    number,
		FarmerID:      input.FarmerID,
		VehicleNumber: input.VehicleNumber,
		GrossWeight:   input.GrossWeight,
		PattiWeight:   input.PattiWeight,
		BoxCount:      input.BoxCount,
		TutWastage:    input.TutWastage,
		RatePerKg:     input.RatePerKg,
		Majuri:        input.Majuri,
		PaymentStatus: domain.PaymentStatusUnpaid,
		DueDate:       input.DueDate,
		CreatedBy:     ownerID,
	}
	s.applyDerived(bill)

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	return s.billRepo.GetByID(ctx, ownerID, bill.ID)
}

func (s *billService) Get(ctx context.Context, ownerID, billID uuid.UUID) (*domain.Bill, error) {
	return s.billRepo.GetByID(ctx, ownerID, billID)
}

func (s *billService) GetByNumber(ctx context.Context, ownerID uuid.UUID, billNumber string) (*domain.Bill, error) {
	return s.billRepo.GetByNumber(ctx, ownerID, billNumber)
}

func (s *billService) List(ctx context.Context, ownerID uuid.UUID, filters domain.BillFilters, offset, limit int) ([]domain.Bill, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.billRepo.List(ctx, ownerID, filters, offset, limit)
}

func (s *billService) Update(ctx context.Context, ownerID, billID uuid.UUID, input UpdateBillInput) (*domain.Bill, error) {
	if err := validateBillInput(input.GrossWeight, input.PattiWeight, input.RatePerKg, input.TutWastage, input.Majuri, input.BoxCount); err != nil {
		return nil, err
	}

	bill, err := s.billRepo.GetByID(ctx, ownerID, billID)
	if err != nil {
		return nil, err
	}
	if _, err := s.farmerRepo.GetByID(ctx, ownerID, input.FarmerID); err != nil {
		return nil, err
	}

	bill.FarmerID = input.FarmerID
	bill.VehicleNumber = input.VehicleNumber
	bill.GrossWeight = input.GrossWeight
	bill.PattiWeight = input.PattiWeight
	bill.BoxCount = input.BoxCount
	bill.TutWastage = input.TutWastage
	bill.RatePerKg = input.RatePerKg
	bill.Majuri = input.Majuri
	bill.DueDate = input.DueDate
	bill.UpdatedBy = &ownerID
	s.applyDerived(bill)

	// Re-grade the payment status against the recomputed net amount.
	bill.PaymentStatus = gradePayment(bill.PaidAmount, bill.NetAmount)
	if bill.PaymentStatus != domain.PaymentStatusPaid {
		bill.PaymentDate = nil
	}

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}
	return s.billRepo.GetByID(ctx, ownerID, billID)
}

func (s *billService) Delete(ctx context.Context, ownerID, billID uuid.UUID) error {
	return s.billRepo.Delete(ctx, ownerID, billID)
}

// applyDerived runs the weight and amount pipeline and writes the scaled
// results onto the bill.
func (s *billService) applyDerived(bill *domain.Bill) {
	d := s.calc.Derive(billing.Input{
		GrossWeight: bill.GrossWeight,
		PattiWeight: bill.PattiWeight,
		BoxCount:    bill.BoxCount,
		TutWastage:  bill.TutWastage,
		RatePerKg:   bill.RatePerKg,
		Majuri:      bill.Majuri,
	})
	bill.NetWeight = scale(d.NetWeight, s.cfg.WeightScale)
	bill.DandaWeight = scale(d.DandaWeight, s.cfg.WeightScale)
	bill.FinalNetWeight = scale(d.FinalNetWeight, s.cfg.WeightScale)
	bill.TotalAmount = scale(d.TotalAmount, s.cfg.MoneyScale)
	bill.NetAmount = scale(d.NetAmount, s.cfg.MoneyScale)
}

// nextBillNumber produces numbers like BB250800042: a fixed prefix, the
// two-digit year and month, and a zero-padded per-month sequence.
func (s *billService) nextBillNumber(ctx context.Context) (string, error) {
	period := time.Now().Format("0601")
	seq, err := s.seqRepo.Next(ctx, "BB"+period)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BB%s%05d", period, seq), nil
}

func validateBillInput(gross, patti, rate, tut, majuri float64, boxCount int) error {
	if gross <= 0 || rate <= 0 {
		return domain.ErrInvalidBillInput
	}
	if patti < 0 || tut < 0 || majuri < 0 || boxCount < 0 {
		return domain.ErrInvalidBillInput
	}
	return nil
}

// gradePayment classifies a paid amount against the bill's net amount.
func gradePayment(paid, netAmount float64) domain.PaymentStatus {
	switch {
	case paid >= netAmount && netAmount > 0:
		return domain.PaymentStatusPaid
	case paid > 0:
		return domain.PaymentStatusPartial
	default:
		return domain.PaymentStatusUnpaid
	}
}

// scale rounds to n decimal places, half away from zero.
func scale(v float64, n int) float64 {
	p := math.Pow10(n)
	return math.Round(v*p) / p
}
