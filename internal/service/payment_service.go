package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"bananabill/internal/config"
	"bananabill/internal/domain"
	"bananabill/internal/port"
)

// RecordPaymentInput is the DTO for payment recording.
type RecordPaymentInput struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

// UpdateStatusInput is the DTO for a manual payment status override.
type UpdateStatusInput struct {
	Status domain.PaymentStatus `json:"status" binding:"required"`
	Notes  string               `json:"notes"`
}

// PaymentService tracks payments made by the trader against a bill.
type PaymentService interface {
	RecordPayment(ctx context.Context, ownerID, billID uuid.UUID, input RecordPaymentInput) (*domain.Bill, error)
	MarkAsPaid(ctx context.Context, ownerID, billID uuid.UUID, notes string) (*domain.Bill, error)
	UpdatePaymentStatus(ctx context.Context, ownerID, billID uuid.UUID, input UpdateStatusInput) (*domain.Bill, error)
	History(ctx context.Context, ownerID, billID uuid.UUID) ([]domain.PaymentHistory, error)
}

type paymentService struct {
	billRepo    port.BillRepository
	historyRepo port.PaymentHistoryRepository
	userRepo    port.UserRepository
	cfg         config.BillingConfig
}

// NewPaymentService creates a new PaymentService implementation.
func NewPaymentService(
	billRepo port.BillRepository,
	historyRepo port.PaymentHistoryRepository,
	userRepo port.UserRepository,
	cfg config.BillingConfig,
) PaymentService {
	return &paymentService{
		billRepo:    billRepo,
		historyRepo: historyRepo,
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, ownerID, billID uuid.UUID, input RecordPaymentInput) (*domain.Bill, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidPayment
	}

	bill, err := s.billRepo.GetByID(ctx, ownerID, billID)
	if err != nil {
		return nil, err
	}

	previousPaid := bill.PaidAmount
	newPaid := previousPaid + input.Amount

	s.applyPayment(bill, newPaid)

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	s.writeHistory(ctx, ownerID, bill, domain.PaymentHistory{
		Amount:             input.Amount,
		PreviousPaidAmount: previousPaid,
		NewPaidAmount:      newPaid,
		PaymentType:        domain.PaymentTypePayment,
		PaymentMethod:      input.PaymentMethod,
		Notes:              input.Notes,
	})

	return bill, nil
}

func (s *paymentService) MarkAsPaid(ctx context.Context, ownerID, billID uuid.UUID, notes string) (*domain.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, ownerID, billID)
	if err != nil {
		return nil, err
	}
	if bill.PaymentStatus == domain.PaymentStatusPaid {
		return bill, nil
	}

	previousPaid := bill.PaidAmount
	remaining := bill.NetAmount - previousPaid

	s.applyPayment(bill, bill.NetAmount)

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	s.writeHistory(ctx, ownerID, bill, domain.PaymentHistory{
		Amount:             remaining,
		PreviousPaidAmount: previousPaid,
		NewPaidAmount:      bill.NetAmount,
		PaymentType:        domain.PaymentTypePayment,
		Notes:              notes,
	})

	return bill, nil
}

func (s *paymentService) UpdatePaymentStatus(ctx context.Context, ownerID, billID uuid.UUID, input UpdateStatusInput) (*domain.Bill, error) {
	if !domain.ValidPaymentStatuses[input.Status] {
		return nil, domain.ErrInvalidPayment
	}

	bill, err := s.billRepo.GetByID(ctx, ownerID, billID)
	if err != nil {
		return nil, err
	}

	previousPaid := bill.PaidAmount
	bill.PaymentStatus = input.Status
	switch input.Status {
	case domain.PaymentStatusPaid:
		bill.PaidAmount = bill.NetAmount
		now := time.Now().UTC()
		bill.PaymentDate = &now
	case domain.PaymentStatusUnpaid:
		bill.PaidAmount = 0
		bill.AdvanceAmount = 0
		bill.PaymentDate = nil
	}

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	s.writeHistory(ctx, ownerID, bill, domain.PaymentHistory{
		Amount:             bill.PaidAmount - previousPaid,
		PreviousPaidAmount: previousPaid,
		NewPaidAmount:      bill.PaidAmount,
		PaymentType:        domain.PaymentTypeAdjustment,
		Notes:              input.Notes,
	})

	return bill, nil
}

func (s *paymentService) History(ctx context.Context, ownerID, billID uuid.UUID) ([]domain.PaymentHistory, error) {
	// Owner check via bill lookup; history rows carry no owner column.
	if _, err := s.billRepo.GetByID(ctx, ownerID, billID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByBill(ctx, billID)
}

// applyPayment settles a new cumulative paid amount onto the bill. When the
// amount covers the bill, any excess is carried as an advance for the
// farmer's next bill.
func (s *paymentService) applyPayment(bill *domain.Bill, newPaid float64) {
	if newPaid >= bill.NetAmount {
		if s.cfg.TrackOverpayment && newPaid > bill.NetAmount {
			bill.AdvanceAmount += newPaid - bill.NetAmount
			bill.PaidAmount = bill.NetAmount
		} else {
			bill.PaidAmount = newPaid
		}
		bill.PaymentStatus = domain.PaymentStatusPaid
		now := time.Now().UTC()
		bill.PaymentDate = &now
		return
	}

	bill.PaidAmount = newPaid
	if newPaid > 0 {
		bill.PaymentStatus = domain.PaymentStatusPartial
	} else {
		bill.PaymentStatus = domain.PaymentStatusUnpaid
	}
}

// writeHistory appends an audit entry. A failed write never fails the
// payment itself; the bill is already settled at this point.
func (s *paymentService) writeHistory(ctx context.Context, ownerID uuid.UUID, bill *domain.Bill, entry domain.PaymentHistory) {
	entry.BillID = bill.ID
	entry.BillNumber = bill.BillNumber
	entry.FarmerID = bill.FarmerID
	entry.BillNetAmount = bill.NetAmount
	entry.CreatedBy = ownerID
	if bill.Farmer != nil {
		entry.FarmerName = bill.Farmer.Name
		entry.FarmerMobile = bill.Farmer.Mobile
	}
	if user, err := s.userRepo.GetByID(ctx, ownerID); err == nil {
		entry.CreatedByName = user.Name
	}

	if err := s.historyRepo.Create(ctx, &entry); err != nil {
		log.Printf("payment history write failed for bill %s: %v", bill.BillNumber, err)
	}
}
