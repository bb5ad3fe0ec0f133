package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
	"bananabill/internal/service"
	"bananabill/mocks"
)

func newPaymentService(billRepo *mocks.MockBillRepo, historyRepo *mocks.MockPaymentHistoryRepo, userRepo *mocks.MockUserRepo) service.PaymentService {
	return service.NewPaymentService(billRepo, historyRepo, userRepo, testBillingConfig())
}

func unpaidBill(ownerID uuid.UUID, netAmount float64) *domain.Bill {
	return &domain.Bill{
		ID:            uuid.New(),
		BillNumber:    "BB250800007",
		FarmerID:      uuid.New(),
		NetAmount:     netAmount,
		PaymentStatus: domain.PaymentStatusUnpaid,
		CreatedBy:     ownerID,
	}
}

func TestPaymentService_RecordPayment_Partial(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	historyRepo := new(mocks.MockPaymentHistoryRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := newPaymentService(billRepo, historyRepo, userRepo)

	ownerID := uuid.New()
	bill := unpaidBill(ownerID, 5000)
	billRepo.On("GetByID", mock.Anything, ownerID, bill.ID).Return(bill, nil)
	billRepo.On("Update", mock.Anything, bill).Return(nil)
	userRepo.On("GetByID", mock.Anything, ownerID).Return(&domain.User{ID: ownerID, Name: "Ramesh"}, nil)

	var entry *domain.PaymentHistory
	historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PaymentHistory")).
		Run(func(args mock.Arguments) { entry = args.Get(1).(*domain.PaymentHistory) }).Return(nil)

	got, err := svc.RecordPayment(context.Background(), ownerID, bill.ID, service.RecordPaymentInput{
		Amount:        2000,
		PaymentMethod: "upi",
	})

	assert.NoError(t, err)
	assert.Equal(t, 2000.0, got.PaidAmount)
	assert.Equal(t, domain.PaymentStatusPartial, got.PaymentStatus)
	assert.Nil(t, got.PaymentDate)

	assert.Equal(t, 0.0, entry.PreviousPaidAmount)
	assert.Equal(t, 2000.0, entry.NewPaidAmount)
	assert.Equal(t, domain.PaymentTypePayment, entry.PaymentType)
	assert.Equal(t, "Ramesh", entry.CreatedByName)
}

func TestPaymentService_RecordPayment_SettlesBill(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	historyRepo := new(mocks.MockPaymentHistoryRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := newPaymentService(billRepo, historyRepo, userRepo)

	ownerID := uuid.New()
	bill := unpaidBill(ownerID, 5000)
	bill.PaidAmount = 3000
	bill.PaymentStatus = domain.PaymentStatusPartial

	billRepo.On("GetByID", mock.Anything, ownerID, bill.ID).Return(bill, nil)
	billRepo.On("Update", mock.Anything, bill).Return(nil)
	userRepo.On("GetByID", mock.Anything, ownerID).Return(&domain.User{ID: ownerID}, nil)
	historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	got, err := svc.RecordPayment(context.Background(), ownerID, bill.ID, service.RecordPaymentInput{Amount: 2000})

	assert.NoError(t, err)
	assert.Equal(t, 5000.0, got.PaidAmount)
	assert.Equal(t, domain.PaymentStatusPaid, got.PaymentStatus)
	assert.NotNil(t, got.PaymentDate)
}

func TestPaymentService_RecordPayment_OverpaymentBecomesAdvance(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	historyRepo := new(mocks.MockPaymentHistoryRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := newPaymentService(billRepo, historyRepo, userRepo)

	ownerID := uuid.New()
	bill := unpaidBill(ownerID, 5000)
	billRepo.On("GetByID", mock.Anything, ownerID, bill.ID).Return(bill, nil)
	billRepo.On("Update", mock.Anything, bill).Return(nil)
	userRepo.On("GetByID", mock.Anything, ownerID).Return(&domain.User{ID: ownerID}, nil)
	historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	got, err := svc.RecordPayment(context.Background(), ownerID, bill.ID, service.RecordPaymentInput{Amount: 5600})

	assert.NoError(t, err)
	assert.Equal(t, 5000.0, got.PaidAmount)
	assert.Equal(t, 600.0, got.AdvanceAmount)
	assert.Equal(t, domain.PaymentStatusPaid, got.PaymentStatus)
}

func TestPaymentService_RecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	svc := newPaymentService(billRepo, new(mocks.MockPaymentHistoryRepo), new(mocks.MockUserRepo))

	_, err := svc.RecordPayment(context.Background(), uuid.New(), uuid.New(), service.RecordPaymentInput{Amount: -100})

	assert.ErrorIs(t, err, domain.ErrInvalidPayment)
	billRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_RecordPayment_HistoryFailureDoesNotFailPayment(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	historyRepo := new(mocks.MockPaymentHistoryRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := newPaymentService(billRepo, historyRepo, userRepo)

	ownerID := uuid.New()
	bill := unpaidBill(ownerID, 5000)
	billRepo.On("GetByID", mock.Anything, ownerID, bill.ID).Return(bill, nil)
	billRepo.On("Update", mock.Anything, bill).Return(nil)
	userRepo.On("GetByID", mock.Anything, ownerID).Return(&domain.User{ID: ownerID}, nil)
	historyRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	got, err := svc.RecordPayment(context.Background(), ownerID, bill.ID, service.RecordPaymentInput{Amount: 1000})

	assert.NoError(t, err)
	assert.Equal(t, 1000.0, got.PaidAmount)
}

func TestPaymentService_MarkAsPaid_Idempotent(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	historyRepo := new(mocks.MockPaymentHistoryRepo)
	svc := newPaymentService(billRepo, historyRepo, new(mocks.MockUserRepo))

	ownerID := uuid.New()
	bill := unpaidBill(ownerID, 5000)
	bill.PaidAmount = 5000
	bill.PaymentStatus = domain.PaymentStatusPaid

	billRepo.On("GetByID", mock.Anything, ownerID, bill.ID).Return(bill, nil)

	got, err := svc.MarkAsPaid(context.Background(), ownerID, bill.ID, "")

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, got.PaymentStatus)
	billRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	historyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_MarkAsPaid_SettlesRemainder(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	historyRepo := new(mocks.MockPaymentHistoryRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := newPaymentService(billRepo, historyRepo, userRepo)

	ownerID := uuid.New()
	bill := unpaidBill(ownerID, 5000)
	bill.PaidAmount = 1500
	bill.PaymentStatus = domain.PaymentStatusPartial

	billRepo.On("GetByID", mock.Anything, ownerID, bill.ID).Return(bill, nil)
	billRepo.On("Update", mock.Anything, bill).Return(nil)
	userRepo.On("GetByID", mock.Anything, ownerID).Return(&domain.User{ID: ownerID}, nil)

	var entry *domain.PaymentHistory
	historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PaymentHistory")).
		Run(func(args mock.Arguments) { entry = args.Get(1).(*domain.PaymentHistory) }).Return(nil)

	got, err := svc.MarkAsPaid(context.Background(), ownerID, bill.ID, "cash settlement")

	assert.NoError(t, err)
	assert.Equal(t, 5000.0, got.PaidAmount)
	assert.Equal(t, domain.PaymentStatusPaid, got.PaymentStatus)
	assert.Equal(t, 3500.0, entry.Amount)
	assert.Equal(t, 1500.0, entry.PreviousPaidAmount)
}

func TestPaymentService_UpdatePaymentStatus_UnpaidResetsBill(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	historyRepo := new(mocks.MockPaymentHistoryRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := newPaymentService(billRepo, historyRepo, userRepo)

	ownerID := uuid.New()
	bill := unpaidBill(ownerID, 5000)
	bill.PaidAmount = 5000
	bill.AdvanceAmount = 200
	bill.PaymentStatus = domain.PaymentStatusPaid

	billRepo.On("GetByID", mock.Anything, ownerID, bill.ID).Return(bill, nil)
	billRepo.On("Update", mock.Anything, bill).Return(nil)
	userRepo.On("GetByID", mock.Anything, ownerID).Return(&domain.User{ID: ownerID}, nil)

	var entry *domain.PaymentHistory
	historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PaymentHistory")).
		Run(func(args mock.Arguments) { entry = args.Get(1).(*domain.PaymentHistory) }).Return(nil)

	got, err := svc.UpdatePaymentStatus(context.Background(), ownerID, bill.ID, service.UpdateStatusInput{
		Status: domain.PaymentStatusUnpaid,
		Notes:  "payment bounced",
	})

	assert.NoError(t, err)
	assert.Equal(t, 0.0, got.PaidAmount)
	assert.Equal(t, 0.0, got.AdvanceAmount)
	assert.Nil(t, got.PaymentDate)
	assert.Equal(t, domain.PaymentTypeAdjustment, entry.PaymentType)
	assert.Equal(t, -5000.0, entry.Amount)
}

func TestPaymentService_UpdatePaymentStatus_RejectsUnknownStatus(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	svc := newPaymentService(billRepo, new(mocks.MockPaymentHistoryRepo), new(mocks.MockUserRepo))

	_, err := svc.UpdatePaymentStatus(context.Background(), uuid.New(), uuid.New(), service.UpdateStatusInput{
		Status: domain.PaymentStatus("REFUNDED"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidPayment)
	billRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_History_ChecksBillOwnership(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	historyRepo := new(mocks.MockPaymentHistoryRepo)
	svc := newPaymentService(billRepo, historyRepo, new(mocks.MockUserRepo))

	ownerID := uuid.New()
	billID := uuid.New()
	billRepo.On("GetByID", mock.Anything, ownerID, billID).Return(nil, domain.ErrBillNotFound)

	_, err := svc.History(context.Background(), ownerID, billID)

	assert.ErrorIs(t, err, domain.ErrBillNotFound)
	historyRepo.AssertNotCalled(t, "ListByBill", mock.Anything, mock.Anything)
}
