package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/billing"
	"bananabill/internal/config"
	"bananabill/internal/domain"
	"bananabill/internal/service"
	"bananabill/mocks"
)

func testBillingConfig() config.BillingConfig {
	return config.BillingConfig{
		BoxWeightKg:      1.0,
		DandaPercent:     0.07,
		WeightScale:      2,
		MoneyScale:       2,
		TrackOverpayment: true,
	}
}

func newBillService(billRepo *mocks.MockBillRepo, farmerRepo *mocks.MockFarmerRepo, seqRepo *mocks.MockSequenceRepo) service.BillService {
	cfg := testBillingConfig()
	calc := billing.NewCalculator(cfg.BoxWeightKg, cfg.DandaPercent)
	return service.NewBillService(billRepo, farmerRepo, seqRepo, calc, cfg)
}

func TestBillService_Create_DerivesAllFields(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	farmerRepo := new(mocks.MockFarmerRepo)
	seqRepo := new(mocks.MockSequenceRepo)
	svc := newBillService(billRepo, farmerRepo, seqRepo)

	ownerID := uuid.New()
	farmerID := uuid.New()
	farmerRepo.On("GetByID", mock.Anything, ownerID, farmerID).
		Return(&domain.Farmer{ID: farmerID, Name: "Suresh"}, nil)
	seqRepo.On("Next", mock.Anything, mock.AnythingOfType("string")).Return(int64(42), nil)

	billRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Bill")).
		Run(func(args mock.Arguments) {
			created := args.Get(1).(*domain.Bill)
			created.ID = uuid.New()
			billRepo.On("GetByID", mock.Anything, ownerID, created.ID).Return(created, nil)
		}).Return(nil)

	bill, err := svc.Create(context.Background(), ownerID, service.CreateBillInput{
		FarmerID:    farmerID,
		GrossWeight: 100,
		PattiWeight: 5,
		BoxCount:    2,
		TutWastage:  3,
		RatePerKg:   50,
		Majuri:      500,
	})

	assert.NoError(t, err)
	assert.Equal(t, 93.0, bill.NetWeight)
	assert.Equal(t, 6.51, bill.DandaWeight)
	assert.Equal(t, 102.51, bill.FinalNetWeight)
	assert.Equal(t, 5125.5, bill.TotalAmount)
	assert.Equal(t, 4625.5, bill.NetAmount)
	assert.Equal(t, domain.PaymentStatusUnpaid, bill.PaymentStatus)

	expectedPrefix := "BB" + time.Now().Format("0601")
	assert.Equal(t, fmt.Sprintf("%s%05d", expectedPrefix, 42), bill.BillNumber)
}

func TestBillService_Create_RejectsInvalidMeasurements(t *testing.T) {
	svc := newBillService(new(mocks.MockBillRepo), new(mocks.MockFarmerRepo), new(mocks.MockSequenceRepo))
	ownerID := uuid.New()

	inputs := []service.CreateBillInput{
		{FarmerID: uuid.New(), GrossWeight: 0, RatePerKg: 50},
		{FarmerID: uuid.New(), GrossWeight: 100, RatePerKg: 0},
		{FarmerID: uuid.New(), GrossWeight: 100, RatePerKg: 50, PattiWeight: -1},
		{FarmerID: uuid.New(), GrossWeight: 100, RatePerKg: 50, Majuri: -10},
		{FarmerID: uuid.New(), GrossWeight: 100, RatePerKg: 50, BoxCount: -2},
	}
	for i, input := range inputs {
		_, err := svc.Create(context.Background(), ownerID, input)
		assert.ErrorIs(t, err, domain.ErrInvalidBillInput, "case %d", i)
	}
}

func TestBillService_Create_UnknownFarmer(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	farmerRepo := new(mocks.MockFarmerRepo)
	svc := newBillService(billRepo, farmerRepo, new(mocks.MockSequenceRepo))

	ownerID := uuid.New()
	farmerID := uuid.New()
	farmerRepo.On("GetByID", mock.Anything, ownerID, farmerID).Return(nil, domain.ErrFarmerNotFound)

	_, err := svc.Create(context.Background(), ownerID, service.CreateBillInput{
		FarmerID:    farmerID,
		GrossWeight: 100,
		RatePerKg:   50,
	})
	assert.ErrorIs(t, err, domain.ErrFarmerNotFound)
	billRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBillService_Update_RecomputesDerivedAndRegradesStatus(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	farmerRepo := new(mocks.MockFarmerRepo)
	svc := newBillService(billRepo, farmerRepo, new(mocks.MockSequenceRepo))

	ownerID := uuid.New()
	billID := uuid.New()
	farmerID := uuid.New()
	paidAt := time.Now()

	// Fully paid at the old amounts; the edit raises the net amount.
	existing := &domain.Bill{
		ID:            billID,
		BillNumber:    "BB250800001",
		FarmerID:      farmerID,
		GrossWeight:   100,
		RatePerKg:     40,
		NetAmount:     4280,
		PaidAmount:    4280,
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentDate:   &paidAt,
		CreatedBy:     ownerID,
	}
	billRepo.On("GetByID", mock.Anything, ownerID, billID).Return(existing, nil)
	farmerRepo.On("GetByID", mock.Anything, ownerID, farmerID).
		Return(&domain.Farmer{ID: farmerID}, nil)
	billRepo.On("Update", mock.Anything, existing).Return(nil)

	_, err := svc.Update(context.Background(), ownerID, billID, service.UpdateBillInput{
		FarmerID:    farmerID,
		GrossWeight: 200,
		RatePerKg:   40,
	})

	assert.NoError(t, err)
	assert.Equal(t, 200.0, existing.GrossWeight)
	assert.Equal(t, 214.0, existing.FinalNetWeight)
	assert.Equal(t, 8560.0, existing.NetAmount)
	assert.Equal(t, domain.PaymentStatusPartial, existing.PaymentStatus)
	assert.Nil(t, existing.PaymentDate)
}

func TestBillService_List_ClampsPagination(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	svc := newBillService(billRepo, new(mocks.MockFarmerRepo), new(mocks.MockSequenceRepo))

	ownerID := uuid.New()
	billRepo.On("List", mock.Anything, ownerID, domain.BillFilters{}, 0, 20).
		Return([]domain.Bill{}, 0, nil)

	_, _, err := svc.List(context.Background(), ownerID, domain.BillFilters{}, -5, 5000)
	assert.NoError(t, err)
	billRepo.AssertExpectations(t)
}
