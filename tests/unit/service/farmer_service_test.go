package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bananabill/internal/domain"
	"bananabill/internal/service"
	"bananabill/mocks"
)

func TestFarmerService_Create_Success(t *testing.T) {
	farmerRepo := new(mocks.MockFarmerRepo)
	svc := service.NewFarmerService(farmerRepo, new(mocks.MockBillRepo))

	ownerID := uuid.New()
	farmerRepo.On("GetByMobile", mock.Anything, ownerID, "9876543210").
		Return(nil, domain.ErrFarmerNotFound)
	farmerRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Farmer")).Return(nil)

	farmer, err := svc.Create(context.Background(), ownerID, service.FarmerInput{
		Mobile: "9876543210",
		Name:   "  Suresh Patil ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Suresh Patil", farmer.Name)
	assert.Equal(t, ownerID, farmer.CreatedBy)
	farmerRepo.AssertExpectations(t)
}

func TestFarmerService_Create_DuplicateMobile(t *testing.T) {
	farmerRepo := new(mocks.MockFarmerRepo)
	svc := service.NewFarmerService(farmerRepo, new(mocks.MockBillRepo))

	ownerID := uuid.New()
	farmerRepo.On("GetByMobile", mock.Anything, ownerID, "9876543210").
		Return(&domain.Farmer{ID: uuid.New(), Mobile: "9876543210"}, nil)

	_, err := svc.Create(context.Background(), ownerID, service.FarmerInput{
		Mobile: "9876543210",
		Name:   "Suresh",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateMobile)
	farmerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFarmerService_Create_InvalidMobile(t *testing.T) {
	svc := service.NewFarmerService(new(mocks.MockFarmerRepo), new(mocks.MockBillRepo))

	_, err := svc.Create(context.Background(), uuid.New(), service.FarmerInput{
		Mobile: "1234567890",
		Name:   "Suresh",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMobile)
}

func TestFarmerService_Update_AllowsKeepingOwnMobile(t *testing.T) {
	farmerRepo := new(mocks.MockFarmerRepo)
	svc := service.NewFarmerService(farmerRepo, new(mocks.MockBillRepo))

	ownerID := uuid.New()
	farmerID := uuid.New()
	existing := &domain.Farmer{ID: farmerID, Mobile: "9876543210", Name: "Suresh"}

	farmerRepo.On("GetByID", mock.Anything, ownerID, farmerID).Return(existing, nil)
	farmerRepo.On("GetByMobile", mock.Anything, ownerID, "9876543210").Return(existing, nil)
	farmerRepo.On("Update", mock.Anything, existing).Return(nil)

	farmer, err := svc.Update(context.Background(), ownerID, farmerID, service.FarmerInput{
		Mobile: "9876543210",
		Name:   "Suresh P",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Suresh P", farmer.Name)
}

func TestFarmerService_Update_RejectsMobileOfAnotherFarmer(t *testing.T) {
	farmerRepo := new(mocks.MockFarmerRepo)
	svc := service.NewFarmerService(farmerRepo, new(mocks.MockBillRepo))

	ownerID := uuid.New()
	farmerID := uuid.New()
	farmerRepo.On("GetByID", mock.Anything, ownerID, farmerID).
		Return(&domain.Farmer{ID: farmerID, Mobile: "9876543210"}, nil)
	farmerRepo.On("GetByMobile", mock.Anything, ownerID, "9123456780").
		Return(&domain.Farmer{ID: uuid.New(), Mobile: "9123456780"}, nil)

	_, err := svc.Update(context.Background(), ownerID, farmerID, service.FarmerInput{
		Mobile: "9123456780",
		Name:   "Suresh",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateMobile)
	farmerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFarmerService_Search_EmptyQuerySkipsRepo(t *testing.T) {
	farmerRepo := new(mocks.MockFarmerRepo)
	svc := service.NewFarmerService(farmerRepo, new(mocks.MockBillRepo))

	farmers, err := svc.Search(context.Background(), uuid.New(), "   ")

	assert.NoError(t, err)
	assert.Empty(t, farmers)
	farmerRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFarmerService_List_ClampsPagination(t *testing.T) {
	farmerRepo := new(mocks.MockFarmerRepo)
	svc := service.NewFarmerService(farmerRepo, new(mocks.MockBillRepo))

	ownerID := uuid.New()
	farmerRepo.On("List", mock.Anything, ownerID, 0, 50).Return([]domain.Farmer{}, 0, nil)

	_, _, err := svc.List(context.Background(), ownerID, -1, 0)
	assert.NoError(t, err)
	farmerRepo.AssertExpectations(t)
}
