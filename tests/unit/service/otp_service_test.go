package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"bananabill/internal/domain"
	"bananabill/internal/service"
	"bananabill/mocks"
)

func hashOTP(code string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	return string(hash)
}

func TestOTPService_Send_StoresHashedCodeAndDelivers(t *testing.T) {
	otpRepo := new(mocks.MockOTPRepo)
	sender := new(mocks.MockSMSSender)
	svc := service.NewOTPService(otpRepo, sender)

	var sentCode string
	otpRepo.On("InvalidateForMobile", mock.Anything, "9876543210", domain.OTPActionLogin).Return(nil)
	otpRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.OTP")).
		Run(func(args mock.Arguments) {
			otp := args.Get(1).(*domain.OTP)
			assert.NotEmpty(t, otp.OTPHash)
			assert.True(t, otp.ExpiresAt.After(time.Now()))
		}).Return(nil)
	sender.On("SendOTP", mock.Anything, "9876543210", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sentCode = args.String(2) }).Return(nil)

	err := svc.Send(context.Background(), service.SendOTPInput{
		Mobile: "9876543210",
		Action: domain.OTPActionLogin,
	})

	assert.NoError(t, err)
	assert.Len(t, sentCode, 6)
	otpRepo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestOTPService_Send_InvalidMobile(t *testing.T) {
	svc := service.NewOTPService(new(mocks.MockOTPRepo), new(mocks.MockSMSSender))

	err := svc.Send(context.Background(), service.SendOTPInput{
		Mobile: "12345",
		Action: domain.OTPActionLogin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMobile)
}

func TestOTPService_Send_UnknownAction(t *testing.T) {
	svc := service.NewOTPService(new(mocks.MockOTPRepo), new(mocks.MockSMSSender))

	err := svc.Send(context.Background(), service.SendOTPInput{
		Mobile: "9876543210",
		Action: domain.OTPAction("delete_account"),
	})
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
}

func TestOTPService_Verify_Success(t *testing.T) {
	otpRepo := new(mocks.MockOTPRepo)
	svc := service.NewOTPService(otpRepo, new(mocks.MockSMSSender))

	otp := &domain.OTP{
		Mobile:    "9876543210",
		OTPHash:   hashOTP("123456"),
		Action:    domain.OTPActionLogin,
		ExpiresAt: time.Now().Add(time.Minute),
	}
	otpRepo.On("GetLatest", mock.Anything, "9876543210", domain.OTPActionLogin).Return(otp, nil)
	otpRepo.On("MarkUsed", mock.Anything, otp.ID).Return(nil)

	err := svc.Verify(context.Background(), service.VerifyOTPInput{
		Mobile: "9876543210",
		Code:   "123456",
		Action: domain.OTPActionLogin,
	})

	assert.NoError(t, err)
	otpRepo.AssertCalled(t, "MarkUsed", mock.Anything, otp.ID)
}

func TestOTPService_Verify_WrongCode(t *testing.T) {
	otpRepo := new(mocks.MockOTPRepo)
	svc := service.NewOTPService(otpRepo, new(mocks.MockSMSSender))

	otp := &domain.OTP{
		Mobile:    "9876543210",
		OTPHash:   hashOTP("123456"),
		Action:    domain.OTPActionLogin,
		ExpiresAt: time.Now().Add(time.Minute),
	}
	otpRepo.On("GetLatest", mock.Anything, "9876543210", domain.OTPActionLogin).Return(otp, nil)

	err := svc.Verify(context.Background(), service.VerifyOTPInput{
		Mobile: "9876543210",
		Code:   "654321",
		Action: domain.OTPActionLogin,
	})

	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
	otpRepo.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything)
}

func TestOTPService_Verify_Expired(t *testing.T) {
	otpRepo := new(mocks.MockOTPRepo)
	svc := service.NewOTPService(otpRepo, new(mocks.MockSMSSender))

	otp := &domain.OTP{
		Mobile:    "9876543210",
		OTPHash:   hashOTP("123456"),
		Action:    domain.OTPActionLogin,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	otpRepo.On("GetLatest", mock.Anything, "9876543210", domain.OTPActionLogin).Return(otp, nil)

	err := svc.Verify(context.Background(), service.VerifyOTPInput{
		Mobile: "9876543210",
		Code:   "123456",
		Action: domain.OTPActionLogin,
	})
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
}

func TestOTPService_Verify_AlreadyUsed(t *testing.T) {
	otpRepo := new(mocks.MockOTPRepo)
	svc := service.NewOTPService(otpRepo, new(mocks.MockSMSSender))

	otp := &domain.OTP{
		Mobile:    "9876543210",
		OTPHash:   hashOTP("123456"),
		Action:    domain.OTPActionLogin,
		ExpiresAt: time.Now().Add(time.Minute),
		Used:      true,
	}
	otpRepo.On("GetLatest", mock.Anything, "9876543210", domain.OTPActionLogin).Return(otp, nil)

	err := svc.Verify(context.Background(), service.VerifyOTPInput{
		Mobile: "9876543210",
		Code:   "123456",
		Action: domain.OTPActionLogin,
	})
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
}

func TestOTPService_Verify_ActionScoped(t *testing.T) {
	otpRepo := new(mocks.MockOTPRepo)
	svc := service.NewOTPService(otpRepo, new(mocks.MockSMSSender))

	// No unused register OTP exists for this mobile.
	otpRepo.On("GetLatest", mock.Anything, "9876543210", domain.OTPActionRegister).
		Return(nil, domain.ErrOTPInvalid)

	err := svc.Verify(context.Background(), service.VerifyOTPInput{
		Mobile: "9876543210",
		Code:   "123456",
		Action: domain.OTPActionRegister,
	})
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
}
