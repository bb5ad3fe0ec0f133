package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bananabill/internal/domain"
	"bananabill/internal/port"
)

const otpExpiry = 5 * time.Minute

// SendOTPInput is the DTO for OTP delivery requests.
type SendOTPInput struct {
	Mobile string           `json:"mobile" binding:"required"`
	Action domain.OTPAction `json:"action" binding:"required"`
}

// VerifyOTPInput is the DTO for OTP verification requests.
type VerifyOTPInput struct {
	Mobile string           `json:"mobile" binding:"required"`
	Code   string           `json:"code" binding:"required"`
	Action domain.OTPAction `json:"action" binding:"required"`
}

// OTPService issues and verifies one-time passwords. Codes are stored hashed
// and are single-use; issuing a new code invalidates earlier ones for the
// same mobile and action.
type OTPService interface {
	Send(ctx context.Context, input SendOTPInput) error
	Verify(ctx context.Context, input VerifyOTPInput) error
}

type otpService struct {
	otpRepo port.OTPRepository
	sender  port.SMSSender
}

// NewOTPService creates a new OTPService implementation.
func NewOTPService(otpRepo port.OTPRepository, sender port.SMSSender) OTPService {
	return &otpService{otpRepo: otpRepo, sender: sender}
}

func (s *otpService) Send(ctx context.Context, input SendOTPInput) error {
	if !mobileRe.MatchString(input.Mobile) {
		return domain.ErrInvalidMobile
	}
	if !domain.ValidOTPActions[input.Action] {
		return domain.ErrOTPInvalid
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("otp.Send: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("otp.Send: %w", err)
	}

	if err := s.otpRepo.InvalidateForMobile(ctx, input.Mobile, input.Action); err != nil {
		return err
	}

	otp := &domain.OTP{
		Mobile:    input.Mobile,
		OTPHash:   string(hash),
		Action:    input.Action,
		ExpiresAt: time.Now().Add(otpExpiry),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return err
	}

	return s.sender.SendOTP(ctx, input.Mobile, code)
}

func (s *otpService) Verify(ctx context.Context, input VerifyOTPInput) error {
	if !mobileRe.MatchString(input.Mobile) {
		return domain.ErrInvalidMobile
	}

	otp, err := s.otpRepo.GetLatest(ctx, input.Mobile, input.Action)
	if err != nil {
		if errors.Is(err, domain.ErrOTPInvalid) {
			return domain.ErrOTPInvalid
		}
		return fmt.Errorf("otp.Verify: %w", err)
	}
	if otp.Used || otp.IsExpired() {
		return domain.ErrOTPInvalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(otp.OTPHash), []byte(input.Code)); err != nil {
		return domain.ErrOTPInvalid
	}

	return s.otpRepo.MarkUsed(ctx, otp.ID)
}

// generateOTPCode returns a 6-digit zero-padded code.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
