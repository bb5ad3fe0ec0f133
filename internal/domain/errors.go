package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateMobile     = errors.New("mobile number already registered")
	ErrInvalidMobile       = errors.New("invalid mobile number")
	ErrWeakPassword        = errors.New("password does not meet the policy")
	ErrBillNotFound        = errors.New("bill not found")
	ErrFarmerNotFound      = errors.New("farmer not found")
	ErrInvalidBillInput    = errors.New("invalid bill input")
	ErrInvalidPayment      = errors.New("payment amount must be positive")
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid, revoked, or expired")
	ErrOTPInvalid          = errors.New("otp is invalid, expired, or already used")
	ErrUnsupportedImage    = errors.New("unsupported image type")
	ErrImageTooLarge       = errors.New("image exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("image upload to storage failed")
)
