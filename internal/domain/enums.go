package domain

// PaymentStatus represents how much of a bill's net amount has been paid.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// ValidPaymentStatuses lists all accepted payment statuses.
var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentStatusUnpaid:  true,
	PaymentStatusPartial: true,
	PaymentStatusPaid:    true,
}

// PaymentType classifies a payment history entry.
type PaymentType string

const (
	PaymentTypePayment    PaymentType = "PAYMENT"
	PaymentTypeAdjustment PaymentType = "ADJUSTMENT"
)

// OTPAction identifies the flow an OTP was issued for. An OTP issued for one
// action cannot be verified for another.
type OTPAction string

const (
	OTPActionLogin         OTPAction = "login"
	OTPActionRegister      OTPAction = "register"
	OTPActionResetPassword OTPAction = "reset_password"
)

// ValidOTPActions lists all accepted OTP actions.
var ValidOTPActions = map[OTPAction]bool{
	OTPActionLogin:         true,
	OTPActionRegister:      true,
	OTPActionResetPassword: true,
}

// ImageType represents the allowed bill image types for upload.
type ImageType string

const (
	ImageTypeJPG ImageType = "jpg"
	ImageTypePNG ImageType = "png"
)

// AllowedImageContentTypes maps MIME content types to ImageType.
var AllowedImageContentTypes = map[string]ImageType{
	"image/jpeg": ImageTypeJPG,
	"image/png":  ImageTypePNG,
}
