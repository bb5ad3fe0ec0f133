package port

import "context"

// SMSSender defines the contract for delivering text messages.
type SMSSender interface {
	SendOTP(ctx context.Context, mobile, code string) error
}
