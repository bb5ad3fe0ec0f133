package noop

import (
	"context"
	"log"

	"bananabill/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op SMSSender that logs codes to stdout.
func NewNoopSender() port.SMSSender {
	return &noopSender{}
}

func (s *noopSender) SendOTP(_ context.Context, mobile, code string) error {
	log.Printf("[NOOP SMS] OTP for %s: %s", mobile, code)
	return nil
}
