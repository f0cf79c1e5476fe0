package notify

import (
	"context"
	"log"
)

// ConsoleSender writes reset codes to the process log. It is the default
// delivery channel, standing in for a real mail/SMS integration the same
// way the system has always done.
type ConsoleSender struct{}

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{}
}

func (s *ConsoleSender) SendOTP(ctx context.Context, email, code string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	log.Printf("password reset OTP for %s: %s", email, code)
	return nil
}
