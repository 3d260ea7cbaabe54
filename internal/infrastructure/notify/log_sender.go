// Package notify delivers password-reset OTPs. Only the logging sender
// exists today; an SMTP sender would slot in behind the same interface.
package notify

import (
	"context"

	"github.com/clinova/clinic-api/internal/application/auth"
	"github.com/clinova/clinic-api/pkg/logger"
)

var _ auth.OTPSender = (*LogSender)(nil)

// LogSender writes OTPs to the application log instead of sending mail.
// For development and staging only.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender builds the sender.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

// SendOTP logs the code for the address.
func (s *LogSender) SendOTP(_ context.Context, email, otp string) error {
	s.log.Info().Str("email", email).Str("otp", otp).Msg("password reset OTP issued")
	return nil
}
