package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSMSSender writes OTP codes to the log instead of an SMS gateway.
// Only meant for development deployments.
type LogSMSSender struct {
	log *zap.Logger
}

func NewLogSMSSender(log *zap.Logger) *LogSMSSender {
	return &LogSMSSender{log: log.With(zap.String("channel", "sms"))}
}

func (s *LogSMSSender) SendOTP(ctx context.Context, phone, code string) error {
	s.log.Info("OTP generated",
		zap.String("phone", phone),
		zap.String("otp_code", code),
	)
	return nil
}
