package sms

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Sender dispatches a one-time code to a phone. Real delivery (Twilio etc.)
// is out of scope; the authenticator only depends on this capability.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogSender writes the code to the log instead of sending it. Development
// and test stand-in.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, phone, code string) error {
	log.Info().
		Str("phone", phone).
		Str("code", code).
		Msg("OTP dispatch (log sender)")
	return nil
}
