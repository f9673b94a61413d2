package provider

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
)

// VerificationSender delivers one-time verification codes to a contact address.
type VerificationSender interface {
	SendEmailCode(ctx context.Context, email, code string) error
	SendSMSCode(ctx context.Context, phone, code string) error
}

// LogVerificationSender is the development sender: it writes the code to the
// log instead of dispatching real mail or SMS. Swapped for a real gateway by
// configuration in deployed environments.
type LogVerificationSender struct {
	logger *slog.Logger
}

// NewLogVerificationSender creates a sender that logs codes.
func NewLogVerificationSender(logger *slog.Logger) *LogVerificationSender {
	return &LogVerificationSender{logger: logger}
}

func (s *LogVerificationSender) SendEmailCode(_ context.Context, email, code string) error {
	s.logger.Info("verification code issued", "channel", "email", "to", email, "code", code)
	return nil
}

func (s *LogVerificationSender) SendSMSCode(_ context.Context, phone, code string) error {
	s.logger.Info("verification code issued", "channel", "sms", "to", phone, "code", code)
	return nil
}

// GenerateCode returns a 6-digit numeric code from crypto/rand.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
