package notification

import (
	"context"
	"log/slog"
)

const (
	// PurposeVerifyEmail tags codes sent to confirm a new account's email.
	PurposeVerifyEmail = "VERIFY_EMAIL"
	// PurposeResetPassword tags codes sent to authorize a password reset.
	PurposeResetPassword = "RESET_PASSWORD"
)

// Message describes a one-time-code delivery.
type Message struct {
	To      string
	OTP     string
	Purpose string
}

// Notifier delivers one-time codes to account owners.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes deliveries to the
// logger. Used in development and tests instead of a real mail provider.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("otp delivery", "to", message.To, "purpose", message.Purpose)
	return nil
}
