package identity

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/hirely/hirely/internal/notification"
)

// OTPEngine generates, stores, validates and expires one-time codes. A single
// code/expiry pair is kept per account, tagged with its purpose; issuing for
// either purpose overwrites whatever was pending before, so only the latest
// code is ever valid.
type OTPEngine struct {
	repo     Repository
	notifier notification.Notifier
	ttl      time.Duration
	now      func() time.Time
	gen      func() (string, error)
}

// NewOTPEngine builds an engine issuing codes valid for ttl.
func NewOTPEngine(repo Repository, notifier notification.Notifier, ttl time.Duration) *OTPEngine {
	return &OTPEngine{repo: repo, notifier: notifier, ttl: ttl, now: time.Now, gen: generateCode}
}

// generateCode draws a 6-digit decimal code uniformly from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// Issue writes a fresh code onto the account, persists it and triggers
// delivery. A delivery failure fails the whole operation.
func (e *OTPEngine) Issue(ctx context.Context, account *Account, purpose string) error {
	code, err := e.gen()
	if err != nil {
		return err
	}

	account.OTPCode = code
	account.OTPExpiry = e.now().Add(e.ttl)
	account.OTPPurpose = purpose

	if err := e.repo.Update(ctx, *account); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	return e.notifier.Send(ctx, notification.Message{
		To:      account.Email,
		OTP:     code,
		Purpose: purpose,
	})
}

// Validate checks the supplied code against the pending one. A pending code
// for a different purpose behaves as absent. Expiry is checked before the
// code itself so a stale code never leaks whether it was correct.
func (e *OTPEngine) Validate(account Account, code, purpose string) error {
	if !account.HasPendingOTP(purpose) {
		return ErrOTPMissing
	}
	if !e.now().Before(account.OTPExpiry) {
		return ErrOTPExpired
	}
	if account.OTPCode != code {
		return ErrOTPMismatch
	}
	return nil
}

// Clear removes the pending code and persists the account.
func (e *OTPEngine) Clear(ctx context.Context, account *Account) error {
	account.OTPCode = ""
	account.OTPExpiry = time.Time{}
	account.OTPPurpose = ""
	if err := e.repo.Update(ctx, *account); err != nil {
		return fmt.Errorf("clear otp: %w", err)
	}
	return nil
}
