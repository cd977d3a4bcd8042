package identity

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/hirely/hirely/internal/notification"
)

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		code, err := generateCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code out of range: %d", n)
		}
	}
}

func TestValidateMissing(t *testing.T) {
	t.Parallel()

	engine := NewOTPEngine(NewMemoryRepository(), notification.NewLoggerNotifier(nil), 10*time.Minute)

	err := engine.Validate(Account{}, "123456", notification.PurposeVerifyEmail)
	if !errors.Is(err, ErrOTPMissing) {
		t.Fatalf("expected ErrOTPMissing, got %v", err)
	}

	// A code without an expiry is treated as absent.
	err = engine.Validate(Account{OTPCode: "123456", OTPPurpose: notification.PurposeVerifyEmail}, "123456", notification.PurposeVerifyEmail)
	if !errors.Is(err, ErrOTPMissing) {
		t.Fatalf("expected ErrOTPMissing for missing expiry, got %v", err)
	}
}

func TestValidatePurposeMismatch(t *testing.T) {
	t.Parallel()

	engine := NewOTPEngine(NewMemoryRepository(), notification.NewLoggerNotifier(nil), 10*time.Minute)
	account := Account{
		OTPCode:    "123456",
		OTPExpiry:  time.Now().Add(time.Minute),
		OTPPurpose: notification.PurposeVerifyEmail,
	}

	err := engine.Validate(account, "123456", notification.PurposeResetPassword)
	if !errors.Is(err, ErrOTPMissing) {
		t.Fatalf("expected ErrOTPMissing for wrong purpose, got %v", err)
	}
}

func TestValidateExpiredBeatsMismatch(t *testing.T) {
	t.Parallel()

	engine := NewOTPEngine(NewMemoryRepository(), notification.NewLoggerNotifier(nil), 10*time.Minute)
	expiry := time.Now().Add(time.Minute)
	engine.now = func() time.Time { return expiry } // exactly at the expiry instant

	account := Account{
		OTPCode:    "123456",
		OTPExpiry:  expiry,
		OTPPurpose: notification.PurposeVerifyEmail,
	}

	// Correct and incorrect codes both fail as expired: expiry never leaks
	// whether the code was right.
	for _, code := range []string{"123456", "000000"} {
		if err := engine.Validate(account, code, notification.PurposeVerifyEmail); !errors.Is(err, ErrOTPExpired) {
			t.Fatalf("code %s: expected ErrOTPExpired, got %v", code, err)
		}
	}
}

func TestValidateMismatch(t *testing.T) {
	t.Parallel()

	engine := NewOTPEngine(NewMemoryRepository(), notification.NewLoggerNotifier(nil), 10*time.Minute)
	account := Account{
		OTPCode:    "123456",
		OTPExpiry:  time.Now().Add(time.Minute),
		OTPPurpose: notification.PurposeVerifyEmail,
	}

	if err := engine.Validate(account, "654321", notification.PurposeVerifyEmail); !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}
	if err := engine.Validate(account, "123456", notification.PurposeVerifyEmail); err != nil {
		t.Fatalf("expected valid code to pass, got %v", err)
	}
}

func TestIssueOverwritesPreviousCode(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepository()
	notifier := &captureNotifier{}
	engine := NewOTPEngine(repo, notifier, 10*time.Minute)

	codes := []string{"111111", "222222"}
	engine.gen = func() (string, error) {
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}

	ctx := context.Background()
	account := Account{ID: "id-1", Email: "a@x.com"}
	if err := repo.Create(ctx, account); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := engine.Issue(ctx, &account, notification.PurposeVerifyEmail); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := engine.Issue(ctx, &account, notification.PurposeVerifyEmail); err != nil {
		t.Fatalf("reissue: %v", err)
	}

	if err := engine.Validate(account, "111111", notification.PurposeVerifyEmail); !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("expected stale code to mismatch, got %v", err)
	}
	if err := engine.Validate(account, "222222", notification.PurposeVerifyEmail); err != nil {
		t.Fatalf("expected latest code to pass, got %v", err)
	}
	if len(notifier.msgs) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(notifier.msgs))
	}
}
