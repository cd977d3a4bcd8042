package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hirely/hirely/internal/auth"
	"github.com/hirely/hirely/internal/notification"
)

type captureNotifier struct {
	msgs []notification.Message
	fail bool
}

func (c *captureNotifier) Send(_ context.Context, m notification.Message) error {
	if c.fail {
		return errors.New("delivery failed")
	}
	c.msgs = append(c.msgs, m)
	return nil
}

func (c *captureNotifier) last() notification.Message {
	if len(c.msgs) == 0 {
		return notification.Message{}
	}
	return c.msgs[len(c.msgs)-1]
}

func newTestService(t *testing.T) (*Service, *captureNotifier, *OTPEngine) {
	t.Helper()
	repo := NewMemoryRepository()
	notifier := &captureNotifier{}
	engine := NewOTPEngine(repo, notifier, 10*time.Minute)
	tokens := auth.NewIssuer("test-secret", time.Hour)
	svc := NewService(repo, engine, tokens, "admin@hirely.app")
	return svc, notifier, engine
}

func register(t *testing.T, svc *Service, email string) Account {
	t.Helper()
	account, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: email, Password: "pw123"})
	require.NoError(t, err)
	return account
}

func registerVerified(t *testing.T, svc *Service, notifier *captureNotifier, email string) Account {
	t.Helper()
	account := register(t, svc, email)
	require.NoError(t, svc.VerifyEmail(context.Background(), email, notifier.last().OTP))
	return account
}

func TestRegisterVerifyLogin(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	ctx := context.Background()

	account := register(t, svc, "ada@x.com")
	require.False(t, account.EmailVerified)
	require.Equal(t, RoleUser, account.Role)
	require.Equal(t, notification.PurposeVerifyEmail, notifier.last().Purpose)
	require.Len(t, notifier.last().OTP, 6)

	require.NoError(t, svc.VerifyEmail(ctx, "ada@x.com", notifier.last().OTP))

	logged, token, err := svc.Login(ctx, "ada@x.com", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, logged.EmailVerified)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "", Password: "pw"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestRegisterAdminRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	account := register(t, svc, "Admin@Hirely.app")
	require.Equal(t, RoleAdmin, account.Role)
	require.Equal(t, "admin@hirely.app", account.Email)
}

func TestRegisterDuplicateVerifiedConflicts(t *testing.T) {
	svc, notifier, _ := newTestService(t)

	registerVerified(t, svc, notifier, "ada@x.com")

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ADA@X.COM", Password: "other"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestRegisterDuplicatePendingResends(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	ctx := context.Background()

	register(t, svc, "ada@x.com")
	require.Len(t, notifier.msgs, 1)

	pending, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "pw123"})
	require.NoError(t, err)
	require.False(t, pending.EmailVerified)
	require.Len(t, notifier.msgs, 2)

	// Only the latest code verifies.
	require.NoError(t, svc.VerifyEmail(ctx, "ada@x.com", notifier.last().OTP))
}

func TestRegisterDeliveryFailureFailsRegistration(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	notifier.fail = true

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "pw123"})
	require.Error(t, err)
}

func TestVerifyEmailFailures(t *testing.T) {
	svc, notifier, engine := newTestService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.VerifyEmail(ctx, "ghost@x.com", "123456"), ErrNotFound)

	register(t, svc, "ada@x.com")
	code := notifier.last().OTP

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	require.ErrorIs(t, svc.VerifyEmail(ctx, "ada@x.com", wrong), ErrOTPMismatch)

	// At and past the expiry instant the right code fails as expired.
	engine.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	require.ErrorIs(t, svc.VerifyEmail(ctx, "ada@x.com", code), ErrOTPExpired)

	engine.now = time.Now
	require.NoError(t, svc.VerifyEmail(ctx, "ada@x.com", code))
	require.ErrorIs(t, svc.VerifyEmail(ctx, "ada@x.com", code), ErrAlreadyVerified)
}

func TestResendVerificationOTP(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.ResendVerificationOTP(ctx, "ghost@x.com"), ErrNotFound)

	registerVerified(t, svc, notifier, "ada@x.com")
	require.ErrorIs(t, svc.ResendVerificationOTP(ctx, "ada@x.com"), ErrAlreadyVerified)

	register(t, svc, "bob@x.com")
	require.NoError(t, svc.ResendVerificationOTP(ctx, "bob@x.com"))
	require.NoError(t, svc.VerifyEmail(ctx, "bob@x.com", notifier.last().OTP))
}

func TestForgotPasswordDoesNotEnumerate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	// Unknown and unverified accounts produce the identical response.
	unknownErr := svc.ForgotPassword(ctx, "ghost@x.com")
	require.ErrorIs(t, unknownErr, ErrNotFound)

	register(t, svc, "ada@x.com")
	pendingErr := svc.ForgotPassword(ctx, "ada@x.com")
	require.ErrorIs(t, pendingErr, ErrNotFound)
	require.Equal(t, unknownErr, pendingErr)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	ctx := context.Background()

	registerVerified(t, svc, notifier, "ada@x.com")

	require.NoError(t, svc.ForgotPassword(ctx, "ada@x.com"))
	require.Equal(t, notification.PurposeResetPassword, notifier.last().Purpose)
	code := notifier.last().OTP

	require.NoError(t, svc.ResetPassword(ctx, "ada@x.com", code, "newpw456"))

	_, _, err := svc.Login(ctx, "ada@x.com", "pw123")
	require.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login(ctx, "ada@x.com", "newpw456")
	require.NoError(t, err)

	// The code is cleared on consumption: replay fails as missing.
	require.ErrorIs(t, svc.ResetPassword(ctx, "ada@x.com", code, "again789"), ErrOTPMissing)
}

func TestResetPasswordValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	require.ErrorIs(t, svc.ResetPassword(context.Background(), "ada@x.com", "", "pw"), ErrValidation)
}

func TestResetPasswordRejectsVerificationCode(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	ctx := context.Background()

	register(t, svc, "ada@x.com")
	code := notifier.last().OTP

	// A pending verification code must not authorize a password reset.
	require.ErrorIs(t, svc.ResetPassword(ctx, "ada@x.com", code, "newpw456"), ErrOTPMissing)
}

func TestLoginUnverifiedNeverRevealsPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	register(t, svc, "ada@x.com")

	_, _, rightErr := svc.Login(ctx, "ada@x.com", "pw123")
	_, _, wrongErr := svc.Login(ctx, "ada@x.com", "nope")
	require.ErrorIs(t, rightErr, ErrUnverified)
	require.Equal(t, rightErr, wrongErr)
}

func TestLoginFailures(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "ghost@x.com", "pw123")
	require.ErrorIs(t, err, ErrNotFound)

	registerVerified(t, svc, notifier, "ada@x.com")
	_, _, err = svc.Login(ctx, "ada@x.com", "wrong")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestUpdateProfileOverwrites(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	ctx := context.Background()

	account := registerVerified(t, svc, notifier, "ada@x.com")

	updated, token, err := svc.UpdateProfile(ctx, account.ID, ProfileInput{Name: "Ada L.", Mobile: "555", Linkedin: "in/ada"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "Ada L.", updated.Name)
	require.Equal(t, "555", updated.Mobile)

	// Empty inputs overwrite too: no partial-update merge.
	updated, _, err = svc.UpdateProfile(ctx, account.ID, ProfileInput{})
	require.NoError(t, err)
	require.Empty(t, updated.Name)
	require.Empty(t, updated.Mobile)
	require.Empty(t, updated.Linkedin)
}

func TestDeleteProfile(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	ctx := context.Background()

	account := registerVerified(t, svc, notifier, "ada@x.com")
	require.NoError(t, svc.DeleteProfile(ctx, account.ID))

	_, _, err := svc.Login(ctx, "ada@x.com", "pw123")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.DeleteProfile(ctx, account.ID), ErrNotFound)
}
