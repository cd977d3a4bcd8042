package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hirely/hirely/internal/auth"
	"github.com/hirely/hirely/internal/notification"
)

// Service orchestrates the account lifecycle: registration, email
// verification, login, password reset, profile updates and deletion.
type Service struct {
	repo       Repository
	otp        *OTPEngine
	tokens     *auth.Issuer
	adminEmail string
}

// NewService creates the identity service. adminEmail grants the admin role
// at registration time when it matches the new account's email.
func NewService(repo Repository, otp *OTPEngine, tokens *auth.Issuer, adminEmail string) *Service {
	return &Service{repo: repo, otp: otp, tokens: tokens, adminEmail: strings.ToLower(adminEmail)}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an unverified account and issues a verification code. If
// the email already belongs to an unverified account, the code is re-issued
// instead of creating a duplicate; a verified account is a conflict.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Account, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return Account{}, ErrValidation
	}
	email := normalizeEmail(input.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.EmailVerified {
			return Account{}, ErrConflict
		}
		// Resend on duplicate registration of a pending account.
		if err := s.otp.Issue(ctx, &existing, notification.PurposeVerifyEmail); err != nil {
			return Account{}, err
		}
		return existing, nil
	case !errors.Is(err, ErrAccountNotFound):
		return Account{}, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	role := RoleUser
	if s.adminEmail != "" && email == s.adminEmail {
		role = RoleAdmin
	}

	now := time.Now().UTC()
	account := Account{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Account{}, ErrConflict
		}
		return Account{}, fmt.Errorf("create account: %w", err)
	}

	if err := s.otp.Issue(ctx, &account, notification.PurposeVerifyEmail); err != nil {
		return Account{}, err
	}
	return account, nil
}

// VerifyEmail consumes a verification code and flips the account to verified.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	account, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.EmailVerified {
		return ErrAlreadyVerified
	}
	if err := s.otp.Validate(account, code, notification.PurposeVerifyEmail); err != nil {
		return err
	}
	account.EmailVerified = true
	return s.otp.Clear(ctx, &account)
}

// ResendVerificationOTP re-issues a verification code for a pending account.
// No cooldown is enforced.
func (s *Service) ResendVerificationOTP(ctx context.Context, email string) error {
	account, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.EmailVerified {
		return ErrAlreadyVerified
	}
	return s.otp.Issue(ctx, &account, notification.PurposeVerifyEmail)
}

// ForgotPassword issues a reset code. Missing and unverified accounts return
// the same not-found response so this path cannot enumerate accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !account.EmailVerified {
		return ErrNotFound
	}
	return s.otp.Issue(ctx, &account, notification.PurposeResetPassword)
}

// ResetPassword consumes a reset code and replaces the password.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if email == "" || code == "" || newPassword == "" {
		return ErrValidation
	}
	account, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.otp.Validate(account, code, notification.PurposeResetPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = hash
	return s.otp.Clear(ctx, &account)
}

// Login verifies the password of a verified account and mints a session
// token. The verification check runs before the password comparison so an
// unverified login never reveals whether the password was correct.
func (s *Service) Login(ctx context.Context, email, password string) (Account, string, error) {
	account, err := s.findByEmail(ctx, email)
	if err != nil {
		return Account{}, "", err
	}
	if !account.EmailVerified {
		return Account{}, "", ErrUnverified
	}
	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return Account{}, "", ErrBadCredentials
	}
	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return Account{}, "", fmt.Errorf("issue token: %w", err)
	}
	return account, token, nil
}

// ProfileInput carries the mutable profile fields. Values overwrite the
// stored ones unconditionally; there is no partial-update merge.
type ProfileInput struct {
	Name     string
	Mobile   string
	Linkedin string
}

// UpdateProfile overwrites the profile fields and returns a refreshed token.
func (s *Service) UpdateProfile(ctx context.Context, accountID string, input ProfileInput) (Account, string, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return Account{}, "", ErrNotFound
		}
		return Account{}, "", fmt.Errorf("lookup account: %w", err)
	}
	account.Name = input.Name
	account.Mobile = input.Mobile
	account.Linkedin = input.Linkedin
	if err := s.repo.Update(ctx, account); err != nil {
		return Account{}, "", fmt.Errorf("update account: %w", err)
	}
	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return Account{}, "", fmt.Errorf("issue token: %w", err)
	}
	return account, token, nil
}

// DeleteProfile removes the account record.
func (s *Service) DeleteProfile(ctx context.Context, accountID string) error {
	if err := s.repo.Delete(ctx, accountID); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (Account, error) {
	if email == "" {
		return Account{}, ErrValidation
	}
	account, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("lookup account: %w", err)
	}
	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
