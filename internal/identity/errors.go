package identity

import (
	"errors"
	"net/http"

	"github.com/hirely/hirely/internal/apperr"
)

// Repository sentinels, mapped to application errors by the service.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Application errors surfaced at the HTTP boundary.
var (
	ErrValidation      = apperr.New(http.StatusBadRequest, "VALIDATION_ERROR", "all fields required")
	ErrConflict        = apperr.New(http.StatusBadRequest, "USER_EXISTS", "user already exists")
	ErrNotFound        = apperr.New(http.StatusNotFound, "USER_NOT_FOUND", "user not found")
	ErrAlreadyVerified = apperr.New(http.StatusBadRequest, "ALREADY_VERIFIED", "email already verified")
	ErrOTPMissing      = apperr.New(http.StatusBadRequest, "OTP_MISSING", "no code pending, please request a new one")
	ErrOTPMismatch     = apperr.New(http.StatusBadRequest, "OTP_MISMATCH", "invalid code")
	ErrOTPExpired      = apperr.New(http.StatusBadRequest, "OTP_EXPIRED", "code expired, please request a new one")
	ErrUnverified      = apperr.New(http.StatusForbidden, "EMAIL_NOT_VERIFIED", "please verify your email before logging in")
	ErrBadCredentials  = apperr.New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
)
