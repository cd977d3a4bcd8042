package identity

import "time"

const (
	// RoleUser is the default role for registered accounts.
	RoleUser = "user"
	// RoleAdmin is granted at creation when the email matches the configured
	// admin address. Immutable through this flow afterwards.
	RoleAdmin = "admin"
)

// Account is the persisted credential record. The OTP triple is transient:
// present only while a verification or reset cycle is pending, cleared on
// success. A code whose expiry is unset is treated as absent.
type Account struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  []byte
	Role          string
	Mobile        string
	Linkedin      string
	EmailVerified bool
	OTPCode       string
	OTPExpiry     time.Time
	OTPPurpose    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasPendingOTP reports whether a usable code is stored for the purpose.
func (a Account) HasPendingOTP(purpose string) bool {
	return a.OTPCode != "" && !a.OTPExpiry.IsZero() && a.OTPPurpose == purpose
}
