package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hirely/hirely/internal/apperr"
	"github.com/hirely/hirely/internal/auth"
	"github.com/hirely/hirely/internal/identity"
)

// Locals keys populated by RequireAuth for downstream handlers.
const (
	AccountIDKey   = "account_id"
	AccountRoleKey = "account_role"
)

// Guard failures. All surface as 401 but carry distinct machine codes so
// clients can tell a bad session from a removed account.
var (
	ErrNoToken      = apperr.New(http.StatusUnauthorized, "NO_TOKEN", "no token provided")
	ErrInvalidToken = apperr.New(http.StatusUnauthorized, "INVALID_TOKEN", "session expired or invalid token, please login again")
	ErrUserDeleted  = apperr.New(http.StatusUnauthorized, "USER_DELETED", "account no longer exists, please login again")
	ErrAdminOnly    = apperr.New(http.StatusForbidden, "ADMIN_ONLY", "admin access required")
)

// RequireAuth resolves the bearer token to a live account on every protected
// request and attaches its id and role to the request locals.
func RequireAuth(tokens *auth.Issuer, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return ErrNoToken
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		accountID, err := tokens.Verify(tokenStr)
		if err != nil {
			return ErrInvalidToken
		}

		account, err := repo.FindByID(c.UserContext(), accountID)
		if err != nil {
			return ErrUserDeleted
		}

		c.Locals(AccountIDKey, account.ID)
		c.Locals(AccountRoleKey, account.Role)
		return c.Next()
	}
}

// RequireAdmin gates a route to accounts holding the admin role. Must run
// after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(AccountRoleKey).(string)
		if role != identity.RoleAdmin {
			return ErrAdminOnly
		}
		return c.Next()
	}
}
