package identity

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the account lifecycle HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds the identity HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// UserResponse is the outward account shape. Password and OTP fields are
// never serialized.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Mobile   string `json:"mobile"`
	Linkedin string `json:"linkedin"`
}

// NewUserResponse strips an account down to its public fields.
func NewUserResponse(a Account) UserResponse {
	return UserResponse{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		Role:     a.Role,
		Mobile:   a.Mobile,
		Linkedin: a.Linkedin,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an unverified account and sends a verification code.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	account, err := h.svc.Register(c.UserContext(), RegisterInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "verification code sent, please verify your email",
		"email":   account.Email,
	})
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyEmail consumes the verification code.
func (h *Handler) VerifyEmail(c *fiber.Ctx) error {
	var req verifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.VerifyEmail(c.UserContext(), req.Email, req.OTP); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "email verified successfully"})
}

type emailRequest struct {
	Email string `json:"email"`
}

// ResendOTP re-sends the verification code to a pending account.
func (h *Handler) ResendOTP(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.ResendVerificationOTP(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "a new verification code has been sent to your email"})
}

// ForgotPassword issues a password-reset code.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "password reset code sent to your email",
		"email":   req.Email,
	})
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

// ResetPassword consumes the reset code and replaces the password.
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.ResetPassword(c.UserContext(), req.Email, req.OTP, req.Password); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "password reset successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a verified account and returns a session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	account, token, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  NewUserResponse(account),
	})
}

type profileRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Linkedin string `json:"linkedin"`
}

// UpdateProfile overwrites the caller's mutable profile fields.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	account, token, err := h.svc.UpdateProfile(c.UserContext(), accountID, ProfileInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  NewUserResponse(account),
	})
}

// DeleteProfile removes the caller's account.
func (h *Handler) DeleteProfile(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	if err := h.svc.DeleteProfile(c.UserContext(), accountID); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "profile deleted successfully"})
}
