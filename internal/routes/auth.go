package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hirely/hirely/internal/identity"
)

// RegisterAuthRoutes wires the account lifecycle endpoints.
func RegisterAuthRoutes(r fiber.Router, h *identity.Handler, guard fiber.Handler) {
	r.Post("/register", h.Register)
	r.Post("/verify-email", h.VerifyEmail)
	r.Post("/resend-otp", h.ResendOTP)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)
	r.Post("/login", h.Login)
	r.Put("/profile", guard, h.UpdateProfile)
	r.Delete("/profile", guard, h.DeleteProfile)
}
