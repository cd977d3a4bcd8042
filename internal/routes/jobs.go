package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hirely/hirely/internal/jobs"
	"github.com/hirely/hirely/internal/middleware"
)

// RegisterJobRoutes wires job-board endpoints. Listing and lookup are public;
// mutations require an admin, applying requires any authenticated account.
func RegisterJobRoutes(r fiber.Router, h *jobs.Handler, guard fiber.Handler) {
	admin := middleware.RequireAdmin()

	r.Get("/jobs", h.List)
	r.Get("/jobs/:id", h.Get)
	r.Post("/jobs", guard, admin, h.Create)
	r.Put("/jobs/:id", guard, admin, h.Update)
	r.Delete("/jobs/:id", guard, admin, h.Delete)

	r.Post("/jobs/:id/apply", guard, h.Apply)
	r.Get("/applications", guard, h.MyApplications)
}
