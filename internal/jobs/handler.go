package jobs

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hirely/hirely/internal/middleware"
)

// Handler exposes job-board HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds the jobs HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type jobRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// Create posts a new job. Admin only.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	createdBy, _ := c.Locals(middleware.AccountIDKey).(string)
	job, err := h.svc.Create(c.UserContext(), JobInput(req), createdBy)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(job)
}

// List returns all jobs, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	listing, err := h.svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(listing)
}

// Get returns a single job.
func (h *Handler) Get(c *fiber.Ctx) error {
	job, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(job)
}

// Update rewrites a posting. Admin only.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	job, err := h.svc.Update(c.UserContext(), c.Params("id"), JobInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(job)
}

// Delete removes a posting and its applications. Admin only.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "job deleted"})
}

// Apply records the caller's application for a job.
func (h *Handler) Apply(c *fiber.Ctx) error {
	accountID, _ := c.Locals(middleware.AccountIDKey).(string)
	app, err := h.svc.Apply(c.UserContext(), c.Params("id"), accountID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(app)
}

// MyApplications lists the caller's applications.
func (h *Handler) MyApplications(c *fiber.Ctx) error {
	accountID, _ := c.Locals(middleware.AccountIDKey).(string)
	apps, err := h.svc.MyApplications(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(apps)
}
