package jobs

import (
	"errors"
	"net/http"
	"time"

	"github.com/hirely/hirely/internal/apperr"
)

// Job is a posted position.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Application links an account to a job it applied for.
type Application struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	AccountID string    `json:"accountId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository sentinels.
var (
	ErrJobMissing           = errors.New("job not found")
	ErrDuplicateApplication = errors.New("application already exists")
)

// Application errors surfaced at the HTTP boundary.
var (
	ErrJobNotFound    = apperr.New(http.StatusNotFound, "JOB_NOT_FOUND", "job not found")
	ErrAlreadyApplied = apperr.New(http.StatusBadRequest, "ALREADY_APPLIED", "you have already applied to this job")
	ErrJobValidation  = apperr.New(http.StatusBadRequest, "VALIDATION_ERROR", "title and company are required")
)
