package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service exposes job-board operations.
type Service struct {
	repo  Repository
	cache *ListingCache
}

// NewService builds a jobs service. cache may be nil.
func NewService(repo Repository, cache *ListingCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// JobInput carries the posting fields.
type JobInput struct {
	Title        string
	Company      string
	Location     string
	Type         string
	Description  string
	Requirements []string
}

// Create posts a new job on behalf of createdBy.
func (s *Service) Create(ctx context.Context, input JobInput, createdBy string) (Job, error) {
	if input.Title == "" || input.Company == "" {
		return Job{}, ErrJobValidation
	}
	now := time.Now().UTC()
	job := Job{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Company:      input.Company,
		Location:     input.Location,
		Type:         input.Type,
		Description:  input.Description,
		Requirements: input.Requirements,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return Job{}, fmt.Errorf("create job: %w", err)
	}
	s.cache.Invalidate(ctx)
	return job, nil
}

// List returns all jobs newest first, served from cache when possible.
func (s *Service) List(ctx context.Context) ([]Job, error) {
	if listing, ok := s.cache.Get(ctx); ok {
		return listing, nil
	}
	listing, err := s.repo.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	if listing == nil {
		listing = []Job{}
	}
	s.cache.Set(ctx, listing)
	return listing, nil
}

// Get fetches a single job.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, ErrJobMissing) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// Update overwrites the posting fields.
func (s *Service) Update(ctx context.Context, id string, input JobInput) (Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return Job{}, err
	}
	job.Title = input.Title
	job.Company = input.Company
	job.Location = input.Location
	job.Type = input.Type
	job.Description = input.Description
	job.Requirements = input.Requirements
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if err := s.repo.UpdateJob(ctx, job); err != nil {
		if errors.Is(err, ErrJobMissing) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, fmt.Errorf("update job: %w", err)
	}
	s.cache.Invalidate(ctx)
	return job, nil
}

// Delete removes the posting and every application attached to it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteApplicationsByJob(ctx, id); err != nil {
		return fmt.Errorf("delete applications: %w", err)
	}
	if err := s.repo.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, ErrJobMissing) {
			return ErrJobNotFound
		}
		return fmt.Errorf("delete job: %w", err)
	}
	s.cache.Invalidate(ctx)
	return nil
}

// Apply records an application by accountID for the job.
func (s *Service) Apply(ctx context.Context, jobID, accountID string) (Application, error) {
	if _, err := s.Get(ctx, jobID); err != nil {
		return Application{}, err
	}
	app := Application{
		ID:        uuid.New().String(),
		JobID:     jobID,
		AccountID: accountID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, ErrDuplicateApplication) {
			return Application{}, ErrAlreadyApplied
		}
		return Application{}, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// MyApplications lists the caller's applications.
func (s *Service) MyApplications(ctx context.Context, accountID string) ([]Application, error) {
	apps, err := s.repo.ListApplicationsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if apps == nil {
		apps = []Application{}
	}
	return apps, nil
}
