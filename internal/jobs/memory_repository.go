package jobs

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu           sync.RWMutex
	jobs         map[string]Job
	applications map[string]Application
}

// NewMemoryRepository builds an in-memory jobs store for development and
// testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		jobs:         make(map[string]Job),
		applications: make(map[string]Application),
	}
}

func (r *memoryRepository) CreateJob(_ context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return nil
}

func (r *memoryRepository) GetJob(_ context.Context, id string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, ErrJobMissing
	}
	return job, nil
}

func (r *memoryRepository) ListJobs(_ context.Context) ([]Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		result = append(result, job)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryRepository) UpdateJob(_ context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return ErrJobMissing
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *memoryRepository) DeleteJob(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return ErrJobMissing
	}
	delete(r.jobs, id)
	return nil
}

func (r *memoryRepository) CreateApplication(_ context.Context, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.JobID == app.JobID && existing.AccountID == app.AccountID {
			return ErrDuplicateApplication
		}
	}
	r.applications[app.ID] = app
	return nil
}

func (r *memoryRepository) ListApplicationsByAccount(_ context.Context, accountID string) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []Application
	for _, app := range r.applications {
		if app.AccountID == accountID {
			result = append(result, app)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryRepository) DeleteApplicationsByJob(_ context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, app := range r.applications {
		if app.JobID == jobID {
			delete(r.applications, id)
		}
	}
	return nil
}
