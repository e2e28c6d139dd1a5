// Package memory keeps job records in process. It backs local development
// and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"jobtrack/internal/domain"
	"jobtrack/internal/logger"
	"jobtrack/internal/query"
	"jobtrack/internal/repository"
	repositoryIface "jobtrack/internal/repository/iface"
)

type jobRepository struct {
	mu     sync.RWMutex
	jobs   map[string]*domain.JobRecord
	order  []string
	logger logger.Logger
}

// NewJobRepository creates an empty in-memory job repository
func NewJobRepository(log logger.Logger) repositoryIface.JobRepository {
	return &jobRepository{
		jobs:   make(map[string]*domain.JobRecord),
		logger: log.With(logger.String("component", "memory_job_repository")),
	}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.JobRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.ID]; exists {
		return fmt.Errorf("job already exists: %s", job.ID)
	}
	r.jobs[job.ID] = cloneJob(job)
	r.order = append(r.order, job.ID)

	r.logger.Debug("job stored", logger.String("job_id", job.ID))
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, jobID string) (*domain.JobRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, jobID)
	}
	return cloneJob(job), nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.JobRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; !ok {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, job.ID)
	}
	r.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[jobID]; !ok {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, jobID)
	}
	delete(r.jobs, jobID)
	for i, id := range r.order {
		if id == jobID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *jobRepository) Find(ctx context.Context, spec query.FindSpec) ([]*domain.JobRecord, error) {
	selected := query.Select(r.snapshot(), spec)
	out := make([]*domain.JobRecord, len(selected))
	for i, job := range selected {
		out[i] = cloneJob(job)
	}
	return out, nil
}

func (r *jobRepository) Count(ctx context.Context, filter query.FilterSpec) (int64, error) {
	var n int64
	for _, job := range r.snapshot() {
		if filter.Matches(job) {
			n++
		}
	}
	return n, nil
}

func (r *jobRepository) Aggregate(ctx context.Context, spec query.GroupSpec) ([]query.Group, error) {
	return query.GroupSum(r.snapshot(), spec), nil
}

// snapshot returns the records in insertion order.
func (r *jobRepository) snapshot() []*domain.JobRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := make([]*domain.JobRecord, 0, len(r.order))
	for _, id := range r.order {
		jobs = append(jobs, r.jobs[id])
	}
	return jobs
}

func cloneJob(job *domain.JobRecord) *domain.JobRecord {
	c := *job
	return &c
}
