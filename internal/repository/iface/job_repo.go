package repository

import (
	"context"

	"jobtrack/internal/domain"
	"jobtrack/internal/query"
)

// JobRepository defines persistence operations for job records. Update and
// Delete return repository.ErrNotFound when the id does not exist.
type JobRepository interface {
	query.Store

	Create(ctx context.Context, job *domain.JobRecord) error
	GetByID(ctx context.Context, jobID string) (*domain.JobRecord, error)
	Update(ctx context.Context, job *domain.JobRecord) error
	Delete(ctx context.Context, jobID string) error
}
