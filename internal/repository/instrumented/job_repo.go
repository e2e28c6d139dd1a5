// Package instrumented decorates a JobRepository with operation metrics.
package instrumented

import (
	"context"
	"time"

	"jobtrack/internal/domain"
	"jobtrack/internal/metrics"
	"jobtrack/internal/query"
	repositoryIface "jobtrack/internal/repository/iface"
)

type jobRepository struct {
	next     repositoryIface.JobRepository
	recorder metrics.Recorder
}

// NewJobRepository wraps next so every call is timed and counted
func NewJobRepository(next repositoryIface.JobRepository, recorder metrics.Recorder) repositoryIface.JobRepository {
	return &jobRepository{next: next, recorder: recorder}
}

func (r *jobRepository) observe(operation string, start time.Time, err error) {
	r.recorder.StoreOperation(operation, time.Since(start), err)
}

func (r *jobRepository) Create(ctx context.Context, job *domain.JobRecord) (err error) {
	defer func(start time.Time) { r.observe("create", start, err) }(time.Now())
	return r.next.Create(ctx, job)
}

func (r *jobRepository) GetByID(ctx context.Context, jobID string) (job *domain.JobRecord, err error) {
	defer func(start time.Time) { r.observe("get", start, err) }(time.Now())
	return r.next.GetByID(ctx, jobID)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.JobRecord) (err error) {
	defer func(start time.Time) { r.observe("update", start, err) }(time.Now())
	return r.next.Update(ctx, job)
}

func (r *jobRepository) Delete(ctx context.Context, jobID string) (err error) {
	defer func(start time.Time) { r.observe("delete", start, err) }(time.Now())
	return r.next.Delete(ctx, jobID)
}

func (r *jobRepository) Find(ctx context.Context, spec query.FindSpec) (jobs []*domain.JobRecord, err error) {
	defer func(start time.Time) { r.observe("find", start, err) }(time.Now())
	return r.next.Find(ctx, spec)
}

func (r *jobRepository) Count(ctx context.Context, filter query.FilterSpec) (total int64, err error) {
	defer func(start time.Time) { r.observe("count", start, err) }(time.Now())
	return r.next.Count(ctx, filter)
}

func (r *jobRepository) Aggregate(ctx context.Context, spec query.GroupSpec) (groups []query.Group, err error) {
	defer func(start time.Time) { r.observe("aggregate_"+spec.Key.String(), start, err) }(time.Now())
	return r.next.Aggregate(ctx, spec)
}
