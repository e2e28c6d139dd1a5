package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobtrack/internal/domain"
	"jobtrack/internal/logger"
	"jobtrack/internal/query"
	"jobtrack/internal/repository"
	repositoryIface "jobtrack/internal/repository/iface"
)

// JobInput carries caller-supplied fields for create and update. Nil
// pointers leave the field at its default (create) or current value (update).
// Empty enum or date strings count as not supplied.
type JobInput struct {
	JobName   string
	JobNumber string
	Client    *string
	JobType   *string
	Status    *string
	Date      *string
	Amount    *float64
}

// JobNotFoundError is returned when no record has the requested id
type JobNotFoundError struct {
	ID string
}

func (e *JobNotFoundError) Error() string {
	return "No job with id " + e.ID
}

func (e *JobNotFoundError) Unwrap() error {
	return repository.ErrNotFound
}

// JobService implements job record management and listing
type JobService interface {
	Create(ctx context.Context, actor string, in JobInput) (*domain.JobRecord, error)
	Update(ctx context.Context, actor, jobID string, in JobInput) (*domain.JobRecord, error)
	Delete(ctx context.Context, actor, jobID string) error
	List(ctx context.Context, params query.ListParams) (*query.ListResult, error)
}

type jobService struct {
	repo     repositoryIface.JobRepository
	executor *query.Executor
	stats    StatsService
	now      func() time.Time
	logger   logger.Logger
}

func NewJobService(
	repo repositoryIface.JobRepository,
	stats StatsService,
	log logger.Logger,
	now func() time.Time,
) JobService {
	if now == nil {
		now = time.Now
	}
	return &jobService{
		repo:     repo,
		executor: query.NewExecutor(repo, now),
		stats:    stats,
		now:      now,
		logger:   log.With(logger.String("component", "job_service")),
	}
}

func (s *jobService) Create(ctx context.Context, actor string, in JobInput) (*domain.JobRecord, error) {
	if missingRequired(in) {
		return nil, domain.ErrMissingValues
	}

	job := domain.NewJobRecord(strings.TrimSpace(in.JobName), strings.TrimSpace(in.JobNumber), actor, s.now())
	if err := applyInput(job, in); err != nil {
		return nil, err
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.afterWrite(ctx)
	s.logger.WithContext(ctx).Info("job created",
		logger.String("job_id", job.ID),
		logger.String("actor", actor))

	return job, nil
}

func (s *jobService) Update(ctx context.Context, actor, jobID string, in JobInput) (*domain.JobRecord, error) {
	if missingRequired(in) {
		return nil, domain.ErrMissingValues
	}

	job, err := s.repo.GetByID(ctx, jobID)
	if repository.IsNotFoundError(err) {
		return nil, &JobNotFoundError{ID: jobID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	job.JobName = strings.TrimSpace(in.JobName)
	job.JobNumber = strings.TrimSpace(in.JobNumber)
	if err := applyInput(job, in); err != nil {
		return nil, err
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	job.UpdatedAt = s.now().UTC()

	err = s.repo.Update(ctx, job)
	if repository.IsNotFoundError(err) {
		return nil, &JobNotFoundError{ID: jobID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.afterWrite(ctx)
	s.logger.WithContext(ctx).Info("job updated",
		logger.String("job_id", jobID),
		logger.String("actor", actor))

	return job, nil
}

func (s *jobService) Delete(ctx context.Context, actor, jobID string) error {
	err := s.repo.Delete(ctx, jobID)
	if repository.IsNotFoundError(err) {
		return &JobNotFoundError{ID: jobID}
	}
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	s.afterWrite(ctx)
	s.logger.WithContext(ctx).Info("job removed",
		logger.String("job_id", jobID),
		logger.String("actor", actor))

	return nil
}

func (s *jobService) List(ctx context.Context, params query.ListParams) (*query.ListResult, error) {
	return s.executor.List(ctx, params)
}

func (s *jobService) afterWrite(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}

func missingRequired(in JobInput) bool {
	return strings.TrimSpace(in.JobName) == "" || strings.TrimSpace(in.JobNumber) == ""
}

// applyInput copies the optional fields of in onto job.
func applyInput(job *domain.JobRecord, in JobInput) error {
	if in.Client != nil {
		job.Client = strings.TrimSpace(*in.Client)
	}
	if in.JobType != nil && *in.JobType != "" {
		jobType, err := domain.ParseJobType(*in.JobType)
		if err != nil {
			return err
		}
		job.JobType = jobType
	}
	if in.Status != nil && *in.Status != "" {
		status, err := domain.ParseJobStatus(*in.Status)
		if err != nil {
			return err
		}
		job.Status = status
	}
	if in.Date != nil && *in.Date != "" {
		date, ok := query.ParseDate(*in.Date)
		if !ok {
			return domain.NewValidationError("date", "invalid date '"+*in.Date+"'")
		}
		job.Date = date.UTC()
	}
	if in.Amount != nil {
		job.Amount = *in.Amount
	}
	return nil
}
