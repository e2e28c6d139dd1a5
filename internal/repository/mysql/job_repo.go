// Package mysql stores job records in a MySQL table and pushes filtering,
// ordering, paging and grouping into SQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobtrack/internal/domain"
	"jobtrack/internal/logger"
	"jobtrack/internal/query"
	"jobtrack/internal/repository"
	repositoryIface "jobtrack/internal/repository/iface"

	driver "github.com/go-sql-driver/mysql"
)

type jobRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewJobRepository creates a MySQL-backed job repository
func NewJobRepository(db *sql.DB, log logger.Logger) repositoryIface.JobRepository {
	return &jobRepository{
		db:     db,
		logger: log.With(logger.String("component", "mysql_job_repository")),
	}
}

// Open connects using dsn. parseTime, UTC and clientFoundRows are forced
// because scanning and not-found detection depend on them.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true

	connector, err := driver.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, storageError("ping mysql", err)
	}

	return db, nil
}

// EnsureSchema creates the jobs table if needed.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, querySchema); err != nil {
		return storageError("create jobs table", err)
	}
	return nil
}

func (r *jobRepository) Create(ctx context.Context, job *domain.JobRecord) error {
	_, err := r.db.ExecContext(ctx, queryInsertJob,
		job.ID,
		job.JobName,
		job.JobNumber,
		job.Client,
		string(job.JobType),
		string(job.Status),
		job.Date.UTC(),
		job.Amount,
		job.CreatedBy,
		job.CreatedAt.UTC(),
		job.UpdatedAt.UTC(),
	)
	if err != nil {
		r.logger.Error("failed to insert job", logger.Error(err))
		return storageError("insert job", err)
	}

	r.logger.Info("job created", logger.String("job_id", job.ID))
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, jobID string) (*domain.JobRecord, error) {
	job, err := scanJob(r.db.QueryRowContext(ctx, queryGetJobByID, jobID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, jobID)
	}
	if err != nil {
		r.logger.Error("failed to get job", logger.Error(err))
		return nil, storageError("get job", err)
	}
	return job, nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.JobRecord) error {
	res, err := r.db.ExecContext(ctx, queryUpdateJob,
		job.JobName,
		job.JobNumber,
		job.Client,
		string(job.JobType),
		string(job.Status),
		job.Date.UTC(),
		job.Amount,
		job.UpdatedAt.UTC(),
		job.ID,
	)
	if err != nil {
		r.logger.Error("failed to update job", logger.Error(err))
		return storageError("update job", err)
	}
	return expectOneRow(res, job.ID)
}

func (r *jobRepository) Delete(ctx context.Context, jobID string) error {
	res, err := r.db.ExecContext(ctx, queryDeleteJob, jobID)
	if err != nil {
		r.logger.Error("failed to delete job", logger.Error(err))
		return storageError("delete job", err)
	}
	return expectOneRow(res, jobID)
}

func (r *jobRepository) Find(ctx context.Context, spec query.FindSpec) ([]*domain.JobRecord, error) {
	var where whereBuilder
	where.addFilter(spec.Filter)
	where.add("`date` BETWEEN ? AND ?", spec.Window.From.UTC(), spec.Window.To.UTC())

	stmt := querySelectJobs + where.sql() + orderBy(spec.Order) + "\nLIMIT ? OFFSET ?"
	args := append(where.args, spec.Limit, max(spec.Skip, 0))

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		r.logger.Error("failed to query jobs", logger.Error(err))
		return nil, storageError("query jobs", err)
	}
	defer rows.Close()

	jobs := make([]*domain.JobRecord, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, storageError("scan job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate jobs", err)
	}

	return jobs, nil
}

func (r *jobRepository) Count(ctx context.Context, filter query.FilterSpec) (int64, error) {
	var where whereBuilder
	where.addFilter(filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, queryCountJobs+where.sql(), where.args...).Scan(&total); err != nil {
		r.logger.Error("failed to count jobs", logger.Error(err))
		return 0, storageError("count jobs", err)
	}
	return total, nil
}

func (r *jobRepository) Aggregate(ctx context.Context, spec query.GroupSpec) ([]query.Group, error) {
	var where whereBuilder
	if spec.Status != "" {
		where.add("status = ?", string(spec.Status))
	}
	where.add("`date` >= ?", spec.Since.UTC())

	var stmt string
	switch spec.Key {
	case query.GroupByJobType:
		stmt = querySumByJobType + where.sql() + "\nGROUP BY job_type\nORDER BY job_type"
	case query.GroupByMonth:
		stmt = querySumByMonth + where.sql() + "\nGROUP BY YEAR(`date`), MONTH(`date`)\nORDER BY 1, 2"
	default:
		return nil, fmt.Errorf("unsupported group key: %s", spec.Key)
	}

	rows, err := r.db.QueryContext(ctx, stmt, where.args...)
	if err != nil {
		r.logger.Error("failed to aggregate jobs", logger.Error(err))
		return nil, storageError("aggregate jobs", err)
	}
	defer rows.Close()

	groups := make([]query.Group, 0)
	for rows.Next() {
		var g query.Group
		switch spec.Key {
		case query.GroupByJobType:
			var jobType string
			if err := rows.Scan(&jobType, &g.Sum); err != nil {
				return nil, storageError("scan group", err)
			}
			g.JobType = domain.JobType(jobType)
		case query.GroupByMonth:
			var month int
			if err := rows.Scan(&g.Year, &month, &g.Sum); err != nil {
				return nil, storageError("scan group", err)
			}
			g.Month = time.Month(month)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate groups", err)
	}

	return groups, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.JobRecord, error) {
	var (
		job     domain.JobRecord
		jobType string
		status  string
	)
	err := row.Scan(
		&job.ID,
		&job.JobName,
		&job.JobNumber,
		&job.Client,
		&jobType,
		&status,
		&job.Date,
		&job.Amount,
		&job.CreatedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.JobType = domain.JobType(jobType)
	job.Status = domain.JobStatus(status)
	job.Date = job.Date.UTC()
	job.CreatedAt = job.CreatedAt.UTC()
	job.UpdatedAt = job.UpdatedAt.UTC()
	return &job, nil
}

func expectOneRow(res sql.Result, jobID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageError("read affected rows", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, jobID)
	}
	return nil
}

func storageError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, repository.ErrStorageUnavailable, err)
}
