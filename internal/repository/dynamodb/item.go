package dynamodb

import (
	"strings"
	"time"

	"jobtrack/internal/domain"
)

// jobItem is the table layout. Dates are epoch milliseconds so range
// conditions compare numerically; *_lc attributes hold lower-cased copies
// for case-insensitive contains().
type jobItem struct {
	JobID          string  `dynamodbav:"job_id"`
	JobName        string  `dynamodbav:"job_name"`
	JobNumber      string  `dynamodbav:"job_number"`
	JobNumberLower string  `dynamodbav:"job_number_lc"`
	Client         string  `dynamodbav:"client"`
	ClientLower    string  `dynamodbav:"client_lc"`
	JobType        string  `dynamodbav:"job_type"`
	Status         string  `dynamodbav:"status"`
	Date           int64   `dynamodbav:"date"`
	Amount         float64 `dynamodbav:"amount"`
	CreatedBy      string  `dynamodbav:"created_by"`
	CreatedAt      int64   `dynamodbav:"created_at"`
	UpdatedAt      int64   `dynamodbav:"updated_at"`
}

func toItem(job *domain.JobRecord) jobItem {
	return jobItem{
		JobID:          job.ID,
		JobName:        job.JobName,
		JobNumber:      job.JobNumber,
		JobNumberLower: strings.ToLower(job.JobNumber),
		Client:         job.Client,
		ClientLower:    strings.ToLower(job.Client),
		JobType:        string(job.JobType),
		Status:         string(job.Status),
		Date:           job.Date.UnixMilli(),
		Amount:         job.Amount,
		CreatedBy:      job.CreatedBy,
		CreatedAt:      job.CreatedAt.UnixMilli(),
		UpdatedAt:      job.UpdatedAt.UnixMilli(),
	}
}

func (i jobItem) toRecord() *domain.JobRecord {
	return &domain.JobRecord{
		ID:        i.JobID,
		JobName:   i.JobName,
		JobNumber: i.JobNumber,
		Client:    i.Client,
		JobType:   domain.JobType(i.JobType),
		Status:    domain.JobStatus(i.Status),
		Date:      time.UnixMilli(i.Date).UTC(),
		Amount:    i.Amount,
		CreatedBy: i.CreatedBy,
		CreatedAt: time.UnixMilli(i.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(i.UpdatedAt).UTC(),
	}
}
