package dto

import (
	"time"

	"jobtrack/internal/domain"
	"jobtrack/internal/query"
)

// JobRequest is the body of create and update calls. jobName and jobNumber
// are required on both; omitted optional fields keep their default or
// current value.
type JobRequest struct {
	JobName   string   `json:"jobName"`
	JobNumber string   `json:"jobNumber"`
	Client    *string  `json:"client"`
	JobType   *string  `json:"jobType"`
	Status    *string  `json:"status"`
	Date      *string  `json:"date"`
	Amount    *float64 `json:"amount"`
}

// JobResponse is a single job record
type JobResponse struct {
	ID        string    `json:"id"`
	JobName   string    `json:"jobName"`
	JobNumber string    `json:"jobNumber"`
	Client    string    `json:"client"`
	JobType   string    `json:"jobType"`
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewJobResponse(job *domain.JobRecord) JobResponse {
	return JobResponse{
		ID:        job.ID,
		JobName:   job.JobName,
		JobNumber: job.JobNumber,
		Client:    job.Client,
		JobType:   string(job.JobType),
		Status:    string(job.Status),
		Date:      job.Date,
		Amount:    job.Amount,
		CreatedBy: job.CreatedBy,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}

// ListJobsRequest has no body; filters come from the query string:
// search, client, jobNumber, status, jobType, sort, startDate, endDate, page, limit
type ListJobsRequest struct{}

type ListJobsResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	TotalJobs  int64         `json:"totalJobs"`
	NumOfPages int           `json:"numOfPages"`
}

func NewListJobsResponse(res *query.ListResult) ListJobsResponse {
	jobs := make([]JobResponse, 0, len(res.Jobs))
	for _, job := range res.Jobs {
		jobs = append(jobs, NewJobResponse(job))
	}
	return ListJobsResponse{
		Jobs:       jobs,
		TotalJobs:  res.TotalJobs,
		NumOfPages: res.NumOfPages,
	}
}

// DeleteJobRequest has no body; the id comes from the path
type DeleteJobRequest struct{}

type DeleteJobResponse struct {
	Msg string `json:"msg"`
}

// StatsRequest has no body or parameters
type StatsRequest struct{}

type StatsResponse struct {
	DefaultStats        query.DefaultStats     `json:"defaultStats"`
	MonthlyApplications []query.MonthlyRevenue `json:"monthlyApplications"`
}

func NewStatsResponse(report *query.Report) StatsResponse {
	monthly := report.MonthlyApplications
	if monthly == nil {
		monthly = []query.MonthlyRevenue{}
	}
	return StatsResponse{
		DefaultStats:        report.DefaultStats,
		MonthlyApplications: monthly,
	}
}
