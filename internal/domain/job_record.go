package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a job record
type JobStatus string

const (
	JobStatusPending           JobStatus = "pending"
	JobStatusAwaitingSignature JobStatus = "awaiting signature"
	JobStatusApproved          JobStatus = "approved"
)

// JobStatuses lists every valid status in display order.
var JobStatuses = []JobStatus{
	JobStatusPending,
	JobStatusAwaitingSignature,
	JobStatusApproved,
}

// ParseJobStatus converts raw input into a JobStatus, rejecting unknown values.
func ParseJobStatus(raw string) (JobStatus, error) {
	for _, s := range JobStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", NewValidationError("status", "unknown status '"+raw+"'")
}

// JobType is the kind of engagement a job belongs to
type JobType string

const (
	JobTypeSocialMediaComms JobType = "Social Media Comms"
	JobTypeExperiential     JobType = "Experiential"
	JobTypeBrand            JobType = "Brand"
	JobTypeOther            JobType = "Other"
	JobTypeMcDonalds        JobType = "McDonald's"
	JobTypePMPediatrics     JobType = "PM Pediatrics"
)

// JobTypes is the configured job type set.
var JobTypes = []JobType{
	JobTypeSocialMediaComms,
	JobTypeExperiential,
	JobTypeBrand,
	JobTypeOther,
	JobTypeMcDonalds,
	JobTypePMPediatrics,
}

// ParseJobType converts raw input into a JobType, rejecting unknown values.
func ParseJobType(raw string) (JobType, error) {
	for _, t := range JobTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", NewValidationError("jobType", "unknown job type '"+raw+"'")
}

// JobRecord is a single client engagement entry
type JobRecord struct {
	ID        string    `json:"id"`
	JobName   string    `json:"jobName"`
	JobNumber string    `json:"jobNumber"`
	Client    string    `json:"client"`
	JobType   JobType   `json:"jobType"`
	Status    JobStatus `json:"status"`
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewJobRecord creates a record owned by createdBy with server-assigned
// identity and defaults for every optional field.
func NewJobRecord(jobName, jobNumber, createdBy string, now time.Time) *JobRecord {
	now = now.UTC()
	return &JobRecord{
		ID:        generateJobID(),
		JobName:   jobName,
		JobNumber: jobNumber,
		JobType:   JobTypeSocialMediaComms,
		Status:    JobStatusPending,
		Date:      now,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the record invariants.
func (j *JobRecord) Validate() error {
	if strings.TrimSpace(j.JobName) == "" || strings.TrimSpace(j.JobNumber) == "" {
		return ErrMissingValues
	}
	if _, err := ParseJobStatus(string(j.Status)); err != nil {
		return err
	}
	if _, err := ParseJobType(string(j.JobType)); err != nil {
		return err
	}
	if j.Date.IsZero() {
		return NewValidationError("date", "date is required")
	}
	return nil
}

func generateJobID() string {
	return uuid.New().String()
}
