package query

import (
	"strings"

	"jobtrack/internal/domain"
)

// FilterAll is the sentinel meaning "do not filter on this field".
const FilterAll = "all"

// ListParams are the raw query-string values of a listing request.
type ListParams struct {
	Search    string
	Client    string
	JobNumber string
	Status    string
	JobType   string
	Sort      string
	StartDate string
	EndDate   string
	Page      string
	Limit     string
}

// CompileFilter builds the FilterSpec for p. Unknown status or job type
// values are rejected. search and jobNumber both target the jobNumber field;
// jobNumber is applied last and wins when both are set.
func CompileFilter(p ListParams) (FilterSpec, error) {
	var spec FilterSpec

	if status := strings.TrimSpace(p.Status); status != "" && status != FilterAll {
		s, err := domain.ParseJobStatus(status)
		if err != nil {
			return FilterSpec{}, err
		}
		spec.Status = s
	}

	if jobType := strings.TrimSpace(p.JobType); jobType != "" && jobType != FilterAll {
		t, err := domain.ParseJobType(jobType)
		if err != nil {
			return FilterSpec{}, err
		}
		spec.JobType = t
	}

	if p.Search != "" {
		spec.JobNumberContains = strings.ToLower(p.Search)
	}
	if p.Client != "" {
		spec.ClientContains = strings.ToLower(p.Client)
	}
	if p.JobNumber != "" {
		spec.JobNumberContains = strings.ToLower(p.JobNumber)
	}

	return spec, nil
}
