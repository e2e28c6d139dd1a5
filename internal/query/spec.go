// Package query turns listing and report requests into storage-agnostic
// specifications and evaluates them against a Store.
package query

import (
	"context"
	"strings"
	"time"

	"jobtrack/internal/domain"
)

// Store is the read contract the engine needs from persistence.
type Store interface {
	Find(ctx context.Context, spec FindSpec) ([]*domain.JobRecord, error)
	Count(ctx context.Context, filter FilterSpec) (int64, error)
	Aggregate(ctx context.Context, spec GroupSpec) ([]Group, error)
}

// FilterSpec is a conjunction of optional predicates. Zero values mean
// "no predicate" for that dimension. Substring needles are stored lower-cased.
type FilterSpec struct {
	Status            domain.JobStatus
	JobType           domain.JobType
	JobNumberContains string
	ClientContains    string
}

// Matches reports whether job satisfies every active predicate.
func (f FilterSpec) Matches(job *domain.JobRecord) bool {
	if f.Status != "" && job.Status != f.Status {
		return false
	}
	if f.JobType != "" && job.JobType != f.JobType {
		return false
	}
	if f.JobNumberContains != "" && !strings.Contains(strings.ToLower(job.JobNumber), f.JobNumberContains) {
		return false
	}
	if f.ClientContains != "" && !strings.Contains(strings.ToLower(job.Client), f.ClientContains) {
		return false
	}
	return true
}

// DateRange is an inclusive [From, To] interval. An invalid range (built from
// an unparseable date) contains nothing.
type DateRange struct {
	From  time.Time
	To    time.Time
	Valid bool
}

func (r DateRange) Contains(t time.Time) bool {
	if !r.Valid {
		return false
	}
	return !t.Before(r.From) && !t.After(r.To)
}

// SortField names a sortable record field
type SortField string

const (
	SortFieldDate    SortField = "date"
	SortFieldJobName SortField = "jobName"
)

type Ordering struct {
	Field      SortField
	Descending bool
}

// FindSpec describes one paged listing fetch. A nil Order keeps the
// storage default order.
type FindSpec struct {
	Filter FilterSpec
	Window DateRange
	Order  *Ordering
	Skip   int
	Limit  int
}

// GroupKey selects how records are bucketed by an aggregation
type GroupKey int

const (
	GroupByJobType GroupKey = iota
	GroupByMonth
)

func (k GroupKey) String() string {
	switch k {
	case GroupByJobType:
		return "job_type"
	case GroupByMonth:
		return "month"
	default:
		return "unknown"
	}
}

// GroupSpec sums amount per group over records with the given status whose
// date is on or after Since.
type GroupSpec struct {
	Key    GroupKey
	Status domain.JobStatus
	Since  time.Time
}

func (g GroupSpec) Matches(job *domain.JobRecord) bool {
	if g.Status != "" && job.Status != g.Status {
		return false
	}
	return !job.Date.Before(g.Since)
}

// Group is one aggregation bucket. Only the fields of the requested key are set.
type Group struct {
	JobType domain.JobType
	Year    int
	Month   time.Month
	Sum     float64
}
