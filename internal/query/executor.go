package query

import (
	"context"
	"fmt"
	"time"

	"jobtrack/internal/domain"
)

// ListResult is the listing response payload.
type ListResult struct {
	Jobs       []*domain.JobRecord `json:"jobs"`
	TotalJobs  int64               `json:"totalJobs"`
	NumOfPages int                 `json:"numOfPages"`
}

// Executor runs listing requests against a Store.
type Executor struct {
	store Store
	now   func() time.Time
}

func NewExecutor(store Store, now func() time.Time) *Executor {
	if now == nil {
		now = time.Now
	}
	return &Executor{store: store, now: now}
}

// List compiles p and performs the paged fetch plus an independent count.
// The count ignores the date window, so NumOfPages can exceed the number of
// pages that actually hold dated records.
func (e *Executor) List(ctx context.Context, p ListParams) (*ListResult, error) {
	filter, err := CompileFilter(p)
	if err != nil {
		return nil, err
	}

	window := ListingWindow(p.StartDate, p.EndDate, e.now())

	order, err := ResolveSort(p.Sort)
	if err != nil {
		return nil, err
	}

	page := Paginate(p.Page, p.Limit)

	jobs := []*domain.JobRecord{}
	if window.Valid {
		jobs, err = e.store.Find(ctx, FindSpec{
			Filter: filter,
			Window: window,
			Order:  order,
			Skip:   page.Skip,
			Limit:  page.Limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to find jobs: %w", err)
		}
	}

	total, err := e.store.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	return &ListResult{
		Jobs:       jobs,
		TotalJobs:  total,
		NumOfPages: NumOfPages(total, page.Limit),
	}, nil
}
