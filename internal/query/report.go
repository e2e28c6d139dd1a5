package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"jobtrack/internal/domain"

	"golang.org/x/sync/errgroup"
)

// DefaultStats holds the three tracked revenue buckets.
type DefaultStats struct {
	McDonalds        float64 `json:"mcdonalds"`
	PMPediatrics     float64 `json:"pmpediatrics"`
	SocialMediaComms float64 `json:"socialMediaComms"`
}

// MonthlyRevenue is one point of the monthly series, labelled "Mon YYYY".
type MonthlyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// Report is the stats response payload.
type Report struct {
	DefaultStats        DefaultStats     `json:"defaultStats"`
	MonthlyApplications []MonthlyRevenue `json:"monthlyApplications"`
}

// Aggregator computes revenue reports over the rolling window.
type Aggregator struct {
	store Store
	now   func() time.Time
}

func NewAggregator(store Store, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{store: store, now: now}
}

// WindowStart is the lower date bound applied to both aggregations.
func (a *Aggregator) WindowStart() time.Time {
	return ReportWindowStart(a.now())
}

// Stats runs the by-type and by-month aggregations independently. Either
// failure fails the whole report.
func (a *Aggregator) Stats(ctx context.Context) (*Report, error) {
	return a.StatsSince(ctx, a.WindowStart())
}

// StatsSince is Stats with an explicit window start.
func (a *Aggregator) StatsSince(ctx context.Context, since time.Time) (*Report, error) {
	var (
		byType  []Group
		byMonth []Group
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		groups, err := a.store.Aggregate(gctx, GroupSpec{
			Key:    GroupByJobType,
			Status: domain.JobStatusApproved,
			Since:  since,
		})
		if err != nil {
			return fmt.Errorf("failed to aggregate revenue by type: %w", err)
		}
		byType = groups
		return nil
	})
	g.Go(func() error {
		groups, err := a.store.Aggregate(gctx, GroupSpec{
			Key:    GroupByMonth,
			Status: domain.JobStatusApproved,
			Since:  since,
		})
		if err != nil {
			return fmt.Errorf("failed to aggregate revenue by month: %w", err)
		}
		byMonth = groups
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		DefaultStats:        buildDefaultStats(byType),
		MonthlyApplications: buildMonthlySeries(byMonth),
	}, nil
}

func buildDefaultStats(groups []Group) DefaultStats {
	totals := make(map[domain.JobType]float64, len(groups))
	for _, g := range groups {
		totals[g.JobType] = g.Sum
	}
	return DefaultStats{
		McDonalds:        totals[domain.JobTypeMcDonalds],
		PMPediatrics:     totals[domain.JobTypePMPediatrics],
		SocialMediaComms: totals[domain.JobTypeSocialMediaComms],
	}
}

// buildMonthlySeries orders groups newest first, labels them, then reverses
// the sequence so the result reads oldest to newest.
func buildMonthlySeries(groups []Group) []MonthlyRevenue {
	sorted := make([]Group, len(groups))
	copy(sorted, groups)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year > sorted[j].Year
		}
		return sorted[i].Month > sorted[j].Month
	})

	series := make([]MonthlyRevenue, len(sorted))
	for i, g := range sorted {
		series[len(sorted)-1-i] = MonthlyRevenue{
			Date:    time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
			Revenue: g.Sum,
		}
	}
	return series
}
