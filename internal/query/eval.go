package query

import (
	"sort"
	"time"

	"jobtrack/internal/domain"
)

// Select applies spec to an in-process record set: filter, window, order,
// then skip/limit. The input slice is not modified.
func Select(jobs []*domain.JobRecord, spec FindSpec) []*domain.JobRecord {
	matched := make([]*domain.JobRecord, 0, len(jobs))
	for _, job := range jobs {
		if spec.Filter.Matches(job) && spec.Window.Contains(job.Date) {
			matched = append(matched, job)
		}
	}

	if spec.Order != nil {
		SortJobs(matched, *spec.Order)
	}

	skip := max(spec.Skip, 0)
	if skip >= len(matched) {
		return []*domain.JobRecord{}
	}
	matched = matched[skip:]
	if spec.Limit > 0 && spec.Limit < len(matched) {
		matched = matched[:spec.Limit]
	}
	return matched
}

// SortJobs orders jobs in place. Equal keys fall back to id ascending.
func SortJobs(jobs []*domain.JobRecord, order Ordering) {
	sort.SliceStable(jobs, func(i, j int) bool {
		a, b := jobs[i], jobs[j]
		var cmp int
		switch order.Field {
		case SortFieldDate:
			cmp = a.Date.Compare(b.Date)
		case SortFieldJobName:
			cmp = compareStrings(a.JobName, b.JobName)
		}
		if cmp == 0 {
			return a.ID < b.ID
		}
		if order.Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// GroupSum evaluates spec in process. Groups come back sorted by key
// ascending so callers get a stable order.
func GroupSum(jobs []*domain.JobRecord, spec GroupSpec) []Group {
	type monthKey struct {
		year  int
		month time.Month
	}

	byType := make(map[domain.JobType]float64)
	byMonth := make(map[monthKey]float64)

	for _, job := range jobs {
		if !spec.Matches(job) {
			continue
		}
		switch spec.Key {
		case GroupByJobType:
			byType[job.JobType] += job.Amount
		case GroupByMonth:
			d := job.Date.UTC()
			byMonth[monthKey{year: d.Year(), month: d.Month()}] += job.Amount
		}
	}

	groups := make([]Group, 0, len(byType)+len(byMonth))
	for jobType, sum := range byType {
		groups = append(groups, Group{JobType: jobType, Sum: sum})
	}
	for k, sum := range byMonth {
		groups = append(groups, Group{Year: k.year, Month: k.month, Sum: sum})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].JobType != groups[j].JobType {
			return groups[i].JobType < groups[j].JobType
		}
		if groups[i].Year != groups[j].Year {
			return groups[i].Year < groups[j].Year
		}
		return groups[i].Month < groups[j].Month
	})
	return groups
}
