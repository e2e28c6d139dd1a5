package query

import (
	"strings"

	"jobtrack/internal/domain"
)

// SortKey is a client-facing sort option
type SortKey string

const (
	SortLatest SortKey = "latest"
	SortOldest SortKey = "oldest"
	SortAZ     SortKey = "a-z"
	SortZA     SortKey = "z-a"
)

var sortOrderings = map[SortKey]Ordering{
	SortLatest: {Field: SortFieldDate, Descending: true},
	SortOldest: {Field: SortFieldDate},
	SortAZ:     {Field: SortFieldJobName},
	SortZA:     {Field: SortFieldJobName, Descending: true},
}

// ResolveSort maps raw to an ordering. An empty value yields nil (storage
// default order); anything else outside the four keys is rejected.
func ResolveSort(raw string) (*Ordering, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	ordering, ok := sortOrderings[SortKey(raw)]
	if !ok {
		return nil, domain.NewValidationError("sort", "unknown sort '"+raw+"'")
	}
	return &ordering, nil
}
