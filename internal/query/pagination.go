package query

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is a resolved page request
type Page struct {
	Number int
	Limit  int
	Skip   int
}

// Paginate coerces raw page and limit values; non-numeric or non-positive
// values fall back to the defaults. Skip saturates at math.MaxInt, which
// always lands past the last record.
func Paginate(rawPage, rawLimit string) Page {
	page := positiveIntOr(rawPage, DefaultPage)
	limit := positiveIntOr(rawLimit, DefaultLimit)

	skip := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		skip = (page - 1) * limit
	}
	return Page{
		Number: page,
		Limit:  limit,
		Skip:   skip,
	}
}

// NumOfPages is ceil(total / limit).
func NumOfPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

func positiveIntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
