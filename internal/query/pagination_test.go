package query

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		page, limit string
		want        Page
	}{
		{"", "", Page{Number: 1, Limit: 10, Skip: 0}},
		{"2", "5", Page{Number: 2, Limit: 5, Skip: 5}},
		{"3", "", Page{Number: 3, Limit: 10, Skip: 20}},
		{"0", "-4", Page{Number: 1, Limit: 10, Skip: 0}},
		{"abc", "1.5", Page{Number: 1, Limit: 10, Skip: 0}},
		{" 4 ", " 25 ", Page{Number: 4, Limit: 25, Skip: 75}},
		{"922337203685477582", "10", Page{Number: 922337203685477582, Limit: 10, Skip: math.MaxInt}},
		{"3", strconv.Itoa(math.MaxInt), Page{Number: 3, Limit: math.MaxInt, Skip: math.MaxInt}},
		{"2", strconv.Itoa(math.MaxInt), Page{Number: 2, Limit: math.MaxInt, Skip: math.MaxInt}},
		{"99999999999999999999", "", Page{Number: 1, Limit: 10, Skip: 0}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Paginate(tc.page, tc.limit), "page=%q limit=%q", tc.page, tc.limit)
	}
}

func TestNumOfPages(t *testing.T) {
	assert.Equal(t, 0, NumOfPages(0, 10))
	assert.Equal(t, 1, NumOfPages(1, 10))
	assert.Equal(t, 1, NumOfPages(10, 10))
	assert.Equal(t, 2, NumOfPages(11, 10))
	assert.Equal(t, 3, NumOfPages(12, 5))
	assert.Equal(t, 1, NumOfPages(5, math.MaxInt))
	assert.Equal(t, 1, NumOfPages(math.MaxInt64, math.MaxInt))
	assert.Equal(t, int(math.MaxInt64), NumOfPages(math.MaxInt64, 1))
}

func TestPaginateNeverProducesNegativeSkip(t *testing.T) {
	for _, page := range []string{"1", "2", "1000", "922337203685477582", strconv.Itoa(math.MaxInt)} {
		for _, limit := range []string{"1", "10", "4611686018427387904", strconv.Itoa(math.MaxInt)} {
			got := Paginate(page, limit)
			assert.GreaterOrEqual(t, got.Skip, 0, "page=%s limit=%s", page, limit)
		}
	}
}
