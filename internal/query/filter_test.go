package query

import (
	"testing"

	"jobtrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFilter(t *testing.T) {
	t.Run("empty params match everything", func(t *testing.T) {
		spec, err := CompileFilter(ListParams{})
		require.NoError(t, err)
		assert.Equal(t, FilterSpec{}, spec)
	})

	t.Run("all sentinel adds no predicate", func(t *testing.T) {
		spec, err := CompileFilter(ListParams{Status: "all", JobType: "all"})
		require.NoError(t, err)
		assert.Empty(t, spec.Status)
		assert.Empty(t, spec.JobType)
	})

	t.Run("status and job type equality", func(t *testing.T) {
		spec, err := CompileFilter(ListParams{Status: "awaiting signature", JobType: "McDonald's"})
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusAwaitingSignature, spec.Status)
		assert.Equal(t, domain.JobTypeMcDonalds, spec.JobType)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := CompileFilter(ListParams{Status: "archived"})
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("unknown job type is rejected", func(t *testing.T) {
		_, err := CompileFilter(ListParams{JobType: "Radio"})
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("search and client are lower-cased substrings", func(t *testing.T) {
		spec, err := CompileFilter(ListParams{Search: "AB-1", Client: "Acme"})
		require.NoError(t, err)
		assert.Equal(t, "ab-1", spec.JobNumberContains)
		assert.Equal(t, "acme", spec.ClientContains)
	})

	t.Run("jobNumber wins over search", func(t *testing.T) {
		spec, err := CompileFilter(ListParams{Search: "from-search", JobNumber: "FROM-PARAM"})
		require.NoError(t, err)
		assert.Equal(t, "from-param", spec.JobNumberContains)
	})
}

func TestFilterSpecMatches(t *testing.T) {
	job := &domain.JobRecord{
		JobNumber: "JN-2024-017",
		Client:    "Acme Corp",
		JobType:   domain.JobTypeBrand,
		Status:    domain.JobStatusApproved,
	}

	cases := []struct {
		name string
		spec FilterSpec
		want bool
	}{
		{"no predicates", FilterSpec{}, true},
		{"status match", FilterSpec{Status: domain.JobStatusApproved}, true},
		{"status mismatch", FilterSpec{Status: domain.JobStatusPending}, false},
		{"type mismatch", FilterSpec{JobType: domain.JobTypeOther}, false},
		{"job number substring", FilterSpec{JobNumberContains: "2024"}, true},
		{"job number case-insensitive", FilterSpec{JobNumberContains: "jn-2024"}, true},
		{"client substring", FilterSpec{ClientContains: "acme"}, true},
		{"client mismatch", FilterSpec{ClientContains: "globex"}, false},
		{"regex metacharacters are literal", FilterSpec{JobNumberContains: "jn.2024"}, false},
		{"conjunction", FilterSpec{Status: domain.JobStatusApproved, ClientContains: "corp", JobNumberContains: "017"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.spec.Matches(job))
		})
	}
}
