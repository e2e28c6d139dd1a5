package metrics

import (
	"errors"
	"testing"
	"time"

	"jobtrack/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T) (*PrometheusRecorder, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewPrometheusRecorder(reg, logger.NewNopLogger()), reg
}

func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m.GetLabel(), labels) {
				return m
			}
		}
	}
	return nil
}

func matchLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, p := range pairs {
		if v, ok := want[p.GetName()]; !ok || v != p.GetValue() {
			return false
		}
	}
	return true
}

func TestHTTPRequest(t *testing.T) {
	r, reg := newTestRecorder(t)

	r.HTTPRequest("GET", "/api/v1/jobs", 200, 20*time.Millisecond)
	r.HTTPRequest("GET", "/api/v1/jobs", 200, 30*time.Millisecond)
	r.HTTPRequest("POST", "/api/v1/jobs", 400, time.Millisecond)

	m := findMetric(t, reg, "jobtrack_http_requests_total",
		map[string]string{"method": "GET", "route": "/api/v1/jobs", "status": "200"})
	require.NotNil(t, m)
	assert.Equal(t, 2.0, m.GetCounter().GetValue())

	h := findMetric(t, reg, "jobtrack_http_request_duration_seconds",
		map[string]string{"method": "GET", "route": "/api/v1/jobs"})
	require.NotNil(t, h)
	assert.Equal(t, uint64(2), h.GetHistogram().GetSampleCount())
}

func TestStoreOperation_Outcome(t *testing.T) {
	r, reg := newTestRecorder(t)

	r.StoreOperation("find", time.Millisecond, nil)
	r.StoreOperation("find", time.Millisecond, errors.New("boom"))

	ok := findMetric(t, reg, "jobtrack_store_operations_total",
		map[string]string{"operation": "find", "outcome": "success"})
	failed := findMetric(t, reg, "jobtrack_store_operations_total",
		map[string]string{"operation": "find", "outcome": "error"})
	require.NotNil(t, ok)
	require.NotNil(t, failed)
	assert.Equal(t, 1.0, ok.GetCounter().GetValue())
	assert.Equal(t, 1.0, failed.GetCounter().GetValue())
}

func TestStatsCache(t *testing.T) {
	r, reg := newTestRecorder(t)

	r.StatsCache(CacheMiss)
	r.StatsCache(CacheHit)
	r.StatsCache(CacheHit)

	hit := findMetric(t, reg, "jobtrack_stats_cache_requests_total", map[string]string{"result": CacheHit})
	require.NotNil(t, hit)
	assert.Equal(t, 2.0, hit.GetCounter().GetValue())
}

func TestDuplicateRegistrationDoesNotPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusRecorder(reg, logger.NewNopLogger())

	assert.NotPanics(t, func() {
		r := NewPrometheusRecorder(reg, logger.NewNopLogger())
		r.StatsCache(CacheHit)
	})
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NotPanics(t, func() {
		r.HTTPRequest("GET", "/", 200, time.Second)
		r.StoreOperation("count", time.Second, nil)
		r.StatsCache(CacheError)
	})
}
