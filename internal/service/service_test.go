package service

import (
	"context"
	"errors"
	"sync"
	"time"

	cache "jobtrack/internal/cache/iface"
	"jobtrack/internal/logger"
	"jobtrack/internal/metrics"
	repositoryIface "jobtrack/internal/repository/iface"
	"jobtrack/internal/repository/memory"
)

var serviceNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return serviceNow }

// fakeCache is an in-process Cache with injectable failures
type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value.(string)
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.values[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *fakeCache) Close() error { return nil }

type countingRecorder struct {
	metrics.NoopRecorder
	mu    sync.Mutex
	cache map[string]int
}

func (r *countingRecorder) StatsCache(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache == nil {
		r.cache = map[string]int{}
	}
	r.cache[result]++
}

type fixture struct {
	repo     repositoryIface.JobRepository
	cache    *fakeCache
	recorder *countingRecorder
	stats    StatsService
	jobs     JobService
}

func newFixture() *fixture {
	log := logger.NewNopLogger()
	repo := memory.NewJobRepository(log)
	c := newFakeCache()
	rec := &countingRecorder{}
	stats := NewStatsService(repo, c, time.Minute, rec, log, fixedClock)
	return &fixture{
		repo:     repo,
		cache:    c,
		recorder: rec,
		stats:    stats,
		jobs:     NewJobService(repo, stats, log, fixedClock),
	}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

var errCacheDown = errors.New("cache down")
