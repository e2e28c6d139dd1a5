package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	cache "jobtrack/internal/cache/iface"
	"jobtrack/internal/logger"
	"jobtrack/internal/metrics"
	"jobtrack/internal/query"
)

const statsCacheKeyPrefix = "jobs:stats:"

// StatsService serves the revenue report, cache-first when a cache is set
type StatsService interface {
	Stats(ctx context.Context) (*query.Report, error)
	// Invalidate drops the cached report for the current window
	Invalidate(ctx context.Context)
}

type statsService struct {
	aggregator *query.Aggregator
	cache      cache.Cache
	ttl        time.Duration
	recorder   metrics.Recorder
	logger     logger.Logger
}

// NewStatsService creates a stats service. A nil cache disables caching.
func NewStatsService(
	store query.Store,
	c cache.Cache,
	ttl time.Duration,
	recorder metrics.Recorder,
	log logger.Logger,
	now func() time.Time,
) StatsService {
	if recorder == nil {
		recorder = metrics.NewNoopRecorder()
	}
	return &statsService{
		aggregator: query.NewAggregator(store, now),
		cache:      c,
		ttl:        ttl,
		recorder:   recorder,
		logger:     log.With(logger.String("component", "stats_service")),
	}
}

func statsCacheKey(windowStart time.Time) string {
	return statsCacheKeyPrefix + windowStart.Format("2006-01")
}

func (s *statsService) Stats(ctx context.Context) (*query.Report, error) {
	since := s.aggregator.WindowStart()
	key := statsCacheKey(since)

	if report, ok := s.cached(ctx, key); ok {
		return report, nil
	}

	report, err := s.aggregator.StatsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, report)
	return report, nil
}

func (s *statsService) cached(ctx context.Context, key string) (*query.Report, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
		s.recorder.StatsCache(metrics.CacheMiss)
		return nil, false
	}
	if err != nil {
		s.recorder.StatsCache(metrics.CacheError)
		s.logger.WithContext(ctx).Warn("stats cache read failed", logger.String("key", key), logger.Error(err))
		return nil, false
	}

	var report query.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.recorder.StatsCache(metrics.CacheError)
		s.logger.WithContext(ctx).Warn("discarding undecodable cached stats", logger.String("key", key), logger.Error(err))
		return nil, false
	}

	s.recorder.StatsCache(metrics.CacheHit)
	return &report, true
}

func (s *statsService) store(ctx context.Context, key string, report *query.Report) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		s.logger.WithContext(ctx).Warn("failed to encode stats for cache", logger.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
		s.logger.WithContext(ctx).Warn("stats cache write failed", logger.String("key", key), logger.Error(err))
	}
}

func (s *statsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	key := statsCacheKey(s.aggregator.WindowStart())
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.WithContext(ctx).Warn("stats cache invalidation failed", logger.String("key", key), logger.Error(err))
	}
}
