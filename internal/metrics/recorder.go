package metrics

import "time"

// Recorder defines the metrics emitted by the API.
// Implementations must not block or return errors.
type Recorder interface {
	HTTPRequest(method, route string, status int, duration time.Duration)
	StoreOperation(operation string, duration time.Duration, err error)
	StatsCache(result string)
}

// Cache result label values for StatsCache
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)
