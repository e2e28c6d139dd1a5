package metrics

import "time"

// NoopRecorder is used when metrics are disabled to avoid nil checks.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) HTTPRequest(method, route string, status int, duration time.Duration) {}
func (n *NoopRecorder) StoreOperation(operation string, duration time.Duration, err error) {}
func (n *NoopRecorder) StatsCache(result string)                                          {}
