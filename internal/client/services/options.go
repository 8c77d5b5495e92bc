package services

import "time"

// Option configures AuthService and TeamService.
type Option func(*options)

type options struct {
	now     func() time.Time
	metrics *Metrics
}

func defaultOptions() options {
	return options{now: time.Now}
}

// WithClock replaces time.Now. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithMetrics enables Prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}
