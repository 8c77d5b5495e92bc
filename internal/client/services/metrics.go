package services

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts what the services do. A nil *Metrics records nothing.
type Metrics struct {
	logins    *prometheus.CounterVec
	fetches   *prometheus.CounterVec
	cacheHits prometheus.Counter
}

// NewMetrics registers the service counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicsite",
			Name:      "cms_logins_total",
			Help:      "CMS login attempts by result.",
		}, []string{"result"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicsite",
			Name:      "team_fetches_total",
			Help:      "Team collection fetches by result.",
		}, []string{"result"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinicsite",
			Name:      "team_cache_hits_total",
			Help:      "Team reads served from the in-memory cache.",
		}),
	}
	reg.MustRegister(m.logins, m.fetches, m.cacheHits)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) login(err error) {
	if m != nil {
		m.logins.WithLabelValues(result(err)).Inc()
	}
}

func (m *Metrics) fetch(err error) {
	if m != nil {
		m.fetches.WithLabelValues(result(err)).Inc()
	}
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}
