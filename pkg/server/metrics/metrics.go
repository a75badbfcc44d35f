package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the check service.
type Metrics struct {
	ChecksTotal      *prometheus.CounterVec
	CheckFailures    *prometheus.CounterVec
	RecordLookups    prometheus.Counter
	RateLimited      prometheus.Counter
	RequestDurations *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vwire_checks_total",
			Help: "Completed checks by verdict",
		}, []string{"verdict"}),
		CheckFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vwire_check_failures_total",
			Help: "Checks that ended in an error, by error kind",
		}, []string{"kind"}),
		RecordLookups: factory.NewCounter(prometheus.CounterOpts{
			Name: "vwire_record_lookups_total",
			Help: "Registry record lookups served",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "vwire_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
		RequestDurations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vwire_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) IncrementChecks(verdict string) {
	m.ChecksTotal.WithLabelValues(verdict).Inc()
}

func (m *Metrics) IncrementCheckFailures(kind string) {
	m.CheckFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementRecordLookups() {
	m.RecordLookups.Inc()
}

func (m *Metrics) IncrementRateLimited() {
	m.RateLimited.Inc()
}

func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	m.RequestDurations.WithLabelValues(route, status).Observe(seconds)
}
