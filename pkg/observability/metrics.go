package observability

import (
	"time"

	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Call outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeFalse = "false"
	OutcomeNull  = "null"
)

// Metrics holds the collectors for host API calls.
type Metrics struct {
	Calls    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scormkit_api_calls_total",
				Help: "Total number of SCORM runtime API calls",
			},
			[]string{"method", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scormkit_api_call_duration_seconds",
				Help:    "Duration of SCORM runtime API calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Calls, m.Duration)
	}
	return m
}

// Instrument wraps api so that every call is recorded in m.
func Instrument(api ports.API, m *Metrics) ports.API {
	return ports.APIFunc(func(method string, args ...string) any {
		start := time.Now()
		result := api.Invoke(method, args...)

		m.Duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		m.Calls.WithLabelValues(method, Outcome(result)).Inc()
		return result
	})
}

// Outcome classifies a host answer. Only nil and an explicit false count as
// failures; empty strings and "0" are legitimate GetValue and GetLastError answers.
func Outcome(result any) string {
	if result == nil {
		return OutcomeNull
	}
	if b, ok := result.(bool); ok && !b {
		return OutcomeFalse
	}
	if domain.Stringify(result) == "false" {
		return OutcomeFalse
	}
	return OutcomeOK
}
