package observability_test

import (
	"testing"

	"github.com/aretw0/scormkit/pkg/adapters/memory"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInstrument_CountsByMethodAndOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	api := observability.Instrument(memory.NewLMS(domain.SCORM12), m)

	assert.Equal(t, "false", api.Invoke("LMSSetValue", "cmi.core.lesson_location", "1"), "not initialized yet")
	assert.Equal(t, "true", api.Invoke("LMSInitialize", ""))
	api.Invoke("LMSSetValue", "cmi.core.lesson_location", "1")
	api.Invoke("LMSGetValue", "cmi.suspend_data")
	api.Invoke("Bogus")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("LMSInitialize", observability.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("LMSSetValue", observability.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("LMSSetValue", observability.OutcomeFalse)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("LMSGetValue", observability.OutcomeOK)), "empty values are not failures")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("Bogus", observability.OutcomeNull)))

	assert.Equal(t, 4, testutil.CollectAndCount(m.Duration), "one histogram series per method")
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		result any
		want   string
	}{
		{nil, observability.OutcomeNull},
		{false, observability.OutcomeFalse},
		{"false", observability.OutcomeFalse},
		{"true", observability.OutcomeOK},
		{true, observability.OutcomeOK},
		{"", observability.OutcomeOK},
		{"0", observability.OutcomeOK},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, observability.Outcome(tt.result), "%#v", tt.result)
	}
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() {
		observability.NewMetrics(nil)
		observability.NewMetrics(nil)
	})
}
