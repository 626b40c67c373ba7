package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
)

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	require.NoError(t, err)

	p.JobCreated()
	p.JobCreated()
	p.ApplicationStatus(model.StatusApplied)
	p.ApplicationStatus(model.StatusHired)
	p.ApplicationStatus(model.StatusApplied)

	assert.Equal(t, float64(2), testutil.ToFloat64(p.jobsCreated))
	assert.Equal(t, float64(2), testutil.ToFloat64(p.applications.WithLabelValues("applied")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.applications.WithLabelValues("hired")))
}

func TestPrometheus_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg)
	require.NoError(t, err)

	_, err = NewPrometheus(reg)
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var r Recorder = Noop{}
	assert.NotPanics(t, func() {
		r.JobCreated()
		r.ApplicationStatus(model.StatusRejected)
	})
}
