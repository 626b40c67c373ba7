// Package metrics exposes the job board's domain counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"jobboard/internal/model"
)

// Recorder receives domain events worth counting.
type Recorder interface {
	// JobCreated counts a newly posted job.
	JobCreated()
	// ApplicationStatus counts an application entering status, including the
	// initial "applied".
	ApplicationStatus(status model.ApplicationStatus)
}

// Noop discards every event.
type Noop struct{}

func (Noop) JobCreated()                               {}
func (Noop) ApplicationStatus(model.ApplicationStatus) {}

// Prometheus implements Recorder with counters registered on a Prometheus registry.
type Prometheus struct {
	jobsCreated  prometheus.Counter
	applications *prometheus.CounterVec
}

// NewPrometheus registers the domain counters on reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		jobsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobboard_jobs_created_total",
			Help: "Total number of job listings created.",
		}),
		applications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_applications_total",
			Help: "Total number of applications entering each status.",
		}, []string{"status"}),
	}
	for _, c := range []prometheus.Collector{p.jobsCreated, p.applications} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) JobCreated() { p.jobsCreated.Inc() }

func (p *Prometheus) ApplicationStatus(status model.ApplicationStatus) {
	p.applications.WithLabelValues(string(status)).Inc()
}
