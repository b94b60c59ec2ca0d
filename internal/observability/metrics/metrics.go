package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics tracks per-run counters for the procurement pipeline.
type PipelineMetrics struct {
	runs       *prometheus.CounterVec
	exceptions *prometheus.CounterVec
	units      prometheus.Counter
	duration   prometheus.Histogram
}

var (
	pipelineOnce sync.Once
	pipeline     *PipelineMetrics
)

// Pipeline returns the process-wide pipeline metrics, registering them on
// first use.
func Pipeline() *PipelineMetrics {
	pipelineOnce.Do(func() {
		pipeline = newPipelineMetrics(prometheus.DefaultRegisterer)
	})
	return pipeline
}

func newPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "procura_pipeline_runs_total",
			Help: "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		exceptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "procura_pipeline_exceptions_total",
			Help: "Data-quality exceptions by kind.",
		}, []string{"kind"}),
		units: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "procura_pipeline_units_ordered_total",
			Help: "Total units placed on supplier orders.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "procura_pipeline_run_duration_seconds",
			Help:    "Wall-clock duration of a full pipeline run.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
	for _, c := range []prometheus.Collector{m.runs, m.exceptions, m.units, m.duration} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				panic(err)
			}
		}
	}
	return m
}

func (m *PipelineMetrics) IncRun(outcome string) {
	m.runs.WithLabelValues(outcome).Inc()
}

func (m *PipelineMetrics) IncException(kind string) {
	m.exceptions.WithLabelValues(kind).Inc()
}

func (m *PipelineMetrics) AddUnitsOrdered(units int) {
	if units > 0 {
		m.units.Add(float64(units))
	}
}

func (m *PipelineMetrics) ObserveRunDuration(seconds float64) {
	m.duration.Observe(seconds)
}
