// SPDX-License-Identifier: EPL-2.0

// Package metrics counts pipeline runs with Prometheus collectors. The
// translator is a one-shot command, so the metrics are written to a file for
// the node exporter textfile collector instead of being served.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/ik5/swarantara/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "swarantara"

type Metrics struct {
	registry *prometheus.Registry

	Transitions   *prometheus.CounterVec
	Runs          *prometheus.CounterVec
	StateDuration *prometheus.HistogramVec

	mu      sync.Mutex
	entered time.Time
	now     func() time.Time
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Pipeline state transitions",
		}, []string{"from", "to"}),
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished translation runs by outcome",
		}, []string{"outcome"}),
		StateDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "state_duration_seconds",
			Help:      "Time spent in each pipeline state",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"state"}),
		now: time.Now,
	}
}

// Observe is a pipeline.Observer.
func (m *Metrics) Observe(from, to pipeline.State) {
	m.mu.Lock()
	now := m.now()
	if !m.entered.IsZero() {
		m.StateDuration.WithLabelValues(from.String()).Observe(now.Sub(m.entered).Seconds())
	}
	m.entered = now
	m.mu.Unlock()

	m.Transitions.WithLabelValues(from.String(), to.String()).Inc()

	switch to {
	case pipeline.Ready, pipeline.Failed:
		m.Runs.WithLabelValues(to.String()).Inc()
	}
}

func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

// WriteTextfile writes the current values in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
