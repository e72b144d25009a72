// Package metrics exposes policy evaluation progress as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CodeStranger-Fred/gridworld-eval/mdp"
)

// Collector records sweeps reported by an mdp.Evaluator.
type Collector struct {
	sweeps    prometheus.Counter
	lastDelta prometheus.Gauge
	deltas    prometheus.Histogram
	runs      *prometheus.CounterVec
}

var _ mdp.SweepObserver = (*Collector)(nil)

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridworld_eval_sweeps_total",
			Help: "Total number of Bellman sweeps performed",
		}),
		lastDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gridworld_eval_last_delta",
			Help: "Largest per-state value change in the most recent sweep",
		}),
		deltas: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridworld_eval_sweep_delta",
			Help:    "Distribution of per-sweep max deltas",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridworld_eval_runs_total",
				Help: "Evaluation runs by outcome",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(c.sweeps, c.lastDelta, c.deltas, c.runs)
	return c
}

func (c *Collector) ObserveSweep(sweep int, delta float64) {
	c.sweeps.Inc()
	c.lastDelta.Set(delta)
	c.deltas.Observe(delta)
}

// ObserveResult counts a finished run as converged or partial.
func (c *Collector) ObserveResult(res *mdp.Result) {
	outcome := "partial"
	if res.Converged {
		outcome = "converged"
	}
	c.runs.WithLabelValues(outcome).Inc()
}
