package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/patchbay/pkg/domain"
)

// gatherMetrics exposes gather activity to Prometheus. The serve
// command registers it and feeds it through the engine's hooks.
type gatherMetrics struct {
	passes   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	bundles  *prometheus.GaugeVec
}

func newGatherMetrics() *gatherMetrics {
	m := &gatherMetrics{
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patchbay",
			Name:      "gather_passes_total",
			Help:      "Number of completed gather passes.",
		}, []string{"direction"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "patchbay",
			Name:      "gather_duration_seconds",
			Help:      "Duration of gather passes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"direction"}),
		bundles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "patchbay",
			Name:      "bundles",
			Help:      "Bundles in the current classification.",
		}, []string{"direction"}),
	}
	prometheus.MustRegister(m.passes, m.duration, m.bundles)
	return m
}

func (m *gatherMetrics) Hooks() domain.GatherHooks {
	return domain.GatherHooks{
		OnGatherComplete: func(_ context.Context, ev *domain.GatherEvent) {
			dir := ev.Direction.String()
			m.passes.WithLabelValues(dir).Inc()
			m.duration.WithLabelValues(dir).Observe(ev.Elapsed.Seconds())
			m.bundles.WithLabelValues(dir).Set(float64(ev.Bundles))
		},
	}
}
