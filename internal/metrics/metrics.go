// Package metrics exposes prometheus collectors for the dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vgsales"

type Metrics struct {
	CacheLookups *prometheus.CounterVec
	LoadedRows   prometheus.Gauge
	DroppedRows  prometheus.Gauge
	LoadSeconds  prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Derived-view cache lookups by operation and result.",
		}, []string{"op", "result"}),
		LoadedRows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loaded_rows",
			Help:      "Rows in the cleaned table.",
		}),
		DroppedRows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dropped_rows",
			Help:      "Records dropped while loading for missing or unparseable cells.",
		}),
		LoadSeconds: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time spent loading and trimming the dataset.",
		}),
	}
}

// CacheHit and CacheMiss make Metrics an engine.CacheObserver.
func (m *Metrics) CacheHit(op string) {
	m.CacheLookups.WithLabelValues(op, "hit").Inc()
}

func (m *Metrics) CacheMiss(op string) {
	m.CacheLookups.WithLabelValues(op, "miss").Inc()
}
