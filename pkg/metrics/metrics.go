// Package metrics records run statistics with Prometheus collectors. Batch runs
// export them once at exit through the node exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the collectors for one analysis run
type Metrics struct {
	registry *prometheus.Registry

	RecordsLoaded    prometheus.Counter
	RecordsKept      prometheus.Counter
	RecordsDropped   prometheus.Counter
	DuplicateQNames  prometheus.Counter
	InstancesDropped *prometheus.CounterVec
	NAPTRsDropped    prometheus.Counter
	DistinctServices prometheus.Gauge
	StageDuration    *prometheus.GaugeVec
}

// New creates metrics on a private registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RecordsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "sdscan_records_loaded_total",
			Help: "Scan records read from the input file.",
		}),
		RecordsKept: factory.NewCounter(prometheus.CounterOpts{
			Name: "sdscan_records_kept_total",
			Help: "Scan records left after sanitization.",
		}),
		RecordsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "sdscan_records_dropped_total",
			Help: "Scan records removed by sanitization.",
		}),
		DuplicateQNames: factory.NewCounter(prometheus.CounterOpts{
			Name: "sdscan_duplicate_qnames_total",
			Help: "Records whose query name was probably seen earlier in the input.",
		}),
		InstancesDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sdscan_instances_dropped_total",
			Help: "Invalid service instances removed by sanitization.",
		}, []string{"probe"}),
		NAPTRsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "sdscan_naptrs_dropped_total",
			Help: "NAPTR entries removed by sanitization.",
		}),
		DistinctServices: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sdscan_distinct_services",
			Help: "Distinct service names across all sanitized records.",
		}),
		StageDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sdscan_stage_duration_seconds",
			Help: "Wall time spent in each pipeline stage.",
		}, []string{"stage"}),
	}
}

// Registry returns the registry holding every collector
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveStage records how long a stage took since start
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Set(time.Since(start).Seconds())
}

// WriteToTextfile writes all collected metrics to path
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
