// Package genmetrics exposes the generation run's progress as Prometheus metrics, adapted
// from the teacher's controlplane PrometheusMetrics: instead of polling a database on every
// Collect, the generator's metrics are simple gauges/counters the orchestrator updates
// directly as truck-days complete, since there is no backing store to poll.
package genmetrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the generator's Prometheus collector.
type Metrics struct {
	trucksTotal      *prometheus.GaugeVec
	truckDaysDone    prometheus.Counter
	truckDaysFailed  prometheus.Counter
	rowsWritten      prometheus.Counter
	maintenanceEvents *prometheus.CounterVec
	generationSeconds prometheus.Histogram
}

// New creates a fresh Metrics instance and registers it with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		trucksTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "simgen_trucks_total",
				Help: "Total number of trucks in the fleet, by lifecycle state",
			},
			[]string{"lifecycle"},
		),
		truckDaysDone: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simgen_truck_days_completed_total",
			Help: "Total number of (truck_id, day_index) work units completed",
		}),
		truckDaysFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simgen_truck_days_failed_total",
			Help: "Total number of (truck_id, day_index) work units that aborted with an error",
		}),
		rowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simgen_rows_written_total",
			Help: "Total number of feature rows written to disk",
		}),
		maintenanceEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simgen_maintenance_events_total",
				Help: "Total number of maintenance lifecycle events, by outcome",
			},
			[]string{"outcome"},
		),
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "simgen_truck_day_duration_seconds",
			Help:    "Wall-clock time to generate one truck-day",
			Buckets: prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(m.trucksTotal, m.truckDaysDone, m.truckDaysFailed, m.rowsWritten, m.maintenanceEvents, m.generationSeconds)
	}
	return m
}

// ObserveTruckDay records the completion (successful or not) of one work unit.
func (m *Metrics) ObserveTruckDay(seconds float64, rowCount int, failed bool) {
	m.generationSeconds.Observe(seconds)
	if failed {
		m.truckDaysFailed.Inc()
		return
	}
	m.truckDaysDone.Inc()
	m.rowsWritten.Add(float64(rowCount))
}

// ObserveMaintenanceEvent records one maintenance-lifecycle outcome.
func (m *Metrics) ObserveMaintenanceEvent(outcome string) {
	m.maintenanceEvents.WithLabelValues(outcome).Inc()
}

// SetFleetLifecycleCounts replaces the current lifecycle-state gauge snapshot.
func (m *Metrics) SetFleetLifecycleCounts(counts map[string]int) {
	m.trucksTotal.Reset()
	for lifecycle, count := range counts {
		m.trucksTotal.WithLabelValues(lifecycle).Set(float64(count))
	}
}
