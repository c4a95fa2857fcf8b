package genmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveTruckDaySuccessIncrementsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTruckDay(1.5, 1440, false)

	var metric dto.Metric
	if err := m.truckDaysDone.Write(&metric); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if metric.GetCounter().GetValue() != 1 {
		t.Fatalf("expected truck_days_done = 1, got %v", metric.GetCounter().GetValue())
	}

	var rows dto.Metric
	if err := m.rowsWritten.Write(&rows); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if rows.GetCounter().GetValue() != 1440 {
		t.Fatalf("expected rows_written = 1440, got %v", rows.GetCounter().GetValue())
	}
}

func TestObserveTruckDayFailureIncrementsFailedOnly(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTruckDay(0.1, 0, true)

	var failed dto.Metric
	if err := m.truckDaysFailed.Write(&failed); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if failed.GetCounter().GetValue() != 1 {
		t.Fatalf("expected truck_days_failed = 1, got %v", failed.GetCounter().GetValue())
	}

	var done dto.Metric
	if err := m.truckDaysDone.Write(&done); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if done.GetCounter().GetValue() != 0 {
		t.Fatalf("expected truck_days_done = 0 on failure, got %v", done.GetCounter().GetValue())
	}
}

func TestSetFleetLifecycleCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SetFleetLifecycleCounts(map[string]int{"HEALTHY": 180, "DEGRADING": 20})

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	found := false
	for _, mf := range metrics {
		if mf.GetName() == "simgen_trucks_total" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected simgen_trucks_total to be registered and gathered")
	}
}
