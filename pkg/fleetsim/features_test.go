package fleetsim

import (
	"math/rand"
	"testing"

	"github.com/dieselfleet/simgen/internal/constants"
)

func TestAssembleFeatureVectorWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := WindowState{Mode: constants.ModeCruise, RPM: 1500, Load: 0.5, Ambient: 20}
	bearings := BearingFreqs{100, 150, 55, 12, 25}
	vib := SynthesizeVibration(w, zeroEffect(), bearings, rng)

	truck := testTruck()
	tracker := NewThermalFeatureTracker()
	thermal := tracker.Update(truck.ThermalIdleC, truck)

	vec, err := AssembleFeatureVector(w, vib, thermal, truck.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != constants.TotalFeatureCount {
		t.Fatalf("feature vector width = %d, want %d", len(vec), constants.TotalFeatureCount)
	}
}

func TestFeatureColumnNamesMatchesVectorWidth(t *testing.T) {
	names := FeatureColumnNames()
	if len(names) != constants.TotalFeatureCount {
		t.Fatalf("column names width = %d, want %d", len(names), constants.TotalFeatureCount)
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Fatalf("duplicate column name: %s", n)
		}
		seen[n] = true
	}
}

func TestThermalFeatureTrackerDayMaxMin(t *testing.T) {
	truck := testTruck()
	tracker := NewThermalFeatureTracker()

	low := truck.ThermalIdleC
	high := truck.ThermalIdleC
	for i := range high {
		high[i] += 20
	}

	tracker.Update(low, truck)
	tf := tracker.Update(high, truck)
	tf2 := tracker.Update(low, truck)

	if tf.PerSensor[0][2] != high[0] {
		t.Fatalf("day_max after rise = %v, want %v", tf.PerSensor[0][2], high[0])
	}
	if tf2.PerSensor[0][2] != high[0] {
		t.Fatalf("day_max should persist after a later drop, got %v want %v", tf2.PerSensor[0][2], high[0])
	}
	if tf2.PerSensor[0][3] != low[0] {
		t.Fatalf("day_min after drop = %v, want %v", tf2.PerSensor[0][3], low[0])
	}
}
