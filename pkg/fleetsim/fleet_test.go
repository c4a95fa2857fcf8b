package fleetsim

import (
	"testing"

	"github.com/dieselfleet/simgen/internal/constants"
)

func TestBuildFleetProducesRequestedCount(t *testing.T) {
	trucks, err := BuildFleet(FleetConfig{TotalTrucks: 10, SimulationDays: 5, MasterSeed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trucks) != 10 {
		t.Fatalf("expected 10 trucks, got %d", len(trucks))
	}
	for i, tr := range trucks {
		if tr.ID != i {
			t.Fatalf("truck at index %d has ID %d", i, tr.ID)
		}
	}
}

func TestBuildFleetDeterministicAcrossCalls(t *testing.T) {
	a, err := BuildFleet(FleetConfig{TotalTrucks: 20, SimulationDays: 183, MasterSeed: 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := BuildFleet(FleetConfig{TotalTrucks: 20, SimulationDays: 183, MasterSeed: 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		if a[i].EngineProfile != b[i].EngineProfile {
			t.Fatalf("truck %d engine profile differs across identical seeds", i)
		}
		if a[i].ThermalIdleC != b[i].ThermalIdleC {
			t.Fatalf("truck %d thermal idle baselines differ across identical seeds", i)
		}
		if len(a[i].InitialFaults) != len(b[i].InitialFaults) {
			t.Fatalf("truck %d fault count differs across identical seeds", i)
		}
	}
}

func TestBuildFleetRejectsNonPositiveTrucks(t *testing.T) {
	if _, err := BuildFleet(FleetConfig{TotalTrucks: 0, SimulationDays: 1, MasterSeed: 1}); err == nil {
		t.Fatalf("expected error for zero trucks")
	}
}

func TestBuildFleetRejectsNonPositiveDays(t *testing.T) {
	if _, err := BuildFleet(FleetConfig{TotalTrucks: 1, SimulationDays: 0, MasterSeed: 1}); err == nil {
		t.Fatalf("expected error for zero days")
	}
}

func TestAssignInitialFaultsWithinPriorBounds(t *testing.T) {
	trucks, err := BuildFleet(FleetConfig{TotalTrucks: 200, SimulationDays: 183, MasterSeed: 55})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tr := range trucks {
		if maxFaults := len(constants.FaultCountPrior) - 1; len(tr.InitialFaults) > maxFaults {
			t.Fatalf("truck %d has %d initial faults, prior allows at most %d", tr.ID, len(tr.InitialFaults), maxFaults)
		}
		seen := map[constants.FaultModeID]bool{}
		for _, f := range tr.InitialFaults {
			if seen[f.Mode] {
				t.Fatalf("truck %d assigned duplicate fault mode %v", tr.ID, f.Mode)
			}
			seen[f.Mode] = true
		}
	}
}
