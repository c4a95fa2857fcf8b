package fleetsim

import (
	"math/rand"
	"testing"

	"github.com/dieselfleet/simgen/internal/constants"
)

func TestDutyCycleSimulatorProducesValidModes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sim := NewDutyCycleSimulator(rng, constants.ModeIdle)
	for i := 0; i < constants.WindowsPerDay; i++ {
		w := sim.Step(i)
		if w.Mode < constants.ModeIdle || w.Mode > constants.ModeHeavy {
			t.Fatalf("window %d has invalid mode %v", i, w.Mode)
		}
		profile := constants.ModeProfiles[w.Mode]
		if w.RPM < profile.RPMMin || w.RPM > profile.RPMMax {
			t.Fatalf("window %d RPM %v out of range for mode %v", i, w.RPM, w.Mode)
		}
		if w.Load < profile.LoadMin || w.Load > profile.LoadMax {
			t.Fatalf("window %d load %v out of range for mode %v", i, w.Load, w.Mode)
		}
	}
}

func TestDutyCycleSimulatorDeterministic(t *testing.T) {
	rng1 := rand.New(rand.NewSource(42))
	sim1 := NewDutyCycleSimulator(rng1, constants.ModeIdle)

	rng2 := rand.New(rand.NewSource(42))
	sim2 := NewDutyCycleSimulator(rng2, constants.ModeIdle)

	for i := 0; i < 100; i++ {
		w1 := sim1.Step(i)
		w2 := sim2.Step(i)
		if w1 != w2 {
			t.Fatalf("window %d differs across identical seeds: %+v vs %+v", i, w1, w2)
		}
	}
}

func TestDutyCycleSimulatorEndModeTracksLastStep(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sim := NewDutyCycleSimulator(rng, constants.ModeIdle)
	var last WindowState
	for i := 0; i < 50; i++ {
		last = sim.Step(i)
	}
	if sim.EndMode() != last.Mode {
		t.Fatalf("EndMode() = %v, want %v", sim.EndMode(), last.Mode)
	}
}
