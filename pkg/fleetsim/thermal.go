package fleetsim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dieselfleet/simgen/internal/constants"
	"github.com/dieselfleet/simgen/internal/simerrors"
)

// ThermalSimulator advances the six-sensor first-order lag model one window at a time (§4.5).
// It carries no state of its own beyond the current temperature vector; the caller carries it
// across days (SaveThermalState and LoadPreviousThermalState write and read the sidecar).
type ThermalSimulator struct {
	truck *Truck
	temps [constants.ThermalSensorCount]float64
}

// NewThermalSimulator starts a truck-day's thermal model from the given initial temperatures,
// typically the prior day's end-of-day state, or the truck's idle baselines on day 0 or after
// a fail-safe fallback (§4.5, §5 fail-safe rule).
func NewThermalSimulator(truck *Truck, initial [constants.ThermalSensorCount]float64) *ThermalSimulator {
	return &ThermalSimulator{truck: truck, temps: initial}
}

// IdleInitial returns a truck's idle-baseline vector, used as the day-0 / fail-safe starting
// point (§4.5, §5).
func IdleInitial(truck *Truck) [constants.ThermalSensorCount]float64 {
	return truck.ThermalIdleC
}

// Step advances the thermal model by one 60-second window given the window's operating state
// and the composed fault thermal offsets, and returns the resulting temperature vector.
// The step length is constants.WindowSeconds.
func (ts *ThermalSimulator) Step(w WindowState, faultOffsets [constants.ThermalSensorCount]float64) [constants.ThermalSensorCount]float64 {
	dtHours := float64(constants.WindowSeconds) / 3600.0

	for i := 0; i < constants.ThermalSensorCount; i++ {
		idle := ts.truck.ThermalIdleC[i]
		deltaLoad := ts.truck.ThermalDeltaLoad[i]
		coupling := constants.ThermalSensorAmbientCoupling[i]
		tau := constants.ThermalSensorTimeConstantHours[i]

		target := idle + deltaLoad*w.Load + coupling*(w.Ambient-constants.AmbientBaseC) + faultOffsets[i]

		// First-order lag: dT/dt = (target - T) / tau.
		alpha := dtHours / tau
		if alpha > 1 {
			alpha = 1
		}
		ts.temps[i] += alpha * (target - ts.temps[i])

		limit := constants.ThermalSensorPhysicalLimit[i]
		if ts.temps[i] > limit {
			ts.temps[i] = limit
		} else if ts.temps[i] < 0 {
			ts.temps[i] = 0
		}
	}

	return ts.temps
}

// Current returns the simulator's current temperature vector without advancing it.
func (ts *ThermalSimulator) Current() [constants.ThermalSensorCount]float64 {
	return ts.temps
}

// thermalStatePath computes the sidecar path for a truck's end-of-day thermal state (§6.4):
// <runDir>/thermal_state/truck_<id>/day_<d>.json.
func thermalStatePath(runDir string, truckID, dayIndex int) string {
	return filepath.Join(runDir, "thermal_state", fmt.Sprintf("truck_%d", truckID), fmt.Sprintf("day_%d.json", dayIndex))
}

// SaveThermalState persists a truck-day's end-of-day thermal state via atomic temp-file +
// rename (§5 determinism/resumability requirements, adapted from the teacher's RunDir write
// discipline).
func SaveThermalState(runDir string, state ThermalState) error {
	path := thermalStatePath(runDir, state.TruckID, state.DayIndex)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return simerrors.NewIOError("mkdir thermal_state", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return simerrors.NewIOError("marshal thermal_state", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return simerrors.NewIOError("write thermal_state", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return simerrors.NewIOError("rename thermal_state", err)
	}
	return nil
}

// LoadPreviousThermalState loads the prior day's thermal state for a truck. Per the §5
// fail-safe rule, a missing or corrupt sidecar is not fatal: the caller falls back to the
// truck's idle baselines and generation continues. ok reports whether a valid state was found.
func LoadPreviousThermalState(runDir string, truckID, dayIndex int) (state ThermalState, ok bool) {
	if dayIndex <= 0 {
		return ThermalState{}, false
	}
	path := thermalStatePath(runDir, truckID, dayIndex-1)
	data, err := os.ReadFile(path)
	if err != nil {
		return ThermalState{}, false
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return ThermalState{}, false
	}
	return state, true
}
