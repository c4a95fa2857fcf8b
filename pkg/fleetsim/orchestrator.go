package fleetsim

import (
	"github.com/dieselfleet/simgen/internal/constants"
	"github.com/dieselfleet/simgen/internal/detrand"
)

// TruckDayResult is one (truck_id, day_index) work unit's full output: every window's row,
// plus the end-of-day thermal vector and operating mode the next day's unit needs (§5, §9
// C10). Maintenance state is not part of the result: RunTruckDay updates it in place.
type TruckDayResult struct {
	Rows             []Row
	EndThermal       [constants.ThermalSensorCount]float64
	EndMode          constants.OperatingMode
	Suppressed       bool // true while the truck is IN_REPAIR: no rows are emitted
}

// RunTruckDay executes one work unit end to end: it owns a fresh *rand.Rand seeded from
// (masterSeed, truck.ID, dayIndex) for its entire duration, plus a "vibration" stream forked
// from the same day seed for the vibration synthesizer (§5 determinism rule), steps
// the duty cycle and thermal model window by window, advances every active fault's
// degradation, composes fault effects, synthesizes vibration, assembles the 221-wide feature
// vector, derives labels, and feeds the day's maintenance lifecycle transition.
//
// maintState is mutated in place: ActiveFaults, EpisodeID, Lifecycle, and the repair window
// all carry forward to the next call for this truck. startThermal is the prior day's
// end-of-day temperature vector (or the truck's idle baseline on day 0 / after a fail-safe
// fallback, per §5). startMode is the previous day's end-of-day operating mode.
// simulationDays is the fleet-wide generation horizon (§4.9.1's sim_end), needed by the
// maintenance lifecycle's post-repair fault-assignment onset draw.
func RunTruckDay(truck *Truck, maintState *MaintenanceState, masterSeed int64, dayIndex int, startThermal [constants.ThermalSensorCount]float64, startMode constants.OperatingMode, simulationDays int) (TruckDayResult, error) {
	rng := detrand.NewRand(masterSeed, truck.ID, dayIndex)
	simEndHours := float64(simulationDays) * 24.0

	if maintState.RepairEndDay != nil && dayIndex >= *maintState.RepairStartDay && dayIndex <= *maintState.RepairEndDay {
		// Truck is IN_REPAIR for this whole day: no operating windows, no rows, state
		// carries forward unchanged except for the maintenance engine's own bookkeeping.
		tHoursEndOfDay := float64(dayIndex+1) * 24.0
		StepDay(maintState, truck, dayIndex, tHoursEndOfDay, simEndHours, rng)
		return TruckDayResult{EndThermal: startThermal, EndMode: startMode, Suppressed: true}, nil
	}

	duty := NewDutyCycleSimulator(rng, startMode)
	thermalSim := NewThermalSimulator(truck, startThermal)
	thermalTracker := NewThermalFeatureTracker()
	vibRng := detrand.ForkRand(detrand.DaySeed(masterSeed, truck.ID, dayIndex), "vibration")

	rows := make([]Row, 0, constants.WindowsPerDay)

	for w := 0; w < constants.WindowsPerDay; w++ {
		tHours := float64(dayIndex)*24.0 + float64(w)*float64(constants.WindowSeconds)/3600.0

		for _, f := range maintState.ActiveFaults {
			AdvanceDegradation(f, tHours, rng)
		}

		window := duty.Step(w)

		effects := make([]FaultEffect, 0, len(maintState.ActiveFaults))
		for _, f := range maintState.ActiveFaults {
			ctx := OperatingContext{Mode: window.Mode, Load: window.Load, RPM: window.RPM}
			effects = append(effects, FaultModeFor(f.Mode).Effect(ctx, f, rng, truck.ID, dayIndex, w))
		}
		composed := ComposeEffects(effects)

		temps := thermalSim.Step(window, composed.ThermalOffsetC)
		thermalFeatures := thermalTracker.Update(temps, truck)

		vib := SynthesizeVibration(window, composed, truck.Bearings, vibRng)

		featureVec, err := AssembleFeatureVector(window, vib, thermalFeatures, truck.ID, dayIndex)
		if err != nil {
			return TruckDayResult{}, err
		}

		labels := DeriveLabels(maintState.ActiveFaults, tHours)

		timestamp := constants.SimulationStartUnix + int64(dayIndex)*86400 + int64(w)*constants.WindowSeconds

		rows = append(rows, Row{
			Timestamp:     timestamp,
			TruckID:       truck.ID,
			EngineType:    truck.EngineProfile.String(),
			DayIndex:      dayIndex,
			EpisodeID:     maintState.EpisodeID,
			WindowIndex:   w,
			OperatingMode: window.Mode.String(),
			RPM:           window.RPM,
			Load:          window.Load,
			Ambient:       window.Ambient,
			Features:      featureVec,
			FaultMode:     labels.FaultMode,
			FaultSeverity: labels.FaultSeverity,
			RULHours:      labels.RULHours,
			PathALabel:    labels.PathALabel,
		})
	}

	tHoursEndOfDay := float64(dayIndex+1) * 24.0
	StepDay(maintState, truck, dayIndex, tHoursEndOfDay, simEndHours, rng)

	return TruckDayResult{
		Rows:       rows,
		EndThermal: thermalSim.Current(),
		EndMode:    duty.EndMode(),
	}, nil
}
