package fleetsim

import (
	"math/rand"

	"github.com/dieselfleet/simgen/internal/constants"
)

// MaintenanceDecision reports what StepDay changed, so the orchestrator can decide whether a
// truck emits rows at all on the following day (it does not, while IN_REPAIR).
type MaintenanceDecision struct {
	EnteredRepair bool
	ExitedRepair  bool
}

// StepDay advances one truck's maintenance lifecycle by one calendar day (§4.9): it runs
// detection trials for undetected, stage-eligible faults, resolves any inspection scheduled
// for today, advances any in-progress repair, and performs post-repair fault reassignment.
// tHoursEndOfDay is the truck's simulation time (engine-hours) at the end of dayIndex.
// simEndHours is the fleet-wide generation horizon (§4.9.1's sim_end), used to bound the
// post-repair fault-assignment onset draw.
func StepDay(state *MaintenanceState, truck *Truck, dayIndex int, tHoursEndOfDay, simEndHours float64, rng *rand.Rand) MaintenanceDecision {
	var decision MaintenanceDecision

	if state.RepairEndDay != nil {
		if dayIndex >= *state.RepairEndDay {
			finishRepair(state, truck, dayIndex, tHoursEndOfDay, simEndHours, rng)
			decision.ExitedRepair = true
		}
		updateLifecycle(state)
		return decision
	}

	runDetectionTrials(state, dayIndex, rng)
	enteredRepair := resolveScheduledInspections(state, dayIndex, rng)
	decision.EnteredRepair = enteredRepair

	updateLifecycle(state)
	return decision
}

// runDetectionTrials runs one Bernoulli trial per undetected, stage >= 2 fault, using its
// pre-sampled per-stage detection probability (§4.1, §4.9 step 1). On success the fault is
// marked detected and an inspection is scheduled after a stage-appropriate delay.
func runDetectionTrials(state *MaintenanceState, dayIndex int, rng *rand.Rand) {
	for _, f := range state.ActiveFaults {
		if f.Detected || f.InspectionDay != nil {
			continue
		}
		stage := f.Stage()
		if stage < constants.Stage2 {
			continue
		}
		p, ok := f.DetectionProb[stage]
		if !ok {
			continue
		}
		if rng.Float64() < p {
			f.Detected = true
			delayRange := constants.InspectionDelayDaysRange[stage]
			delay := delayRange[0]
			if delayRange[1] > delayRange[0] {
				delay += rng.Intn(delayRange[1] - delayRange[0] + 1)
			}
			day := dayIndex + delay
			f.InspectionDay = &day
		}
	}
}

// resolveScheduledInspections processes every fault whose inspection falls on dayIndex
// (handling the concurrent-inspection collision case naturally, since each fault is resolved
// independently in turn) and returns whether the truck entered repair today. Per §4.9 step 2,
// the outcome is Repair, Monitor, or FalsePositive, sampled from stage-conditional weights. A
// Repair outcome wins the day: once one fault sends the truck to the shop, any other fault
// scheduled for the same day is deferred one day rather than double-scheduling a repair.
func resolveScheduledInspections(state *MaintenanceState, dayIndex int, rng *rand.Rand) bool {
	enteredRepair := false
	for _, f := range state.ActiveFaults {
		if f.InspectionDay == nil || *f.InspectionDay != dayIndex {
			continue
		}
		if enteredRepair {
			deferred := dayIndex + 1
			f.InspectionDay = &deferred
			continue
		}

		stage := f.Stage()
		weights := constants.InspectionOutcomeWeightsByStage[stage]
		outcome := selectWeightedIndex(rng, []int{weights.Repair, weights.Monitor, weights.FalsePositive})

		switch outcome {
		case 0: // Repair
			f.InspectionDay = nil
			beginRepair(state, f, dayIndex, rng)
			enteredRepair = true
		case 1: // Monitor -> begin the monitor-improve trajectory, from the fault's own
			// most-recently-advanced simulation time (degradation.go advances it once per
			// window, so by the time StepDay runs at day-end it already reflects today).
			f.InspectionDay = nil
			tau := sampleUniform(rng, constants.MonitorImproveTauRangeHours[0], constants.MonitorImproveTauRangeHours[1])
			BeginImprove(f, f.lastAdvanceHrs, tau)
		case 2: // FalsePositive -> fault continues, undetected again
			f.Detected = false
			f.InspectionDay = nil
		}
	}
	return enteredRepair
}

// beginRepair schedules the repair window for a fault that was sent to the shop (§4.9 step 3).
func beginRepair(state *MaintenanceState, f *FaultEpisode, dayIndex int, rng *rand.Rand) {
	stage := f.Stage()
	durRange := constants.RepairDurationDaysRange[stage]
	dur := durRange[0]
	if durRange[1] > durRange[0] {
		dur += rng.Intn(durRange[1] - durRange[0] + 1)
	}
	start := dayIndex
	end := dayIndex + dur
	state.RepairStartDay = &start
	state.RepairEndDay = &end

	state.Log = append(state.Log, MaintenanceEvent{
		EpisodeIDBefore: state.EpisodeID,
		EpisodeIDAfter:  state.EpisodeID,
		FaultRepaired:   f.Mode.String(),
		DetectionStage:  int(stage),
		InspectionDay:   dayIndex,
		Outcome:         "REPAIR",
		RepairStartDay:  start,
	})
}

// finishRepair resets the repaired fault (severity to 0, I5's episode_id increment), returns
// the truck to service, and performs post-repair fault reassignment (§4.9.1): 70% probability
// of a new fault, drawn only from modes not currently active. The new fault's onset is
// return_hours + healthy_buffer + U(0, sim_end − return_hours − healthy_buffer); if
// sim_end − return_hours < healthy_buffer, no new fault is assigned at all.
func finishRepair(state *MaintenanceState, truck *Truck, dayIndex int, tHoursEndOfDay, simEndHours float64, rng *rand.Rand) {
	repaired := repairedFault(state)
	state.ActiveFaults = removeFault(state.ActiveFaults, repaired)
	state.EpisodeID++

	for i := range state.Log {
		if state.Log[i].Outcome == "REPAIR" && state.Log[i].RepairEndDay == 0 {
			state.Log[i].RepairEndDay = dayIndex
			state.Log[i].ReturnToServiceDay = dayIndex
			state.Log[i].EpisodeIDAfter = state.EpisodeID
			break
		}
	}

	state.RepairStartDay = nil
	state.RepairEndDay = nil

	headroom := simEndHours - tHoursEndOfDay - constants.PostRepairHealthyBufferHours
	if headroom >= 0 && rng.Float64() < constants.PostRepairAssignProbability {
		mode := pickUnusedFaultMode(state.ActiveFaults, rng)
		if mode >= 0 {
			onset := tHoursEndOfDay + constants.PostRepairHealthyBufferHours + sampleUniform(rng, 0, headroom)
			lifeRange := constants.FaultTotalLifeRangeHours[mode]
			ep := &FaultEpisode{
				Mode:     mode,
				OnsetHrs: onset,
				LifeHrs:  sampleUniform(rng, lifeRange[0], lifeRange[1]),
				DetectionProb: map[constants.Stage]float64{
					constants.Stage2: sampleUniform(rng, constants.DetectionProbStage2Range[0], constants.DetectionProbStage2Range[1]),
					constants.Stage3: sampleUniform(rng, constants.DetectionProbStage3Range[0], constants.DetectionProbStage3Range[1]),
					constants.Stage4: constants.DetectionProbStage4Fixed,
				},
			}
			state.ActiveFaults = append(state.ActiveFaults, ep)
		}
	}
}

// repairedFault returns the fault currently under repair, identified as the one that caused
// RepairStartDay/RepairEndDay to be set. Since only one repair runs at a time, it is simply
// the detected-and-cleared-for-repair fault still carrying InspectionDay == nil and Detected
// == true with no active improve trajectory.
func repairedFault(state *MaintenanceState) *FaultEpisode {
	for _, f := range state.ActiveFaults {
		if f.Detected && !f.Improving && f.InspectionDay == nil {
			return f
		}
	}
	return nil
}

func removeFault(faults []*FaultEpisode, target *FaultEpisode) []*FaultEpisode {
	if target == nil {
		return faults
	}
	out := faults[:0]
	for _, f := range faults {
		if f != target {
			out = append(out, f)
		}
	}
	return out
}

// pickUnusedFaultMode returns a fault mode not present among active faults, or -1 if all
// eight are already active (an edge case the spec treats as "no reassignment this cycle").
func pickUnusedFaultMode(active []*FaultEpisode, rng *rand.Rand) constants.FaultModeID {
	used := make(map[constants.FaultModeID]bool, len(active))
	for _, f := range active {
		used[f.Mode] = true
	}

	candidates := make([]constants.FaultModeID, 0, constants.NumFaultModes)
	for id := constants.FaultModeID(0); id < constants.NumFaultModes; id++ {
		if !used[id] {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[rng.Intn(len(candidates))]
}

// updateLifecycle recomputes state.Lifecycle from the worst active fault, or MAINTENANCE if a
// repair is in progress, and prunes any improve-trajectory fault that has decayed away.
func updateLifecycle(state *MaintenanceState) {
	if state.RepairEndDay != nil {
		state.Lifecycle = StateMaintenance
		return
	}

	pruned := state.ActiveFaults[:0]
	for _, f := range state.ActiveFaults {
		if ImprovedAway(f) {
			continue
		}
		pruned = append(pruned, f)
	}
	state.ActiveFaults = pruned

	worst := worstFault(state.ActiveFaults)
	if worst == nil {
		state.Lifecycle = StateHealthy
		return
	}
	state.Lifecycle = LifecycleFromStage(worst.Stage(), true)
}
