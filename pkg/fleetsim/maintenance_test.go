package fleetsim

import (
	"math/rand"
	"testing"

	"github.com/dieselfleet/simgen/internal/constants"
)

func TestResolveScheduledInspectionsStage4AlwaysRepairs(t *testing.T) {
	day := 10
	f := &FaultEpisode{Mode: constants.FM01, Severity: 0.97, OnsetHrs: 0, LifeHrs: 5000, InspectionDay: &day}
	state := &MaintenanceState{ActiveFaults: []*FaultEpisode{f}}

	rng := rand.New(rand.NewSource(1))
	entered := resolveScheduledInspections(state, day, rng)

	if !entered {
		t.Fatalf("expected stage-4 inspection to always result in repair")
	}
	if state.RepairStartDay == nil || *state.RepairStartDay != day {
		t.Fatalf("expected repair to start on inspection day, got %+v", state.RepairStartDay)
	}
	if state.RepairEndDay == nil || *state.RepairEndDay <= day {
		t.Fatalf("expected repair end day after start, got %+v", state.RepairEndDay)
	}
}

func TestFinishRepairRemovesFaultAndIncrementsEpisode(t *testing.T) {
	f := &FaultEpisode{Mode: constants.FM02, Severity: 1.0, Detected: true, OnsetHrs: 0, LifeHrs: 1000}
	state := &MaintenanceState{
		ActiveFaults: []*FaultEpisode{f},
		EpisodeID:    3,
		Log: []MaintenanceEvent{
			{Outcome: "REPAIR", FaultRepaired: f.Mode.String(), RepairStartDay: 20},
		},
	}
	start, end := 20, 22
	state.RepairStartDay = &start
	state.RepairEndDay = &end

	truck := testTruck()
	rng := rand.New(rand.NewSource(5))
	simEndHours := float64(constants.SimulationDays) * 24.0
	finishRepair(state, truck, 22, 22*24, simEndHours, rng)

	if len(state.ActiveFaults) != 0 && (len(state.ActiveFaults) != 1 || state.ActiveFaults[0] == f) {
		// Either the fault was removed (len 0), or a new post-repair fault was assigned
		// (len 1, but it must not be the same episode).
		t.Fatalf("expected repaired episode removed, got %+v", state.ActiveFaults)
	}
	if state.EpisodeID != 4 {
		t.Fatalf("expected episode_id incremented to 4, got %d", state.EpisodeID)
	}
	if state.RepairStartDay != nil || state.RepairEndDay != nil {
		t.Fatalf("expected repair window cleared after finishing repair")
	}
	if state.Log[0].RepairEndDay != 22 || state.Log[0].ReturnToServiceDay != 22 {
		t.Fatalf("expected log entry updated with end/return day, got %+v", state.Log[0])
	}
}

func TestFinishRepairNoReassignmentWhenHorizonTooClose(t *testing.T) {
	f := &FaultEpisode{Mode: constants.FM02, Severity: 1.0, Detected: true, OnsetHrs: 0, LifeHrs: 1000}
	state := &MaintenanceState{
		ActiveFaults: []*FaultEpisode{f},
		Log:          []MaintenanceEvent{{Outcome: "REPAIR", FaultRepaired: f.Mode.String(), RepairStartDay: 180}},
	}
	start, end := 180, 182
	state.RepairStartDay = &start
	state.RepairEndDay = &end

	truck := testTruck()
	tHoursEndOfDay := 182 * 24.0
	simEndHours := tHoursEndOfDay + constants.PostRepairHealthyBufferHours - 1 // less than one buffer left

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		finishRepair(state, truck, 182, tHoursEndOfDay, simEndHours, rng)
		if len(state.ActiveFaults) != 0 {
			t.Fatalf("expected no post-repair reassignment when sim_end - return_hours < healthy_buffer, got %+v", state.ActiveFaults)
		}
		state.ActiveFaults = nil
	}
}

func TestFinishRepairOnsetWithinBounds(t *testing.T) {
	f := &FaultEpisode{Mode: constants.FM02, Severity: 1.0, Detected: true, OnsetHrs: 0, LifeHrs: 1000}
	tHoursEndOfDay := 100 * 24.0
	simEndHours := float64(constants.SimulationDays) * 24.0
	truck := testTruck()

	for seed := int64(0); seed < 50; seed++ {
		state := &MaintenanceState{
			ActiveFaults: []*FaultEpisode{f},
			Log:          []MaintenanceEvent{{Outcome: "REPAIR", FaultRepaired: f.Mode.String(), RepairStartDay: 100}},
		}
		start, end := 100, 100
		state.RepairStartDay = &start
		state.RepairEndDay = &end
		rng := rand.New(rand.NewSource(seed))
		finishRepair(state, truck, 100, tHoursEndOfDay, simEndHours, rng)

		for _, ep := range state.ActiveFaults {
			minOnset := tHoursEndOfDay + constants.PostRepairHealthyBufferHours
			maxOnset := simEndHours
			if ep.OnsetHrs < minOnset || ep.OnsetHrs > maxOnset {
				t.Fatalf("post-repair onset %v out of bounds [%v, %v]", ep.OnsetHrs, minOnset, maxOnset)
			}
		}
	}
}

func TestPickUnusedFaultModeAvoidsActive(t *testing.T) {
	active := []*FaultEpisode{{Mode: constants.FM01}, {Mode: constants.FM02}}
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		mode := pickUnusedFaultMode(active, rng)
		if mode == constants.FM01 || mode == constants.FM02 {
			t.Fatalf("pickUnusedFaultMode returned an already-active mode: %v", mode)
		}
	}
}

func TestPickUnusedFaultModeAllActiveReturnsSentinel(t *testing.T) {
	active := make([]*FaultEpisode, 0, constants.NumFaultModes)
	for id := constants.FaultModeID(0); id < constants.NumFaultModes; id++ {
		active = append(active, &FaultEpisode{Mode: id})
	}
	rng := rand.New(rand.NewSource(2))
	if mode := pickUnusedFaultMode(active, rng); mode != -1 {
		t.Fatalf("expected -1 when all modes active, got %v", mode)
	}
}

func TestRunDetectionTrialsStage4HighDetectionRate(t *testing.T) {
	detected := 0
	const trials = 300
	for seed := int64(0); seed < trials; seed++ {
		f := &FaultEpisode{
			Mode: constants.FM06, Severity: 0.97, OnsetHrs: 0, LifeHrs: 2000,
			DetectionProb: map[constants.Stage]float64{constants.Stage4: constants.DetectionProbStage4Fixed},
		}
		state := &MaintenanceState{ActiveFaults: []*FaultEpisode{f}}
		rng := rand.New(rand.NewSource(seed))
		runDetectionTrials(state, 0, rng)
		if f.Detected {
			detected++
		}
	}
	if float64(detected)/float64(trials) < 0.85 {
		t.Fatalf("detection rate too low for p=0.95 stage-4 fault: %d/%d", detected, trials)
	}
}

func TestUpdateLifecyclePrunesImprovedAwayFaults(t *testing.T) {
	healthy := &FaultEpisode{Mode: constants.FM01, Severity: 0.005, Improving: true}
	state := &MaintenanceState{ActiveFaults: []*FaultEpisode{healthy}}
	updateLifecycle(state)
	if len(state.ActiveFaults) != 0 {
		t.Fatalf("expected improved-away fault pruned, got %+v", state.ActiveFaults)
	}
	if state.Lifecycle != StateHealthy {
		t.Fatalf("expected HEALTHY lifecycle after pruning, got %v", state.Lifecycle)
	}
}

func TestStepDayDuringRepairHoldsMaintenanceState(t *testing.T) {
	start, end := 5, 8
	state := &MaintenanceState{RepairStartDay: &start, RepairEndDay: &end}
	truck := testTruck()
	rng := rand.New(rand.NewSource(1))
	simEndHours := float64(constants.SimulationDays) * 24.0

	decision := StepDay(state, truck, 6, 6*24, simEndHours, rng)
	if decision.EnteredRepair || decision.ExitedRepair {
		t.Fatalf("expected no transition mid-repair, got %+v", decision)
	}
	if state.Lifecycle != StateMaintenance {
		t.Fatalf("expected MAINTENANCE lifecycle during repair, got %v", state.Lifecycle)
	}
}
