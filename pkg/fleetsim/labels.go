package fleetsim

import "github.com/dieselfleet/simgen/internal/constants"

// Labels is the per-window supervised-learning target, derived strictly from internal
// simulation state (§4.8, I6): nothing here is ever leaked from a sensor reading, only from
// the ground-truth fault episodes the generator itself tracks.
type Labels struct {
	FaultMode      string // constants.FaultModeID.String(), or "HEALTHY"
	FaultSeverity  string // stage name, or "HEALTHY"
	RULHours       float64
	PathALabel     string // NORMAL / IMMINENT / CRITICAL
}

// stageName gives the human label for a stage, used as the fault_severity value.
func stageName(stage constants.Stage) string {
	switch stage {
	case constants.Stage1:
		return "STAGE1"
	case constants.Stage2:
		return "STAGE2"
	case constants.Stage3:
		return "STAGE3"
	case constants.Stage4:
		return "STAGE4"
	default:
		return "UNKNOWN"
	}
}

// DeriveLabels produces the label set for one window from a truck's active fault episodes
// and the simulation time tHours (§4.8). Faults are compared by stage, tie-broken by earliest
// onset; an episode on the monitor-improve trajectory competes like any other, and if it is
// the worst fault the RUL label is the sentinel.
func DeriveLabels(faults []*FaultEpisode, tHours float64) Labels {
	worst := worstFault(faults)
	if worst == nil {
		return Labels{
			FaultMode:     "HEALTHY",
			FaultSeverity: "HEALTHY",
			RULHours:      constants.RULSentinel,
			PathALabel:    "NORMAL",
		}
	}

	stage := worst.Stage()
	var rul float64
	if worst.Improving {
		rul = constants.RULSentinel
	} else {
		rul = worst.OnsetHrs + worst.LifeHrs - tHours
		if rul < 0 {
			rul = 0
		}
	}

	return Labels{
		FaultMode:     worst.Mode.String(),
		FaultSeverity: stageName(stage),
		RULHours:      rul,
		PathALabel:    pathALabel(stage, worst.Severity),
	}
}

// worstFault picks the active fault with the highest stage, tie-broken by earliest onset
// (§4.8). Improving episodes still participate in worst-fault selection by their current
// (decaying) severity: once it drops far enough, StageFromSeverity naturally demotes them.
func worstFault(faults []*FaultEpisode) *FaultEpisode {
	var worst *FaultEpisode
	for _, f := range faults {
		if worst == nil {
			worst = f
			continue
		}
		if f.Stage() > worst.Stage() {
			worst = f
			continue
		}
		if f.Stage() == worst.Stage() && f.OnsetHrs < worst.OnsetHrs {
			worst = f
		}
	}
	return worst
}

// pathALabel implements the §4.8 NORMAL/IMMINENT/CRITICAL thresholds: stage 1-2 is NORMAL,
// stage 3 below the imminent-severity ceiling is IMMINENT, stage 3 at/above the ceiling or
// stage 4 is CRITICAL.
func pathALabel(stage constants.Stage, severity float64) string {
	switch {
	case stage <= constants.Stage2:
		return "NORMAL"
	case stage == constants.Stage3:
		if severity >= constants.ImminentSeverityCeiling {
			return "CRITICAL"
		}
		return "IMMINENT"
	default:
		return "CRITICAL"
	}
}
