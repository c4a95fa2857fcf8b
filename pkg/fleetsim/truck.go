// Package fleetsim is the core synthetic-data simulation engine for a fleet of diesel
// trucks: the Markov duty-cycle model, the thermal model, the degradation and fault-effect
// library, the maintenance lifecycle state machine, the feature assembler, and the truck-day
// orchestrator that composes them, plus the per-truck goroutine pool (RunFleet) and the
// output-directory and sidecar helpers. It has no knowledge of the CLI or of the row file
// format — those live in cmd/fleetsim-gen and pkg/rowio.
package fleetsim

import (
	"encoding/json"

	"github.com/dieselfleet/simgen/internal/constants"
)

// BearingFreqs holds the five characteristic geometric frequencies sampled for a truck's
// bearings at fleet-factory time (§3, §4.1).
type BearingFreqs [constants.BearingFreqCount]float64

// Truck is the static, immutable-after-creation description of one fleet member (§3).
type Truck struct {
	ID               int
	EngineProfile    constants.EngineProfile
	ThermalIdleC     [constants.ThermalSensorCount]float64
	ThermalDeltaLoad [constants.ThermalSensorCount]float64
	Bearings         BearingFreqs
	Seed             int64 // truck_seed = master_seed + truck_id

	// InitialFaults are the 0-3 distinct fault modes assigned at fleet-factory time.
	InitialFaults []*FaultEpisode
}

// FaultEpisode is one active fault instance (§3).
type FaultEpisode struct {
	Mode     constants.FaultModeID
	OnsetHrs float64
	LifeHrs  float64 // total-life, in engine-hours

	// DetectionProb holds the pre-sampled per-stage detection probability for stages 2,3,4.
	DetectionProb map[constants.Stage]float64

	Severity float64
	Detected bool

	// InspectionDay, when set, is the absolute day index an inspection is scheduled for.
	InspectionDay *int

	// Improving marks the monitor-improve trajectory (§4.3); Tau is its time constant.
	Improving    bool
	Tau          float64
	ImproveStart float64 // engine-hours at which the improve trajectory began
	ImproveFrom  float64 // severity at the moment improvement began

	// ouNoise and lastAdvanceHrs carry the degradation model's mean-reverting noise term and
	// the last simulation time it was advanced at, so successive calls integrate correctly.
	ouNoise       float64
	lastAdvanceHrs float64
	everAdvanced  bool
}

// Stage returns the episode's current stage, derived from severity (I2).
func (f *FaultEpisode) Stage() constants.Stage {
	return constants.StageFromSeverity(f.Severity)
}

// TruckLifecycleState is the coarse truck-level state derived from the worst active fault,
// or MAINTENANCE while a repair is in progress (§3).
type TruckLifecycleState int

const (
	StateHealthy TruckLifecycleState = iota
	StateDegrading
	StateImminent
	StateCritical
	StateMaintenance
)

func (s TruckLifecycleState) String() string {
	switch s {
	case StateHealthy:
		return "HEALTHY"
	case StateDegrading:
		return "DEGRADING"
	case StateImminent:
		return "IMMINENT"
	case StateCritical:
		return "CRITICAL"
	case StateMaintenance:
		return "MAINTENANCE"
	default:
		return "UNKNOWN"
	}
}

// LifecycleFromStage maps a fault's stage to the truck-level lifecycle state it implies
// when it is the worst active fault (§3). It is a pure (stage, hasFault) -> state function;
// MAINTENANCE is never derived here, only entered/exited explicitly by the maintenance engine.
func LifecycleFromStage(stage constants.Stage, hasFault bool) TruckLifecycleState {
	if !hasFault {
		return StateHealthy
	}
	switch stage {
	case constants.Stage1:
		return StateDegrading
	case constants.Stage2:
		return StateDegrading
	case constants.Stage3:
		return StateImminent
	case constants.Stage4:
		return StateCritical
	default:
		return StateHealthy
	}
}

// ThermalState is the six-sensor temperature vector persisted at end-of-day (§3, §6.4).
// The six sensor values are carried in Temps but marshal/unmarshal as literal T1..T6 keys,
// matching the sidecar file contract exactly.
type ThermalState struct {
	TruckID   int        `json:"truck_id"`
	DayIndex  int        `json:"day_index"`
	Timestamp int64      `json:"timestamp"`
	Temps     [constants.ThermalSensorCount]float64 `json:"-"`
}

type thermalStateWire struct {
	TruckID   int     `json:"truck_id"`
	DayIndex  int     `json:"day_index"`
	Timestamp int64   `json:"timestamp"`
	T1        float64 `json:"T1"`
	T2        float64 `json:"T2"`
	T3        float64 `json:"T3"`
	T4        float64 `json:"T4"`
	T5        float64 `json:"T5"`
	T6        float64 `json:"T6"`
}

// MarshalJSON expands Temps into the named T1..T6 keys the sidecar contract requires (§6.4).
func (t ThermalState) MarshalJSON() ([]byte, error) {
	return json.Marshal(thermalStateWire{
		TruckID:   t.TruckID,
		DayIndex:  t.DayIndex,
		Timestamp: t.Timestamp,
		T1:        t.Temps[0],
		T2:        t.Temps[1],
		T3:        t.Temps[2],
		T4:        t.Temps[3],
		T5:        t.Temps[4],
		T6:        t.Temps[5],
	})
}

// UnmarshalJSON is the inverse of MarshalJSON, collapsing T1..T6 back into Temps.
func (t *ThermalState) UnmarshalJSON(data []byte) error {
	var w thermalStateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.TruckID = w.TruckID
	t.DayIndex = w.DayIndex
	t.Timestamp = w.Timestamp
	t.Temps = [constants.ThermalSensorCount]float64{w.T1, w.T2, w.T3, w.T4, w.T5, w.T6}
	return nil
}

// MaintenanceState is the per-truck day-to-day state carried by the maintenance lifecycle
// engine (§4.9): the active faults, the episode counter, and any in-flight repair/inspection.
type MaintenanceState struct {
	TruckID   int
	EpisodeID int32 // I5: count of completed repairs since simulation start

	ActiveFaults []*FaultEpisode

	Lifecycle TruckLifecycleState

	// RepairStartDay is the inspection day that sent the truck to the shop; its rows were
	// already emitted before the repair began. RepairEndDay, when set, is the last day index
	// the truck remains IN_REPAIR (inclusive). No rows are emitted for this truck on any day
	// after RepairStartDay up to and including RepairEndDay.
	RepairStartDay *int
	RepairEndDay   *int

	// LastEndMode is a slot for the operating mode at the end of the previous operating day.
	// Nothing in the module reads or writes it: RunTruckDay takes the start mode as a
	// parameter and returns the end mode in TruckDayResult.EndMode.
	LastEndMode constants.OperatingMode

	Log []MaintenanceEvent
}

// MaintenanceEvent records one detection/inspection/outcome cycle (§4.9.2, §6.4).
type MaintenanceEvent struct {
	EpisodeIDBefore  int32  `json:"episode_id_before"`
	EpisodeIDAfter   int32  `json:"episode_id_after"`
	FaultRepaired    string `json:"fault_repaired"`
	DetectionDay     int    `json:"detection_day"`
	DetectionStage   int    `json:"detection_stage"`
	InspectionDay    int    `json:"inspection_day"`
	Outcome          string `json:"outcome"`
	RepairStartDay   int    `json:"repair_start_day,omitempty"`
	RepairEndDay     int    `json:"repair_end_day,omitempty"`
	ReturnToServiceDay int  `json:"return_to_service_day,omitempty"`
}
