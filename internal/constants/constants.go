// Package constants holds the fixed numeric parameters of the fleet simulation:
// the duty-cycle Markov matrix, per-fault-mode ranges, and severity-stage thresholds.
// Callers load these values rather than inlining them at each call site, so a future
// recalibration only touches one place.
package constants

// WindowsPerDay is the number of 60-second observation windows simulated per truck-day.
const WindowsPerDay = 1440

// WindowSeconds is the duration, in seconds, of one observation window.
const WindowSeconds = 60

// TotalTrucks and SimulationDays are the default fleet-wide generation parameters.
const (
	TotalTrucks    = 200
	SimulationDays = 183
)

// SimulationStartUnix is the Unix epoch second of day_index=0, window_index=0, used to
// stamp each row's timestamp column (§6.3).
const SimulationStartUnix int64 = 1705276800 // 2024-01-15T00:00:00Z

// OperatingMode is the categorical duty-cycle state of a truck engine.
type OperatingMode int

const (
	ModeIdle OperatingMode = iota
	ModeCity
	ModeCruise
	ModeHeavy
	numOperatingModes
)

func (m OperatingMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeCity:
		return "city"
	case ModeCruise:
		return "cruise"
	case ModeHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// DutyCycleMatrix is the fixed Markov transition matrix for operating modes.
// Rows are "from" states, columns are "to" states, in OperatingMode order
// (idle, city, cruise, heavy). Each row sums to 1.
var DutyCycleMatrix = [4][4]float64{
	// idle   city   cruise heavy
	{0.80, 0.14, 0.05, 0.01}, // from idle
	{0.10, 0.75, 0.12, 0.03}, // from city
	{0.04, 0.10, 0.82, 0.04}, // from cruise
	{0.05, 0.10, 0.15, 0.70}, // from heavy
}

// ModeProfile gives the RPM/load sampling ranges for an operating mode.
type ModeProfile struct {
	RPMMin, RPMMax   float64
	LoadMin, LoadMax float64 // fraction of rated load, 0..1
}

// ModeProfiles maps each OperatingMode to its RPM/load ranges.
var ModeProfiles = [4]ModeProfile{
	ModeIdle:   {RPMMin: 600, RPMMax: 800, LoadMin: 0.00, LoadMax: 0.08},
	ModeCity:   {RPMMin: 1000, RPMMax: 1800, LoadMin: 0.20, LoadMax: 0.55},
	ModeCruise: {RPMMin: 1300, RPMMax: 1700, LoadMin: 0.40, LoadMax: 0.70},
	ModeHeavy:  {RPMMin: 1600, RPMMax: 2200, LoadMin: 0.70, LoadMax: 1.00},
}

// EngineProfile is the static engine-variant assigned to a truck at fleet-factory time.
type EngineProfile int

const (
	EngineModern EngineProfile = iota
	EngineOlder
)

func (e EngineProfile) String() string {
	if e == EngineOlder {
		return "older"
	}
	return "modern"
}

// ModernEngineShare is the prior probability a generated truck is the modern variant.
const ModernEngineShare = 0.80

// ThermalSensorCount is the number of thermal sensors tracked per truck (§4.5).
const ThermalSensorCount = 6

// ThermalSensorIdleRange gives the per-sensor idle-baseline sampling range, in Celsius.
var ThermalSensorIdleRange = [ThermalSensorCount][2]float64{
	{70, 85},   // coolant
	{60, 75},   // oil
	{250, 320}, // EGT (exhaust gas temperature)
	{40, 55},   // intake manifold
	{30, 45},   // fuel
	{35, 50},   // ambient-coupled transmission
}

// ThermalSensorDeltaLoadRange gives the per-sensor sampling range for the Δload coefficient
// (degrees C of steady-state rise per unit of load fraction), sampled independently — never
// derived as cruise-minus-idle (spec.md §4.1).
var ThermalSensorDeltaLoadRange = [ThermalSensorCount][2]float64{
	{15, 35},
	{20, 40},
	{150, 280},
	{10, 25},
	{5, 15},
	{8, 20},
}

// ThermalSensorAmbientCoupling is the fixed per-sensor coupling of ambient temperature into
// the steady-state target temperature.
var ThermalSensorAmbientCoupling = [ThermalSensorCount]float64{0.6, 0.5, 0.3, 0.8, 0.7, 0.6}

// ThermalSensorTimeConstantHours is the first-order lag time constant τ per sensor.
var ThermalSensorTimeConstantHours = [ThermalSensorCount]float64{0.25, 0.3, 0.15, 0.2, 0.35, 0.3}

// ThermalSensorMaxExcursion is the per-sensor cap on the summed fault thermal offset (§4.4).
var ThermalSensorMaxExcursion = [ThermalSensorCount]float64{25, 30, 120, 20, 15, 18}

// ThermalSensorPhysicalLimit is the per-sensor hard clamp applied after each simulation step.
var ThermalSensorPhysicalLimit = [ThermalSensorCount]float64{130, 150, 750, 100, 90, 110}

// AmbientBaseC and AmbientDailySwingC parameterize the slow daily ambient-temperature sinusoid.
const (
	AmbientBaseC       = 18.0
	AmbientDailySwingC = 10.0
)

// Stage is the ordinal fault-progression stage (§3, I2).
type Stage int

const (
	Stage1 Stage = 1 + iota
	Stage2
	Stage3
	Stage4
)

// SeverityStageThresholds give the severity lower bound for stages 1..4 plus the terminal
// bound 1.0 (I2): [0.0, 0.6, 0.75, 0.95, 1.0].
var SeverityStageThresholds = [5]float64{0.0, 0.6, 0.75, 0.95, 1.0}

// StageFromSeverity implements invariant I2.
func StageFromSeverity(severity float64) Stage {
	switch {
	case severity >= SeverityStageThresholds[3]:
		return Stage4
	case severity >= SeverityStageThresholds[2]:
		return Stage3
	case severity >= SeverityStageThresholds[1]:
		return Stage2
	default:
		return Stage1
	}
}

// DegradationLogisticK is the logistic-growth steepness constant (§4.3).
const DegradationLogisticK = 5.0

// FaultModeID identifies one of the eight closed fault modes (§3).
type FaultModeID int

const (
	FM01 FaultModeID = iota
	FM02
	FM03
	FM04
	FM05
	FM06
	FM07
	FM08
	NumFaultModes
)

func (f FaultModeID) String() string {
	names := [NumFaultModes]string{
		"FM-01", "FM-02", "FM-03", "FM-04", "FM-05", "FM-06", "FM-07", "FM-08",
	}
	if f < 0 || int(f) >= len(names) {
		return "FM-??"
	}
	return names[f]
}

// FaultModeName gives a short human description, used only in logs and reports.
var FaultModeName = [NumFaultModes]string{
	"worn main bearing",
	"injector fouling",
	"turbocharger imbalance",
	"coolant pump wear",
	"EGT sensor drift",
	"belt misalignment",
	"EGR valve leak",
	"oil pump degradation",
}

// FaultTotalLifeRangeHours gives the per-FM sampling range for total-life (§4.1).
var FaultTotalLifeRangeHours = [NumFaultModes][2]float64{
	{2000, 6000},  // FM-01 bearing
	{800, 2500},   // FM-02 injector fouling
	{1500, 4000},  // FM-03 turbo imbalance
	{3000, 8000},  // FM-04 coolant pump
	{4000, 10000}, // FM-05 EGT sensor drift
	{1000, 3000},  // FM-06 belt misalignment
	{1200, 3500},  // FM-07 EGR leak
	{2500, 7000},  // FM-08 oil pump
}

// DetectionProbStage2Range and DetectionProbStage3Range give the per-stage sampling range for
// detection probability.
// Stage 4 is fixed at 0.95, not sampled (§4.1).
var (
	DetectionProbStage2Range = [2]float64{0.20, 0.30}
	DetectionProbStage3Range = [2]float64{0.60, 0.80}
	DetectionProbStage4Fixed = 0.95
)

// FaultCountPrior gives the prior distribution over the number of faults (0..3) assigned to
// a truck at fleet-factory time (§4.1), as per-count weights out of 100.
var FaultCountPrior = [4]int{30, 40, 20, 10}

// InspectionDelayDaysRange gives the per-stage inspection-scheduling delay range, in days.
var InspectionDelayDaysRange = map[Stage][2]int{
	Stage2: {7, 21},
	Stage3: {1, 3},
	Stage4: {0, 1},
}

// InspectionOutcomeWeights give the per-stage {Repair, Monitor, FalsePositive} weights,
// out of 100 (§4.9 step 2).
type OutcomeWeights struct {
	Repair, Monitor, FalsePositive int
}

var InspectionOutcomeWeightsByStage = map[Stage]OutcomeWeights{
	Stage2: {Repair: 85, Monitor: 10, FalsePositive: 5},
	Stage3: {Repair: 90, Monitor: 8, FalsePositive: 2},
	Stage4: {Repair: 100, Monitor: 0, FalsePositive: 0},
}

// RepairDurationDaysRange gives the per-stage repair-duration range, in calendar days.
var RepairDurationDaysRange = map[Stage][2]int{
	Stage2: {1, 2},
	Stage3: {2, 5},
	Stage4: {5, 10},
}

// MonitorImproveTauRangeHours gives the τ sampling range for the monitor-improve branch.
var MonitorImproveTauRangeHours = [2]float64{200, 500}

// PostRepairAssignProbability is the probability a new fault is assigned after a repair (§4.9.1).
const PostRepairAssignProbability = 0.70

// PostRepairHealthyBufferHours is the mandatory fault-free buffer after a repair (§4.9.1).
const PostRepairHealthyBufferHours = 720.0

// RULSentinel is the sentinel RUL value emitted for healthy or improving trucks (§4.8).
const RULSentinel = 99999.0

// ImminentSeverityCeiling is the severity boundary within stage 3 separating IMMINENT from
// CRITICAL path-A labels (§4.8): stage 3 with severity < 0.85 is IMMINENT, else CRITICAL.
const ImminentSeverityCeiling = 0.85

// BearingFreqCount is the length of the geometric-frequency vector sampled per truck.
const BearingFreqCount = 5

// BearingFreqRangeHz gives plausible sampling ranges for the five characteristic bearing
// frequencies (BPFO, BPFI, BSF, FTF, and shaft order), in Hz-equivalents at rated RPM.
var BearingFreqRangeHz = [BearingFreqCount][2]float64{
	{80, 140},  // BPFO
	{120, 200}, // BPFI
	{40, 70},   // BSF
	{8, 15},    // FTF
	{15, 35},   // shaft order
}

// VibrationSensorCount and VibrationAxisCount fix the C6 synthesizer's grid.
const (
	VibrationSensorCount = 3
	VibrationAxisCount   = 3
	VibrationTimeStats   = 6 // RMS, peak, crest, kurtosis, std-within-window, max-within-window
	VibrationBandCount   = 40
)

// VibrationFeatureCount is the total C6 output width: time-domain (sensors*axes*stats) +
// band-energy (sensors*bands) + spectral-kurtosis (sensors*2) = 54 + 120 + 6 = 180.
const VibrationFeatureCount = VibrationSensorCount*VibrationAxisCount*VibrationTimeStats +
	VibrationSensorCount*VibrationBandCount +
	VibrationSensorCount*2

// SubSamplesPerWindow is the number of synthetic sub-samples drawn per 60-second window per
// axis, giving the time-domain statistics (RMS, peak, crest, kurtosis, ...) something to be
// computed over. This is a generator-internal choice, not part of the external contract.
const SubSamplesPerWindow = 8

// ConditioningFeatureCount is the width of the C7 conditioning block (rpm_est, load_proxy).
const ConditioningFeatureCount = 2

// ThermalFeatureCount is the width of the C7 thermal block: 6 sensors * 6 stats + 3 differentials.
const ThermalFeatureCount = ThermalSensorCount*6 + 3

// TotalFeatureCount is the C7 hard invariant (I7): 2 + 180 + 39 = 221.
const TotalFeatureCount = ConditioningFeatureCount + VibrationFeatureCount + ThermalFeatureCount
