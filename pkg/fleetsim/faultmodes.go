package fleetsim

import (
	"math"
	"math/rand"

	"github.com/dieselfleet/simgen/internal/constants"
	"github.com/dieselfleet/simgen/internal/detrand"
)

// FaultEffect is the per-window output of one active fault's effect function (§4.4): a
// multiplicative modifier applied to energy-domain vibration features, an additive
// shape-domain signal, and a per-sensor thermal offset.
type FaultEffect struct {
	VibrationEnergyMult  float64 // applied multiplicatively across fault modes
	VibrationShapeBoost  float64 // applied via max() across fault modes
	ThermalOffsetC       [constants.ThermalSensorCount]float64
}

// zeroEffect is the identity element faults compose against: no change to either domain.
func zeroEffect() FaultEffect {
	return FaultEffect{VibrationEnergyMult: 1.0}
}

// OperatingContext is the window-local state a fault-mode function reads to compute its
// effect: the current operating mode, load fraction, and RPM (§4.4).
type OperatingContext struct {
	Mode constants.OperatingMode
	Load float64
	RPM  float64
}

// FaultMode is a pure function from (context, severity, rng) to effect. It is the closed,
// compile-time-fixed polymorphism spec.md §4.4 calls for: eight concrete implementations,
// selected through the faultModeTable array, never an open interface registry.
type FaultMode interface {
	Effect(ctx OperatingContext, ep *FaultEpisode, rng *rand.Rand, truckID, dayIndex, windowIndex int) FaultEffect
}

// faultModeTable is the fixed, ordered set of the eight fault-mode implementations, indexed
// by constants.FaultModeID. Adding a ninth fault mode means adding a ninth entry here, a
// compile-time change — never a runtime registration path.
var faultModeTable = [constants.NumFaultModes]FaultMode{
	constants.FM01: bearingWear{},
	constants.FM02: injectorFouling{},
	constants.FM03: turboImbalance{},
	constants.FM04: coolantPumpWear{},
	constants.FM05: egtSensorDrift{},
	constants.FM06: beltMisalignment{},
	constants.FM07: egrValveLeak{},
	constants.FM08: oilPumpDegradation{},
}

// FaultModeFor returns the closed implementation for id.
func FaultModeFor(id constants.FaultModeID) FaultMode {
	return faultModeTable[id]
}

// --- FM-01: worn main bearing -----------------------------------------------------------
// Energy-domain vibration rises broadband with severity; thermal effect is a modest oil-temp
// offset from added friction.
type bearingWear struct{}

func (bearingWear) Effect(ctx OperatingContext, ep *FaultEpisode, rng *rand.Rand, truckID, dayIndex, windowIndex int) FaultEffect {
	s := ep.Severity
	e := zeroEffect()
	e.VibrationEnergyMult = 1.0 + 3.0*s
	e.ThermalOffsetC[1] = 8.0 * s // oil
	return e
}

// --- FM-02: injector fouling -------------------------------------------------------------
// Shape-domain: raises impulsiveness (kurtosis-like shape boost) from irregular combustion;
// EGT rises from incomplete combustion.
type injectorFouling struct{}

func (injectorFouling) Effect(ctx OperatingContext, ep *FaultEpisode, rng *rand.Rand, truckID, dayIndex, windowIndex int) FaultEffect {
	s := ep.Severity
	e := zeroEffect()
	e.VibrationShapeBoost = 2.5 * s
	e.ThermalOffsetC[2] = 18.0 * s // EGT
	return e
}

// --- FM-03: turbocharger imbalance --------------------------------------------------------
// Energy-domain, load-dependent: imbalance vibration scales with boost pressure, which tracks
// load; EGT and intake-manifold both rise from reduced boost efficiency.
type turboImbalance struct{}

func (turboImbalance) Effect(ctx OperatingContext, ep *FaultEpisode, rng *rand.Rand, truckID, dayIndex, windowIndex int) FaultEffect {
	s := ep.Severity
	loadFactor := 0.3 + 0.7*ctx.Load
	e := zeroEffect()
	e.VibrationEnergyMult = 1.0 + 4.0*s*loadFactor
	e.ThermalOffsetC[2] = 12.0 * s
	e.ThermalOffsetC[3] = 6.0 * s
	return e
}

// --- FM-04: coolant pump wear --------------------------------------------------------------
// Thermal-dominant: coolant temp rises from reduced flow; mild broadband vibration from
// cavitation at higher severity.
type coolantPumpWear struct{}

func (coolantPumpWear) Effect(ctx OperatingContext, ep *FaultEpisode, rng *rand.Rand, truckID, dayIndex, windowIndex int) FaultEffect {
	s := ep.Severity
	e := zeroEffect()
	e.VibrationEnergyMult = 1.0 + 1.2*s
	e.ThermalOffsetC[0] = 22.0 * s // coolant
	return e
}

// --- FM-05: EGT sensor drift ---------------------------------------------------------------
// Pure sensor fault: no mechanical vibration signature, only a slow additive bias on the
// reported EGT channel.
type egtSensorDrift struct{}

func (egtSensorDrift) Effect(ctx OperatingContext, ep *FaultEpisode, rng *rand.Rand, truckID, dayIndex, windowIndex int) FaultEffect {
	s := ep.Severity
	e := zeroEffect()
	e.ThermalOffsetC[2] = 40.0 * s
	return e
}

// --- FM-06: belt misalignment ---------------------------------------------------------------
// Shape-domain: periodic shape distortion from belt slip/misalignment, mild heat from friction
// at the transmission-coupled sensor.
type beltMisalignment struct{}

func (beltMisalignment) Effect(ctx OperatingContext, ep *FaultEpisode, rng *rand.Rand, truckID, dayIndex, windowIndex int) FaultEffect {
	s := ep.Severity
	e := zeroEffect()
	e.VibrationShapeBoost = 1.8 * s
	e.ThermalOffsetC[5] = 5.0 * s
	return e
}

// --- FM-07: EGR valve leak -------------------------------------------------------------------
// Intermittent leak events, not a continuous severity-scaled signal: whether a leak event is
// "active" this window is decided by a deterministic hash of
// (truck_id, day_index, window_index, episode_id) rather than the unit's RNG, per spec.md
// §4.4's explicit requirement that FM-07 be reproducible bit-for-bit under any parallel
// execution order. The event probability itself still scales with severity.
type egrValveLeak struct{}

func (egrValveLeak) Effect(ctx OperatingContext, ep *FaultEpisode, rng *rand.Rand, truckID, dayIndex, windowIndex int) FaultEffect {
	e := zeroEffect()
	s := ep.Severity
	if s <= 0 {
		return e
	}
	leakProb := 0.1 + 0.6*s
	if detrand.EventHash(truckID, dayIndex, windowIndex, episodeHashID(ep), leakProb) {
		e.VibrationShapeBoost = 1.5
		e.ThermalOffsetC[3] = 10.0
		e.ThermalOffsetC[2] = 8.0
	}
	return e
}

// episodeHashID folds the fault mode into the hash input alongside the episode's onset time
// (which stands in for the episode's generation) so that distinct episodes on the same
// truck/day hash differently even though FaultEpisode carries no numeric ID.
func episodeHashID(ep *FaultEpisode) int32 {
	return int32(ep.Mode)<<16 ^ int32(math.Round(ep.OnsetHrs*1000))
}

// --- FM-08: oil pump degradation --------------------------------------------------------------
// Energy-domain vibration from cavitation, significant oil-temp rise from reduced lubrication
// flow.
type oilPumpDegradation struct{}

func (oilPumpDegradation) Effect(ctx OperatingContext, ep *FaultEpisode, rng *rand.Rand, truckID, dayIndex, windowIndex int) FaultEffect {
	s := ep.Severity
	e := zeroEffect()
	e.VibrationEnergyMult = 1.0 + 2.0*s
	e.ThermalOffsetC[1] = 15.0 * s
	return e
}

// ComposeEffects implements the multi-fault composition rule (§4.4): energy-domain
// multipliers multiply, shape-domain boosts take the max, thermal offsets sum but are capped
// per-sensor at constants.ThermalSensorMaxExcursion.
func ComposeEffects(effects []FaultEffect) FaultEffect {
	out := zeroEffect()
	for _, e := range effects {
		out.VibrationEnergyMult *= e.VibrationEnergyMult
		if e.VibrationShapeBoost > out.VibrationShapeBoost {
			out.VibrationShapeBoost = e.VibrationShapeBoost
		}
		for i := 0; i < constants.ThermalSensorCount; i++ {
			out.ThermalOffsetC[i] += e.ThermalOffsetC[i]
		}
	}
	for i := 0; i < constants.ThermalSensorCount; i++ {
		maxExcursion := constants.ThermalSensorMaxExcursion[i]
		if out.ThermalOffsetC[i] > maxExcursion {
			out.ThermalOffsetC[i] = maxExcursion
		}
	}
	return out
}
