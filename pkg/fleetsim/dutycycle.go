package fleetsim

import (
	"math"
	"math/rand"

	"github.com/dieselfleet/simgen/internal/constants"
)

// WindowState is the per-window output of the operating-state simulator (§4.2).
type WindowState struct {
	Mode    constants.OperatingMode
	RPM     float64
	Load    float64 // fraction of rated load, 0..1
	Ambient float64 // Celsius
}

// DutyCycleSimulator steps the four-state Markov chain and samples RPM/load/ambient for
// each window of a truck-day. It holds no randomness of its own beyond the *rand.Rand
// supplied at construction, which the caller owns for the lifetime of one work unit (§9).
type DutyCycleSimulator struct {
	rng    *rand.Rand
	mode   constants.OperatingMode
	dayHrs float64 // hour-of-day at the start of the current window, for the ambient sinusoid
}

// NewDutyCycleSimulator starts the chain in startMode (§4.2: IDLE at day 0, the previous
// day's end state if the truck was operating, or IDLE after a maintenance episode).
func NewDutyCycleSimulator(rng *rand.Rand, startMode constants.OperatingMode) *DutyCycleSimulator {
	return &DutyCycleSimulator{rng: rng, mode: startMode}
}

// Step advances one 60-second window and returns its sampled state. windowIndex is the
// 0-based index within the day (0..WindowsPerDay-1).
func (d *DutyCycleSimulator) Step(windowIndex int) WindowState {
	d.mode = d.nextMode()

	profile := constants.ModeProfiles[d.mode]
	rpm := sampleUniform(d.rng, profile.RPMMin, profile.RPMMax)
	load := sampleUniform(d.rng, profile.LoadMin, profile.LoadMax)

	hourOfDay := float64(windowIndex) * float64(constants.WindowSeconds) / 3600.0
	ambient := d.ambientAt(hourOfDay)

	return WindowState{Mode: d.mode, RPM: rpm, Load: load, Ambient: ambient}
}

// EndMode returns the mode the chain ended the day in, for carry-over into the next day.
func (d *DutyCycleSimulator) EndMode() constants.OperatingMode {
	return d.mode
}

func (d *DutyCycleSimulator) nextMode() constants.OperatingMode {
	row := constants.DutyCycleMatrix[d.mode]
	idx := selectWeightedIndexF(d.rng, row[:])
	return constants.OperatingMode(idx)
}

// ambientAt samples the ambient temperature as a slow daily sinusoid plus bounded noise
// (§4.2). The distribution choice (uniform noise, truncated to +/-1.5C) is a generator
// implementation decision the spec leaves open (§9 Open Questions).
func (d *DutyCycleSimulator) ambientAt(hourOfDay float64) float64 {
	base := constants.AmbientBaseC + constants.AmbientDailySwingC*math.Sin(2*math.Pi*(hourOfDay-6)/24.0)
	noise := sampleUniform(d.rng, -1.5, 1.5)
	return base + noise
}
