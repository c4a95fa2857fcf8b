package fleetsim

import (
	"math/rand"

	"github.com/dieselfleet/simgen/internal/constants"
	"github.com/dieselfleet/simgen/internal/detrand"
	"github.com/dieselfleet/simgen/internal/simerrors"
)

// FleetConfig parameterizes C1 fleet generation.
type FleetConfig struct {
	TotalTrucks      int
	SimulationDays   int
	MasterSeed       int64
}

// BuildFleet produces the full vector of Truck descriptors from the master seed (§4.1).
// It fails with a *simerrors.ConfigError if the per-fault-mode ranges are internally
// inconsistent (a min greater than its max).
func BuildFleet(cfg FleetConfig) ([]*Truck, error) {
	if err := validateFaultRanges(); err != nil {
		return nil, err
	}
	if cfg.TotalTrucks <= 0 {
		return nil, simerrors.NewConfigError("trucks", "must be positive")
	}
	if cfg.SimulationDays <= 0 {
		return nil, simerrors.NewConfigError("days", "must be positive")
	}

	simulationHours := float64(cfg.SimulationDays) * 24.0

	trucks := make([]*Truck, cfg.TotalTrucks)
	for id := 0; id < cfg.TotalTrucks; id++ {
		seed := detrand.TruckSeed(cfg.MasterSeed, id)
		rng := rand.New(rand.NewSource(seed))
		trucks[id] = buildTruck(id, seed, rng, simulationHours)
	}
	return trucks, nil
}

func validateFaultRanges() error {
	for fm := constants.FaultModeID(0); fm < constants.NumFaultModes; fm++ {
		r := constants.FaultTotalLifeRangeHours[fm]
		if r[0] <= 0 || r[1] <= 0 || r[0] > r[1] {
			return simerrors.NewConfigError("fault_total_life_range", "inconsistent range for "+fm.String())
		}
	}
	return nil
}

func buildTruck(id int, seed int64, rng *rand.Rand, simulationHours float64) *Truck {
	t := &Truck{
		ID:   id,
		Seed: seed,
	}

	if rng.Float64() < constants.ModernEngineShare {
		t.EngineProfile = constants.EngineModern
	} else {
		t.EngineProfile = constants.EngineOlder
	}

	for i := 0; i < constants.ThermalSensorCount; i++ {
		idleRange := constants.ThermalSensorIdleRange[i]
		t.ThermalIdleC[i] = sampleUniform(rng, idleRange[0], idleRange[1])

		deltaRange := constants.ThermalSensorDeltaLoadRange[i]
		t.ThermalDeltaLoad[i] = sampleUniform(rng, deltaRange[0], deltaRange[1])
	}

	for i := 0; i < constants.BearingFreqCount; i++ {
		r := constants.BearingFreqRangeHz[i]
		t.Bearings[i] = sampleUniform(rng, r[0], r[1])
	}

	t.InitialFaults = assignInitialFaults(rng, simulationHours)

	return t
}

// assignInitialFaults implements the §4.1 fault-count prior {0:30%,1:40%,2:20%,3:10%} and
// samples each assigned fault's onset/total-life/detection-probability triple, without
// replacement over the eight FM types.
func assignInitialFaults(rng *rand.Rand, simulationHours float64) []*FaultEpisode {
	count := selectWeightedIndex(rng, constants.FaultCountPrior[:])
	if count == 0 {
		return nil
	}

	modes := make([]constants.FaultModeID, constants.NumFaultModes)
	for i := range modes {
		modes[i] = constants.FaultModeID(i)
	}
	rng.Shuffle(len(modes), func(i, j int) { modes[i], modes[j] = modes[j], modes[i] })

	episodes := make([]*FaultEpisode, 0, count)
	for i := 0; i < count; i++ {
		episodes = append(episodes, newFaultEpisode(rng, modes[i], simulationHours))
	}
	return episodes
}

func newFaultEpisode(rng *rand.Rand, mode constants.FaultModeID, simulationHours float64) *FaultEpisode {
	lifeRange := constants.FaultTotalLifeRangeHours[mode]
	return &FaultEpisode{
		Mode:     mode,
		OnsetHrs: sampleUniform(rng, 0, 0.5*simulationHours),
		LifeHrs:  sampleUniform(rng, lifeRange[0], lifeRange[1]),
		DetectionProb: map[constants.Stage]float64{
			constants.Stage2: sampleUniform(rng, constants.DetectionProbStage2Range[0], constants.DetectionProbStage2Range[1]),
			constants.Stage3: sampleUniform(rng, constants.DetectionProbStage3Range[0], constants.DetectionProbStage3Range[1]),
			constants.Stage4: constants.DetectionProbStage4Fixed,
		},
	}
}

func sampleUniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
