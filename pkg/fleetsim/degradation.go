package fleetsim

import (
	"math"
	"math/rand"

	"github.com/dieselfleet/simgen/internal/constants"
)

// ouMeanReversionRate and ouVolatility parameterize the bounded mean-reverting noise term
// added to the logistic severity curve (§4.3). The Wiener-process variant named in early
// source commentary is explicitly rejected — unbounded random-walk noise dominates the
// logistic trend and produces implausible severity trajectories; an OU-like process that
// reverts to zero keeps the curve close to the deterministic logistic shape.
const (
	ouMeanReversionRate = 0.08
	ouVolatility        = 0.015
	ouClamp             = 0.05
)

// AdvanceDegradation advances one fault episode to simulation time tHours (engine-hours
// since simulation start), updating ep.Severity in place. It implements the
// logistic-growth curve with bounded mean-reverting noise outside the monitor-improve branch
// (§4.3), and the exponential decay inside it. It never decreases severity outside the
// monitor-improve/repair branches (I1): the OU noise term can only perturb the value that is
// then combined with the previous severity via max().
func AdvanceDegradation(ep *FaultEpisode, tHours float64, rng *rand.Rand) {
	if ep.Improving {
		elapsed := tHours - ep.ImproveStart
		if elapsed < 0 {
			elapsed = 0
		}
		ep.Severity = ep.ImproveFrom * math.Exp(-elapsed/ep.Tau)
		if ep.Severity < 0 {
			ep.Severity = 0
		}
		ep.lastAdvanceHrs = tHours
		ep.everAdvanced = true
		return
	}

	dt := 1.0
	if ep.everAdvanced {
		dt = tHours - ep.lastAdvanceHrs
		if dt < 0 {
			dt = 0
		}
	}

	tFrac := clamp01((tHours - ep.OnsetHrs) / ep.LifeHrs)
	base := logisticGrowth(tFrac)

	// Mean-reverting noise step (Ornstein-Uhlenbeck discretization).
	decay := math.Exp(-ouMeanReversionRate * dt)
	ep.ouNoise = ep.ouNoise*decay + ouVolatility*rng.NormFloat64()*math.Sqrt(math.Max(dt, 1e-6))
	if ep.ouNoise > ouClamp {
		ep.ouNoise = ouClamp
	} else if ep.ouNoise < -ouClamp {
		ep.ouNoise = -ouClamp
	}

	candidate := clamp01(base + ep.ouNoise)
	if candidate > ep.Severity {
		ep.Severity = candidate
	}

	ep.lastAdvanceHrs = tHours
	ep.everAdvanced = true
}

// logisticGrowth implements s(t_frac) = (exp(k*t_frac) - 1) / (exp(k) - 1), k = 5.0 (§4.3).
func logisticGrowth(tFrac float64) float64 {
	k := constants.DegradationLogisticK
	return (math.Exp(k*tFrac) - 1) / (math.Exp(k) - 1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BeginImprove transitions an episode onto the monitor-improve trajectory (§4.3, §4.9 step 4).
func BeginImprove(ep *FaultEpisode, tHours, tau float64) {
	ep.Improving = true
	ep.Tau = tau
	ep.ImproveStart = tHours
	ep.ImproveFrom = ep.Severity
}

// ImprovedAway reports whether an improving episode has decayed below the resolution
// threshold (§4.3: "when severity < 0.01, the fault is removed").
func ImprovedAway(ep *FaultEpisode) bool {
	return ep.Improving && ep.Severity < 0.01
}
