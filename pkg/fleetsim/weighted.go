package fleetsim

import "math/rand"

// selectWeightedIndex picks an index into weights proportionally to its weight, using rng.
// Adapted from the teacher's FleetGenerator.selectWeightedIndex: a cumulative-sum roll
// rather than building an explicit distribution object, reused here for the fault-count prior
// and inspection-outcome sampling alike (operating-mode transitions use selectWeightedIndexF).
func selectWeightedIndex(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}

	roll := rng.Intn(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// selectWeightedIndexF is the float64-weight variant, used for the Markov duty-cycle matrix.
func selectWeightedIndexF(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}

	roll := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}
