package fleetsim

import (
	"math/rand"
	"sort"

	"github.com/dieselfleet/simgen/internal/simerrors"
)

// Splits is the fixed train/val/test truck-id partition (§6.4), stratified by engine profile
// so that both variants are represented proportionally in every split.
type Splits struct {
	Train []int
	Val   []int
	Test  []int
}

// trainFraction, valFraction and testFraction give the default 120/50/30 split out of 200
// trucks (§6.4); the test split takes whatever the other two leave. Proportions are
// preserved if TotalTrucks differs from the default fleet size.
const (
	trainFraction = 0.60
	valFraction   = 0.25
	testFraction  = 0.15
)

// BuildSplits stratifies the fleet's truck IDs across train/val/test by engine profile, using
// a seed independent of the per-truck generation seeds (it has no influence on row content,
// only on this static partition, per §9's determinism scope).
func BuildSplits(trucks []*Truck, seed int64) (Splits, error) {
	if len(trucks) == 0 {
		return Splits{}, simerrors.NewConfigError("trucks", "fleet is empty")
	}

	byProfile := map[int][]int{}
	for _, t := range trucks {
		byProfile[int(t.EngineProfile)] = append(byProfile[int(t.EngineProfile)], t.ID)
	}

	rng := rand.New(rand.NewSource(seed))

	profiles := make([]int, 0, len(byProfile))
	for profile := range byProfile {
		profiles = append(profiles, profile)
	}
	sort.Ints(profiles)

	var out Splits
	for _, profile := range profiles {
		ids := byProfile[profile]
		sort.Ints(ids)
		rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

		nTrain := int(float64(len(ids)) * trainFraction)
		nVal := int(float64(len(ids)) * valFraction)

		out.Train = append(out.Train, ids[:nTrain]...)
		out.Val = append(out.Val, ids[nTrain:nTrain+nVal]...)
		out.Test = append(out.Test, ids[nTrain+nVal:]...)
		_ = profile
	}

	sort.Ints(out.Train)
	sort.Ints(out.Val)
	sort.Ints(out.Test)
	return out, nil
}
