// Package detrand provides the generator's deterministic randomness discipline (spec §5, §9):
// every work unit owns a fresh *rand.Rand derived solely from (master_seed, truck_id,
// day_index), and every component within a unit that needs its own independent stream forks
// a labelled sub-seed rather than sharing the unit's RNG. No component may hold a long-lived
// RNG across units, and nothing here ever reads the wall clock.
package detrand

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

// TruckSeed derives a truck's per-fleet seed from the master seed (spec §3 Ownership).
func TruckSeed(masterSeed int64, truckID int) int64 {
	return masterSeed + int64(truckID)
}

// DaySeed derives the seed for one (truck_id, day_index) work unit (spec §3 Ownership):
// day_seed = truck_seed * 1000 + day_index.
func DaySeed(masterSeed int64, truckID, dayIndex int) int64 {
	return TruckSeed(masterSeed, truckID)*1000 + int64(dayIndex)
}

// NewRand constructs a fresh RNG for one work unit. The caller must not retain it beyond the
// unit's lifetime or pass it to another truck/day.
func NewRand(masterSeed int64, truckID, dayIndex int) *rand.Rand {
	return rand.New(rand.NewSource(DaySeed(masterSeed, truckID, dayIndex)))
}

// Fork derives a labelled sub-seed from a parent seed, for a component that needs its own
// independent stream within a work unit (e.g. the thermal model forking a separate stream
// from the vibration synthesizer so that adding a feature to one does not perturb the other's
// sample sequence). The label is mixed in via FNV-1a so that distinct labels never collide by
// construction the way plain addition could.
func Fork(parentSeed int64, label string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatInt(parentSeed, 36)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(label))
	return int64(h.Sum64())
}

// ForkRand is a convenience wrapper combining Fork and NewRand-style construction.
func ForkRand(parentSeed int64, label string) *rand.Rand {
	return rand.New(rand.NewSource(Fork(parentSeed, label)))
}

// EventHash deterministically decides whether a discrete event (FM-07 leak occurrence) fires
// for a given (truck_id, day_index, window_index, fault_episode_id) tuple, independent of any
// mutable RNG state, so that the decision is identical regardless of process count or
// scheduling interleaving (spec §4.4, §5 Determinism requirement). It maps the tuple to a
// uniform value in [0, 1) and compares against probability.
func EventHash(truckID, dayIndex, windowIndex int, episodeID int32, probability float64) bool {
	return UnitInterval(truckID, dayIndex, windowIndex, episodeID) < probability
}

// UnitInterval maps a (truck_id, day_index, window_index, episode_id) tuple to a
// deterministic value in [0, 1), via FNV-1a over the tuple's decimal encoding.
func UnitInterval(truckID, dayIndex, windowIndex int, episodeID int32) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.Itoa(truckID)))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(strconv.Itoa(dayIndex)))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(strconv.Itoa(windowIndex)))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(strconv.Itoa(int(episodeID))))
	sum := h.Sum64()
	// Use the top 53 bits so the result is exactly representable as a float64 mantissa.
	return float64(sum>>11) / float64(1<<53)
}
