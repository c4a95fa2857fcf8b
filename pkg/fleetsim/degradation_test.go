package fleetsim

import (
	"math/rand"
	"testing"

	"github.com/dieselfleet/simgen/internal/constants"
)

func TestAdvanceDegradationMonotonicNonDecrease(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ep := &FaultEpisode{Mode: constants.FM01, OnsetHrs: 0, LifeHrs: 1000}

	prev := 0.0
	for hrs := 0.0; hrs <= 1000; hrs += 10 {
		AdvanceDegradation(ep, hrs, rng)
		if ep.Severity < prev {
			t.Fatalf("severity decreased at t=%v: %v -> %v", hrs, prev, ep.Severity)
		}
		prev = ep.Severity
	}
}

func TestAdvanceDegradationLogisticShape(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ep := &FaultEpisode{Mode: constants.FM02, OnsetHrs: 0, LifeHrs: 100}

	AdvanceDegradation(ep, 0, rng)
	early := ep.Severity
	AdvanceDegradation(ep, 50, rng)
	mid := ep.Severity
	AdvanceDegradation(ep, 100, rng)
	late := ep.Severity

	if !(early <= mid && mid <= late) {
		t.Fatalf("expected non-decreasing progression, got early=%v mid=%v late=%v", early, mid, late)
	}
	if late < 0.9 {
		t.Fatalf("expected severity near 1.0 at end of life, got %v", late)
	}
}

func TestBeginImproveDecaysTowardZero(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ep := &FaultEpisode{Mode: constants.FM03, OnsetHrs: 0, LifeHrs: 200}

	for hrs := 0.0; hrs <= 150; hrs += 10 {
		AdvanceDegradation(ep, hrs, rng)
	}
	if ep.Severity <= 0 {
		t.Fatalf("expected nonzero severity before improve, got %v", ep.Severity)
	}

	BeginImprove(ep, 150, 50)
	AdvanceDegradation(ep, 150, rng)
	if ep.Severity != ep.ImproveFrom {
		t.Fatalf("expected severity unchanged at t=ImproveStart, got %v want %v", ep.Severity, ep.ImproveFrom)
	}

	AdvanceDegradation(ep, 150+500, rng)
	if !ImprovedAway(ep) {
		t.Fatalf("expected severity to have decayed below 0.01 after many time constants, got %v", ep.Severity)
	}
}

func TestAdvanceDegradationClampedToUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	ep := &FaultEpisode{Mode: constants.FM04, OnsetHrs: 0, LifeHrs: 10}

	for hrs := 0.0; hrs <= 2000; hrs += 5 {
		AdvanceDegradation(ep, hrs, rng)
		if ep.Severity < 0 || ep.Severity > 1 {
			t.Fatalf("severity out of [0,1] at t=%v: %v", hrs, ep.Severity)
		}
	}
}
