package fleetsim

import (
	"testing"

	"github.com/dieselfleet/simgen/internal/constants"
)

func TestDeriveLabelsHealthyTruck(t *testing.T) {
	l := DeriveLabels(nil, 100)
	if l.FaultMode != "HEALTHY" || l.FaultSeverity != "HEALTHY" {
		t.Fatalf("unexpected healthy labels: %+v", l)
	}
	if l.RULHours != constants.RULSentinel {
		t.Fatalf("expected RUL sentinel, got %v", l.RULHours)
	}
	if l.PathALabel != "NORMAL" {
		t.Fatalf("expected NORMAL, got %v", l.PathALabel)
	}
}

func TestDeriveLabelsWorstFaultByStage(t *testing.T) {
	minor := &FaultEpisode{Mode: constants.FM01, Severity: 0.3, OnsetHrs: 10, LifeHrs: 1000}
	severe := &FaultEpisode{Mode: constants.FM02, Severity: 0.96, OnsetHrs: 50, LifeHrs: 2000}

	l := DeriveLabels([]*FaultEpisode{minor, severe}, 500)
	if l.FaultMode != constants.FM02.String() {
		t.Fatalf("expected worst fault FM-02, got %v", l.FaultMode)
	}
	if l.PathALabel != "CRITICAL" {
		t.Fatalf("expected CRITICAL at stage 4, got %v", l.PathALabel)
	}
}

func TestDeriveLabelsTieBreaksByEarliestOnset(t *testing.T) {
	first := &FaultEpisode{Mode: constants.FM03, Severity: 0.65, OnsetHrs: 10, LifeHrs: 1000}
	second := &FaultEpisode{Mode: constants.FM04, Severity: 0.65, OnsetHrs: 20, LifeHrs: 1000}

	l := DeriveLabels([]*FaultEpisode{second, first}, 500)
	if l.FaultMode != constants.FM03.String() {
		t.Fatalf("expected earliest-onset tie winner FM-03, got %v", l.FaultMode)
	}
}

func TestDeriveLabelsImprovingGetsSentinelRUL(t *testing.T) {
	ep := &FaultEpisode{Mode: constants.FM05, Severity: 0.5, OnsetHrs: 10, LifeHrs: 1000, Improving: true}
	l := DeriveLabels([]*FaultEpisode{ep}, 500)
	if l.RULHours != constants.RULSentinel {
		t.Fatalf("expected sentinel RUL for improving fault, got %v", l.RULHours)
	}
}

func TestPathALabelThresholds(t *testing.T) {
	cases := []struct {
		stage    constants.Stage
		severity float64
		want     string
	}{
		{constants.Stage1, 0.1, "NORMAL"},
		{constants.Stage2, 0.65, "NORMAL"},
		{constants.Stage3, 0.80, "IMMINENT"},
		{constants.Stage3, 0.90, "CRITICAL"},
		{constants.Stage4, 0.99, "CRITICAL"},
	}
	for _, c := range cases {
		got := pathALabel(c.stage, c.severity)
		if got != c.want {
			t.Fatalf("pathALabel(%v, %v) = %v, want %v", c.stage, c.severity, got, c.want)
		}
	}
}
