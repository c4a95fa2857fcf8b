package fleetsim

import (
	"testing"

	"github.com/dieselfleet/simgen/internal/constants"
)

func TestHeaderAndValuesLineUp(t *testing.T) {
	row := Row{
		Timestamp:     constants.SimulationStartUnix,
		TruckID:       1,
		EngineType:    constants.EngineModern.String(),
		DayIndex:      2,
		EpisodeID:     0,
		WindowIndex:   3,
		OperatingMode: "cruise",
		RPM:           1500,
		Load:          0.5,
		Ambient:       22.5,
		Features:      make([]float64, constants.TotalFeatureCount),
		FaultMode:     "HEALTHY",
		FaultSeverity: "HEALTHY",
		RULHours:      constants.RULSentinel,
		PathALabel:    "NORMAL",
	}

	header := Header()
	values := row.Values()
	if len(header) != len(values) {
		t.Fatalf("header width %d != values width %d", len(header), len(values))
	}
}

func TestHeaderHasNoDuplicateColumns(t *testing.T) {
	header := Header()
	seen := map[string]bool{}
	for _, h := range header {
		if seen[h] {
			t.Fatalf("duplicate header column: %s", h)
		}
		seen[h] = true
	}
}
