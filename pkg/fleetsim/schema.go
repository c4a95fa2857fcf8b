package fleetsim

import (
	"strconv"

	"github.com/dieselfleet/simgen/internal/constants"
)

// Row is one 60-second-window observation: the external schema contract between the
// simulation engine and pkg/rowio's columnar writer (§6.3). Column order is fixed and must
// never be derived by iterating a map.
type Row struct {
	Timestamp     int64  // Unix seconds, window start (§6.3)
	TruckID       int
	EngineType    string
	DayIndex      int
	EpisodeID     int32 // I5: count of completed repairs for this truck since simulation start
	WindowIndex   int
	OperatingMode string
	RPM           float64
	Load          float64
	Ambient       float64
	Features      []float64 // width constants.TotalFeatureCount, canonical order
	FaultMode     string
	FaultSeverity string
	RULHours      float64
	PathALabel    string
}

// metaColumnNames and labelColumnNames are the fixed non-feature columns, in the order they
// appear on either side of the 221 feature columns. The first five (timestamp, truck_id,
// engine_type, day_index, episode_id) are §6.3's required metadata columns, in its exact
// order; window_index/operating_mode/rpm/load/ambient_c are additional diagnostic columns
// this generator also emits.
var metaColumnNames = []string{"timestamp", "truck_id", "engine_type", "day_index", "episode_id", "window_index", "operating_mode", "rpm", "load", "ambient_c"}
var labelColumnNames = []string{"fault_mode", "fault_severity", "rul_hours", "path_a_label"}

// Header returns the full column header: metadata columns, then the 221 canonical feature
// columns, then the label columns (§6.3).
func Header() []string {
	out := make([]string, 0, len(metaColumnNames)+constants.TotalFeatureCount+len(labelColumnNames))
	out = append(out, metaColumnNames...)
	out = append(out, FeatureColumnNames()...)
	out = append(out, labelColumnNames...)
	return out
}

// Values renders a Row as its flat string slice, matching Header's column order exactly.
func (r Row) Values() []string {
	out := make([]string, 0, len(Header()))
	out = append(out,
		strconv.FormatInt(r.Timestamp, 10),
		strconv.Itoa(r.TruckID),
		r.EngineType,
		strconv.Itoa(r.DayIndex),
		strconv.FormatInt(int64(r.EpisodeID), 10),
		strconv.Itoa(r.WindowIndex),
		r.OperatingMode,
		formatFloat(r.RPM),
		formatFloat(r.Load),
		formatFloat(r.Ambient),
	)
	for _, f := range r.Features {
		out = append(out, formatFloat(f))
	}
	out = append(out,
		r.FaultMode,
		r.FaultSeverity,
		formatFloat(r.RULHours),
		r.PathALabel,
	)
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
