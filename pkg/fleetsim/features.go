package fleetsim

import (
	"strconv"

	"github.com/dieselfleet/simgen/internal/constants"
	"github.com/dieselfleet/simgen/internal/simerrors"
)

// ThermalFeatureTracker carries the running per-sensor day-max/day-min and previous-window
// temperature needed to compute the C7 thermal feature block. It resets at the start of every
// truck-day (§4.7): day-max/day-min are day-scoped statistics, not lifetime ones.
type ThermalFeatureTracker struct {
	dayMax  [constants.ThermalSensorCount]float64
	dayMin  [constants.ThermalSensorCount]float64
	prev    [constants.ThermalSensorCount]float64
	started bool
}

// NewThermalFeatureTracker starts a fresh tracker for one truck-day.
func NewThermalFeatureTracker() *ThermalFeatureTracker {
	return &ThermalFeatureTracker{}
}

// ThermalFeatures is one window's C7 thermal block: six per-sensor stats (current
// temperature, delta from idle baseline, running day-max, running day-min, rate of change,
// and headroom to the sensor's physical limit) plus three cross-sensor differentials
// (§4.7): coolant-oil, EGT-intake, oil-transmission.
type ThermalFeatures struct {
	PerSensor       [constants.ThermalSensorCount][6]float64
	Differentials   [3]float64
}

// Flatten returns the 39 thermal features in canonical order: sensor-major per-sensor stats,
// then the three differentials.
func (tf ThermalFeatures) Flatten() []float64 {
	out := make([]float64, 0, constants.ThermalFeatureCount)
	for s := 0; s < constants.ThermalSensorCount; s++ {
		out = append(out, tf.PerSensor[s][:]...)
	}
	out = append(out, tf.Differentials[:]...)
	return out
}

// Update advances the tracker with one window's temperatures and produces that window's
// thermal feature block.
func (t *ThermalFeatureTracker) Update(temps [constants.ThermalSensorCount]float64, truck *Truck) ThermalFeatures {
	if !t.started {
		t.dayMax = temps
		t.dayMin = temps
		t.prev = temps
		t.started = true
	}

	var out ThermalFeatures
	for s := 0; s < constants.ThermalSensorCount; s++ {
		if temps[s] > t.dayMax[s] {
			t.dayMax[s] = temps[s]
		}
		if temps[s] < t.dayMin[s] {
			t.dayMin[s] = temps[s]
		}

		rate := temps[s] - t.prev[s] // degrees C per window (1 minute)
		headroom := constants.ThermalSensorPhysicalLimit[s] - temps[s]

		out.PerSensor[s] = [6]float64{
			temps[s],
			temps[s] - truck.ThermalIdleC[s],
			t.dayMax[s],
			t.dayMin[s],
			rate,
			headroom,
		}
	}

	out.Differentials = [3]float64{
		temps[0] - temps[1], // coolant - oil
		temps[2] - temps[3], // EGT - intake manifold
		temps[1] - temps[5], // oil - transmission
	}

	t.prev = temps
	return out
}

// ConditioningFeatures is the C7 conditioning block: a normalized RPM estimate and a load
// proxy, both in roughly [0,1] (§4.7).
type ConditioningFeatures struct {
	RPMEst    float64
	LoadProxy float64
}

func (c ConditioningFeatures) Flatten() []float64 {
	return []float64{c.RPMEst, c.LoadProxy}
}

// conditioningFromWindow derives the conditioning block directly from the window's sampled
// operating state (§4.7): no leakage from internal fault state, only observable RPM/load.
func conditioningFromWindow(w WindowState) ConditioningFeatures {
	return ConditioningFeatures{
		RPMEst:    w.RPM / 2200.0, // normalized against the heavy-mode RPM ceiling
		LoadProxy: w.Load,
	}
}

// AssembleFeatureVector composes the conditioning, vibration, and thermal blocks into the
// canonical 221-wide feature vector and enforces the hard length invariant (I7): any mismatch
// is a *simerrors.SchemaError, aborting the unit without a partial row (§4.7, §7).
func AssembleFeatureVector(w WindowState, vib VibrationFeatures, thermal ThermalFeatures, truckID, dayIndex int) ([]float64, error) {
	cond := conditioningFromWindow(w)

	out := make([]float64, 0, constants.TotalFeatureCount)
	out = append(out, cond.Flatten()...)
	out = append(out, vib.Flatten()...)
	out = append(out, thermal.Flatten()...)

	if len(out) != constants.TotalFeatureCount {
		return nil, simerrors.NewSchemaError(truckID, dayIndex,
			"feature vector width mismatch")
	}
	return out, nil
}

// FeatureColumnNames returns the 221 column names in the exact order AssembleFeatureVector
// produces values, for use by pkg/rowio's header writer (§6.3).
func FeatureColumnNames() []string {
	names := make([]string, 0, constants.TotalFeatureCount)
	names = append(names, "rpm_est", "load_proxy")

	axisNames := [constants.VibrationAxisCount]string{"x", "y", "z"}
	statNames := [constants.VibrationTimeStats]string{"rms", "peak", "crest", "kurtosis", "std", "max"}
	for s := 0; s < constants.VibrationSensorCount; s++ {
		for a := 0; a < constants.VibrationAxisCount; a++ {
			for _, stat := range statNames {
				names = append(names, fmtColumn("vib", s, axisNames[a], stat))
			}
		}
		for b := 0; b < constants.VibrationBandCount; b++ {
			names = append(names, fmtBandColumn(s, b))
		}
		names = append(names, fmtColumn("vib", s, "spec", "kurt_low"))
		names = append(names, fmtColumn("vib", s, "spec", "kurt_high"))
	}

	thermalStatNames := [6]string{"temp", "delta_idle", "day_max", "day_min", "rate", "headroom"}
	sensorNames := [constants.ThermalSensorCount]string{"coolant", "oil", "egt", "intake", "fuel", "trans"}
	for s := 0; s < constants.ThermalSensorCount; s++ {
		for _, stat := range thermalStatNames {
			names = append(names, "therm_"+sensorNames[s]+"_"+stat)
		}
	}
	names = append(names, "therm_diff_coolant_oil", "therm_diff_egt_intake", "therm_diff_oil_trans")

	return names
}

func fmtColumn(prefix string, sensor int, axis, stat string) string {
	return prefix + "_s" + strconv.Itoa(sensor) + "_" + axis + "_" + stat
}

func fmtBandColumn(sensor, band int) string {
	return "vib_s" + strconv.Itoa(sensor) + "_band" + strconv.Itoa(band)
}
