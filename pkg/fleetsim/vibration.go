package fleetsim

import (
	"math"
	"math/rand"

	"github.com/dieselfleet/simgen/internal/constants"
)

// VibrationFeatures holds one window's C6 output: time-domain statistics, band-energy
// features, and spectral-kurtosis values, for each of the three vibration sensors (§4.6).
// Flatten() gives the canonical 180-wide order consumed by the feature assembler.
type VibrationFeatures struct {
	// TimeStats[sensor][axis][stat], stat order: RMS, peak, crest, kurtosis, std, max.
	TimeStats [constants.VibrationSensorCount][constants.VibrationAxisCount][constants.VibrationTimeStats]float64
	// BandEnergy[sensor][band]
	BandEnergy [constants.VibrationSensorCount][constants.VibrationBandCount]float64
	// SpectralKurtosis[sensor][0..1]: low-band and high-band spectral kurtosis.
	SpectralKurtosis [constants.VibrationSensorCount][2]float64
}

// Flatten returns the 180 features in fixed canonical order: sensor-major, then within a
// sensor time-stats (axis-major, stat-minor), then band-energy, then spectral kurtosis.
func (v VibrationFeatures) Flatten() []float64 {
	out := make([]float64, 0, constants.VibrationFeatureCount)
	for s := 0; s < constants.VibrationSensorCount; s++ {
		for a := 0; a < constants.VibrationAxisCount; a++ {
			for st := 0; st < constants.VibrationTimeStats; st++ {
				out = append(out, v.TimeStats[s][a][st])
			}
		}
		for b := 0; b < constants.VibrationBandCount; b++ {
			out = append(out, v.BandEnergy[s][b])
		}
		for k := 0; k < 2; k++ {
			out = append(out, v.SpectralKurtosis[s][k])
		}
	}
	return out
}

// vibrationSensorBaseGain gives each of the three mounted sensors (engine block, turbo
// housing, transmission case) a distinct baseline sensitivity to RPM-driven excitation.
var vibrationSensorBaseGain = [constants.VibrationSensorCount]float64{1.0, 1.4, 0.7}

// vibrationAxisGain weights the three orthogonal axes (radial, tangential, axial)
// differently, since mounted accelerometers are never perfectly isotropic.
var vibrationAxisGain = [constants.VibrationAxisCount]float64{1.0, 0.85, 0.6}

// SynthesizeVibration produces one window's vibration features from the operating state, the
// composed fault effect, and the truck's bearing frequencies (§4.6). rng is the unit's
// vibration stream, shared by every window of the day; SubSamplesPerWindow synthetic
// sub-samples are drawn per sensor/axis to
// give the time-domain statistics something to be computed over.
func SynthesizeVibration(w WindowState, effect FaultEffect, bearings BearingFreqs, rng *rand.Rand) VibrationFeatures {
	var out VibrationFeatures

	rpmFactor := w.RPM / 1800.0
	loadFactor := 0.3 + 0.7*w.Load

	for s := 0; s < constants.VibrationSensorCount; s++ {
		sensorGain := vibrationSensorBaseGain[s] * rpmFactor * loadFactor * effect.VibrationEnergyMult

		for a := 0; a < constants.VibrationAxisCount; a++ {
			gain := sensorGain * vibrationAxisGain[a]
			samples := make([]float64, constants.SubSamplesPerWindow)
			for i := range samples {
				base := gain * (1.0 + 0.15*rng.NormFloat64())
				if effect.VibrationShapeBoost > 0 && rng.Float64() < 0.1+0.1*effect.VibrationShapeBoost {
					base += gain * effect.VibrationShapeBoost * (1.0 + rng.Float64())
				}
				samples[i] = base
			}
			out.TimeStats[s][a] = timeDomainStats(samples)
		}

		out.BandEnergy[s] = bandEnergies(rng, sensorGain, bearings, w.RPM)
		out.SpectralKurtosis[s] = spectralKurtosis(rng, effect.VibrationShapeBoost)
	}

	return out
}

// timeDomainStats computes RMS, peak, crest factor, kurtosis, standard deviation, and max
// over a window's synthetic sub-samples, in that fixed order (constants.VibrationTimeStats).
func timeDomainStats(samples []float64) [constants.VibrationTimeStats]float64 {
	n := float64(len(samples))

	var sumSq, sum, peak float64
	for _, v := range samples {
		sum += v
		sumSq += v * v
		if math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}
	mean := sum / n
	rms := math.Sqrt(sumSq / n)

	var variance, fourth float64
	for _, v := range samples {
		d := v - mean
		variance += d * d
		fourth += d * d * d * d
	}
	variance /= n
	std := math.Sqrt(variance)

	crest := 0.0
	if rms > 1e-9 {
		crest = peak / rms
	}

	kurtosis := 0.0
	if variance > 1e-12 {
		kurtosis = (fourth / n) / (variance * variance)
	}

	return [constants.VibrationTimeStats]float64{rms, peak, crest, kurtosis, std, math.Max(peak, 0)}
}

// bandEnergies produces a synthetic 40-bin energy spectrum with peaks at harmonics of the
// shaft order and at the truck's characteristic bearing frequencies, scaled by the sensor's
// overall gain (§4.6: band energies must reflect bearing-geometry fault signatures).
func bandEnergies(rng *rand.Rand, sensorGain float64, bearings BearingFreqs, rpm float64) [constants.VibrationBandCount]float64 {
	var bands [constants.VibrationBandCount]float64
	shaftHz := rpm / 60.0

	for b := 0; b < constants.VibrationBandCount; b++ {
		centerHz := float64(b+1) * 10.0
		floor := 0.05 * sensorGain * (1.0 + 0.2*rng.Float64())

		peak := 0.0
		for _, bf := range bearings {
			peak += bearingPeakContribution(centerHz, bf, sensorGain)
		}
		peak += bearingPeakContribution(centerHz, shaftHz, sensorGain*0.5)

		bands[b] = floor + peak
	}
	return bands
}

// bearingPeakContribution adds a Gaussian-shaped bump centered on a characteristic frequency,
// representing the energy a bearing/shaft fault concentrates near its geometric frequency.
func bearingPeakContribution(centerHz, freqHz, gain float64) float64 {
	sigma := 3.0
	d := centerHz - freqHz
	return gain * 0.3 * math.Exp(-(d*d)/(2*sigma*sigma))
}

// spectralKurtosis returns two synthetic values (low-band, high-band) that rise with
// impulsive fault signatures (shape-domain faults like injector fouling or belt
// misalignment raise these), and sit near the Gaussian baseline of 3.0 otherwise.
func spectralKurtosis(rng *rand.Rand, shapeBoost float64) [2]float64 {
	base := 3.0 + 0.3*rng.NormFloat64()
	low := base + 0.5*shapeBoost
	high := base + 0.8*shapeBoost
	return [2]float64{low, high}
}
