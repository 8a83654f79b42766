package spectral

import (
	"math"

	"github.com/RyanBlaney/sonido-mood/algorithms/common"
)

// Frequency band edges in Hz. Bass/mid/treble follow the usual perceptual
// split; brightness uses its own cutoff.
const (
	BassUpperHz       = 250.0
	MidUpperHz        = 4000.0
	BrightnessCutHz   = 1500.0
	bandEnergyEpsilon = 1e-6
	nearZeroMagnitude = 1e-10
)

// BandEnergies holds per-band energy normalized against total energy.
// The three values sum to 1 whenever the spectrum carries any energy.
type BandEnergies struct {
	Bass   float64 `json:"bass"`
	Mid    float64 `json:"mid"`
	Treble float64 `json:"treble"`
}

// Features computes spectral shape descriptors from a magnitude spectrum.
//
// All methods are deterministic pure functions of their arguments; the only
// state is the precalculated frequency axis, rebuilt when the spectrum
// length changes. Flux is the one descriptor that needs the previous
// frame's spectrum, which the caller supplies explicitly.
type Features struct {
	sampleRate        int
	rolloffPercentile float64
	freqBins          []float64
}

// NewFeatures creates a spectral feature calculator for the given sample rate
func NewFeatures(sampleRate int) *Features {
	return &Features{
		sampleRate:        sampleRate,
		rolloffPercentile: 0.85,
	}
}

// SetRolloffPercentile overrides the cumulative-energy percentile used by
// Rolloff. Values outside (0,1] are ignored.
func (f *Features) SetRolloffPercentile(p float64) {
	if p > 0 && p <= 1 {
		f.rolloffPercentile = p
	}
}

// FrequencyAt returns the center frequency of a bin for the given spectrum
// length. The spectrum covers DC to Nyquist over len bins, so one bin is
// sampleRate/(2*len) Hz wide.
func (f *Features) FrequencyAt(bin, numBins int) float64 {
	if numBins == 0 {
		return 0
	}
	return float64(bin) * float64(f.sampleRate) / float64(2*numBins)
}

func (f *Features) frequencies(numBins int) []float64 {
	if len(f.freqBins) != numBins {
		f.freqBins = make([]float64, numBins)
		for i := 0; i < numBins; i++ {
			f.freqBins[i] = f.FrequencyAt(i, numBins)
		}
	}
	return f.freqBins
}

// Bands computes bass/mid/treble energy shares from squared magnitudes.
// A spectrum with no energy yields all zeros rather than NaN.
func (f *Features) Bands(spectrum []float64) BandEnergies {
	if len(spectrum) == 0 {
		return BandEnergies{}
	}

	freqs := f.frequencies(len(spectrum))

	var bass, mid, treble float64
	for i, mag := range spectrum {
		energy := mag * mag
		switch {
		case freqs[i] < BassUpperHz:
			bass += energy
		case freqs[i] <= MidUpperHz:
			mid += energy
		default:
			treble += energy
		}
	}

	total := bass + mid + treble
	if total == 0 {
		return BandEnergies{}
	}

	total += bandEnergyEpsilon
	return BandEnergies{
		Bass:   bass / total,
		Mid:    mid / total,
		Treble: treble / total,
	}
}

// Centroid computes the energy-weighted mean frequency in Hz
func (f *Features) Centroid(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0
	}

	freqs := f.frequencies(len(spectrum))

	numerator := 0.0
	for i, mag := range spectrum {
		numerator += freqs[i] * mag
	}

	return numerator / (common.Sum(spectrum) + bandEnergyEpsilon)
}

// Spread computes the energy-weighted standard deviation of frequency
// around the centroid
func (f *Features) Spread(spectrum []float64, centroid float64) float64 {
	if len(spectrum) == 0 {
		return 0
	}

	freqs := f.frequencies(len(spectrum))

	numerator := 0.0
	denominator := 0.0
	for i, mag := range spectrum {
		diff := freqs[i] - centroid
		numerator += diff * diff * mag
		denominator += mag
	}

	if denominator == 0 {
		return 0
	}

	return math.Sqrt(numerator / denominator)
}

// Skewness computes the third standardized moment of frequency around the
// centroid. Zero spread short-circuits to 0.
func (f *Features) Skewness(spectrum []float64, centroid, spread float64) float64 {
	if len(spectrum) == 0 || spread == 0 {
		return 0
	}

	freqs := f.frequencies(len(spectrum))

	numerator := 0.0
	denominator := 0.0
	for i, mag := range spectrum {
		diff := freqs[i] - centroid
		numerator += diff * diff * diff * mag
		denominator += mag
	}

	if denominator == 0 {
		return 0
	}

	return (numerator / denominator) / (spread * spread * spread)
}

// Kurtosis computes the fourth standardized moment of frequency around the
// centroid. Zero spread short-circuits to 0.
func (f *Features) Kurtosis(spectrum []float64, centroid, spread float64) float64 {
	if len(spectrum) == 0 || spread == 0 {
		return 0
	}

	freqs := f.frequencies(len(spectrum))

	numerator := 0.0
	denominator := 0.0
	for i, mag := range spectrum {
		diff := freqs[i] - centroid
		diff2 := diff * diff
		numerator += diff2 * diff2 * mag
		denominator += mag
	}

	if denominator == 0 {
		return 0
	}

	spread2 := spread * spread
	return (numerator / denominator) / (spread2 * spread2)
}

// Rolloff returns the lowest frequency below which the configured share of
// total energy (default 85%) is contained. When the threshold is never
// reached the Nyquist frequency is returned.
func (f *Features) Rolloff(spectrum []float64) float64 {
	nyquist := float64(f.sampleRate) / 2.0
	if len(spectrum) == 0 {
		return nyquist
	}

	freqs := f.frequencies(len(spectrum))

	totalEnergy := 0.0
	for _, mag := range spectrum {
		totalEnergy += mag * mag
	}
	if totalEnergy == 0 {
		return nyquist
	}

	targetEnergy := f.rolloffPercentile * totalEnergy
	cumulative := 0.0
	for i, mag := range spectrum {
		cumulative += mag * mag
		if cumulative >= targetEnergy {
			return freqs[i]
		}
	}

	return nyquist
}

// Flatness computes the ratio of geometric to arithmetic mean magnitude
// (Wiener entropy). Near-zero bins are excluded from the geometric mean to
// avoid log(0); the result lies in (0,1] for any spectrum with energy.
func (f *Features) Flatness(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0
	}

	logSum := 0.0
	count := 0
	for _, mag := range spectrum {
		if mag > nearZeroMagnitude {
			logSum += math.Log(mag)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	geometricMean := math.Exp(logSum / float64(count))

	arithmeticMean := common.Mean(spectrum)
	if arithmeticMean == 0 {
		return 0
	}

	return geometricMean / arithmeticMean
}

// Flux computes the half-wave rectified spectral change against the
// previous frame, normalized by bin count. Returns 0 when there is no
// previous spectrum or the lengths disagree.
func (f *Features) Flux(spectrum, previous []float64) float64 {
	if len(previous) != len(spectrum) || len(spectrum) == 0 {
		return 0
	}

	sum := 0.0
	for i, mag := range spectrum {
		diff := mag - previous[i]
		if diff > 0 {
			sum += diff
		}
	}

	return sum / float64(len(spectrum))
}

// Crest computes the peak-to-mean magnitude ratio
func (f *Features) Crest(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0
	}

	mean := common.Mean(spectrum)
	if mean == 0 {
		return 0
	}

	return common.Max(spectrum) / mean
}

// Brightness computes the share of energy above the brightness cutoff
func (f *Features) Brightness(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0
	}

	freqs := f.frequencies(len(spectrum))

	var high, total float64
	for i, mag := range spectrum {
		energy := mag * mag
		total += energy
		if freqs[i] >= BrightnessCutHz {
			high += energy
		}
	}

	if total == 0 {
		return 0
	}

	return high / total
}
