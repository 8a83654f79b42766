package spectral

import (
	"math"
)

// MelScale converts between linear frequency and the mel scale and builds
// triangular mel filter banks for cepstral analysis
type MelScale struct{}

// NewMelScale creates a new mel scale converter
func NewMelScale() *MelScale {
	return &MelScale{}
}

// HzToMel converts a frequency in Hz to mels
func (ms *MelScale) HzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

// MelToHz converts mels back to Hz
func (ms *MelScale) MelToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

// FilterBank builds numFilters triangular filters spanning lowFreq to
// highFreq over numBins spectrum bins. Each row is one filter's weight per
// bin.
func (ms *MelScale) FilterBank(numFilters, numBins, sampleRate int, lowFreq, highFreq float64) [][]float64 {
	if numFilters <= 0 || numBins <= 0 {
		return nil
	}
	if highFreq <= 0 || highFreq > float64(sampleRate)/2.0 {
		highFreq = float64(sampleRate) / 2.0
	}

	lowMel := ms.HzToMel(lowFreq)
	highMel := ms.HzToMel(highFreq)

	// Filter edge frequencies are evenly spaced in mel
	melPoints := make([]float64, numFilters+2)
	for i := range melPoints {
		melPoints[i] = lowMel + float64(i)*(highMel-lowMel)/float64(numFilters+1)
	}

	binWidth := float64(sampleRate) / float64(2*numBins)
	edgeBins := make([]int, len(melPoints))
	for i, mel := range melPoints {
		edgeBins[i] = int(ms.MelToHz(mel) / binWidth)
		if edgeBins[i] >= numBins {
			edgeBins[i] = numBins - 1
		}
	}

	bank := make([][]float64, numFilters)
	for m := 0; m < numFilters; m++ {
		bank[m] = make([]float64, numBins)

		left, center, right := edgeBins[m], edgeBins[m+1], edgeBins[m+2]
		for bin := left; bin <= right && bin < numBins; bin++ {
			switch {
			case bin < center && center > left:
				bank[m][bin] = float64(bin-left) / float64(center-left)
			case bin == center:
				bank[m][bin] = 1.0
			case right > center:
				bank[m][bin] = float64(right-bin) / float64(right-center)
			}
		}
	}

	return bank
}

// Apply runs a power spectrum through the filter bank, returning one
// energy per filter
func (ms *MelScale) Apply(powerSpectrum []float64, bank [][]float64) []float64 {
	out := make([]float64, len(bank))

	for m, filter := range bank {
		sum := 0.0
		n := min(len(filter), len(powerSpectrum))
		for i := 0; i < n; i++ {
			sum += powerSpectrum[i] * filter[i]
		}
		out[m] = sum
	}

	return out
}
