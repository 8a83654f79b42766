package spectral

import (
	"fmt"
	"math"
)

// Cepstrum computes mel-frequency cepstral coefficients from magnitude
// spectra. The mel filter bank and DCT matrix are built once for a given
// spectrum length and reused for every frame.
type Cepstrum struct {
	numCoefficients int
	numMelFilters   int
	sampleRate      int

	melScale   *MelScale
	filterBank [][]float64
	dctMatrix  [][]float64
	power      []float64
	logMel     []float64
	numBins    int
}

// NewCepstrum creates a cepstral calculator producing numCoefficients
// coefficients through a 26-filter mel bank
func NewCepstrum(sampleRate, numCoefficients int) *Cepstrum {
	if numCoefficients <= 0 {
		numCoefficients = 13
	}
	return &Cepstrum{
		numCoefficients: numCoefficients,
		numMelFilters:   26,
		sampleRate:      sampleRate,
		melScale:        NewMelScale(),
	}
}

func (c *Cepstrum) initialize(numBins int) error {
	c.filterBank = c.melScale.FilterBank(c.numMelFilters, numBins, c.sampleRate, 0.0, float64(c.sampleRate)/2.0)
	if len(c.filterBank) == 0 {
		return fmt.Errorf("failed to build mel filter bank for %d bins", numBins)
	}

	// DCT-II with orthonormal scaling
	c.dctMatrix = make([][]float64, c.numCoefficients)
	for k := 0; k < c.numCoefficients; k++ {
		c.dctMatrix[k] = make([]float64, c.numMelFilters)
		for n := 0; n < c.numMelFilters; n++ {
			c.dctMatrix[k][n] = math.Cos(math.Pi * float64(k) * (float64(n) + 0.5) / float64(c.numMelFilters))
			if k == 0 {
				c.dctMatrix[k][n] *= math.Sqrt(1.0 / float64(c.numMelFilters))
			} else {
				c.dctMatrix[k][n] *= math.Sqrt(2.0 / float64(c.numMelFilters))
			}
		}
	}

	c.power = make([]float64, numBins)
	c.logMel = make([]float64, c.numMelFilters)
	c.numBins = numBins
	return nil
}

// Compute returns the cepstral coefficient vector for a magnitude spectrum
func (c *Cepstrum) Compute(spectrum []float64) ([]float64, error) {
	if len(spectrum) == 0 {
		return nil, fmt.Errorf("empty magnitude spectrum")
	}

	if c.numBins != len(spectrum) {
		if err := c.initialize(len(spectrum)); err != nil {
			return nil, err
		}
	}

	for i, mag := range spectrum {
		c.power[i] = mag * mag
	}

	melSpectrum := c.melScale.Apply(c.power, c.filterBank)
	for i, mel := range melSpectrum {
		if mel > 0 {
			c.logMel[i] = math.Log(mel)
		} else {
			c.logMel[i] = math.Log(nearZeroMagnitude)
		}
	}

	coeffs := make([]float64, c.numCoefficients)
	for k := 0; k < c.numCoefficients; k++ {
		sum := 0.0
		for n := 0; n < c.numMelFilters; n++ {
			sum += c.logMel[n] * c.dctMatrix[k][n]
		}
		coeffs[k] = sum
	}

	return coeffs, nil
}

// NumCoefficients returns the length of the coefficient vector
func (c *Cepstrum) NumCoefficients() int {
	return c.numCoefficients
}
