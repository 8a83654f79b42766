package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHarmonicRatioSilence(t *testing.T) {
	hr := NewHarmonicRatio(44100)

	assert.Zero(t, hr.Compute(nil))
	assert.Zero(t, hr.Compute(make([]float64, 1024)))
}

func TestHarmonicRatioHarmonicSeries(t *testing.T) {
	hr := NewHarmonicRatio(44100)

	// Fundamental at bin 20 with exact integer-multiple partials
	spectrum := make([]float64, 1024)
	spectrum[20] = 1.0
	spectrum[40] = 0.8
	spectrum[60] = 0.6

	ratio := hr.Compute(spectrum)
	assert.InDelta(t, 1.0, ratio, 1e-9)
}

func TestHarmonicRatioWithInharmonicPartial(t *testing.T) {
	hr := NewHarmonicRatio(44100)

	spectrum := make([]float64, 1024)
	spectrum[20] = 1.0
	spectrum[40] = 0.8
	spectrum[60] = 0.6
	spectrum[50] = 0.8 // between the 2nd and 3rd harmonics

	ratio := hr.Compute(spectrum)

	harmonic := 1.0 + 0.8*0.8 + 0.6*0.6
	total := harmonic + 0.8*0.8
	assert.InDelta(t, harmonic/total, ratio, 1e-9)
}

func TestHarmonicRatioBounds(t *testing.T) {
	hr := NewHarmonicRatio(44100)

	ratio := hr.Compute(rampSpectrum(1024))
	assert.GreaterOrEqual(t, ratio, 0.0)
	assert.LessOrEqual(t, ratio, 1.0)
}
