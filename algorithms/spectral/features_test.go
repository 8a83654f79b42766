package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampSpectrum spreads energy across the whole frequency axis
func rampSpectrum(numBins int) []float64 {
	spectrum := make([]float64, numBins)
	for i := range spectrum {
		spectrum[i] = 0.5 + float64(i%7)*0.1
	}
	return spectrum
}

func TestBandEnergiesSumToOne(t *testing.T) {
	f := NewFeatures(44100)

	bands := f.Bands(rampSpectrum(1024))

	sum := bands.Bass + bands.Mid + bands.Treble
	assert.InDelta(t, 1.0, sum, 1e-4)
	assert.Greater(t, bands.Bass, 0.0)
	assert.Greater(t, bands.Mid, 0.0)
	assert.Greater(t, bands.Treble, 0.0)
}

func TestBandEnergiesSilentSpectrum(t *testing.T) {
	f := NewFeatures(44100)

	bands := f.Bands(make([]float64, 1024))
	assert.Zero(t, bands.Bass)
	assert.Zero(t, bands.Mid)
	assert.Zero(t, bands.Treble)
}

func TestFeatureDeterminism(t *testing.T) {
	f := NewFeatures(44100)
	spectrum := rampSpectrum(512)

	centroid1 := f.Centroid(spectrum)
	centroid2 := f.Centroid(spectrum)
	assert.Equal(t, centroid1, centroid2)

	spread1 := f.Spread(spectrum, centroid1)
	spread2 := f.Spread(spectrum, centroid2)
	assert.Equal(t, spread1, spread2)

	assert.Equal(t, f.Flatness(spectrum), f.Flatness(spectrum))
	assert.Equal(t, f.Rolloff(spectrum), f.Rolloff(spectrum))
}

func TestSkewnessKurtosisZeroSpread(t *testing.T) {
	f := NewFeatures(44100)
	spectrum := rampSpectrum(512)

	assert.Zero(t, f.Skewness(spectrum, 1000, 0))
	assert.Zero(t, f.Kurtosis(spectrum, 1000, 0))
}

func TestRolloffNyquistFallback(t *testing.T) {
	f := NewFeatures(44100)

	// Silent spectrum never reaches the cumulative threshold
	rolloff := f.Rolloff(make([]float64, 512))
	assert.Equal(t, 22050.0, rolloff)
}

func TestRolloffConcentratedEnergy(t *testing.T) {
	f := NewFeatures(44100)

	// All energy in one low bin: rolloff lands on that bin's frequency
	spectrum := make([]float64, 1024)
	spectrum[10] = 1.0

	rolloff := f.Rolloff(spectrum)
	assert.InDelta(t, f.FrequencyAt(10, 1024), rolloff, 1e-9)
}

func TestFlatnessBounds(t *testing.T) {
	f := NewFeatures(44100)

	// Perfectly flat spectrum has flatness 1
	flat := make([]float64, 256)
	for i := range flat {
		flat[i] = 0.5
	}
	assert.InDelta(t, 1.0, f.Flatness(flat), 1e-9)

	// A peaky spectrum is much less flat
	peaky := make([]float64, 256)
	for i := range peaky {
		peaky[i] = 0.001
	}
	peaky[64] = 10.0
	flatness := f.Flatness(peaky)
	assert.Greater(t, flatness, 0.0)
	assert.Less(t, flatness, 0.1)
}

func TestFluxWithoutPrevious(t *testing.T) {
	f := NewFeatures(44100)
	spectrum := rampSpectrum(512)

	assert.Zero(t, f.Flux(spectrum, nil))
	assert.Zero(t, f.Flux(spectrum, make([]float64, 100)))
}

func TestFluxHalfWaveRectified(t *testing.T) {
	f := NewFeatures(44100)

	previous := make([]float64, 4)
	current := []float64{1.0, 0.0, 2.0, 0.0}
	previous[1] = 5.0 // decreases are ignored

	flux := f.Flux(current, previous)
	assert.InDelta(t, 3.0/4.0, flux, 1e-12)
}

func TestCrest(t *testing.T) {
	f := NewFeatures(44100)

	spectrum := []float64{1, 1, 1, 5}
	assert.InDelta(t, 5.0/2.0, f.Crest(spectrum), 1e-12)

	assert.Zero(t, f.Crest(make([]float64, 8)))
}

func TestBrightness(t *testing.T) {
	f := NewFeatures(44100)

	// Single high-frequency bin: all energy above the cutoff
	spectrum := make([]float64, 1024)
	spectrum[900] = 1.0
	assert.InDelta(t, 1.0, f.Brightness(spectrum), 1e-9)

	// Single low bin: nothing above the cutoff
	low := make([]float64, 1024)
	low[5] = 1.0
	assert.Zero(t, f.Brightness(low))
}

func TestFrequencyAt(t *testing.T) {
	f := NewFeatures(44100)

	assert.Zero(t, f.FrequencyAt(0, 1024))
	assert.InDelta(t, 22050.0, f.FrequencyAt(1024, 1024), 1e-9)

	// Bin width at 1024 bins over 22.05 kHz
	width := f.FrequencyAt(1, 1024)
	assert.InDelta(t, 44100.0/2048.0, width, 1e-9)
}

func TestCentroidSilence(t *testing.T) {
	f := NewFeatures(44100)
	assert.Zero(t, f.Centroid(make([]float64, 512)))
}

func TestSpreadAroundCentroid(t *testing.T) {
	f := NewFeatures(44100)

	// Two symmetric bins around bin 100
	spectrum := make([]float64, 1024)
	spectrum[90] = 1.0
	spectrum[110] = 1.0

	centroid := f.Centroid(spectrum)
	require.InDelta(t, f.FrequencyAt(100, 1024), centroid, 1.0)

	spread := f.Spread(spectrum, centroid)
	expected := f.FrequencyAt(10, 1024)
	assert.InDelta(t, expected, spread, 1.0)
	assert.False(t, math.IsNaN(spread))
}
