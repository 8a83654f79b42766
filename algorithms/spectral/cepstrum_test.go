package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCepstrumCoefficientCount(t *testing.T) {
	c := NewCepstrum(44100, 0)
	assert.Equal(t, 13, c.NumCoefficients())

	coeffs, err := c.Compute(rampSpectrum(1024))
	require.NoError(t, err)
	assert.Len(t, coeffs, 13)
}

func TestCepstrumEmptySpectrum(t *testing.T) {
	c := NewCepstrum(44100, 13)

	_, err := c.Compute(nil)
	assert.Error(t, err)
}

func TestCepstrumDeterminism(t *testing.T) {
	c := NewCepstrum(44100, 13)
	spectrum := rampSpectrum(1024)

	first, err := c.Compute(spectrum)
	require.NoError(t, err)

	second, err := c.Compute(spectrum)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCepstrumReinitializesOnBinCountChange(t *testing.T) {
	c := NewCepstrum(44100, 13)

	coeffs, err := c.Compute(rampSpectrum(1024))
	require.NoError(t, err)
	require.Len(t, coeffs, 13)

	coeffs, err = c.Compute(rampSpectrum(512))
	require.NoError(t, err)
	assert.Len(t, coeffs, 13)
}

func TestMelScaleRoundTrip(t *testing.T) {
	ms := NewMelScale()

	for _, hz := range []float64{100, 440, 1000, 8000} {
		mel := ms.HzToMel(hz)
		assert.InDelta(t, hz, ms.MelToHz(mel), 1e-6)
	}
}

func TestMelFilterBankShape(t *testing.T) {
	ms := NewMelScale()

	bank := ms.FilterBank(26, 1024, 44100, 0, 22050)
	require.Len(t, bank, 26)

	for _, filter := range bank {
		require.Len(t, filter, 1024)
		for _, w := range filter {
			assert.GreaterOrEqual(t, w, 0.0)
		}
	}
}
