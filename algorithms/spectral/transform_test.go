package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineFrame(freq float64, sampleRate, size int) []float64 {
	frame := make([]float64, size)
	for i := range frame {
		frame[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return frame
}

func TestNewTransformRejectsNonPowerOfTwo(t *testing.T) {
	_, err := NewTransform(1000, 44100)
	assert.Error(t, err)

	_, err = NewTransform(0, 44100)
	assert.Error(t, err)

	_, err = NewTransform(1, 44100)
	assert.Error(t, err)

	_, err = NewTransform(2048, 0)
	assert.Error(t, err)

	tr, err := NewTransform(2048, 44100)
	require.NoError(t, err)
	assert.Equal(t, 1024, tr.Bins())
}

func TestTransformEmptyFrame(t *testing.T) {
	tr, err := NewTransform(1024, 44100)
	require.NoError(t, err)

	_, err = tr.Magnitudes(nil, nil)
	assert.Error(t, err)
}

func TestTransformSineCentroid(t *testing.T) {
	const (
		sampleRate = 44100
		size       = 2048
		freq       = 440.0
	)

	tr, err := NewTransform(size, sampleRate)
	require.NoError(t, err)

	spectrum, err := tr.Magnitudes(sineFrame(freq, sampleRate, size), nil)
	require.NoError(t, err)
	require.Len(t, spectrum, size/2)

	features := NewFeatures(sampleRate)
	centroid := features.Centroid(spectrum)

	assert.InDelta(t, freq, centroid, tr.BinWidth())
}

func TestTransformDeterminism(t *testing.T) {
	tr, err := NewTransform(1024, 44100)
	require.NoError(t, err)

	frame := sineFrame(220, 44100, 1024)

	first, err := tr.Magnitudes(frame, nil)
	require.NoError(t, err)
	out := make([]float64, len(first))
	copy(out, first)

	second, err := tr.Magnitudes(frame, nil)
	require.NoError(t, err)

	assert.Equal(t, out, second)
}

func TestTransformZeroPadsShortFrame(t *testing.T) {
	tr, err := NewTransform(1024, 44100)
	require.NoError(t, err)

	spectrum, err := tr.Magnitudes(make([]float64, 100), nil)
	require.NoError(t, err)
	require.Len(t, spectrum, 512)

	for _, mag := range spectrum {
		assert.Zero(t, mag)
	}
}
