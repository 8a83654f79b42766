package tonal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sineFrame(freq float64, sampleRate, size int) []float64 {
	frame := make([]float64, size)
	for i := range frame {
		frame[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return frame
}

func TestPitchSilence(t *testing.T) {
	pe := NewPitchEstimator(44100)

	pitch, confidence := pe.Estimate(make([]float64, 2048))
	assert.Zero(t, pitch)
	assert.Zero(t, confidence)
}

func TestPitchTooFewSamples(t *testing.T) {
	pe := NewPitchEstimator(44100)

	pitch, confidence := pe.Estimate([]float64{0.1, 0.2, 0.3, 0.4})
	assert.Zero(t, pitch)
	assert.Zero(t, confidence)

	pitch, confidence = pe.Estimate(nil)
	assert.Zero(t, pitch)
	assert.Zero(t, confidence)
}

func TestPitchSine440(t *testing.T) {
	pe := NewPitchEstimator(44100)

	pitch, confidence := pe.Estimate(sineFrame(440, 44100, 2048))

	assert.InDelta(t, 440.0, pitch, 5.0)
	assert.Greater(t, confidence, 0.5)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestPitchLowFrequency(t *testing.T) {
	pe := NewPitchEstimator(44100)

	// 110 Hz has a ~401-sample period, well inside the lag range of a
	// 2048-sample frame
	pitch, confidence := pe.Estimate(sineFrame(110, 44100, 2048))

	assert.InDelta(t, 110.0, pitch, 2.0)
	assert.Greater(t, confidence, 0.5)
}

func TestPitchDeterminism(t *testing.T) {
	pe := NewPitchEstimator(44100)
	frame := sineFrame(330, 44100, 2048)

	p1, c1 := pe.Estimate(frame)
	p2, c2 := pe.Estimate(frame)

	assert.Equal(t, p1, p2)
	assert.Equal(t, c1, c2)
}
