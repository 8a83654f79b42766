package temporal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergySilence(t *testing.T) {
	e := NewEnergy()

	amp := e.Compute(make([]float64, 1024))
	assert.Zero(t, amp.RMS)
	assert.Zero(t, amp.Peak)
	assert.Zero(t, amp.Crest)

	amp = e.Compute(nil)
	assert.Zero(t, amp.RMS)
}

func TestEnergySine(t *testing.T) {
	e := NewEnergy()

	const amplitude = 0.8
	frame := make([]float64, 4410) // whole number of 100 Hz cycles at 44.1 kHz
	for i := range frame {
		frame[i] = amplitude * math.Sin(2*math.Pi*100*float64(i)/44100)
	}

	amp := e.Compute(frame)

	assert.InDelta(t, amplitude/math.Sqrt2, amp.RMS, 1e-3)
	assert.InDelta(t, amplitude, amp.Peak, 1e-3)
	assert.InDelta(t, math.Sqrt2, amp.Crest, 1e-2)
}

func TestEnergyDC(t *testing.T) {
	e := NewEnergy()

	frame := make([]float64, 256)
	for i := range frame {
		frame[i] = 0.5
	}

	amp := e.Compute(frame)
	assert.InDelta(t, 0.5, amp.RMS, 1e-12)
	assert.InDelta(t, 0.5, amp.Peak, 1e-12)
	assert.InDelta(t, 1.0, amp.Crest, 1e-12)
}
