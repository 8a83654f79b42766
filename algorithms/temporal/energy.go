package temporal

import (
	"math"
)

// Amplitude holds time-domain level measurements for one frame
type Amplitude struct {
	RMS   float64 `json:"rms"`
	Peak  float64 `json:"peak"`
	Crest float64 `json:"crest"`
}

// Energy computes frame-level amplitude statistics
type Energy struct{}

// NewEnergy creates a new amplitude calculator
func NewEnergy() *Energy {
	return &Energy{}
}

// Compute returns RMS, absolute peak and crest factor (peak/RMS) for a
// frame. A silent frame yields zeros, crest included.
func (e *Energy) Compute(frame []float64) Amplitude {
	if len(frame) == 0 {
		return Amplitude{}
	}

	sumSquares := 0.0
	peak := 0.0
	for _, sample := range frame {
		sumSquares += sample * sample
		if a := math.Abs(sample); a > peak {
			peak = a
		}
	}

	rms := math.Sqrt(sumSquares / float64(len(frame)))

	crest := 0.0
	if rms > 0 {
		crest = peak / rms
	}

	return Amplitude{RMS: rms, Peak: peak, Crest: crest}
}
