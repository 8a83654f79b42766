package tonal

import (
	"math"
)

// Default YIN threshold: the first dip of the normalized difference below
// this value is taken as the period before falling back to the global
// minimum.
const defaultYinThreshold = 0.15

// PitchEstimator implements YIN-style pitch detection over a single frame.
//
// Reference: de Cheveigné, A., Kawahara, H. (2002). "YIN, a fundamental
// frequency estimator for speech and music"
//
// The estimator is frame-local: it keeps no history, only scratch buffers
// sized to the last frame so repeated calls stay allocation-free.
type PitchEstimator struct {
	sampleRate int
	threshold  float64

	diff  []float64
	cmndf []float64
}

// NewPitchEstimator creates a pitch estimator for the given sample rate
func NewPitchEstimator(sampleRate int) *PitchEstimator {
	return &PitchEstimator{
		sampleRate: sampleRate,
		threshold:  defaultYinThreshold,
	}
}

// Estimate returns the fundamental frequency in Hz and a confidence in
// [0,1] for one frame. Frames too short for lag analysis, and frames with
// no periodicity (silence), yield pitch 0 with confidence 0.
func (pe *PitchEstimator) Estimate(frame []float64) (pitch, confidence float64) {
	halfN := len(frame) / 2
	if halfN <= 2 {
		return 0, 0
	}

	if len(pe.diff) != halfN {
		pe.diff = make([]float64, halfN)
		pe.cmndf = make([]float64, halfN)
	}

	// Squared difference function
	for tau := 1; tau < halfN; tau++ {
		sum := 0.0
		for j := 0; j < halfN; j++ {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		pe.diff[tau] = sum
	}

	// Cumulative mean normalized difference
	pe.cmndf[0] = 1.0
	runningSum := 0.0
	for tau := 1; tau < halfN; tau++ {
		runningSum += pe.diff[tau]
		if runningSum == 0 {
			pe.cmndf[tau] = 1.0
		} else {
			pe.cmndf[tau] = pe.diff[tau] * float64(tau) / runningSum
		}
	}

	tau := pe.selectPeriod(halfN)
	if tau <= 0 {
		return 0, 0
	}

	confidence = 1.0 - pe.cmndf[tau]
	if confidence <= 0 {
		return 0, 0
	}
	if confidence > 1 {
		confidence = 1
	}

	period := pe.refinePeriod(tau, halfN)
	return float64(pe.sampleRate) / period, confidence
}

// selectPeriod picks the period lag: the first local minimum of the
// normalized difference below the threshold, or the global minimum over
// [2, N/2) when no dip qualifies
func (pe *PitchEstimator) selectPeriod(halfN int) int {
	for tau := 2; tau < halfN-1; tau++ {
		if pe.cmndf[tau] < pe.threshold && pe.cmndf[tau] <= pe.cmndf[tau+1] {
			return tau
		}
	}

	best := -1
	bestVal := math.Inf(1)
	for tau := 2; tau < halfN; tau++ {
		if pe.cmndf[tau] < bestVal {
			bestVal = pe.cmndf[tau]
			best = tau
		}
	}
	return best
}

// refinePeriod applies parabolic interpolation around the selected lag for
// sub-sample period accuracy
func (pe *PitchEstimator) refinePeriod(tau, halfN int) float64 {
	if tau <= 0 || tau >= halfN-1 {
		return float64(tau)
	}

	y1 := pe.cmndf[tau-1]
	y2 := pe.cmndf[tau]
	y3 := pe.cmndf[tau+1]

	a := (y1 - 2*y2 + y3) / 2
	b := (y3 - y1) / 2
	if a == 0 {
		return float64(tau)
	}

	offset := -b / (2 * a)
	if offset < -1 || offset > 1 {
		return float64(tau)
	}

	return float64(tau) + offset
}
