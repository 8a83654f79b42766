package temporal

import (
	"github.com/RyanBlaney/sonido-mood/algorithms/common"
)

// Tempo estimation constants. Onset strength blends spectral flux with the
// frame-to-frame RMS rise; candidates outside the BPM clamp are pulled to
// its edges.
const (
	onsetFluxWeight   = 0.6
	onsetEnergyWeight = 0.4
	onsetThreshold    = 0.3
	tempoHistorySize  = 8
	tempoSmoothing    = 0.15
	medianBlendWeight = 0.7
	smoothBlendWeight = 0.3

	// DefaultTempoBPM is reported until the first onset lands in history
	DefaultTempoBPM = 120.0
)

// TempoEstimator tracks beat rate across a strictly ordered frame stream.
//
// The estimator carries cross-frame state (previous spectrum, previous
// RMS, a bounded candidate history), so one instance must never be shared
// across concurrent streams: its "previous" is always the immediately
// prior call.
type TempoEstimator struct {
	frameRate float64
	minBPM    float64
	maxBPM    float64

	prevSpectrum []float64
	prevRMS      float64
	hasPrev      bool

	framesSinceOnset int
	history          []float64
	smoothed         float64
	hasSmoothed      bool
}

// NewTempoEstimator creates a tempo estimator for frames arriving every
// hopSize samples at the given sample rate
func NewTempoEstimator(sampleRate, hopSize int) *TempoEstimator {
	frameRate := 0.0
	if hopSize > 0 {
		frameRate = float64(sampleRate) / float64(hopSize)
	}
	return &TempoEstimator{
		frameRate: frameRate,
		minBPM:    40.0,
		maxBPM:    240.0,
		history:   make([]float64, 0, tempoHistorySize),
	}
}

// SetRange overrides the BPM clamp. Ignored unless 0 < min < max.
func (te *TempoEstimator) SetRange(minBPM, maxBPM float64) {
	if minBPM > 0 && maxBPM > minBPM {
		te.minBPM = minBPM
		te.maxBPM = maxBPM
	}
}

// Process consumes one frame's magnitude spectrum and RMS and returns the
// current tempo estimate in BPM. With no onsets observed yet it reports
// the default 120 BPM.
func (te *TempoEstimator) Process(spectrum []float64, rms float64) float64 {
	flux := te.flux(spectrum)

	energyRise := 0.0
	if te.hasPrev && rms > te.prevRMS {
		energyRise = rms - te.prevRMS
	}

	onsetStrength := onsetFluxWeight*flux + onsetEnergyWeight*energyRise

	te.framesSinceOnset++
	if onsetStrength > onsetThreshold && te.frameRate > 0 {
		// Instantaneous BPM from the frame rate over the frames elapsed
		// since the previous onset. Onsets on consecutive frames read as
		// the frame rate itself and saturate at the clamp.
		candidate := 60.0 * te.frameRate / float64(te.framesSinceOnset)
		candidate = common.Clamp(candidate, te.minBPM, te.maxBPM)
		te.push(candidate)
		te.framesSinceOnset = 0
	}

	te.rememberFrame(spectrum, rms)

	return te.Current()
}

// Current reports the blended tempo estimate without consuming a frame
func (te *TempoEstimator) Current() float64 {
	if len(te.history) == 0 {
		return DefaultTempoBPM
	}

	blended := medianBlendWeight*common.Median(te.history) + smoothBlendWeight*te.smoothed
	return common.Clamp(blended, te.minBPM, te.maxBPM)
}

// Reset clears all cross-frame state
func (te *TempoEstimator) Reset() {
	te.prevSpectrum = nil
	te.prevRMS = 0
	te.hasPrev = false
	te.framesSinceOnset = 0
	te.history = te.history[:0]
	te.smoothed = 0
	te.hasSmoothed = false
}

func (te *TempoEstimator) push(candidate float64) {
	if len(te.history) >= tempoHistorySize {
		copy(te.history, te.history[1:])
		te.history = te.history[:len(te.history)-1]
	}
	te.history = append(te.history, candidate)

	if !te.hasSmoothed {
		te.smoothed = candidate
		te.hasSmoothed = true
	} else {
		te.smoothed = tempoSmoothing*candidate + (1-tempoSmoothing)*te.smoothed
	}
}

// flux computes half-wave rectified spectral change against the previous
// frame's spectrum, normalized by bin count
func (te *TempoEstimator) flux(spectrum []float64) float64 {
	if !te.hasPrev || len(te.prevSpectrum) != len(spectrum) || len(spectrum) == 0 {
		return 0
	}

	sum := 0.0
	for i, mag := range spectrum {
		diff := mag - te.prevSpectrum[i]
		if diff > 0 {
			sum += diff
		}
	}
	return sum / float64(len(spectrum))
}

func (te *TempoEstimator) rememberFrame(spectrum []float64, rms float64) {
	if len(te.prevSpectrum) != len(spectrum) {
		te.prevSpectrum = make([]float64, len(spectrum))
	}
	copy(te.prevSpectrum, spectrum)
	te.prevRMS = rms
	te.hasPrev = true
}
