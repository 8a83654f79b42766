package mood

import (
	"math"

	"github.com/RyanBlaney/sonido-mood/algorithms/common"
	"github.com/RyanBlaney/sonido-mood/extraction"
)

// Perceptual terms derived from raw features. Every term is clamped to
// [0,1] before entering a weight row, so scores stay bounded no matter
// what the extractor reports.
type terms struct {
	energy     float64
	tempo      float64
	dance      float64
	valence    float64
	acoustic   float64
	steadiness float64
	intensity  float64
}

// Scaling constants for the derived terms. RMS of typical normalized
// program material sits well under 1/3; flux of a steady tone is near
// zero and a hard transient pushes past 0.1.
const (
	energyGain    = 3.0
	tempoCeiling  = 180.0
	fluxGain      = 10.0
	danceIdealBPM = 120.0

	// neutralBaseline is Neutral's constant score; a mood must beat it
	// to win
	neutralBaseline = 0.25
)

func deriveTerms(f extraction.AudioFeatures) terms {
	dance := 0.6*(1.0-math.Abs(f.EstimatedTempo-danceIdealBPM)/danceIdealBPM) + 0.4*f.BassEnergy

	return terms{
		energy:     common.Clamp01(f.Energy * energyGain),
		tempo:      common.Clamp01(f.EstimatedTempo / tempoCeiling),
		dance:      common.Clamp01(dance),
		valence:    common.Clamp01(0.5*f.Brightness + 0.5*f.HarmonicRatio),
		acoustic:   common.Clamp01(1.0 - f.Brightness),
		steadiness: common.Clamp01(1.0 - f.SpectralFlux*fluxGain),
		intensity:  common.Clamp01(f.SpectralFlux * fluxGain),
	}
}

// Score computes the hand-tuned match score of one mood against a feature
// snapshot, independent of any engine state. Scores lie in [0,1].
func Score(m Mood, f extraction.AudioFeatures) float64 {
	t := deriveTerms(f)

	switch m {
	case Energetic:
		return 0.4*t.energy + 0.3*t.tempo + 0.3*t.dance
	case Happy:
		return 0.4*t.valence + 0.3*t.energy + 0.3*t.dance
	case Relaxed:
		return 0.4*(1-t.energy) + 0.3*t.acoustic + 0.3*t.steadiness
	case Melancholic:
		return 0.4*(1-t.valence) + 0.3*(1-t.energy) + 0.3*t.acoustic
	case Focused:
		return 0.4*t.steadiness + 0.3*(1-t.intensity) + 0.3*(1-t.dance)
	case Angry:
		return 0.4*t.intensity + 0.3*t.energy + 0.3*(1-t.valence)
	case Neutral:
		return neutralBaseline
	}
	return 0
}
