package extraction

// AudioFeatures is the flat per-frame descriptor produced by the
// extractor. Every field is a plain value so snapshots can be stored,
// compared and serialized without sharing state with the calculators
// that produced them.
type AudioFeatures struct {
	// Time-domain amplitude
	Energy      float64 `json:"energy"`
	Peak        float64 `json:"peak"`
	CrestFactor float64 `json:"crest_factor"`

	// Spectral shape
	SpectralCentroid float64 `json:"spectral_centroid"`
	SpectralSpread   float64 `json:"spectral_spread"`
	SpectralSkewness float64 `json:"spectral_skewness"`
	SpectralKurtosis float64 `json:"spectral_kurtosis"`
	SpectralRolloff  float64 `json:"spectral_rolloff"`
	SpectralFlatness float64 `json:"spectral_flatness"`
	SpectralFlux     float64 `json:"spectral_flux"`
	HarmonicRatio    float64 `json:"harmonic_ratio"`
	Brightness       float64 `json:"brightness"`

	// Band energy distribution
	BassEnergy   float64 `json:"bass_energy"`
	MidEnergy    float64 `json:"mid_energy"`
	TrebleEnergy float64 `json:"treble_energy"`

	// Pitch and rhythm
	Pitch           float64 `json:"pitch"`
	PitchConfidence float64 `json:"pitch_confidence"`
	EstimatedTempo  float64 `json:"estimated_tempo"`

	// Timbre
	MFCC []float64 `json:"mfcc,omitempty"`
}

// IsSilent reports whether the frame carried no measurable energy
func (f *AudioFeatures) IsSilent() bool {
	return f.Energy == 0 && f.Peak == 0
}
