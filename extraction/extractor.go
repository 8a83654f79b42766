package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/RyanBlaney/sonido-mood/algorithms/common"
	"github.com/RyanBlaney/sonido-mood/algorithms/spectral"
	"github.com/RyanBlaney/sonido-mood/algorithms/temporal"
	"github.com/RyanBlaney/sonido-mood/algorithms/tonal"
	"github.com/RyanBlaney/sonido-mood/buffer"
	"github.com/RyanBlaney/sonido-mood/logging"
)

// Config holds the extractor's frame geometry and optional stages
type Config struct {
	SampleRate  int  `json:"sample_rate" mapstructure:"sample_rate"`
	FrameSize   int  `json:"frame_size" mapstructure:"frame_size"`
	HopSize     int  `json:"hop_size" mapstructure:"hop_size"`
	PoolSize    int  `json:"pool_size" mapstructure:"pool_size"`
	HistorySize int  `json:"history_size" mapstructure:"history_size"`
	EnableMFCC  bool `json:"enable_mfcc" mapstructure:"enable_mfcc"`
	MFCCCount   int  `json:"mfcc_count" mapstructure:"mfcc_count"`
}

// DefaultConfig returns the standard analysis geometry: 2048-sample
// frames hopping by 512 at 44.1 kHz
func DefaultConfig() Config {
	return Config{
		SampleRate:  44100,
		FrameSize:   2048,
		HopSize:     512,
		PoolSize:    8,
		HistorySize: 20,
		EnableMFCC:  true,
		MFCCCount:   13,
	}
}

// FeatureExtractor runs the full per-frame analysis chain: windowed FFT,
// spectral descriptors, pitch, amplitude and streaming tempo. One
// extractor serves one audio stream; the tempo and flux stages carry
// cross-frame state.
type FeatureExtractor struct {
	cfg Config

	transform *spectral.Transform
	features  *spectral.Features
	harmonic  *spectral.HarmonicRatio
	cepstrum  *spectral.Cepstrum
	pitch     *tonal.PitchEstimator
	energy    *temporal.Energy
	tempo     *temporal.TempoEstimator

	pool     *buffer.Pool
	history  *buffer.RingHistory[AudioFeatures]
	spectrum []float64

	prevSpectrum []float64
	hasPrev      bool

	// Real-time budget for one frame; overruns are logged, not failed
	frameBudget time.Duration

	logger logging.Logger
}

// NewFeatureExtractor creates an extractor for the given configuration.
// Zero or negative config fields fall back to DefaultConfig values.
func NewFeatureExtractor(cfg Config) (*FeatureExtractor, error) {
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.FrameSize <= 0 {
		cfg.FrameSize = def.FrameSize
	}
	if cfg.HopSize <= 0 {
		cfg.HopSize = def.HopSize
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = def.PoolSize
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = def.HistorySize
	}

	transform, err := spectral.NewTransform(cfg.FrameSize, cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("feature extractor: %w", err)
	}

	fe := &FeatureExtractor{
		cfg:       cfg,
		transform: transform,
		features:  spectral.NewFeatures(cfg.SampleRate),
		harmonic:  spectral.NewHarmonicRatio(cfg.SampleRate),
		pitch:     tonal.NewPitchEstimator(cfg.SampleRate),
		energy:    temporal.NewEnergy(),
		tempo:     temporal.NewTempoEstimator(cfg.SampleRate, cfg.HopSize),
		pool:      buffer.NewPool(cfg.FrameSize, cfg.PoolSize),
		history:   buffer.NewRingHistory[AudioFeatures](cfg.HistorySize),
		spectrum:  make([]float64, cfg.FrameSize/2),
		frameBudget: time.Duration(
			float64(cfg.FrameSize) / float64(cfg.SampleRate) * 0.8 * float64(time.Second)),
		logger: logging.WithFields(logging.Fields{"component": "extraction"}),
	}

	if cfg.EnableMFCC {
		fe.cepstrum = spectral.NewCepstrum(cfg.SampleRate, cfg.MFCCCount)
	}

	return fe, nil
}

// Config returns the extractor's effective configuration
func (fe *FeatureExtractor) Config() Config {
	return fe.cfg
}

// ProcessFrame analyzes one frame of mono samples and returns its
// features. Returns buffer.ErrNoBuffer when the pool is exhausted; the
// caller may drop the frame and continue.
func (fe *FeatureExtractor) ProcessFrame(frame []float64) (AudioFeatures, error) {
	if len(frame) == 0 {
		return AudioFeatures{}, fmt.Errorf("process frame: empty frame")
	}

	buf := fe.pool.Obtain()
	if buf == nil {
		fe.logger.Warn("buffer pool exhausted, dropping frame", logging.Fields{
			"pool_capacity": fe.pool.Capacity(),
		})
		return AudioFeatures{}, buffer.ErrNoBuffer
	}
	defer fe.pool.Release(buf)

	start := time.Now()

	buf.Write(frame)
	feats, err := fe.analyze(buf.Samples())
	if err != nil {
		return AudioFeatures{}, err
	}

	if elapsed := time.Since(start); elapsed > fe.frameBudget {
		fe.logger.Warn("frame analysis over real-time budget", logging.Fields{
			"elapsed": elapsed.String(),
			"budget":  fe.frameBudget.String(),
		})
	}

	fe.history.Push(feats)
	return feats, nil
}

// ExtractBuffer runs the frame chain over an entire mono PCM buffer and
// returns features averaged across frames. Tempo and flux reflect the
// stream seen so far rather than a per-frame average.
func (fe *FeatureExtractor) ExtractBuffer(ctx context.Context, pcm []float64) (AudioFeatures, error) {
	if len(pcm) < fe.cfg.FrameSize {
		return AudioFeatures{}, fmt.Errorf("extract buffer: %d samples, need at least %d",
			len(pcm), fe.cfg.FrameSize)
	}

	var sum AudioFeatures
	var mfccSum []float64
	var frameEnergies []float64
	frames := 0

	for offset := 0; offset+fe.cfg.FrameSize <= len(pcm); offset += fe.cfg.HopSize {
		if err := ctx.Err(); err != nil {
			return AudioFeatures{}, fmt.Errorf("extract buffer: %w", err)
		}

		feats, err := fe.ProcessFrame(pcm[offset : offset+fe.cfg.FrameSize])
		if err == buffer.ErrNoBuffer {
			continue
		}
		if err != nil {
			return AudioFeatures{}, err
		}

		accumulate(&sum, feats)
		frameEnergies = append(frameEnergies, feats.Energy)
		if len(feats.MFCC) > 0 {
			if mfccSum == nil {
				mfccSum = make([]float64, len(feats.MFCC))
			}
			for i, c := range feats.MFCC {
				mfccSum[i] += c
			}
		}
		frames++
	}

	if frames == 0 {
		return AudioFeatures{}, fmt.Errorf("extract buffer: no frames analyzed")
	}

	avg := scale(sum, 1.0/float64(frames))
	if mfccSum != nil {
		avg.MFCC = mfccSum
		for i := range avg.MFCC {
			avg.MFCC[i] /= float64(frames)
		}
	}
	avg.EstimatedTempo = fe.tempo.Current()

	fe.logger.Debug("buffer extraction complete", logging.Fields{
		"frames":     frames,
		"rms_mean":   common.Mean(frameEnergies),
		"rms_stddev": common.StdDev(frameEnergies),
	})

	return avg, nil
}

// Latest returns the most recent frame's features
func (fe *FeatureExtractor) Latest() (AudioFeatures, bool) {
	return fe.history.Latest()
}

// History returns retained frame features ordered oldest to newest
func (fe *FeatureExtractor) History() []AudioFeatures {
	return fe.history.Snapshot()
}

// Reset clears all cross-frame state: tempo tracking, flux reference and
// the feature history
func (fe *FeatureExtractor) Reset() {
	fe.tempo.Reset()
	fe.history.Clear()
	fe.hasPrev = false
}

func (fe *FeatureExtractor) analyze(frame []float64) (AudioFeatures, error) {
	spectrum, err := fe.transform.Magnitudes(frame, fe.spectrum)
	if err != nil {
		return AudioFeatures{}, err
	}

	amp := fe.energy.Compute(frame)
	bands := fe.features.Bands(spectrum)
	centroid := fe.features.Centroid(spectrum)
	spread := fe.features.Spread(spectrum, centroid)
	pitch, pitchConf := fe.pitch.Estimate(frame)
	tempo := fe.tempo.Process(spectrum, amp.RMS)

	flux := 0.0
	if fe.hasPrev {
		flux = fe.features.Flux(spectrum, fe.prevSpectrum)
	}

	feats := AudioFeatures{
		Energy:      amp.RMS,
		Peak:        amp.Peak,
		CrestFactor: amp.Crest,

		SpectralCentroid: centroid,
		SpectralSpread:   spread,
		SpectralSkewness: fe.features.Skewness(spectrum, centroid, spread),
		SpectralKurtosis: fe.features.Kurtosis(spectrum, centroid, spread),
		SpectralRolloff:  fe.features.Rolloff(spectrum),
		SpectralFlatness: fe.features.Flatness(spectrum),
		SpectralFlux:     flux,
		HarmonicRatio:    fe.harmonic.Compute(spectrum),
		Brightness:       fe.features.Brightness(spectrum),

		BassEnergy:   bands.Bass,
		MidEnergy:    bands.Mid,
		TrebleEnergy: bands.Treble,

		Pitch:           pitch,
		PitchConfidence: pitchConf,
		EstimatedTempo:  tempo,
	}

	if fe.cepstrum != nil {
		coeffs, err := fe.cepstrum.Compute(spectrum)
		if err != nil {
			return AudioFeatures{}, fmt.Errorf("cepstrum: %w", err)
		}
		feats.MFCC = coeffs
	}

	if len(fe.prevSpectrum) != len(spectrum) {
		fe.prevSpectrum = make([]float64, len(spectrum))
	}
	copy(fe.prevSpectrum, spectrum)
	fe.hasPrev = true

	return feats, nil
}

// DownmixInterleaved folds interleaved multi-channel PCM to mono by
// averaging channels. Mono input is copied through; trailing partial
// sample groups are dropped.
func DownmixInterleaved(pcm []float64, channels int) []float64 {
	if channels <= 1 {
		out := make([]float64, len(pcm))
		copy(out, pcm)
		return out
	}

	frames := len(pcm) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += pcm[i*channels+ch]
		}
		out[i] = sum / float64(channels)
	}
	return out
}

func accumulate(dst *AudioFeatures, f AudioFeatures) {
	dst.Energy += f.Energy
	dst.Peak += f.Peak
	dst.CrestFactor += f.CrestFactor
	dst.SpectralCentroid += f.SpectralCentroid
	dst.SpectralSpread += f.SpectralSpread
	dst.SpectralSkewness += f.SpectralSkewness
	dst.SpectralKurtosis += f.SpectralKurtosis
	dst.SpectralRolloff += f.SpectralRolloff
	dst.SpectralFlatness += f.SpectralFlatness
	dst.SpectralFlux += f.SpectralFlux
	dst.HarmonicRatio += f.HarmonicRatio
	dst.Brightness += f.Brightness
	dst.BassEnergy += f.BassEnergy
	dst.MidEnergy += f.MidEnergy
	dst.TrebleEnergy += f.TrebleEnergy
	dst.Pitch += f.Pitch
	dst.PitchConfidence += f.PitchConfidence
	dst.EstimatedTempo += f.EstimatedTempo
}

func scale(f AudioFeatures, k float64) AudioFeatures {
	f.Energy *= k
	f.Peak *= k
	f.CrestFactor *= k
	f.SpectralCentroid *= k
	f.SpectralSpread *= k
	f.SpectralSkewness *= k
	f.SpectralKurtosis *= k
	f.SpectralRolloff *= k
	f.SpectralFlatness *= k
	f.SpectralFlux *= k
	f.HarmonicRatio *= k
	f.Brightness *= k
	f.BassEnergy *= k
	f.MidEnergy *= k
	f.TrebleEnergy *= k
	f.Pitch *= k
	f.PitchConfidence *= k
	f.EstimatedTempo *= k
	return f
}
