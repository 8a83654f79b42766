package spectral

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/RyanBlaney/sonido-mood/algorithms/windowing"
)

// Transform converts fixed-size sample frames into magnitude spectra.
//
// The transform is stateful on purpose: the Hann window is generated once
// per instantiation and the windowed-frame scratch buffer is reused for
// every frame, so the hot path allocates nothing beyond what the FFT
// itself needs. Magnitudes are scaled by 2/size so results are comparable
// across transforms of different sizes.
type Transform struct {
	size       int
	sampleRate int
	window     *windowing.Hann
	scratch    []float64
	norm       float64
}

// NewTransform creates a transform for frames of the given size.
// The size must be a power of two.
func NewTransform(size, sampleRate int) (*Transform, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("transform size must be a power of two >= 2, got %d", size)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	return &Transform{
		size:       size,
		sampleRate: sampleRate,
		window:     windowing.NewHann(size),
		scratch:    make([]float64, size),
		norm:       2.0 / float64(size),
	}, nil
}

// Magnitudes computes the magnitude spectrum of a frame into dst and
// returns it. dst is reused when it has the right length, otherwise a new
// slice of size/2 bins is allocated.
//
// Frames shorter than the transform size are zero-padded, longer frames
// are truncated. That boundary handling is silent: callers feeding
// odd-sized tails get a spectrum computed from what fit in the window.
func (t *Transform) Magnitudes(frame []float64, dst []float64) ([]float64, error) {
	if len(frame) == 0 {
		return nil, fmt.Errorf("empty frame")
	}

	if err := t.window.ApplyTo(t.scratch, frame); err != nil {
		return nil, err
	}

	spectrum := fft.FFTReal(t.scratch)

	bins := t.size / 2
	if len(dst) != bins {
		dst = make([]float64, bins)
	}
	for i := 0; i < bins; i++ {
		dst[i] = cmplx.Abs(spectrum[i]) * t.norm
	}

	return dst, nil
}

// Size returns the transform frame size
func (t *Transform) Size() int {
	return t.size
}

// Bins returns the number of magnitude bins produced per frame
func (t *Transform) Bins() int {
	return t.size / 2
}

// BinWidth returns the frequency width of one bin in Hz
func (t *Transform) BinWidth() float64 {
	return float64(t.sampleRate) / float64(t.size)
}

// SampleRate returns the sample rate the transform was built for
func (t *Transform) SampleRate() int {
	return t.sampleRate
}
