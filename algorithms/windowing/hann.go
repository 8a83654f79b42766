package windowing

import (
	"fmt"
	"math"
)

// Hann represents a Hann analysis window with precomputed coefficients.
// Coefficients are generated once per size so the per-frame cost is a
// single multiply per sample.
type Hann struct {
	size         int
	coefficients []float64
}

// NewHann creates a new Hann window of the given size
func NewHann(size int) *Hann {
	h := &Hann{size: size}
	h.generate()
	return h
}

func (h *Hann) generate() {
	h.coefficients = make([]float64, h.size)

	// A window of fewer than two points has no taper to compute
	if h.size < 2 {
		for i := range h.coefficients {
			h.coefficients[i] = 1.0
		}
		return
	}

	denominator := float64(h.size - 1)
	for i := 0; i < h.size; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
}

// ApplyInPlace applies the window to a signal in-place
func (h *Hann) ApplyInPlace(signal []float64) error {
	if len(signal) != h.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), h.size)
	}

	for i := range signal {
		signal[i] *= h.coefficients[i]
	}

	return nil
}

// ApplyTo multiplies src by the window into dst. dst must have the window
// size; src shorter than the window is treated as zero-padded, src longer
// is truncated.
func (h *Hann) ApplyTo(dst, src []float64) error {
	if len(dst) != h.size {
		return fmt.Errorf("destination length (%d) doesn't match window size (%d)", len(dst), h.size)
	}

	n := min(len(src), h.size)
	for i := 0; i < n; i++ {
		dst[i] = src[i] * h.coefficients[i]
	}
	for i := n; i < h.size; i++ {
		dst[i] = 0.0
	}

	return nil
}

// Coefficients returns a copy of the window coefficients
func (h *Hann) Coefficients() []float64 {
	coeffs := make([]float64, len(h.coefficients))
	copy(coeffs, h.coefficients)
	return coeffs
}

// Size returns the window size
func (h *Hann) Size() int {
	return h.size
}
