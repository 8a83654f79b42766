package spectral

// Fundamental search range for harmonic analysis, in Hz
const (
	FundamentalMinHz = 80.0
	FundamentalMaxHz = 1000.0
)

// HarmonicRatio measures how much of a spectrum's energy sits at integer
// multiples of an estimated fundamental. A bin counts as harmonic when it
// lies within two bin-widths of an exact multiple.
type HarmonicRatio struct {
	sampleRate int
}

// NewHarmonicRatio creates a new harmonic ratio calculator
func NewHarmonicRatio(sampleRate int) *HarmonicRatio {
	return &HarmonicRatio{sampleRate: sampleRate}
}

// Compute returns the harmonic energy share in [0,1]. A spectrum without a
// usable fundamental peak (or without energy) yields 0.
func (hr *HarmonicRatio) Compute(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0
	}

	binWidth := float64(hr.sampleRate) / float64(2*len(spectrum))
	if binWidth == 0 {
		return 0
	}

	fundamental := hr.findFundamental(spectrum, binWidth)
	if fundamental == 0 {
		return 0
	}

	nyquist := float64(hr.sampleRate) / 2.0
	tolerance := 2.0 * binWidth

	var harmonic, total float64
	for i, mag := range spectrum {
		energy := mag * mag
		total += energy

		freq := float64(i) * binWidth
		// Distance to the nearest integer multiple of the fundamental
		k := freq / fundamental
		nearest := float64(int(k + 0.5))
		if nearest < 1 {
			nearest = 1
		}
		harmonicFreq := nearest * fundamental
		if harmonicFreq <= nyquist && abs(freq-harmonicFreq) <= tolerance {
			harmonic += energy
		}
	}

	if total == 0 {
		return 0
	}

	return harmonic / total
}

// findFundamental picks the strongest bin inside the fundamental search
// range and returns its frequency, or 0 when the range holds no energy
func (hr *HarmonicRatio) findFundamental(spectrum []float64, binWidth float64) float64 {
	minBin := int(FundamentalMinHz / binWidth)
	maxBin := int(FundamentalMaxHz / binWidth)
	if minBin < 1 {
		minBin = 1
	}
	if maxBin >= len(spectrum) {
		maxBin = len(spectrum) - 1
	}
	if minBin > maxBin {
		return 0
	}

	bestBin := 0
	bestMag := 0.0
	for i := minBin; i <= maxBin; i++ {
		if spectrum[i] > bestMag {
			bestMag = spectrum[i]
			bestBin = i
		}
	}

	if bestBin == 0 || bestMag <= nearZeroMagnitude {
		return 0
	}

	return float64(bestBin) * binWidth
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
