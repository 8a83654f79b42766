package mood

import (
	"maps"
	"sync"
	"time"

	"github.com/RyanBlaney/sonido-mood/buffer"
	"github.com/RyanBlaney/sonido-mood/extraction"
	"github.com/RyanBlaney/sonido-mood/logging"
)

// Engine tuning constants
const (
	// confidenceThreshold is the minimum normalized confidence a winning
	// mood needs before the engine considers switching to it
	confidenceThreshold = 0.15

	// stabilityFactor damps mood flapping: a challenger must beat the
	// current confidence scaled by this factor
	stabilityFactor = 0.7

	// timeOfDayBias is added to moods favored by the current daypart
	timeOfDayBias = 0.08

	// historyCapacity bounds the recent-mood queue
	historyCapacity = 20

	// distributionDecay and reinforcement govern the decaying mood
	// distribution: every update multiplies all entries by the decay and
	// adds confidence*reinforcement to the winner before renormalizing
	distributionDecay = 0.95
	reinforcement     = 0.5
)

// ChangeCallback is invoked after the engine switches to a new mood
type ChangeCallback func(previous, current Mood, confidence float64)

// Config tunes engine behavior. Zero values fall back to the defaults
// above.
type Config struct {
	ConfidenceThreshold float64 `json:"confidence_threshold" mapstructure:"confidence_threshold"`
	StabilityFactor     float64 `json:"stability_factor" mapstructure:"stability_factor"`
	HistorySize         int     `json:"history_size" mapstructure:"history_size"`
}

// Engine classifies feature snapshots into moods and smooths the result
// over time.
//
// One engine serves one logical session. All state lives behind the
// engine's mutex; snapshots returned by accessors are copies.
type Engine struct {
	mu sync.Mutex

	threshold float64
	stability float64

	current      Mood
	confidence   float64
	history      *buffer.RingHistory[Mood]
	distribution map[Mood]float64

	callbacks []ChangeCallback

	// now is swappable for tests; time-of-day bias reads it
	now func() time.Time

	logger logging.Logger
}

// NewEngine creates a mood engine starting at Neutral with zero confidence
func NewEngine(cfg Config) *Engine {
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = confidenceThreshold
	}
	if cfg.StabilityFactor <= 0 {
		cfg.StabilityFactor = stabilityFactor
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = historyCapacity
	}

	return &Engine{
		threshold:    cfg.ConfidenceThreshold,
		stability:    cfg.StabilityFactor,
		current:      Neutral,
		history:      buffer.NewRingHistory[Mood](cfg.HistorySize),
		distribution: make(map[Mood]float64),
		now:          time.Now,
		logger:       logging.WithFields(logging.Fields{"component": "mood"}),
	}
}

// DetectMood scores a feature snapshot against every mood and applies the
// transition rule. It returns the engine's (possibly unchanged) current
// mood and confidence.
func (e *Engine) DetectMood(features extraction.AudioFeatures) (Mood, float64) {
	e.mu.Lock()

	favored := favoredMoods(e.now())

	best := Neutral
	bestScore := 0.0
	total := 0.0
	for _, m := range All() {
		score := Score(m, features)
		if favored[m] {
			score += timeOfDayBias
		}
		total += score
		if score > bestScore {
			bestScore = score
			best = m
		}
	}

	conf := 0.0
	if total > 0 {
		conf = bestScore / total
	}

	var cb []ChangeCallback
	var prev Mood

	switch {
	case best != e.current && conf >= e.threshold &&
		(conf > e.confidence*e.stability || e.confidence == 0):
		prev = e.current
		e.current = best
		e.confidence = conf
		e.recordUpdate(best, conf)
		cb = append([]ChangeCallback(nil), e.callbacks...)

		e.logger.Debug("mood changed", logging.Fields{
			"from":       prev.String(),
			"to":         best.String(),
			"confidence": conf,
		})

	case best == e.current && conf > e.confidence:
		e.confidence = conf
		e.recordUpdate(best, conf)
	}

	current, confidence := e.current, e.confidence
	e.mu.Unlock()

	for _, fn := range cb {
		fn(prev, current, confidence)
	}

	return current, confidence
}

// recordUpdate pushes the winner into history and folds it into the
// decaying distribution. Caller holds the lock.
func (e *Engine) recordUpdate(winner Mood, conf float64) {
	e.history.Push(winner)

	for m := range e.distribution {
		e.distribution[m] *= distributionDecay
	}
	e.distribution[winner] += conf * reinforcement

	sum := 0.0
	for _, v := range e.distribution {
		sum += v
	}
	if sum > 0 {
		for m := range e.distribution {
			e.distribution[m] /= sum
		}
	}
}

// Current returns the engine's mood and confidence
func (e *Engine) Current() (Mood, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current, e.confidence
}

// Distribution returns a copy of the decaying mood distribution
func (e *Engine) Distribution() map[Mood]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[Mood]float64, len(e.distribution))
	maps.Copy(out, e.distribution)
	return out
}

// History returns recent winning moods ordered oldest to newest
func (e *Engine) History() []Mood {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Snapshot()
}

// OnChange registers a callback fired whenever the current mood switches.
// Callbacks run outside the engine lock on the detecting goroutine.
func (e *Engine) OnChange(fn ChangeCallback) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callbacks = append(e.callbacks, fn)
}

// Reset returns the engine to Neutral with zero confidence, empty history
// and an empty distribution
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.current = Neutral
	e.confidence = 0
	e.history.Clear()
	e.distribution = make(map[Mood]float64)
}

// SetClock overrides the time source used for the time-of-day bias
func (e *Engine) SetClock(now func() time.Time) {
	if now == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// favoredMoods maps the hour of day to the disjoint set of moods that
// receive the time-of-day bias
func favoredMoods(t time.Time) map[Mood]bool {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 12:
		return map[Mood]bool{Energetic: true, Happy: true}
	case hour >= 12 && hour < 17:
		return map[Mood]bool{Focused: true}
	case hour >= 17 && hour < 22:
		return map[Mood]bool{Relaxed: true}
	default:
		return map[Mood]bool{Melancholic: true}
	}
}
