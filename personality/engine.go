package personality

import (
	"sync"
	"time"

	"github.com/RyanBlaney/sonido-mood/algorithms/common"
	"github.com/RyanBlaney/sonido-mood/logging"
)

// Type is a discrete behavioral archetype derived from listening
// interaction patterns
type Type string

const (
	Explorer   Type = "explorer"
	Curator    Type = "curator"
	Enthusiast Type = "enthusiast"
	Analyzer   Type = "analyzer"

	// Balanced is the initial type and the fallback when no archetype
	// scores decisively
	Balanced Type = "balanced"
)

// AllTypes returns every personality type in stable scoring order
func AllTypes() []Type {
	return []Type{Explorer, Curator, Enthusiast, Analyzer, Balanced}
}

func (t Type) String() string {
	return string(t)
}

// Recomputation gate and acceptance constants
const (
	minEventsForAnalysis = 10
	defaultCooldown      = time.Hour

	// acceptConfidence is the normalized score share a dominant type
	// needs before it replaces the current classification
	acceptConfidence = 0.3

	balancedBaseline = 0.25
)

// scores holds the four behavioral measures, each in [0,1]
type scores struct {
	completion  float64
	curation    float64
	exploration float64
	engagement  float64
}

// Engine aggregates interaction events into a personality classification.
//
// The event log is append-only; classification is a cached derived value
// recomputed only when the event count and cooldown gates pass. One engine
// serves one logical user session.
type Engine struct {
	mu sync.Mutex

	events   []InteractionEvent
	cooldown time.Duration

	current    Type
	confidence float64

	analyzed     bool
	lastAnalyzed time.Time

	// now is swappable for tests; the cooldown gate reads it
	now func() time.Time

	logger logging.Logger
}

// NewEngine creates a personality engine starting at Balanced
func NewEngine(cooldown time.Duration) *Engine {
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &Engine{
		cooldown: cooldown,
		current:  Balanced,
		now:      time.Now,
		logger:   logging.WithFields(logging.Fields{"component": "personality"}),
	}
}

// RecordEvent appends an event to the log and recomputes the
// classification when the gates allow it
func (e *Engine) RecordEvent(event InteractionEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = append(e.events, event)

	if e.shouldAnalyze() {
		e.analyze()
	}
}

// Current returns the classification and its confidence
func (e *Engine) Current() (Type, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current, e.confidence
}

// EventCount returns the number of recorded events
func (e *Engine) EventCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

// ForceAnalyze recomputes the classification immediately, bypassing the
// event-count and cooldown gates. A classification still needs at least
// one event.
func (e *Engine) ForceAnalyze() (Type, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.events) > 0 {
		e.analyze()
	}
	return e.current, e.confidence
}

// Reset clears the event log and reverts to Balanced
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = nil
	e.current = Balanced
	e.confidence = 0
	e.analyzed = false
	e.lastAnalyzed = time.Time{}
}

// SetClock overrides the time source used by the cooldown gate
func (e *Engine) SetClock(now func() time.Time) {
	if now == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// shouldAnalyze applies the recomputation gate. Caller holds the lock.
func (e *Engine) shouldAnalyze() bool {
	if len(e.events) < minEventsForAnalysis {
		return false
	}
	if !e.analyzed {
		return true
	}
	return e.now().Sub(e.lastAnalyzed) >= e.cooldown
}

// analyze recomputes the classification from the full event log. Caller
// holds the lock.
func (e *Engine) analyze() {
	s := e.behavioralScores()

	best := Balanced
	bestScore := 0.0
	total := 0.0
	for _, t := range AllTypes() {
		score := typeScore(t, s)
		total += score
		if score > bestScore {
			bestScore = score
			best = t
		}
	}

	conf := 0.0
	if total > 0 {
		conf = bestScore / total
	}

	e.analyzed = true
	e.lastAnalyzed = e.now()

	if conf <= acceptConfidence {
		e.logger.Debug("dominant type below acceptance, keeping current", logging.Fields{
			"candidate":  best.String(),
			"confidence": conf,
			"current":    e.current.String(),
		})
		return
	}

	if best != e.current {
		e.logger.Info("personality classification changed", logging.Fields{
			"from":       e.current.String(),
			"to":         best.String(),
			"confidence": conf,
		})
	}
	e.current = best
	e.confidence = conf
}

// behavioralScores derives the four behavioral measures from event
// counts. Caller holds the lock.
func (e *Engine) behavioralScores() scores {
	counts := make(map[EventKind]int)
	for _, ev := range e.events {
		counts[ev.Kind]++
	}
	total := float64(len(e.events))
	if total == 0 {
		return scores{}
	}

	completes := float64(counts[EventComplete])
	skips := float64(counts[EventSkip])
	likes := float64(counts[EventLike])
	adds := float64(counts[EventPlaylistAdd])
	searches := float64(counts[EventSearch])
	repeats := float64(counts[EventRepeat])

	completion := 0.0
	if completes+skips > 0 {
		completion = completes / (completes + skips)
	}

	return scores{
		completion:  completion,
		curation:    common.Clamp01((likes + adds) / total * 3),
		exploration: common.Clamp01((searches + 0.5*skips) / total * 3),
		engagement:  common.Clamp01((repeats + likes + completes) / total * 2),
	}
}

// typeScore maps the behavioral measures to one archetype through its
// fixed weight row
func typeScore(t Type, s scores) float64 {
	switch t {
	case Explorer:
		return 0.5*s.exploration + 0.2*s.engagement + 0.2*(1-s.completion) + 0.1*s.curation
	case Curator:
		return 0.5*s.curation + 0.2*s.completion + 0.2*s.engagement + 0.1*s.exploration
	case Enthusiast:
		return 0.4*s.engagement + 0.3*s.completion + 0.2*s.curation + 0.1*s.exploration
	case Analyzer:
		return 0.4*s.completion + 0.3*s.curation + 0.2*s.exploration + 0.1*s.engagement
	case Balanced:
		return balancedBaseline
	}
	return 0
}
