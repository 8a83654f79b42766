package recommend

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/RyanBlaney/sonido-mood/extraction"
	"github.com/RyanBlaney/sonido-mood/logging"
	"github.com/RyanBlaney/sonido-mood/mood"
	"github.com/RyanBlaney/sonido-mood/personality"
)

// Cache and multiplier constants
const (
	cacheCapacity = 50

	// explorerJitter is the half-width of the random score jitter applied
	// for exploration-leaning listeners
	explorerJitter = 0.15

	// enthusiastBoost multiplies high-energy tracks for enthusiast
	// listeners
	enthusiastBoost = 1.15

	// highEnergyRMS is the raw RMS above which a track counts as
	// high-energy for the enthusiast boost
	highEnergyRMS = 0.2
)

// Song is one recommendation candidate: an identity plus the analyzed
// features it is ranked by
type Song struct {
	ID       string                   `json:"id"`
	Title    string                   `json:"title"`
	Artist   string                   `json:"artist"`
	Features extraction.AudioFeatures `json:"features"`
}

// RankedSong pairs a candidate with its final match score
type RankedSong struct {
	Song  Song    `json:"song"`
	Score float64 `json:"score"`
}

// Engine scores and ranks candidate songs against a target mood, weighted
// by the listener's personality classification.
//
// Results are cached by mood and candidate count; the cache is cleared in
// bulk at capacity and on explicit invalidation. Because the explorer
// multiplier is random, the cache is also what makes repeated identical
// calls return identical orderings.
type Engine struct {
	mu sync.Mutex

	personality *personality.Engine
	cache       map[string][]RankedSong
	rng         *rand.Rand

	logger logging.Logger
}

// NewEngine creates a recommendation engine. The personality engine may
// be nil, in which case every listener ranks as Balanced.
func NewEngine(p *personality.Engine, seed int64) *Engine {
	return &Engine{
		personality: p,
		cache:       make(map[string][]RankedSong),
		rng:         rand.New(rand.NewSource(seed)),
		logger:      logging.WithFields(logging.Fields{"component": "recommend"}),
	}
}

// Recommend ranks songs against the target mood and returns at most limit
// results in descending score order. Ties break on song ID so ordering is
// reproducible.
func (e *Engine) Recommend(songs []Song, target mood.Mood, limit int) []RankedSong {
	if len(songs) == 0 || limit <= 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	key := cacheKey(target, len(songs))
	ranked, hit := e.cache[key]
	if !hit {
		ranked = e.rank(songs, target)

		if len(e.cache) >= cacheCapacity {
			e.logger.Debug("result cache at capacity, clearing", logging.Fields{
				"entries": len(e.cache),
			})
			e.cache = make(map[string][]RankedSong)
		}
		e.cache[key] = ranked
	}

	n := min(limit, len(ranked))
	out := make([]RankedSong, n)
	copy(out, ranked[:n])
	return out
}

// Invalidate clears the result cache. Call on mood or personality
// changes.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string][]RankedSong)
}

// CacheSize returns the number of cached result sets
func (e *Engine) CacheSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cache)
}

// rank scores every candidate and sorts descending. Caller holds the
// lock.
func (e *Engine) rank(songs []Song, target mood.Mood) []RankedSong {
	ptype := personality.Balanced
	if e.personality != nil {
		ptype, _ = e.personality.Current()
	}

	ranked := make([]RankedSong, len(songs))
	for i, song := range songs {
		score := mood.Score(target, song.Features) * e.multiplier(ptype, song)
		ranked[i] = RankedSong{Song: song, Score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Song.ID < ranked[j].Song.ID
	})

	return ranked
}

// multiplier applies the personality-dependent score adjustment. Caller
// holds the lock; the explorer path consumes the engine's rng.
func (e *Engine) multiplier(ptype personality.Type, song Song) float64 {
	switch ptype {
	case personality.Explorer:
		return 1.0 + (e.rng.Float64()*2-1)*explorerJitter
	case personality.Enthusiast:
		if song.Features.Energy > highEnergyRMS {
			return enthusiastBoost
		}
	}
	return 1.0
}

func cacheKey(target mood.Mood, count int) string {
	return fmt.Sprintf("%s:%d", target, count)
}
