package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-mood/extraction"
	"github.com/RyanBlaney/sonido-mood/mood"
	"github.com/RyanBlaney/sonido-mood/personality"
)

func testSongs() []Song {
	return []Song{
		{
			ID: "song-1", Title: "Slow Drift", Artist: "A",
			Features: extraction.AudioFeatures{
				Energy: 0.05, EstimatedTempo: 70, BassEnergy: 0.2,
				Brightness: 0.3, SpectralFlux: 0.01,
			},
		},
		{
			ID: "song-2", Title: "Floor Filler", Artist: "B",
			Features: extraction.AudioFeatures{
				Energy: 0.4, EstimatedTempo: 128, BassEnergy: 0.6,
				Brightness: 0.7, HarmonicRatio: 0.6, SpectralFlux: 0.08,
			},
		},
		{
			ID: "song-3", Title: "Mid Tempo", Artist: "C",
			Features: extraction.AudioFeatures{
				Energy: 0.2, EstimatedTempo: 110, BassEnergy: 0.4,
				Brightness: 0.5, HarmonicRatio: 0.4, SpectralFlux: 0.04,
			},
		},
	}
}

func TestRecommendLimitAndOrder(t *testing.T) {
	e := NewEngine(nil, 1)

	ranked := e.Recommend(testSongs(), mood.Energetic, 2)
	require.Len(t, ranked, 2)

	assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, "song-2", ranked[0].Song.ID)
}

func TestRecommendEmptyInputs(t *testing.T) {
	e := NewEngine(nil, 1)

	assert.Nil(t, e.Recommend(nil, mood.Energetic, 5))
	assert.Nil(t, e.Recommend(testSongs(), mood.Energetic, 0))
}

func TestRecommendCacheHitIsDeterministic(t *testing.T) {
	e := NewEngine(nil, 1)

	first := e.Recommend(testSongs(), mood.Energetic, 3)
	second := e.Recommend(testSongs(), mood.Energetic, 3)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.CacheSize())
}

func TestRecommendCachePerMood(t *testing.T) {
	e := NewEngine(nil, 1)

	e.Recommend(testSongs(), mood.Energetic, 3)
	e.Recommend(testSongs(), mood.Relaxed, 3)

	assert.Equal(t, 2, e.CacheSize())

	e.Invalidate()
	assert.Zero(t, e.CacheSize())
}

func TestRecommendExplorerJitterIsCached(t *testing.T) {
	p := personality.NewEngine(0)
	for i := 0; i < 10; i++ {
		p.RecordEvent(personality.NewEvent(personality.EventSearch))
	}
	ptype, _ := p.Current()
	require.Equal(t, personality.Explorer, ptype)

	e := NewEngine(p, 42)

	// The jitter is random, but the cache makes repeat calls identical
	first := e.Recommend(testSongs(), mood.Energetic, 3)
	second := e.Recommend(testSongs(), mood.Energetic, 3)
	assert.Equal(t, first, second)
}

func TestRecommendEnthusiastBoost(t *testing.T) {
	p := personality.NewEngine(0)
	for i := 0; i < 5; i++ {
		p.RecordEvent(personality.NewEvent(personality.EventComplete))
		p.RecordEvent(personality.NewEvent(personality.EventRepeat))
	}
	ptype, _ := p.Current()
	require.Equal(t, personality.Enthusiast, ptype)

	baseline := NewEngine(nil, 1).Recommend(testSongs(), mood.Energetic, 3)
	boosted := NewEngine(p, 1).Recommend(testSongs(), mood.Energetic, 3)

	// song-2 is the only candidate above the high-energy bar
	var base, boost float64
	for _, r := range baseline {
		if r.Song.ID == "song-2" {
			base = r.Score
		}
	}
	for _, r := range boosted {
		if r.Song.ID == "song-2" {
			boost = r.Score
		}
	}
	assert.InDelta(t, base*1.15, boost, 1e-9)
}

func TestBuildMixtape(t *testing.T) {
	e := NewEngine(nil, 1)

	tape, err := e.BuildMixtape(testSongs(), mood.Energetic, 2)
	require.NoError(t, err)

	assert.NotEmpty(t, tape.ID)
	assert.Equal(t, mood.Energetic, tape.Mood)
	require.Len(t, tape.Entries, 2)

	for i, entry := range tape.Entries {
		assert.Equal(t, i+1, entry.Position)
	}
	assert.GreaterOrEqual(t, tape.Entries[0].Score, tape.Entries[1].Score)
}

func TestBuildMixtapeNoCandidates(t *testing.T) {
	e := NewEngine(nil, 1)

	_, err := e.BuildMixtape(nil, mood.Energetic, 5)
	assert.Error(t, err)
}
