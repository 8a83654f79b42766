package recommend

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RyanBlaney/sonido-mood/mood"
)

// MixtapeEntry is one selected song with its sequence position
type MixtapeEntry struct {
	Position int     `json:"position"`
	Song     Song    `json:"song"`
	Score    float64 `json:"score"`
}

// Mixtape is an ordered, mood-tagged selection of recommended songs
type Mixtape struct {
	ID        string         `json:"id"`
	Mood      mood.Mood      `json:"mood"`
	CreatedAt time.Time      `json:"created_at"`
	Entries   []MixtapeEntry `json:"entries"`
}

// BuildMixtape runs a recommendation and packages the result as a
// mixtape: sequential positions starting at 1 and the target mood as tag
func (e *Engine) BuildMixtape(songs []Song, target mood.Mood, limit int) (*Mixtape, error) {
	ranked := e.Recommend(songs, target, limit)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("build mixtape: no candidates ranked for mood %q", target)
	}

	entries := make([]MixtapeEntry, len(ranked))
	for i, r := range ranked {
		entries[i] = MixtapeEntry{
			Position: i + 1,
			Song:     r.Song,
			Score:    r.Score,
		}
	}

	return &Mixtape{
		ID:        uuid.NewString(),
		Mood:      target,
		CreatedAt: time.Now(),
		Entries:   entries,
	}, nil
}
