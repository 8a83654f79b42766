package mood

// Mood is a discrete emotional classification tag assigned to audio
// content. The set is closed; scoring tables and keyword lookups are
// keyed by these values only.
type Mood string

const (
	Energetic   Mood = "energetic"
	Relaxed     Mood = "relaxed"
	Happy       Mood = "happy"
	Melancholic Mood = "melancholic"
	Focused     Mood = "focused"
	Angry       Mood = "angry"

	// Neutral is the initial state and the fallback when no mood scores
	// decisively
	Neutral Mood = "neutral"
)

// All returns every mood in stable scoring order
func All() []Mood {
	return []Mood{Energetic, Relaxed, Happy, Melancholic, Focused, Angry, Neutral}
}

// Valid reports whether m is one of the defined moods
func (m Mood) Valid() bool {
	switch m {
	case Energetic, Relaxed, Happy, Melancholic, Focused, Angry, Neutral:
		return true
	}
	return false
}

func (m Mood) String() string {
	return string(m)
}

// moodKeywords maps each mood to affinity keywords for external display
// and tag matching
var moodKeywords = map[Mood][]string{
	Energetic:   {"upbeat", "party", "dance", "workout", "pump", "hype"},
	Relaxed:     {"chill", "calm", "unwind", "ambient", "mellow", "lounge"},
	Happy:       {"feel-good", "sunny", "cheerful", "positive", "bright"},
	Melancholic: {"reflective", "wistful", "rainy", "introspective", "blue"},
	Focused:     {"study", "concentration", "instrumental", "deep work", "flow"},
	Angry:       {"aggressive", "intense", "heavy", "rage", "dark"},
	Neutral:     {"background", "everyday", "mixed"},
}

// Keywords returns the static affinity keywords for a mood. The returned
// slice is a copy.
func (m Mood) Keywords() []string {
	kw := moodKeywords[m]
	out := make([]string, len(kw))
	copy(out, kw)
	return out
}
