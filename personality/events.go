package personality

import "time"

// EventKind identifies one kind of listening interaction
type EventKind string

const (
	EventPlay        EventKind = "play"
	EventSkip        EventKind = "skip"
	EventComplete    EventKind = "complete"
	EventLike        EventKind = "like"
	EventPlaylistAdd EventKind = "playlist_add"
	EventSearch      EventKind = "search"
	EventRepeat      EventKind = "repeat"
)

// InteractionEvent is an immutable record of one user interaction.
// OldValue/NewValue carry optional context such as a volume change or a
// track swap; most events leave them empty.
type InteractionEvent struct {
	Kind      EventKind `json:"kind"`
	OldValue  string    `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an interaction event stamped with the current time
func NewEvent(kind EventKind) InteractionEvent {
	return InteractionEvent{Kind: kind, Timestamp: time.Now()}
}
