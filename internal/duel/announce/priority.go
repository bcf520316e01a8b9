// Package announce synthesizes narration from classified host events and zone
// count changes, filters it for privacy and duplicates, and hands it to the
// narration sink.
package announce

import "github.com/quietpath/duelsense/internal/duel/event"

// Priority orders announcements for the transport layer. The sink is
// responsible for honoring it, e.g. by interrupting lower-priority speech.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityImmediate
)

// String renders the priority for transcripts and logs.
func (p Priority) String() string {
	switch p {
	case PriorityImmediate:
		return "immediate"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Sink is the outbound narration boundary: fire-and-forget, no backpressure.
type Sink interface {
	Announce(text string, priority Priority)
	// AnnounceInterrupt speaks immediately, cutting off queued speech.
	AnnounceInterrupt(text string)
}

// priorityFor is the fixed category to priority map.
func priorityFor(category event.Category) Priority {
	switch category {
	case event.CategoryGameEnd:
		return PriorityImmediate
	case event.CategoryTurnChanged,
		event.CategoryLifeChanged,
		event.CategoryDamage,
		event.CategoryCombatDamage:
		return PriorityHigh
	case event.CategoryZoneTransfer,
		event.CategoryReveal:
		return PriorityNormal
	default:
		return PriorityLow
	}
}
