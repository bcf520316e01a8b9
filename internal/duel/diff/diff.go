// Package diff infers domain changes from before/after counts of a zone.
//
// The host fires many redundant state updates per action; the differ keeps the
// last observed count per zone key and turns only the signed deltas into
// changes. It is the fallback narration path for actions the richer event
// stream does not attribute: draws, plays, deaths, and bounces show up here as
// count movement even when no explicit event arrives.
package diff

import (
	"time"

	"github.com/quietpath/duelsense/internal/duel/zone"
)

// Kind classifies one count movement.
type Kind string

const (
	// KindDrew records cards added to a hand.
	KindDrew Kind = "drew"
	// KindOpponentPlayed records cards leaving the opponent's hand. Count
	// alone cannot distinguish a cast from a discard; the wording stays
	// deliberately vague.
	KindOpponentPlayed Kind = "opponent_played"
	// KindEnteredBattlefield records permanents entering play.
	KindEnteredBattlefield Kind = "entered_battlefield"
	// KindLeftBattlefield records permanents leaving play. Ownership of
	// which permanent left is not inferable from a shared-zone count.
	KindLeftBattlefield Kind = "left_battlefield"
	// KindPutInGraveyard records cards added to a graveyard.
	KindPutInGraveyard Kind = "put_in_graveyard"
	// KindLeftGraveyard records cards leaving a graveyard (recursion or
	// shuffle effects).
	KindLeftGraveyard Kind = "left_graveyard"
	// KindExiled records cards added to exile.
	KindExiled Kind = "exiled"
	// KindEnteredCommand records cards entering the command zone.
	KindEnteredCommand Kind = "entered_command"
	// KindStackGrew records new objects on the stack. Narration of the new
	// top object is deferred a few ticks so the cast animation can settle.
	KindStackGrew Kind = "stack_grew"
	// KindSpellResolved records objects leaving the stack.
	KindSpellResolved Kind = "spell_resolved"
)

// Change is one inferred domain change for a zone key.
type Change struct {
	Key   zone.Key
	Kind  Kind
	Count int // number of cards that moved, always positive
}

// Differ tracks last observed counts per zone key.
//
// Owned and mutated by a single main-thread caller; no locking.
type Differ struct {
	counts     map[zone.Key]int
	resolvedAt time.Time
	clock      func() time.Time
}

// New creates a differ using the wall clock.
func New() *Differ {
	return NewWithClock(time.Now)
}

// NewWithClock creates a differ with an injectable clock for tests.
func NewWithClock(clock func() time.Time) *Differ {
	if clock == nil {
		clock = time.Now
	}
	return &Differ{
		counts: map[zone.Key]int{},
		clock:  clock,
	}
}

// Observe records a new count for key and returns the inferred changes.
//
// The first observation of a key seeds the snapshot silently: there is no
// previous count to diff against, so it is never treated as a change. A zero
// delta returns nil, which suppresses the host's redundant update noise.
func (d *Differ) Observe(key zone.Key, count int) []Change {
	if d == nil || !key.Zone.IsValid() {
		return nil
	}
	prev, seen := d.counts[key]
	d.counts[key] = count
	if !seen || count == prev {
		return nil
	}
	delta := count - prev

	change := Change{Key: key}
	switch key.Zone {
	case zone.Hand:
		if delta > 0 {
			change.Kind = KindDrew
			change.Count = delta
		} else if key.Owner == zone.OwnerOpponent {
			change.Kind = KindOpponentPlayed
			change.Count = -delta
		} else {
			// The local player's own plays are narrated by the richer
			// event stream; the count drop would only duplicate them.
			return nil
		}
	case zone.Battlefield:
		if delta > 0 {
			change.Kind = KindEnteredBattlefield
			change.Count = delta
		} else {
			change.Kind = KindLeftBattlefield
			change.Count = -delta
		}
	case zone.Graveyard:
		if delta > 0 {
			change.Kind = KindPutInGraveyard
			change.Count = delta
		} else {
			change.Kind = KindLeftGraveyard
			change.Count = -delta
		}
	case zone.Exile:
		if delta < 0 {
			return nil
		}
		change.Kind = KindExiled
		change.Count = delta
	case zone.Command:
		if delta < 0 {
			return nil
		}
		change.Kind = KindEnteredCommand
		change.Count = delta
	case zone.Stack:
		if delta > 0 {
			change.Kind = KindStackGrew
			change.Count = delta
		} else {
			change.Kind = KindSpellResolved
			change.Count = -delta
			d.resolvedAt = d.clock()
		}
	case zone.Library:
		// Library movement always accompanies a draw, mill, or shuffle
		// that is narrated elsewhere; the count alone is noise.
		return nil
	default:
		return nil
	}
	return []Change{change}
}

// ResolvedWithin reports whether a spell resolved within the given window.
// The navigator uses this grace window to skip interaction prompts that the
// host flashes right after a resolution.
func (d *Differ) ResolvedWithin(window time.Duration) bool {
	if d == nil || d.resolvedAt.IsZero() {
		return false
	}
	return d.clock().Sub(d.resolvedAt) < window
}

// Reset forgets all observed counts, e.g. when a new duel starts.
func (d *Differ) Reset() {
	if d == nil {
		return
	}
	d.counts = map[zone.Key]int{}
	d.resolvedAt = time.Time{}
}
