// Package zone defines the named buckets of card-like items in a duel and
// point-in-time snapshots of their contents.
package zone

import "strings"

// Zone identifies a named bucket of cards in the duel state.
type Zone string

const (
	// Hand holds cards a player can cast or discard.
	Hand Zone = "hand"
	// Battlefield holds permanents in play. The host exposes it as a single
	// shared bucket; per-card ownership is not derivable from its count.
	Battlefield Zone = "battlefield"
	// Stack holds spells and abilities waiting to resolve.
	Stack Zone = "stack"
	// Graveyard holds a player's discarded and destroyed cards.
	Graveyard Zone = "graveyard"
	// Exile holds cards removed from the game.
	Exile Zone = "exile"
	// Library is a player's face-down deck.
	Library Zone = "library"
	// Command holds companion and emblem style cards.
	Command Zone = "command"
)

// Owner identifies whose bucket a zone key refers to.
type Owner string

const (
	// OwnerLocal marks the local player's side.
	OwnerLocal Owner = "local"
	// OwnerOpponent marks the opponent's side.
	OwnerOpponent Owner = "opponent"
	// OwnerShared marks a bucket the host does not split by player.
	OwnerShared Owner = "shared"
)

// IsValid reports whether the zone is one of the known buckets.
func (z Zone) IsValid() bool {
	switch z {
	case Hand, Battlefield, Stack, Graveyard, Exile, Library, Command:
		return true
	}
	return false
}

// IsValid reports whether the owner tag is usable.
func (o Owner) IsValid() bool {
	switch o {
	case OwnerLocal, OwnerOpponent, OwnerShared:
		return true
	}
	return false
}

// Key identifies one zone bucket: zone name qualified by owner.
type Key struct {
	Zone  Zone
	Owner Owner
}

// String renders the key for logs and telemetry.
func (k Key) String() string {
	return string(k.Owner) + "." + string(k.Zone)
}

// Hidden reports whether the bucket's contents are hidden information.
// Hidden zones may be narrated by count only, never by card identity.
func (k Key) Hidden() bool {
	switch k.Zone {
	case Library:
		return true
	case Hand:
		return k.Owner == OwnerOpponent
	}
	return false
}

// ParseKey parses "owner.zone" produced by String.
func ParseKey(s string) (Key, bool) {
	owner, z, ok := strings.Cut(s, ".")
	if !ok {
		return Key{}, false
	}
	key := Key{Zone: Zone(z), Owner: Owner(owner)}
	if !key.Zone.IsValid() || !key.Owner.IsValid() {
		return Key{}, false
	}
	return key, true
}

// Snapshot captures one bucket at a point in time. Snapshots are rebuilt
// wholesale on every discovery pass; they are never patched incrementally.
type Snapshot struct {
	Key   Key
	Count int
	// Items holds display names for visible zones, in discovery order.
	// Hidden zones keep Items empty regardless of what the scan saw.
	Items []string
}

// ClampIndex clamps i into [0, n). Returns 0 when n <= 0.
func ClampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
