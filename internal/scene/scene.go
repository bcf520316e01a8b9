// Package scene defines the boundary contract with the host's live object
// graph. The real implementation lives inside the host process; everything
// above this package depends only on these interfaces, never on host naming
// conventions or reflection details.
//
// The surface is read-only except for one write primitive, Click.
package scene

import "github.com/quietpath/duelsense/internal/duel/zone"

// Marker is a host-owned visual flag on a live object indicating current
// interactive eligibility.
type Marker string

const (
	// MarkerEligible flags an object the player may currently interact with.
	MarkerEligible Marker = "eligible"
	// MarkerSelected flags an object already picked in selection mode.
	// Selected objects lose MarkerEligible, so both passes are needed to
	// keep them navigable.
	MarkerSelected Marker = "selected"
)

// Node is one live object in the host scene graph. Handles go stale whenever
// the host rewrites its UI; consumers must rediscover rather than cache.
type Node interface {
	// ID is a stable identity for deduplication within one scan.
	ID() string
	// Name is the display name, empty when the host has none.
	Name() string
	// Parent returns the enclosing node, nil at the root.
	Parent() Node
	// Children enumerates direct children.
	Children() []Node
	// Active reports whether the object is live and visually enabled.
	Active() bool
	// HasMarker reports whether the host currently flags the object.
	HasMarker(Marker) bool
	// Text is the label text for controls, empty otherwise.
	Text() string
	// Position is the screen position, used only for ordering.
	Position() (x, y float64)
}

// PlayerTarget is a player pseudo-item eligible for targeting.
type PlayerTarget struct {
	Node     Node
	Opponent bool
}

// Graph is the read-only query surface over the live scene, plus the single
// click primitive.
type Graph interface {
	// Marked enumerates live objects currently carrying the marker.
	Marked(Marker) []Node
	// IsCard reports whether the node is a selectable card object. The
	// host implementation owns the naming heuristics behind this.
	IsCard(Node) bool
	// ZoneOf classifies a card node into its zone bucket.
	ZoneOf(Node) (zone.Key, bool)
	// PlayerTargets returns player pseudo-targets, at most two. The host
	// signals player eligibility through a different mechanism than card
	// markers.
	PlayerTargets() []PlayerTarget
	// PromptControls returns the primary and secondary prompt buttons,
	// nil when absent.
	PromptControls() (primary, secondary Node)
	// SubmitControl returns the primary submit control, nil when absent.
	SubmitControl() Node
	// ConfirmPoint returns the fixed confirm location used by two-step
	// activation, nil when absent.
	ConfirmPoint() Node
	// Click synthesizes a pointer click on the node. The only permitted
	// mutation of host state.
	Click(Node) error
}

// CardAncestor walks n's ancestor chain for the nearest enclosing node the
// graph classifies as a selectable card. Markers sit on decoration children,
// not on the card object itself.
func CardAncestor(g Graph, n Node) (Node, bool) {
	if g == nil {
		return nil, false
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		if g.IsCard(cur) {
			return cur, true
		}
	}
	return nil, false
}
