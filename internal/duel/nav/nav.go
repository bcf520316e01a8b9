// Package nav maintains the navigation cursor over discovered candidates and
// turns key commands into announcements and synthetic clicks.
package nav

import (
	"log"

	"github.com/quietpath/duelsense/internal/duel/announce"
	"github.com/quietpath/duelsense/internal/duel/discover"
	"github.com/quietpath/duelsense/internal/duel/phrase"
	"github.com/quietpath/duelsense/internal/duel/zone"
	"github.com/quietpath/duelsense/internal/scene"
)

// Mode is the logical navigation mode claiming the cursor. Higher values win
// arbitration: once target mode owns the cursor, battlefield and zone mode
// commands report unhandled instead of fighting over the same keypress.
type Mode int

const (
	// ModeZone is plain zone browsing.
	ModeZone Mode = iota
	// ModeBattlefield is row-based battlefield navigation.
	ModeBattlefield
	// ModeTarget is highlight/target selection.
	ModeTarget
)

// String renders the mode for logs.
func (m Mode) String() string {
	switch m {
	case ModeTarget:
		return "target"
	case ModeBattlefield:
		return "battlefield"
	default:
		return "zone"
	}
}

// Navigator is the cursor state machine. State is assumed stale the moment
// focus moves, so every command starts with a fresh discovery pass; the
// cursor index is re-clamped after each rescan.
//
// Owned and mutated only by main-thread key callbacks; no locking.
type Navigator struct {
	graph      scene.Graph
	discoverer *discover.Discoverer
	printer    *phrase.Printer
	sink       announce.Sink
	logger     *log.Logger

	items         []discover.Item
	index         int
	selectionMode bool
	owner         Mode
	claimed       bool
}

// New creates a navigator over the graph.
func New(graph scene.Graph, printer *phrase.Printer, sink announce.Sink) *Navigator {
	return &Navigator{
		graph:      graph,
		discoverer: discover.New(graph),
		printer:    printer,
		sink:       sink,
		logger:     log.Default(),
	}
}

// SetLogger overrides the diagnostics logger.
func (n *Navigator) SetLogger(logger *log.Logger) {
	if n == nil || logger == nil {
		return
	}
	n.logger = logger
}

// Refresh runs a discovery pass and re-clamps the cursor.
func (n *Navigator) Refresh() {
	if n == nil {
		return
	}
	result := n.discoverer.Discover()
	n.items = result.Items
	n.selectionMode = result.SelectionMode
	n.index = zone.ClampIndex(n.index, len(n.items))
}

// Current returns the candidate under the cursor.
func (n *Navigator) Current() (discover.Item, bool) {
	if n == nil || len(n.items) == 0 {
		return discover.Item{}, false
	}
	return n.items[n.index], true
}

// claim arbitrates cursor ownership. A lower-priority mode is refused while a
// higher one holds the cursor.
func (n *Navigator) claim(mode Mode) bool {
	if n.claimed && mode < n.owner {
		return false
	}
	n.owner = mode
	n.claimed = true
	return true
}

// Release hands the cursor back when the owning mode exits.
func (n *Navigator) Release(mode Mode) {
	if n == nil || !n.claimed || n.owner != mode {
		return
	}
	n.owner = ModeZone
	n.claimed = false
}

// Focus is the tab-equivalent: rediscover, claim, announce the current
// candidate. Reports false when refused by arbitration.
func (n *Navigator) Focus(mode Mode) bool {
	if n == nil {
		return false
	}
	if !n.claim(mode) {
		return false
	}
	n.Refresh()
	n.index = 0
	n.announceCursor("")
	return true
}

// Next moves the cursor forward, clamping at the end.
func (n *Navigator) Next(mode Mode) bool {
	return n.move(mode, 1)
}

// Previous moves the cursor backward, clamping at the start.
func (n *Navigator) Previous(mode Mode) bool {
	return n.move(mode, -1)
}

// First jumps to the first candidate.
func (n *Navigator) First(mode Mode) bool {
	return n.jump(mode, 0)
}

// Last jumps to the last candidate.
func (n *Navigator) Last(mode Mode) bool {
	return n.jump(mode, int(^uint(0)>>1))
}

func (n *Navigator) move(mode Mode, delta int) bool {
	if n == nil {
		return false
	}
	if !n.claim(mode) {
		return false
	}
	n.Refresh()
	if len(n.items) == 0 {
		n.announceEmpty()
		return true
	}
	next := zone.ClampIndex(n.index+delta, len(n.items))
	boundary := ""
	if next == n.index {
		// Clamped: announce the edge instead of silently failing.
		if delta > 0 {
			boundary = n.printer.F("End of list")
		} else {
			boundary = n.printer.F("Start of list")
		}
	}
	n.index = next
	n.announceCursor(boundary)
	return true
}

func (n *Navigator) jump(mode Mode, index int) bool {
	if n == nil {
		return false
	}
	if !n.claim(mode) {
		return false
	}
	n.Refresh()
	if len(n.items) == 0 {
		n.announceEmpty()
		return true
	}
	n.index = zone.ClampIndex(index, len(n.items))
	n.announceCursor("")
	return true
}

// Activate interacts with the candidate under the cursor. Hand and command
// zone cards use the two-step select-then-confirm protocol: the host's
// gesture disambiguation treats a single synthetic click on them as the start
// of a drag, so the confirm click at the fixed confirm point is what actually
// executes. All other candidates take one click.
func (n *Navigator) Activate(mode Mode) bool {
	if n == nil {
		return false
	}
	if !n.claim(mode) {
		return false
	}
	n.Refresh()
	item, ok := n.Current()
	if !ok {
		n.announceEmpty()
		return true
	}

	if err := n.graph.Click(item.Node); err != nil {
		n.logger.Printf("nav: click %s: %v", item.Name, err)
		return true
	}
	if twoStep(item) {
		if confirm := n.graph.ConfirmPoint(); confirm != nil {
			if err := n.graph.Click(confirm); err != nil {
				n.logger.Printf("nav: confirm click: %v", err)
			}
		}
	}
	return true
}

func twoStep(item discover.Item) bool {
	if item.Kind != discover.KindCard {
		return false
	}
	return item.Zone.Zone == zone.Hand || item.Zone.Zone == zone.Command
}

func (n *Navigator) announceEmpty() {
	n.sink.Announce(n.printer.F("Nothing selectable"), announce.PriorityNormal)
}

func (n *Navigator) announceCursor(prefix string) {
	item, ok := n.Current()
	if !ok {
		n.announceEmpty()
		return
	}
	text := phrase.Join(prefix, n.describe(item))
	if n.selectionMode {
		text = phrase.Join(text, n.printer.F("selection mode"))
	}
	n.sink.Announce(text, announce.PriorityNormal)
}

// describe renders one candidate. Per-kind wording stands in for the
// per-zone sub-navigators: the cursor itself never inspects host naming.
func (n *Navigator) describe(item discover.Item) string {
	name := item.Name
	if name == "" {
		name = n.printer.F("Unnamed")
	}
	switch item.Kind {
	case discover.KindPlayer:
		if item.Opponent {
			return phrase.Join(name, n.printer.F("opponent player"))
		}
		return phrase.Join(name, n.printer.F("you"))
	case discover.KindPrompt:
		return phrase.Join(name, n.printer.F("button"))
	default:
		fragments := []string{name, string(item.Zone.Zone)}
		if item.Opponent {
			fragments = append(fragments, n.printer.F("opponent's"))
		}
		return phrase.Join(fragments...)
	}
}
