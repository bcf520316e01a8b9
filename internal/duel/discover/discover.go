// Package discover scans the live scene graph for navigable candidates.
//
// Every invocation is a full fresh pass: the host rewrites its highlight
// markers constantly, so incremental tracking would be more error-prone than
// rescanning. Stale handles fall away naturally because each pass starts from
// the live graph.
package discover

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/quietpath/duelsense/internal/duel/zone"
	"github.com/quietpath/duelsense/internal/scene"
)

// Kind tags what a discovered item is.
type Kind string

const (
	// KindCard is a selectable card resolved from a highlight marker.
	KindCard Kind = "card"
	// KindPlayer is a player pseudo-item resolved from the typed lookup.
	KindPlayer Kind = "player"
	// KindPrompt is a prompt-button pseudo-item, the zero-candidate fallback.
	KindPrompt Kind = "prompt"
)

// Item is one navigable candidate. Identity is the live node handle; all
// other fields are cached from the scan that produced it.
type Item struct {
	Node     scene.Node
	Name     string
	Kind     Kind
	Zone     zone.Key
	Opponent bool
	X, Y     float64
}

// Result is one discovery pass.
type Result struct {
	Items []Item
	// SelectionMode reports the inferred choose-then-confirm mode. The
	// host exposes no flag; see selectionMode for the heuristic.
	SelectionMode bool
}

// Discoverer produces ordered candidate lists from a scene graph.
type Discoverer struct {
	graph scene.Graph
}

// New creates a discoverer over the graph.
func New(graph scene.Graph) *Discoverer {
	return &Discoverer{graph: graph}
}

// Discover runs one full pass and returns the ordered candidates.
func (d *Discoverer) Discover() Result {
	if d == nil || d.graph == nil {
		return Result{}
	}
	g := d.graph

	result := Result{SelectionMode: selectionMode(g)}

	marked := g.Marked(scene.MarkerEligible)
	if result.SelectionMode {
		// Selected items lose the eligible marker but must stay
		// navigable so the player can unpick them.
		marked = append(marked, g.Marked(scene.MarkerSelected)...)
	}

	seen := map[string]bool{}
	for _, n := range marked {
		card, ok := scene.CardAncestor(g, n)
		if !ok {
			continue
		}
		key, ok := g.ZoneOf(card)
		if !ok {
			continue
		}
		if seen[card.ID()] {
			continue
		}
		seen[card.ID()] = true
		x, y := card.Position()
		result.Items = append(result.Items, Item{
			Node:     card,
			Name:     card.Name(),
			Kind:     KindCard,
			Zone:     key,
			Opponent: key.Owner == zone.OwnerOpponent,
			X:        x,
			Y:        y,
		})
	}

	players := g.PlayerTargets()
	if len(players) > 2 {
		players = players[:2]
	}
	for _, target := range players {
		if target.Node == nil || !target.Node.Active() {
			continue
		}
		x, y := target.Node.Position()
		result.Items = append(result.Items, Item{
			Node:     target.Node,
			Name:     target.Node.Name(),
			Kind:     KindPlayer,
			Opponent: target.Opponent,
			X:        x,
			Y:        y,
		})
	}

	if len(result.Items) == 0 {
		result.Items = promptFallback(g)
	}

	sortItems(result.Items)
	return result
}

// promptFallback resolves the prompt button pair when nothing else is
// navigable. Both controls must be enabled and carry language-length text;
// short no-space strings are keyboard-hint labels, not real choices.
func promptFallback(g scene.Graph) []Item {
	primary, secondary := g.PromptControls()
	if primary == nil || secondary == nil {
		return nil
	}
	if !primary.Active() || !secondary.Active() {
		return nil
	}
	if !realChoice(primary.Text()) || !realChoice(secondary.Text()) {
		return nil
	}
	return []Item{
		{Node: primary, Name: primary.Text(), Kind: KindPrompt, X: 0},
		{Node: secondary, Name: secondary.Text(), Kind: KindPrompt, X: 1},
	}
}

// realChoice reports whether a prompt label reads like an actual choice.
// The host exposes no machine-readable flag, so length and word count stand
// in: real choices are sentences ("Pay 2 mana"), hints are single short
// tokens ("Z").
func realChoice(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return utf8.RuneCountInString(trimmed) > 7 || strings.ContainsRune(trimmed, ' ')
}

// selectionMode infers choose-then-confirm mode: an enabled primary submit
// control whose label ends in an integer ("Submit 2") is the signal the host
// gives.
func selectionMode(g scene.Graph) bool {
	submit := g.SubmitControl()
	if submit == nil || !submit.Active() {
		return false
	}
	fields := strings.Fields(submit.Text())
	if len(fields) < 2 {
		return false
	}
	_, err := strconv.Atoi(fields[len(fields)-1])
	return err == nil
}

// sortItems applies the fixed total order: own hand first, then cards and
// prompts before players, own side before opponent's, then left to right.
// The trailing ID comparison keeps the order strict so repeated passes over
// an unchanged graph are identical.
func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ra, rb := handRank(a), handRank(b); ra != rb {
			return ra < rb
		}
		if ra, rb := kindRank(a), kindRank(b); ra != rb {
			return ra < rb
		}
		if a.Opponent != b.Opponent {
			return !a.Opponent
		}
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return itemID(a) < itemID(b)
	})
}

func handRank(item Item) int {
	if item.Kind == KindCard && item.Zone.Zone == zone.Hand && item.Zone.Owner == zone.OwnerLocal {
		return 0
	}
	return 1
}

func kindRank(item Item) int {
	if item.Kind == KindPlayer {
		return 1
	}
	return 0
}

func itemID(item Item) string {
	if item.Node == nil {
		return ""
	}
	return item.Node.ID()
}
