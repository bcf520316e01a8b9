// Package scenetest provides an in-memory scene graph for tests and the
// scripted duel simulator.
package scenetest

import (
	"fmt"

	"github.com/quietpath/duelsense/internal/duel/zone"
	"github.com/quietpath/duelsense/internal/scene"
)

// Node is a fake scene node.
type Node struct {
	id       string
	name     string
	parent   *Node
	children []*Node
	active   bool
	markers  map[scene.Marker]bool
	text     string
	x, y     float64
}

var _ scene.Node = (*Node)(nil)

func (n *Node) ID() string   { return n.id }
func (n *Node) Name() string { return n.name }

func (n *Node) Parent() scene.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []scene.Node {
	out := make([]scene.Node, len(n.children))
	for i, child := range n.children {
		out[i] = child
	}
	return out
}

func (n *Node) Active() bool                      { return n.active }
func (n *Node) HasMarker(m scene.Marker) bool     { return n.markers[m] }
func (n *Node) Text() string                      { return n.text }
func (n *Node) Position() (x, y float64)          { return n.x, n.y }
func (n *Node) SetMarker(m scene.Marker, on bool) { n.markers[m] = on }
func (n *Node) SetActive(active bool)             { n.active = active }
func (n *Node) SetText(text string)               { n.text = text }

// Graph is a fake scene graph implementing scene.Graph.
type Graph struct {
	nodes     []*Node
	cards     map[*Node]zone.Key
	players   []scene.PlayerTarget
	primary   *Node
	secondary *Node
	submit    *Node
	confirm   *Node
	clicks    []string
	clickErr  error
}

var _ scene.Graph = (*Graph)(nil)

// NewGraph creates an empty fake graph with a confirm point.
func NewGraph() *Graph {
	g := &Graph{cards: map[*Node]zone.Key{}}
	g.confirm = g.newNode("confirm-point", "Confirm")
	return g
}

func (g *Graph) newNode(id, name string) *Node {
	n := &Node{id: id, name: name, active: true, markers: map[scene.Marker]bool{}}
	g.nodes = append(g.nodes, n)
	return n
}

// AddCard adds a card node at position x with a decoration child carrying the
// markers, mirroring how the host places highlight flags below the card.
func (g *Graph) AddCard(id, name string, key zone.Key, x float64, markers ...scene.Marker) *Node {
	card := g.newNode(id, name)
	card.x = x
	g.cards[card] = key

	deco := g.newNode(id+"/highlight", "")
	deco.parent = card
	deco.x = x
	card.children = append(card.children, deco)
	for _, m := range markers {
		deco.markers[m] = true
	}
	return card
}

// AddOrphanMarker adds a marked node with no card ancestor. Discovery must
// discard it.
func (g *Graph) AddOrphanMarker(id string, markers ...scene.Marker) *Node {
	n := g.newNode(id, "")
	for _, m := range markers {
		n.markers[m] = true
	}
	return n
}

// AddPlayerTarget registers a player pseudo-target.
func (g *Graph) AddPlayerTarget(id, name string, opponent bool) *Node {
	n := g.newNode(id, name)
	g.players = append(g.players, scene.PlayerTarget{Node: n, Opponent: opponent})
	return n
}

// ClearPlayerTargets removes all player pseudo-targets.
func (g *Graph) ClearPlayerTargets() { g.players = nil }

// SetPrompt configures the primary and secondary prompt buttons.
func (g *Graph) SetPrompt(primaryText, secondaryText string, enabled bool) (primary, secondary *Node) {
	g.primary = g.newNode("prompt-primary", "")
	g.primary.text = primaryText
	g.primary.active = enabled
	g.secondary = g.newNode("prompt-secondary", "")
	g.secondary.text = secondaryText
	g.secondary.active = enabled
	return g.primary, g.secondary
}

// SetSubmit configures the primary submit control.
func (g *Graph) SetSubmit(text string, enabled bool) *Node {
	g.submit = g.newNode("submit", "")
	g.submit.text = text
	g.submit.active = enabled
	return g.submit
}

// FailClicks makes Click return err.
func (g *Graph) FailClicks(err error) { g.clickErr = err }

// Clicks returns the IDs clicked so far, in order.
func (g *Graph) Clicks() []string { return g.clicks }

func (g *Graph) Marked(m scene.Marker) []scene.Node {
	var out []scene.Node
	for _, n := range g.nodes {
		if n.active && n.markers[m] {
			out = append(out, n)
		}
	}
	return out
}

func (g *Graph) IsCard(n scene.Node) bool {
	fake, ok := n.(*Node)
	if !ok {
		return false
	}
	_, isCard := g.cards[fake]
	return isCard
}

func (g *Graph) ZoneOf(n scene.Node) (zone.Key, bool) {
	fake, ok := n.(*Node)
	if !ok {
		return zone.Key{}, false
	}
	key, isCard := g.cards[fake]
	return key, isCard
}

func (g *Graph) PlayerTargets() []scene.PlayerTarget {
	return append([]scene.PlayerTarget(nil), g.players...)
}

func (g *Graph) PromptControls() (primary, secondary scene.Node) {
	if g.primary != nil {
		primary = g.primary
	}
	if g.secondary != nil {
		secondary = g.secondary
	}
	return primary, secondary
}

func (g *Graph) SubmitControl() scene.Node {
	if g.submit == nil {
		return nil
	}
	return g.submit
}

func (g *Graph) ConfirmPoint() scene.Node {
	if g.confirm == nil {
		return nil
	}
	return g.confirm
}

func (g *Graph) Click(n scene.Node) error {
	if g.clickErr != nil {
		return g.clickErr
	}
	if n == nil {
		return fmt.Errorf("click target is nil")
	}
	g.clicks = append(g.clicks, n.ID())
	return nil
}
