package discover

import (
	"reflect"
	"testing"

	"github.com/quietpath/duelsense/internal/duel/zone"
	"github.com/quietpath/duelsense/internal/scene"
	"github.com/quietpath/duelsense/internal/scene/scenetest"
)

func localHand() zone.Key {
	return zone.Key{Zone: zone.Hand, Owner: zone.OwnerLocal}
}

func battlefield(owner zone.Owner) zone.Key {
	return zone.Key{Zone: zone.Battlefield, Owner: owner}
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestDiscoverOrdering(t *testing.T) {
	g := scenetest.NewGraph()
	g.AddCard("c1", "Opposing Drake", battlefield(zone.OwnerOpponent), 10, scene.MarkerEligible)
	g.AddCard("c2", "Own Bear", battlefield(zone.OwnerLocal), 30, scene.MarkerEligible)
	g.AddCard("c3", "Hand Bolt", localHand(), 50, scene.MarkerEligible)
	g.AddCard("c4", "Own Wall", battlefield(zone.OwnerLocal), 20, scene.MarkerEligible)
	g.AddPlayerTarget("p1", "Opponent", true)
	g.AddPlayerTarget("p2", "You", false)

	result := New(g).Discover()
	want := []string{"Hand Bolt", "Own Wall", "Own Bear", "Opposing Drake", "You", "Opponent"}
	if got := names(result.Items); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
}

func TestDiscoverIsStableAcrossPasses(t *testing.T) {
	g := scenetest.NewGraph()
	g.AddCard("c1", "A", battlefield(zone.OwnerLocal), 5, scene.MarkerEligible)
	g.AddCard("c2", "B", battlefield(zone.OwnerLocal), 5, scene.MarkerEligible)
	g.AddCard("c3", "C", localHand(), 1, scene.MarkerEligible)

	d := New(g)
	first := d.Discover()
	for i := 0; i < 5; i++ {
		again := d.Discover()
		if !reflect.DeepEqual(names(first.Items), names(again.Items)) {
			t.Fatalf("expected stable order, got %v then %v", names(first.Items), names(again.Items))
		}
	}
}

func TestDiscoverDiscardsOrphanMarkers(t *testing.T) {
	g := scenetest.NewGraph()
	g.AddOrphanMarker("stray", scene.MarkerEligible)
	g.AddCard("c1", "Real Card", localHand(), 0, scene.MarkerEligible)

	result := New(g).Discover()
	if len(result.Items) != 1 || result.Items[0].Name != "Real Card" {
		t.Fatalf("expected only the resolvable card, got %v", names(result.Items))
	}
}

func TestDiscoverDeduplicatesByCard(t *testing.T) {
	g := scenetest.NewGraph()
	card := g.AddCard("c1", "Twice Marked", localHand(), 0, scene.MarkerEligible)
	card.SetMarker(scene.MarkerEligible, true)

	result := New(g).Discover()
	if len(result.Items) != 1 {
		t.Fatalf("expected dedupe to one item, got %d", len(result.Items))
	}
}

func TestSelectionModeIncludesSelectedCards(t *testing.T) {
	g := scenetest.NewGraph()
	g.AddCard("c1", "Keep", localHand(), 0, scene.MarkerEligible)
	g.AddCard("c2", "Picked", localHand(), 1, scene.MarkerSelected)
	g.SetSubmit("Submit 2", true)

	result := New(g).Discover()
	if !result.SelectionMode {
		t.Fatalf("expected selection mode")
	}
	if got := names(result.Items); !reflect.DeepEqual(got, []string{"Keep", "Picked"}) {
		t.Fatalf("expected selected card to stay navigable, got %v", got)
	}
}

func TestSelectedCardsIgnoredOutsideSelectionMode(t *testing.T) {
	g := scenetest.NewGraph()
	g.AddCard("c1", "Picked", localHand(), 0, scene.MarkerSelected)

	result := New(g).Discover()
	if len(result.Items) != 0 {
		t.Fatalf("expected no items outside selection mode, got %v", names(result.Items))
	}
}

func TestSelectionModeHeuristic(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		enabled bool
		want    bool
	}{
		{name: "trailing integer", text: "Submit 2", enabled: true, want: true},
		{name: "no integer", text: "Submit", enabled: true, want: false},
		{name: "disabled", text: "Submit 2", enabled: false, want: false},
		{name: "integer not trailing", text: "2 Submit", enabled: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := scenetest.NewGraph()
			g.SetSubmit(tt.text, tt.enabled)
			if got := New(g).Discover().SelectionMode; got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPromptFallback(t *testing.T) {
	g := scenetest.NewGraph()
	g.SetPrompt("Pay 2 mana", "Sacrifice a creature", true)

	result := New(g).Discover()
	if len(result.Items) != 2 {
		t.Fatalf("expected two prompt items, got %d", len(result.Items))
	}
	if result.Items[0].Name != "Pay 2 mana" || result.Items[1].Name != "Sacrifice a creature" {
		t.Fatalf("expected (primary, secondary) order, got %v", names(result.Items))
	}
	for _, item := range result.Items {
		if item.Kind != KindPrompt {
			t.Fatalf("expected prompt kind, got %s", item.Kind)
		}
	}
}

func TestPromptFallbackRejectsHintLabels(t *testing.T) {
	g := scenetest.NewGraph()
	g.SetPrompt("Pay 2 mana", "Z", true)

	if result := New(g).Discover(); len(result.Items) != 0 {
		t.Fatalf("expected hint label to suppress fallback, got %v", names(result.Items))
	}
}

func TestPromptFallbackRequiresEnabledControls(t *testing.T) {
	g := scenetest.NewGraph()
	g.SetPrompt("Pay 2 mana", "Sacrifice a creature", false)

	if result := New(g).Discover(); len(result.Items) != 0 {
		t.Fatalf("expected disabled prompts to suppress fallback, got %v", names(result.Items))
	}
}

func TestPromptFallbackSkippedWhenCardsExist(t *testing.T) {
	g := scenetest.NewGraph()
	g.AddCard("c1", "Real Card", localHand(), 0, scene.MarkerEligible)
	g.SetPrompt("Pay 2 mana", "Sacrifice a creature", true)

	result := New(g).Discover()
	if len(result.Items) != 1 || result.Items[0].Kind != KindCard {
		t.Fatalf("expected only the card, got %v", names(result.Items))
	}
}
