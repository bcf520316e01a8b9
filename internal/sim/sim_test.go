package sim

import (
	"strings"
	"testing"
	"time"

	"github.com/quietpath/duelsense/internal/script"
)

func step(kind string, args map[string]any) script.Step {
	if args == nil {
		args = map[string]any{}
	}
	return script.Step{Kind: kind, Args: args}
}

func TestRunNarratesScriptedDuel(t *testing.T) {
	scenario := &script.Scenario{
		Name: "opening",
		Steps: []script.Step{
			step("card", map[string]any{"id": "hand-1", "name": "Lava Spike", "zone": "local.hand", "x": 1, "eligible": true}),
			step("count", map[string]any{"zone": "local.hand", "count": 7}),
			step("count", map[string]any{"zone": "local.hand", "count": 9}),
			step("event", map[string]any{"type": "LifeTotalChanged", "fields": map[string]any{"life": 15, "owner": "local"}}),
			step("key", map[string]any{"command": "focus", "mode": "zone"}),
			step("key", map[string]any{"command": "activate", "mode": "zone"}),
		},
	}

	lines := New().Run(scenario)

	want := []string{
		"You drew 2 cards",
		"Your life total is 15",
	}
	for _, text := range want {
		if !containsLine(lines, text) {
			t.Errorf("output %v missing %q", lines, text)
		}
	}
	if !containsSubstring(lines, "Lava Spike") {
		t.Errorf("output %v missing cursor announcement for Lava Spike", lines)
	}
}

func TestRunActivatesHandCardTwoStep(t *testing.T) {
	s := New()
	s.Run(&script.Scenario{Steps: []script.Step{
		step("card", map[string]any{"id": "hand-1", "name": "Lava Spike", "zone": "local.hand", "x": 1, "eligible": true}),
		step("key", map[string]any{"command": "focus", "mode": "zone"}),
		step("key", map[string]any{"command": "activate", "mode": "zone"}),
	}})

	clicks := s.Graph().Clicks()
	if len(clicks) != 2 || clicks[0] != "hand-1" || clicks[1] != "confirm-point" {
		t.Errorf("clicks = %v, want [hand-1 confirm-point]", clicks)
	}
}

func TestRunDefersStackAnnouncementAcrossTicks(t *testing.T) {
	scenario := &script.Scenario{Steps: []script.Step{
		step("count", map[string]any{"zone": "shared.stack", "count": 0}),
		step("card", map[string]any{"id": "stack-1", "name": "Counterspell", "zone": "shared.stack", "x": 1}),
		step("count", map[string]any{"zone": "shared.stack", "count": 1}),
		step("tick", map[string]any{"frames": 2}),
		step("tick", map[string]any{"frames": 1}),
	}}

	lines := New().Run(scenario)
	if !containsLine(lines, "Counterspell is on the stack") {
		t.Errorf("output %v missing deferred stack announcement", lines)
	}
}

func TestRunSleepSeparatesDuplicates(t *testing.T) {
	fields := map[string]any{"life": 10, "owner": "opponent"}
	scenario := &script.Scenario{Steps: []script.Step{
		step("event", map[string]any{"type": "LifeTotalChanged", "fields": fields}),
		step("event", map[string]any{"type": "LifeTotalChanged", "fields": fields}),
		step("sleep", map[string]any{"ms": 600}),
		step("event", map[string]any{"type": "LifeTotalChanged", "fields": fields}),
	}}

	lines := New().Run(scenario)
	got := 0
	for _, line := range lines {
		if line == "Opponent's life total is 10" {
			got++
		}
	}
	if got != 2 {
		t.Errorf("life announcement delivered %d times, want 2 (one duplicate suppressed): %v", got, lines)
	}
}

func TestRunWithSuppressWindowOverride(t *testing.T) {
	fields := map[string]any{"life": 10, "owner": "opponent"}
	scenario := &script.Scenario{Steps: []script.Step{
		step("event", map[string]any{"type": "LifeTotalChanged", "fields": fields}),
		step("sleep", map[string]any{"ms": 600}),
		step("event", map[string]any{"type": "LifeTotalChanged", "fields": fields}),
	}}

	// 600ms clears the default window but not the widened one.
	lines := New(WithSuppressWindow(2 * time.Second)).Run(scenario)
	got := 0
	for _, line := range lines {
		if line == "Opponent's life total is 10" {
			got++
		}
	}
	if got != 1 {
		t.Errorf("life announcement delivered %d times, want 1 under widened window: %v", got, lines)
	}
}

func TestRunSkipsMalformedSteps(t *testing.T) {
	scenario := &script.Scenario{Steps: []script.Step{
		step("card", map[string]any{"id": "x", "name": "Bad Zone", "zone": "nowhere"}),
		step("count", map[string]any{"zone": "not-a-key", "count": 3}),
		step("warp", nil),
		step("event", map[string]any{"type": "GameStarted"}),
	}}

	lines := New().Run(scenario)
	if !containsLine(lines, "Game started") {
		t.Errorf("output %v missing announcement after malformed steps", lines)
	}
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}

func containsSubstring(lines []string, want string) bool {
	for _, line := range lines {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}
