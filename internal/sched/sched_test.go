package sched

import (
	"testing"
	"time"
)

func TestAfterTicksRunsOnceAtTheRightTick(t *testing.T) {
	s := New()
	runs := 0
	s.AfterTicks(3, func() { runs++ })

	s.Tick()
	s.Tick()
	if runs != 0 {
		t.Fatalf("expected no run after 2 ticks, got %d", runs)
	}
	s.Tick()
	if runs != 1 {
		t.Fatalf("expected one run after 3 ticks, got %d", runs)
	}
	s.Tick()
	s.Tick()
	if runs != 1 {
		t.Fatalf("expected at-most-once, got %d runs", runs)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected no pending tasks, got %d", s.Pending())
	}
}

func TestAfterTicksClampsToNextTick(t *testing.T) {
	s := New()
	runs := 0
	s.AfterTicks(0, func() { runs++ })
	s.Tick()
	if runs != 1 {
		t.Fatalf("expected run on next tick, got %d", runs)
	}
}

func TestAfterDelayWaitsForClock(t *testing.T) {
	now := time.Unix(0, 0)
	s := NewWithClock(func() time.Time { return now })
	runs := 0
	s.AfterDelay(250*time.Millisecond, func() { runs++ })

	s.Tick()
	if runs != 0 {
		t.Fatalf("expected delay task to wait, got %d runs", runs)
	}
	now = now.Add(300 * time.Millisecond)
	s.Tick()
	if runs != 1 {
		t.Fatalf("expected delay task to run, got %d runs", runs)
	}
}

func TestCallbackSchedulingWaitsForNextTick(t *testing.T) {
	s := New()
	var order []string
	s.AfterTicks(1, func() {
		order = append(order, "first")
		s.AfterTicks(1, func() { order = append(order, "second") })
	})

	s.Tick()
	if len(order) != 1 || order[0] != "first" {
		t.Fatalf("expected only first to run, got %v", order)
	}
	s.Tick()
	if len(order) != 2 || order[1] != "second" {
		t.Fatalf("expected second on the following tick, got %v", order)
	}
}

func TestNilCallbackIgnored(t *testing.T) {
	s := New()
	s.AfterTicks(1, nil)
	s.AfterDelay(time.Millisecond, nil)
	if s.Pending() != 0 {
		t.Fatalf("expected nil callbacks to be dropped, got %d pending", s.Pending())
	}
	s.Tick()
}
