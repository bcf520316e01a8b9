// Package sched provides a cooperative frame scheduler for deferred work.
//
// The plugin has no thread of its own: the host drives it through a per-frame
// tick on the main thread. Some narration must wait a few frames for a
// cosmetic animation to settle before the relevant visual state is readable;
// those callbacks are registered here and run from Tick. Callbacks run at
// most once, are not cancelable, and must only read and announce.
package sched

import "time"

type task struct {
	remaining int
	deadline  time.Time
	fn        func()
}

// Scheduler runs callbacks after a number of ticks or a wall-clock delay.
//
// Owned and mutated by the single main-thread caller; no locking.
type Scheduler struct {
	clock   func() time.Time
	pending []task
}

// New creates a scheduler using the wall clock.
func New() *Scheduler {
	return NewWithClock(time.Now)
}

// NewWithClock creates a scheduler with an injectable clock for tests.
func NewWithClock(clock func() time.Time) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{clock: clock}
}

// AfterTicks runs fn once after n ticks. n <= 0 runs it on the next tick.
func (s *Scheduler) AfterTicks(n int, fn func()) {
	if s == nil || fn == nil {
		return
	}
	if n < 1 {
		n = 1
	}
	s.pending = append(s.pending, task{remaining: n, fn: fn})
}

// AfterDelay runs fn once on the first tick at or after the given wall-clock
// delay. Used as the fallback when a frame-counted wait was not enough.
func (s *Scheduler) AfterDelay(d time.Duration, fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.pending = append(s.pending, task{deadline: s.clock().Add(d), fn: fn})
}

// Tick advances one frame and runs every task that came due. Tasks scheduled
// by a running callback wait for the next tick.
func (s *Scheduler) Tick() {
	if s == nil || len(s.pending) == 0 {
		return
	}
	now := s.clock()

	due := s.pending[:0]
	var run []func()
	for i := range s.pending {
		t := s.pending[i]
		if t.remaining > 0 {
			t.remaining--
		}
		ready := t.remaining == 0
		if !t.deadline.IsZero() {
			ready = !now.Before(t.deadline)
		}
		if ready {
			run = append(run, t.fn)
			continue
		}
		due = append(due, t)
	}
	s.pending = due

	for _, fn := range run {
		fn()
	}
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	if s == nil {
		return 0
	}
	return len(s.pending)
}
