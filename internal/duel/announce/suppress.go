package announce

import "time"

// DuplicateWindow is the rolling window within which identical text is
// dropped. The host fires the same semantic event through more than one code
// path; half a second absorbs those without swallowing genuine repeats.
const DuplicateWindow = 500 * time.Millisecond

// Suppressor drops announcements whose text matches the previous one inside
// the window. Owned by the single main-thread announcer; no locking.
type Suppressor struct {
	window time.Duration
	clock  func() time.Time
	last   string
	lastAt time.Time
}

// NewSuppressor creates a suppressor with the given window.
func NewSuppressor(window time.Duration, clock func() time.Time) *Suppressor {
	if window <= 0 {
		window = DuplicateWindow
	}
	if clock == nil {
		clock = time.Now
	}
	return &Suppressor{window: window, clock: clock}
}

// Allow reports whether text may reach the sink, recording it when allowed.
// A dropped duplicate does not refresh the window, so a third repeat clears
// once the original announcement ages out.
func (s *Suppressor) Allow(text string) bool {
	if s == nil {
		return true
	}
	now := s.clock()
	if text == s.last && now.Sub(s.lastAt) < s.window {
		return false
	}
	s.last = text
	s.lastAt = now
	return true
}
