// Package storage defines the persistence interfaces for duelsense.
//
// Persistence is optional everywhere: narration never depends on a store, and
// a nil store degrades to no-ops at the call sites.
package storage

import (
	"context"
	"time"
)

// TranscriptEntry is one announcement that reached the narration sink.
type TranscriptEntry struct {
	Timestamp time.Time
	Category  string
	Text      string
	Priority  string
}

// TranscriptStore persists announcement history for later review.
type TranscriptStore interface {
	AppendAnnouncement(ctx context.Context, entry TranscriptEntry) error
	ListRecentAnnouncements(ctx context.Context, limit int) ([]TranscriptEntry, error)
}

// TelemetryEvent is one diagnostics event (classifier drop, reflection miss,
// suppressed duplicate).
type TelemetryEvent struct {
	Timestamp time.Time
	Severity  string
	Kind      string
	Detail    string
}

// TelemetryStore records operational diagnostics.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, evt TelemetryEvent) error
}
