// Package telemetry records operational diagnostics for duelsense: classifier
// drops, reflection misses, suppressed duplicates. Diagnostics are advisory;
// an unconfigured emitter is a no-op.
package telemetry

import (
	"context"
	"time"

	apperrors "github.com/quietpath/duelsense/internal/errors"
	"github.com/quietpath/duelsense/internal/storage"
)

// Event kinds recorded by the announcer pipeline.
const (
	// KindClassifierDrop records an event type name that was not in the
	// allow-list and therefore produced no narration.
	KindClassifierDrop = "classifier_drop"
	// KindFieldMiss records a named field that was absent or mistyped.
	KindFieldMiss = "field_miss"
	// KindDuplicateSuppressed records an announcement dropped by the
	// duplicate window.
	KindDuplicateSuppressed = "duplicate_suppressed"
	// KindHandlerRecovered records a panic absorbed at the host boundary.
	KindHandlerRecovered = "handler_recovered"
)

// Emitter records diagnostics events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// NewEmitterWithClock creates an emitter with an injectable clock for tests.
func NewEmitterWithClock(store storage.TelemetryStore, clock func() time.Time) *Emitter {
	if clock == nil {
		clock = time.Now
	}
	return &Emitter{store: store, clock: clock}
}

// Emit records a telemetry event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, severity apperrors.Severity, kind, detail string) error {
	if e == nil || e.store == nil {
		return nil
	}
	return e.store.AppendTelemetryEvent(ctx, storage.TelemetryEvent{
		Timestamp: e.clock().UTC(),
		Severity:  string(severity),
		Kind:      kind,
		Detail:    detail,
	})
}
