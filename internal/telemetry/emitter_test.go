package telemetry

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/quietpath/duelsense/internal/errors"
	"github.com/quietpath/duelsense/internal/storage"
)

type recordingStore struct {
	events []storage.TelemetryEvent
}

func (r *recordingStore) AppendTelemetryEvent(_ context.Context, evt storage.TelemetryEvent) error {
	r.events = append(r.events, evt)
	return nil
}

func TestEmitRecordsEvent(t *testing.T) {
	store := &recordingStore{}
	now := time.Unix(42, 0)
	emitter := NewEmitterWithClock(store, func() time.Time { return now })

	if err := emitter.Emit(context.Background(), apperrors.SeverityWarn, KindClassifierDrop, "NewShape"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(store.events) != 1 {
		t.Fatalf("expected one event, got %d", len(store.events))
	}
	evt := store.events[0]
	if evt.Kind != KindClassifierDrop || evt.Detail != "NewShape" || evt.Severity != "WARN" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if !evt.Timestamp.Equal(now.UTC()) {
		t.Fatalf("expected clock timestamp, got %v", evt.Timestamp)
	}
}

func TestEmitNilReceiverAndStore(t *testing.T) {
	var emitter *Emitter
	if err := emitter.Emit(context.Background(), apperrors.SeverityInfo, KindFieldMiss, "x"); err != nil {
		t.Fatalf("expected nil emitter to no-op, got %v", err)
	}
	if err := NewEmitter(nil).Emit(context.Background(), apperrors.SeverityInfo, KindFieldMiss, "x"); err != nil {
		t.Fatalf("expected nil store to no-op, got %v", err)
	}
}
