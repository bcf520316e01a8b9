package announce

import (
	"context"
	"log"
	"time"

	"github.com/quietpath/duelsense/internal/duel/diff"
	"github.com/quietpath/duelsense/internal/duel/event"
	"github.com/quietpath/duelsense/internal/duel/phrase"
	"github.com/quietpath/duelsense/internal/duel/zone"
	apperrors "github.com/quietpath/duelsense/internal/errors"
	"github.com/quietpath/duelsense/internal/sched"
	"github.com/quietpath/duelsense/internal/storage"
	"github.com/quietpath/duelsense/internal/telemetry"
)

const (
	// stackSettleTicks is how many frames a new stack object is given to
	// finish its cast animation before the top of stack is read.
	stackSettleTicks = 3
	// stackSettleDelay is the wall-clock fallback when the animation still
	// has not produced the expected object after the frame wait.
	stackSettleDelay = 250 * time.Millisecond
	// resolutionGrace is how long after a spell resolves the navigator
	// should skip the interaction prompts the host flashes.
	resolutionGrace = time.Second
)

// Announcer drives the narration pipeline: classify, extract, phrase,
// suppress, deliver.
//
// One announcer instance owns all pipeline state (zone counts, duplicate
// window, attribution cache) and is called only from the host's main-thread
// callbacks; there is no concurrent writer and no locking.
type Announcer struct {
	sink       Sink
	printer    *phrase.Printer
	scheduler  *sched.Scheduler
	differ     *diff.Differ
	suppressor *Suppressor
	emitter    *telemetry.Emitter
	transcript storage.TranscriptStore
	rewrite    func(category, text string) string
	stackTop   func() (string, bool)
	clock      func() time.Time
	logger     *log.Logger

	// suppressWindow overrides the duplicate window; zero means
	// DuplicateWindow.
	suppressWindow time.Duration

	// lastResolvedCard attributes the next unattributed damage event to
	// its probable source. The host gives no causal link; this is a
	// best-effort correlation, not a guarantee.
	lastResolvedCard string
}

// Option configures an Announcer.
type Option func(*Announcer)

// WithClock injects a clock, used by tests.
func WithClock(clock func() time.Time) Option {
	return func(a *Announcer) { a.clock = clock }
}

// WithSuppressWindow overrides the duplicate suppression window, typically
// from the user's settings file. Non-positive values keep the default.
func WithSuppressWindow(window time.Duration) Option {
	return func(a *Announcer) { a.suppressWindow = window }
}

// WithTelemetry wires the diagnostics emitter.
func WithTelemetry(emitter *telemetry.Emitter) Option {
	return func(a *Announcer) { a.emitter = emitter }
}

// WithTranscript wires the optional announcement history store.
func WithTranscript(store storage.TranscriptStore) Option {
	return func(a *Announcer) { a.transcript = store }
}

// WithRewrite wires a user phrase hook applied before delivery. Returning an
// empty string drops the announcement.
func WithRewrite(fn func(category, text string) string) Option {
	return func(a *Announcer) { a.rewrite = fn }
}

// WithStackTop wires the lookup for the current top-of-stack display name,
// used by the deferred stack-growth announcement.
func WithStackTop(fn func() (string, bool)) Option {
	return func(a *Announcer) { a.stackTop = fn }
}

// WithLogger overrides the diagnostics logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Announcer) { a.logger = logger }
}

// New creates an announcer delivering to sink.
func New(sink Sink, printer *phrase.Printer, scheduler *sched.Scheduler, opts ...Option) *Announcer {
	a := &Announcer{
		sink:      sink,
		printer:   printer,
		scheduler: scheduler,
		clock:     time.Now,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.differ = diff.NewWithClock(a.clock)
	a.suppressor = NewSuppressor(a.suppressWindow, a.clock)
	return a
}

// recoverFromHost absorbs a panic escaping a host-called entry point. The
// host must never see a throw from this plugin, whichever callback it came
// in through.
func (a *Announcer) recoverFromHost(entry string) {
	if r := recover(); r != nil {
		a.logger.Printf("announce: recovered from %s: %v", entry, r)
		_ = a.emitter.Emit(context.Background(), apperrors.SeverityError,
			telemetry.KindHandlerRecovered, entry)
	}
}

// HandleEvent processes one opaque record from the host's event feed.
//
// Contract with the host: never throw back. Any panic out of an extractor is
// absorbed here, logged, and degrades to "produced no announcement".
func (a *Announcer) HandleEvent(rec event.Record) {
	if a == nil || a.sink == nil {
		return
	}
	defer a.recoverFromHost("event " + rec.TypeName)

	category := event.Classify(rec.TypeName)
	if category == event.CategoryIgnored {
		if !event.Known(rec.TypeName) {
			_ = a.emitter.Emit(context.Background(), apperrors.SeverityWarn,
				telemetry.KindClassifierDrop, rec.TypeName)
		}
		return
	}

	text := a.synthesize(category, rec)
	if text == "" {
		return
	}
	a.deliver(category, text, priorityFor(category))
}

// ObserveZoneCount feeds one zone count observation through the differ and
// narrates the inferred changes.
func (a *Announcer) ObserveZoneCount(key zone.Key, count int) {
	if a == nil {
		return
	}
	defer a.recoverFromHost("zone count " + key.String())
	for _, change := range a.differ.Observe(key, count) {
		a.announceChange(change)
	}
}

// Tick advances the frame scheduler; the host calls this once per frame.
func (a *Announcer) Tick() {
	if a == nil || a.scheduler == nil {
		return
	}
	defer a.recoverFromHost("tick")
	a.scheduler.Tick()
}

// RecentlyResolved reports whether a spell resolved inside the grace window.
// The navigator uses it to skip transient interaction prompts.
func (a *Announcer) RecentlyResolved() bool {
	if a == nil {
		return false
	}
	return a.differ.ResolvedWithin(resolutionGrace)
}

// Reset clears per-duel state when a new game starts.
func (a *Announcer) Reset() {
	if a == nil {
		return
	}
	a.differ.Reset()
	a.lastResolvedCard = ""
}

func (a *Announcer) announceChange(change diff.Change) {
	var text string
	switch change.Kind {
	case diff.KindDrew:
		if change.Key.Owner == zone.OwnerOpponent {
			text = a.printer.F("Opponent drew %d cards", change.Count)
		} else {
			text = a.printer.F("You drew %d cards", change.Count)
		}
	case diff.KindOpponentPlayed:
		text = a.printer.F("Opponent played %d cards", change.Count)
	case diff.KindEnteredBattlefield:
		text = a.printer.F("%d permanents entered the battlefield", change.Count)
	case diff.KindLeftBattlefield:
		// Owner-qualified wording only when the host scoped the zone key
		// itself; a shared count cannot say whose permanent left.
		switch change.Key.Owner {
		case zone.OwnerOpponent:
			text = a.printer.F("Opponent lost %d permanents", change.Count)
		case zone.OwnerLocal:
			text = a.printer.F("You lost %d permanents", change.Count)
		default:
			text = a.printer.F("%d permanents left the battlefield", change.Count)
		}
	case diff.KindPutInGraveyard:
		text = a.printer.F("%d cards put into graveyard", change.Count)
	case diff.KindLeftGraveyard:
		text = a.printer.F("%d cards left the graveyard", change.Count)
	case diff.KindExiled:
		text = a.printer.F("%d cards exiled", change.Count)
	case diff.KindEnteredCommand:
		text = a.printer.F("Command zone changed")
	case diff.KindSpellResolved:
		text = a.printer.F("Spell resolved")
	case diff.KindStackGrew:
		a.deferStackAnnouncement()
		return
	default:
		return
	}
	if text == "" {
		return
	}
	a.deliver(event.CategoryZoneTransfer, text, PriorityNormal)
}

// deferStackAnnouncement waits for the cast animation to settle, then reads
// the top of stack. If the object still is not readable after the frame wait,
// one wall-clock retry follows; after that the growth goes unnarrated and the
// next event corrects the gap.
func (a *Announcer) deferStackAnnouncement() {
	if a.scheduler == nil || a.stackTop == nil {
		return
	}
	a.scheduler.AfterTicks(stackSettleTicks, func() {
		if name, ok := a.stackTop(); ok {
			a.deliver(event.CategorySpellCast, a.printer.F("%s is on the stack", name), priorityFor(event.CategorySpellCast))
			return
		}
		a.scheduler.AfterDelay(stackSettleDelay, func() {
			if name, ok := a.stackTop(); ok {
				a.deliver(event.CategorySpellCast, a.printer.F("%s is on the stack", name), priorityFor(event.CategorySpellCast))
			}
		})
	})
}

func (a *Announcer) deliver(category event.Category, text string, priority Priority) {
	if a.rewrite != nil {
		text = a.applyRewrite(string(category), text)
		if text == "" {
			return
		}
	}
	if !a.suppressor.Allow(text) {
		_ = a.emitter.Emit(context.Background(), apperrors.SeverityInfo,
			telemetry.KindDuplicateSuppressed, text)
		return
	}
	if a.transcript != nil {
		err := a.transcript.AppendAnnouncement(context.Background(), storage.TranscriptEntry{
			Timestamp: a.clock(),
			Category:  string(category),
			Text:      text,
			Priority:  priority.String(),
		})
		if err != nil {
			a.logger.Printf("announce: append transcript: %v", err)
		}
	}
	if priority == PriorityImmediate {
		a.sink.AnnounceInterrupt(text)
		return
	}
	a.sink.Announce(text, priority)
}

// applyRewrite runs the user phrase hook, absorbing any panic so a broken
// hook cannot take narration down with it.
func (a *Announcer) applyRewrite(category, text string) (out string) {
	out = text
	defer func() {
		if r := recover(); r != nil {
			a.logger.Printf("announce: phrase hook panicked: %v", r)
			out = text
		}
	}()
	return a.rewrite(category, text)
}
