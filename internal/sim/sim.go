// Package sim runs scripted duels against the narration pipeline without a
// game client: a scenario builds a fake scene graph, feeds events and zone
// counts to the announcer, and drives the navigator, while a recorder
// captures everything the sink would have spoken.
package sim

import (
	"log"
	"time"

	"github.com/quietpath/duelsense/internal/duel/announce"
	"github.com/quietpath/duelsense/internal/duel/event"
	"github.com/quietpath/duelsense/internal/duel/nav"
	"github.com/quietpath/duelsense/internal/duel/phrase"
	"github.com/quietpath/duelsense/internal/duel/zone"
	"github.com/quietpath/duelsense/internal/scene"
	"github.com/quietpath/duelsense/internal/scene/scenetest"
	"github.com/quietpath/duelsense/internal/sched"
	"github.com/quietpath/duelsense/internal/script"
	"github.com/quietpath/duelsense/internal/storage"
)

// frameDuration is the simulated wall-clock cost of one tick, matching a
// 60fps host.
const frameDuration = 16 * time.Millisecond

// Recorder is an announce.Sink that captures output in order.
type Recorder struct {
	lines []string
}

var _ announce.Sink = (*Recorder)(nil)

// Announce records text.
func (r *Recorder) Announce(text string, _ announce.Priority) {
	r.lines = append(r.lines, text)
}

// AnnounceInterrupt records text; the recorder has no speech queue to cut.
func (r *Recorder) AnnounceInterrupt(text string) {
	r.lines = append(r.lines, text)
}

// Lines returns the recorded announcements in delivery order.
func (r *Recorder) Lines() []string {
	return append([]string(nil), r.lines...)
}

// Sim binds one scenario run's graph, announcer, and navigator.
type Sim struct {
	graph     *scenetest.Graph
	recorder  *Recorder
	scheduler *sched.Scheduler
	announcer *announce.Announcer
	nav       *nav.Navigator

	now   time.Time
	stack []string
}

// Option configures a simulator.
type Option func(*options)

type options struct {
	locale         string
	rewrite        func(category, text string) string
	transcript     storage.TranscriptStore
	logger         *log.Logger
	suppressWindow time.Duration
}

// WithLocale sets the narration locale.
func WithLocale(locale string) Option {
	return func(o *options) { o.locale = locale }
}

// WithSuppressWindow overrides the duplicate suppression window.
func WithSuppressWindow(window time.Duration) Option {
	return func(o *options) { o.suppressWindow = window }
}

// WithRewrite wires a phrase hook.
func WithRewrite(fn script.RewriteFunc) Option {
	return func(o *options) { o.rewrite = fn }
}

// WithTranscript wires an announcement history store.
func WithTranscript(store storage.TranscriptStore) Option {
	return func(o *options) { o.transcript = store }
}

// WithLogger overrides the diagnostics logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a simulator with a fresh graph and an empty recorder.
func New(opts ...Option) *Sim {
	o := options{locale: phrase.BaseLocale}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Sim{
		graph:    scenetest.NewGraph(),
		recorder: &Recorder{},
		now:      time.Unix(0, 0),
	}
	s.scheduler = sched.NewWithClock(s.clock)

	printer := phrase.NewPrinter(o.locale)
	announcerOpts := []announce.Option{
		announce.WithClock(s.clock),
		announce.WithStackTop(s.stackTop),
	}
	if o.suppressWindow > 0 {
		announcerOpts = append(announcerOpts, announce.WithSuppressWindow(o.suppressWindow))
	}
	if o.rewrite != nil {
		announcerOpts = append(announcerOpts, announce.WithRewrite(o.rewrite))
	}
	if o.transcript != nil {
		announcerOpts = append(announcerOpts, announce.WithTranscript(o.transcript))
	}
	if o.logger != nil {
		announcerOpts = append(announcerOpts, announce.WithLogger(o.logger))
	}
	s.announcer = announce.New(s.recorder, printer, s.scheduler, announcerOpts...)
	s.nav = nav.New(s.graph, printer, s.recorder)
	if o.logger != nil {
		s.nav.SetLogger(o.logger)
	}
	return s
}

func (s *Sim) clock() time.Time { return s.now }

// Graph exposes the fake scene graph for assertions on click side effects.
func (s *Sim) Graph() *scenetest.Graph { return s.graph }

func (s *Sim) stackTop() (string, bool) {
	if len(s.stack) == 0 {
		return "", false
	}
	return s.stack[len(s.stack)-1], true
}

// Run executes every scenario step in order and returns the recorded output.
// Unknown step kinds and malformed arguments are skipped; a scripting mistake
// should not abort the rest of the scenario.
func (s *Sim) Run(scenario *script.Scenario) []string {
	if s == nil || scenario == nil {
		return nil
	}
	for _, step := range scenario.Steps {
		s.apply(step)
	}
	return s.recorder.Lines()
}

func (s *Sim) apply(step script.Step) {
	switch step.Kind {
	case "card":
		s.applyCard(step.Args)
	case "player":
		s.graph.AddPlayerTarget(argString(step.Args, "id"), argString(step.Args, "name"), argBool(step.Args, "opponent"))
	case "prompt":
		s.graph.SetPrompt(argString(step.Args, "primary"), argString(step.Args, "secondary"), argBool(step.Args, "enabled"))
	case "submit":
		s.graph.SetSubmit(argString(step.Args, "text"), argBool(step.Args, "enabled"))
	case "event":
		fields, _ := step.Args["fields"].(map[string]any)
		s.announcer.HandleEvent(event.Record{
			TypeName: argString(step.Args, "type"),
			Fields:   fields,
		})
	case "count":
		key, ok := zone.ParseKey(argString(step.Args, "zone"))
		if !ok {
			return
		}
		s.announcer.ObserveZoneCount(key, argInt(step.Args, "count"))
	case "tick":
		frames := argInt(step.Args, "frames")
		if frames < 1 {
			frames = 1
		}
		for i := 0; i < frames; i++ {
			s.now = s.now.Add(frameDuration)
			s.announcer.Tick()
		}
	case "key":
		s.applyKey(argString(step.Args, "command"), argString(step.Args, "mode"))
	case "sleep":
		s.now = s.now.Add(time.Duration(argInt(step.Args, "ms")) * time.Millisecond)
		s.announcer.Tick()
	}
}

func (s *Sim) applyCard(args map[string]any) {
	key, ok := zone.ParseKey(argString(args, "zone"))
	if !ok {
		return
	}
	var markers []scene.Marker
	if argBool(args, "eligible") {
		markers = append(markers, scene.MarkerEligible)
	}
	if argBool(args, "selected") {
		markers = append(markers, scene.MarkerSelected)
	}
	name := argString(args, "name")
	s.graph.AddCard(argString(args, "id"), name, key, float64(argInt(args, "x")), markers...)
	if key.Zone == zone.Stack {
		s.stack = append(s.stack, name)
	}
}

func (s *Sim) applyKey(command, mode string) {
	m := parseMode(mode)
	switch command {
	case "focus":
		s.nav.Focus(m)
	case "next":
		s.nav.Next(m)
	case "previous":
		s.nav.Previous(m)
	case "first":
		s.nav.First(m)
	case "last":
		s.nav.Last(m)
	case "activate":
		s.nav.Activate(m)
	case "release":
		s.nav.Release(m)
	}
}

func parseMode(mode string) nav.Mode {
	switch mode {
	case "target":
		return nav.ModeTarget
	case "battlefield":
		return nav.ModeBattlefield
	default:
		return nav.ModeZone
	}
}

func argString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func argBool(args map[string]any, key string) bool {
	v, _ := args[key].(bool)
	return v
}

func argInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
