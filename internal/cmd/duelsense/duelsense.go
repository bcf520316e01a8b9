// Package duelsense implements the development runner: it replays a Lua
// scenario through the narration pipeline and prints what a screen reader
// would have spoken.
package duelsense

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/quietpath/duelsense/internal/script"
	"github.com/quietpath/duelsense/internal/settings"
	"github.com/quietpath/duelsense/internal/sim"
	"github.com/quietpath/duelsense/internal/storage/sqlite"
)

// Config holds runner configuration.
type Config struct {
	Scenario   string `env:"DUELSENSE_SCENARIO_FILE"`
	Settings   string `env:"DUELSENSE_SETTINGS_FILE"`
	Locale     string `env:"DUELSENSE_LOCALE"`
	Transcript string `env:"DUELSENSE_TRANSCRIPT_DB"`
	Hooks      string `env:"DUELSENSE_PHRASE_HOOKS"`
	Verbose    bool   `env:"DUELSENSE_VERBOSE"`
}

// ParseConfig parses flags into a Config, with environment defaults.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.StringVar(&cfg.Settings, "settings", cfg.Settings, "path to settings file")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "narration locale, overrides settings")
	fs.StringVar(&cfg.Transcript, "transcript", cfg.Transcript, "sqlite transcript path, overrides settings")
	fs.StringVar(&cfg.Hooks, "hooks", cfg.Hooks, "lua phrase hook path, overrides settings")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable diagnostics logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes one scenario and writes the spoken lines to out.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	prefs := settings.Default()
	if cfg.Settings != "" {
		prefs = settings.Load(cfg.Settings)
	}
	if cfg.Locale != "" {
		prefs.Locale = cfg.Locale
	}
	if cfg.Transcript != "" {
		prefs.TranscriptPath = cfg.Transcript
	}
	if cfg.Hooks != "" {
		prefs.PhraseHookPath = cfg.Hooks
	}

	scenario, err := script.LoadScenario(cfg.Scenario)
	if err != nil {
		return err
	}

	opts := []sim.Option{sim.WithLocale(prefs.Locale)}
	if prefs.DuplicateWindowMS > 0 {
		opts = append(opts, sim.WithSuppressWindow(time.Duration(prefs.DuplicateWindowMS)*time.Millisecond))
	}
	if cfg.Verbose || prefs.Verbose {
		opts = append(opts, sim.WithLogger(log.New(errOut, "duelsense: ", log.LstdFlags)))
	}

	if prefs.PhraseHookPath != "" {
		rewrite, err := script.LoadPhraseHooks(prefs.PhraseHookPath)
		if err != nil {
			return err
		}
		opts = append(opts, sim.WithRewrite(rewrite))
	}

	var store *sqlite.Store
	if prefs.TranscriptPath != "" {
		store, err = sqlite.Open(prefs.TranscriptPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, sim.WithTranscript(store))
	}

	fmt.Fprintf(out, "scenario: %s\n", scenario.Name)
	for _, line := range sim.New(opts...).Run(scenario) {
		fmt.Fprintln(out, line)
	}

	if store != nil {
		entries, err := store.ListRecentAnnouncements(ctx, 20)
		if err != nil {
			return fmt.Errorf("list transcript: %w", err)
		}
		fmt.Fprintf(out, "transcript entries: %d\n", len(entries))
	}
	return nil
}
