// Package settings persists user preferences as a flat key=value file.
//
// The file is user-editable, so loading is forgiving: a missing file, an
// unreadable file, or a malformed line falls back to defaults rather than
// stopping narration. Environment variables layer on top for development.
package settings

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/quietpath/duelsense/internal/platform/config"
)

// Settings are the user-tunable preferences.
type Settings struct {
	// Locale is the BCP 47 tag narration phrases render in.
	Locale string `env:"DUELSENSE_LOCALE"`
	// Verbose enables diagnostics logging in the runner.
	Verbose bool `env:"DUELSENSE_VERBOSE"`
	// TranscriptPath is the SQLite file announcements are appended to.
	// Empty disables the transcript.
	TranscriptPath string `env:"DUELSENSE_TRANSCRIPT_DB"`
	// PhraseHookPath is the Lua phrase-hook script. Empty disables hooks.
	PhraseHookPath string `env:"DUELSENSE_PHRASE_HOOKS"`
	// DuplicateWindowMS overrides the duplicate suppression window.
	DuplicateWindowMS int `env:"DUELSENSE_DUPLICATE_WINDOW_MS"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		Locale:            "en-US",
		DuplicateWindowMS: 500,
	}
}

// Load reads settings from path. Any failure, including a missing file,
// yields defaults; unknown keys and malformed lines are skipped so a file
// written by a newer version still loads.
func Load(path string) Settings {
	s := Default()
	f, err := os.Open(path)
	if err != nil {
		return s
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		s.apply(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return s
}

// LoadWithEnv loads the file, then overlays environment variables.
func LoadWithEnv(path string) (Settings, error) {
	s := Load(path)
	if err := config.ParseEnv(&s); err != nil {
		return s, fmt.Errorf("overlay settings: %w", err)
	}
	return s, nil
}

func (s *Settings) apply(key, value string) {
	switch key {
	case "locale":
		if value != "" {
			s.Locale = value
		}
	case "verbose":
		if b, err := strconv.ParseBool(value); err == nil {
			s.Verbose = b
		}
	case "transcript_db":
		s.TranscriptPath = value
	case "phrase_hooks":
		s.PhraseHookPath = value
	case "duplicate_window_ms":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			s.DuplicateWindowMS = n
		}
	}
}

// Save writes the settings file, creating parent directories as needed. Keys
// are emitted in a stable order so saved files diff cleanly.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	pairs := map[string]string{
		"locale":              s.Locale,
		"verbose":             strconv.FormatBool(s.Verbose),
		"transcript_db":       s.TranscriptPath,
		"phrase_hooks":        s.PhraseHookPath,
		"duplicate_window_ms": strconv.Itoa(s.DuplicateWindowMS),
	}
	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, pairs[key])
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
