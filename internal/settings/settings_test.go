package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "absent.conf"))
	want := Default()
	if got != want {
		t.Errorf("Load on missing file = %+v, want defaults %+v", got, want)
	}
}

func TestLoadParsesKnownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duelsense.conf")
	content := `# narration settings
locale = pt-BR
verbose = true
transcript_db = /tmp/transcript.db
phrase_hooks = hooks.lua
duplicate_window_ms = 750
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got := Load(path)
	if got.Locale != "pt-BR" {
		t.Errorf("Locale = %q, want pt-BR", got.Locale)
	}
	if !got.Verbose {
		t.Error("Verbose = false, want true")
	}
	if got.TranscriptPath != "/tmp/transcript.db" {
		t.Errorf("TranscriptPath = %q", got.TranscriptPath)
	}
	if got.PhraseHookPath != "hooks.lua" {
		t.Errorf("PhraseHookPath = %q", got.PhraseHookPath)
	}
	if got.DuplicateWindowMS != 750 {
		t.Errorf("DuplicateWindowMS = %d, want 750", got.DuplicateWindowMS)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duelsense.conf")
	content := `locale = fr-FR
this line has no separator
future_key = ignored
duplicate_window_ms = not-a-number
verbose = maybe
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got := Load(path)
	if got.Locale != "fr-FR" {
		t.Errorf("Locale = %q, want fr-FR", got.Locale)
	}
	if got.DuplicateWindowMS != Default().DuplicateWindowMS {
		t.Errorf("DuplicateWindowMS = %d, want default", got.DuplicateWindowMS)
	}
	if got.Verbose {
		t.Error("Verbose = true, want default false")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "duelsense.conf")
	want := Settings{
		Locale:            "de-DE",
		Verbose:           true,
		TranscriptPath:    "transcript.db",
		PhraseHookPath:    "hooks.lua",
		DuplicateWindowMS: 250,
	}
	if err := want.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := Load(path); got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duelsense.conf")
	if err := os.WriteFile(path, []byte("locale = en-US\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("DUELSENSE_LOCALE", "ja-JP")
	t.Setenv("DUELSENSE_DUPLICATE_WINDOW_MS", "900")

	got, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if got.Locale != "ja-JP" {
		t.Errorf("Locale = %q, want env override ja-JP", got.Locale)
	}
	if got.DuplicateWindowMS != 900 {
		t.Errorf("DuplicateWindowMS = %d, want 900", got.DuplicateWindowMS)
	}
}
