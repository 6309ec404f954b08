package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mshioda/fude/internal/engine"
	"github.com/mshioda/fude/internal/textenc"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Editor.UndoLimit != engine.DefaultMaxUndoEntries {
		t.Errorf("UndoLimit = %d, want %d", cfg.Editor.UndoLimit, engine.DefaultMaxUndoEntries)
	}
	if cfg.Files.Encoding != "UTF-8" {
		t.Errorf("Encoding = %q, want UTF-8", cfg.Files.Encoding)
	}
	if !cfg.Session.RestoreState {
		t.Error("RestoreState = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = 8
undo_limit = 50

[files]
encoding = "Shift_JIS"

[session]
restore_state = false
state_file = "/tmp/fude-state.json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if cfg.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.UndoLimit != 50 {
		t.Errorf("UndoLimit = %d, want 50", cfg.Editor.UndoLimit)
	}
	if got := cfg.Encoding(); got != textenc.ShiftJIS {
		t.Errorf("Encoding() = %v, want ShiftJIS", got)
	}
	if cfg.Session.RestoreState {
		t.Error("RestoreState = true, want false")
	}
	if got := cfg.StatePath(); got != "/tmp/fude-state.json" {
		t.Errorf("StatePath() = %q, want override", got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 2\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Editor.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2", cfg.Editor.TabWidth)
	}
	if cfg.Editor.UndoLimit != engine.DefaultMaxUndoEntries {
		t.Errorf("UndoLimit = %d, want default %d", cfg.Editor.UndoLimit, engine.DefaultMaxUndoEntries)
	}
	if cfg.Files.Encoding != "UTF-8" {
		t.Errorf("Encoding = %q, want default UTF-8", cfg.Files.Encoding)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "[editor\ntab_width = 8\n")

	_, err := Load(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load error = %v, want *ParseError", err)
	}
	if pe.Path != path {
		t.Errorf("Path = %q, want %q", pe.Path, path)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 8\n")

	t.Setenv("FUDE_TAB_WIDTH", "2")
	t.Setenv("FUDE_ENCODING", "utf-16le")
	t.Setenv("FUDE_RESTORE_STATE", "false")
	t.Setenv("FUDE_UNDO_LIMIT", "lots")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Editor.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want env override 2", cfg.Editor.TabWidth)
	}
	if got := cfg.Encoding(); got != textenc.UTF16LE {
		t.Errorf("Encoding() = %v, want UTF16LE", got)
	}
	if cfg.Session.RestoreState {
		t.Error("RestoreState = true, want env override false")
	}
	// Unparseable override is ignored.
	if cfg.Editor.UndoLimit != engine.DefaultMaxUndoEntries {
		t.Errorf("UndoLimit = %d, want default %d", cfg.Editor.UndoLimit, engine.DefaultMaxUndoEntries)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		setting string
	}{
		{"tab width zero", func(c *Config) { c.Editor.TabWidth = 0 }, "editor.tab_width"},
		{"tab width huge", func(c *Config) { c.Editor.TabWidth = 17 }, "editor.tab_width"},
		{"undo limit zero", func(c *Config) { c.Editor.UndoLimit = 0 }, "editor.undo_limit"},
		{"unknown encoding", func(c *Config) { c.Files.Encoding = "latin-1" }, "files.encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate error = %v, want *ValidationError", err)
			}
			if ve.Setting != tt.setting {
				t.Errorf("Setting = %q, want %q", ve.Setting, tt.setting)
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Files.Encoding = "Shift_JIS"

	d := engine.New(cfg.EngineOptions()...)
	if got := d.Encoding(); got != textenc.ShiftJIS {
		t.Errorf("Encoding() = %v, want ShiftJIS", got)
	}
}
