package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validWatch returns a fully populated configuration that passes validation.
func validWatch() Watch {
	w := Default()
	w.Dir = "/tmp/logs"
	w.Ext = ".log"
	w.Text = "ERROR"
	return w
}

// ── Normalize ────────────────────────────────────────────────────────────────

func TestNormalize_AddsLeadingDot(t *testing.T) {
	w := validWatch()
	w.Ext = "log"
	if err := w.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if w.Ext != ".log" {
		t.Errorf("Ext = %q, want .log", w.Ext)
	}
}

func TestNormalize_KeepsExistingDot(t *testing.T) {
	w := validWatch()
	w.Ext = ".txt"
	if err := w.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if w.Ext != ".txt" {
		t.Errorf("Ext = %q, want .txt", w.Ext)
	}
}

func TestNormalize_AbsoluteDir(t *testing.T) {
	w := validWatch()
	w.Dir = "relative/path"
	if err := w.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !filepath.IsAbs(w.Dir) {
		t.Errorf("Dir = %q, want absolute path", w.Dir)
	}
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestValidate_Valid(t *testing.T) {
	w := validWatch()
	if err := w.Validate(); err != nil {
		t.Errorf("Validate returned error for valid config: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Watch)
	}{
		{"missing dir", func(w *Watch) { w.Dir = "" }},
		{"missing ext", func(w *Watch) { w.Ext = "" }},
		{"missing text", func(w *Watch) { w.Text = "" }},
		{"zero interval", func(w *Watch) { w.Interval = 0 }},
		{"negative interval", func(w *Watch) { w.Interval = -0.5 }},
		{"verbosity too low", func(w *Watch) { w.Verbosity = 0 }},
		{"verbosity too high", func(w *Watch) { w.Verbosity = 6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWatch()
			tt.mutate(&w)
			if err := w.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// ── Defaults ─────────────────────────────────────────────────────────────────

func TestDefault(t *testing.T) {
	w := Default()
	if w.Interval != 1.0 {
		t.Errorf("Interval = %v, want 1.0", w.Interval)
	}
	if w.Verbosity != VerbosityInfo {
		t.Errorf("Verbosity = %d, want %d", w.Verbosity, VerbosityInfo)
	}
}

func TestPollInterval_Fractional(t *testing.T) {
	w := Default()
	w.Interval = 0.25
	if got := w.PollInterval(); got != 250*time.Millisecond {
		t.Errorf("PollInterval = %v, want 250ms", got)
	}
}

// ── LoadFile ─────────────────────────────────────────────────────────────────

func TestLoadFile_Missing(t *testing.T) {
	w, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile on missing file: %v", err)
	}
	if w.Interval != 1.0 || w.Verbosity != VerbosityInfo {
		t.Errorf("expected defaults for missing file, got %+v", w)
	}
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "dir: /var/log\next: log\ntext: panic\ninterval: 2.5\nverbosity: 1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	w, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if w.Dir != "/var/log" || w.Ext != "log" || w.Text != "panic" {
		t.Errorf("unexpected config: %+v", w)
	}
	if w.Interval != 2.5 {
		t.Errorf("Interval = %v, want 2.5", w.Interval)
	}
	if w.Verbosity != VerbosityDebug {
		t.Errorf("Verbosity = %d, want %d", w.Verbosity, VerbosityDebug)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("dir: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error for malformed YAML, got nil")
	}
}
