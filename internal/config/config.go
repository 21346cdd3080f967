// Package config holds the immutable watch configuration and its loading
// and validation logic. Values come from command-line flags, optionally
// seeded from a YAML config file; validation runs once at startup and any
// failure is fatal before the watch loop is entered.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Verbosity codes map onto the five standard severities. Codes outside
// the 1–5 range are a configuration error, not a silent fallback.
const (
	VerbosityDebug = 1
	VerbosityInfo  = 2
	VerbosityWarn  = 3
	VerbosityError = 4
	VerbosityFatal = 5
)

// Watch is the immutable configuration for one watch loop lifetime.
type Watch struct {
	// Dir is the directory to monitor. Not recursive.
	Dir string `yaml:"dir" validate:"required"`

	// Ext is the file extension to filter on. By convention it carries no
	// leading dot on input; Normalize adds one.
	Ext string `yaml:"ext" validate:"required"`

	// Text is the magic text searched for in newly appended lines.
	// Matching is a case-insensitive substring test.
	Text string `yaml:"text" validate:"required"`

	// Interval is the polling interval in seconds. Fractional values are
	// allowed (e.g. 0.5).
	Interval float64 `yaml:"interval" validate:"gt=0"`

	// Verbosity selects the minimum log severity, 1 (debug) through
	// 5 (fatal).
	Verbosity int `yaml:"verbosity" validate:"min=1,max=5"`
}

// Default returns a Watch with the documented defaults applied and all
// required fields left empty.
func Default() Watch {
	return Watch{
		Interval:  1.0,
		Verbosity: VerbosityInfo,
	}
}

// Normalize canonicalizes the configuration in place: the extension gains
// a leading dot if missing and the directory is made absolute so that
// tracked-file identities are stable regardless of the working directory.
func (w *Watch) Normalize() error {
	if w.Ext != "" && !strings.HasPrefix(w.Ext, ".") {
		w.Ext = "." + w.Ext
	}
	if w.Dir != "" {
		abs, err := filepath.Abs(w.Dir)
		if err != nil {
			return fmt.Errorf("resolve directory %q: %w", w.Dir, err)
		}
		w.Dir = abs
	}
	return nil
}

// Validate checks the configuration against its struct tags. It must be
// called after Normalize and before the watch loop starts.
func (w *Watch) Validate() error {
	if err := validator.New().Struct(w); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// PollInterval returns the polling interval as a duration.
func (w *Watch) PollInterval() time.Duration {
	return time.Duration(w.Interval * float64(time.Second))
}

// LoadFile reads a YAML config file into a Watch seeded with defaults.
// A missing file is not an error: the defaults are returned unchanged so
// that flags alone can fully specify a watch.
func LoadFile(path string) (Watch, error) {
	w := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return w, nil
	}
	if err != nil {
		return w, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return w, nil
}
