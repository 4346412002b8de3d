// Package config holds runtime settings for a conversion run: defaults,
// validation and output directory resolution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"webpify/internal/codec"
	"webpify/internal/planner"
)

// UIMode selects how progress is shown.
type UIMode string

const (
	UITUI   UIMode = "tui"   // Live bubbletea view (default on a terminal).
	UIPlain UIMode = "plain" // Single-line progress bar, safe for pipes and CI.
	UIGUI   UIMode = "gui"   // Native dialogs.
)

// LogLevelEnv overrides the default log level.
const LogLevelEnv = "WEBPIFY_LOG_LEVEL"

// DefaultLogFile is where logs go while the TUI owns the terminal.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "webpify.log")
}

type Config struct {
	InputDir  string
	OutputDir string // Default: sibling "<input>_webp".

	Workers  int     // Default: 0 (one per CPU).
	Quality  float32 // Default: 80. Ignored when Lossless.
	Lossless bool

	UI       UIMode
	LogLevel string // debug, info, warn, error. Default: $WEBPIFY_LOG_LEVEL or info.
	LogFile  string
}

func DefaultConfig() Config {
	level := strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv)))
	if level == "" {
		level = "info"
	}
	return Config{
		Workers:  0,
		Quality:  codec.DefaultQuality,
		Lossless: false,
		UI:       UITUI,
		LogLevel: level,
	}
}

// Validate checks ranges and enum fields. It does not touch the filesystem.
func (c *Config) Validate() error {
	// The encoder treats zero as unset, so the lowest accepted value is 1.
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("invalid quality %v (use 1-100)", c.Quality)
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	switch c.UI {
	case UITUI, UIPlain, UIGUI:
	default:
		return fmt.Errorf("invalid ui mode %q (use 'tui', 'plain' or 'gui')", c.UI)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (use debug, info, warn or error)", c.LogLevel)
	}
	if c.InputDir == "" {
		return errors.New("input directory required")
	}
	return nil
}

// DefaultOutputDir is the sibling directory "<name>_webp" next to inputDir.
func DefaultOutputDir(inputDir string) string {
	clean := filepath.Clean(inputDir)
	if abs, err := filepath.Abs(clean); err == nil {
		clean = abs
	}
	return filepath.Join(filepath.Dir(clean), filepath.Base(clean)+planner.DirSuffix)
}

// ResolveOutputDir fills OutputDir when unset and rejects an output that
// resolves to the input directory itself.
func (c *Config) ResolveOutputDir() error {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir(c.InputDir)
	}
	inAbs, err := filepath.Abs(c.InputDir)
	if err != nil {
		return err
	}
	outAbs, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return err
	}
	if inAbs == outAbs {
		return errors.New("output directory must differ from input directory")
	}
	c.OutputDir = outAbs
	return nil
}

// CodecOptions maps the encoder settings onto codec.Options.
func (c *Config) CodecOptions() codec.Options {
	return codec.Options{Quality: c.Quality, Lossless: c.Lossless}
}
