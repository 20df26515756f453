// Package config loads snapshot settings with koanf.
//
// Sources, later overriding earlier:
//  1. Defaults (Default)
//  2. An optional YAML file (WithConfigFile, or the path in SNAPSHOT_CONFIG)
//  3. SNAPSHOT_-prefixed environment variables, e.g. SNAPSHOT_REPORT_UNIFIED=true
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"snapshot-matcher/internal/encode"
	"snapshot-matcher/internal/identity"
)

const (
	// DefaultEnvPrefix is the environment variable prefix.
	DefaultEnvPrefix = "SNAPSHOT_"
	// DefaultFile is looked up in the working directory by callers that want
	// per-package settings without environment variables.
	DefaultFile = ".snapshot.yaml"
)

// Config holds every tunable of a snapshot session.
type Config struct {
	// Root is the snapshot directory, relative to the package under test.
	Root string `koanf:"root"`
	// Format selects the canonical encoder: json or yaml.
	Format string `koanf:"format"`
	Report Report `koanf:"report"`
	Log    Log    `koanf:"log"`
}

// Report controls mismatch reports.
type Report struct {
	// Unified appends a unified diff (snapshot → actual) to the report.
	Unified bool `koanf:"unified"`
	// Context is the number of context lines in the unified diff.
	Context int `koanf:"context"`
	// MaxBytes omits the unified diff when both sides exceed it together.
	MaxBytes int `koanf:"maxbytes"`
}

// Log mirrors log.Options.
type Log struct {
	Verbose bool `koanf:"verbose"`
	JSON    bool `koanf:"json"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Root:   identity.DefaultRoot,
		Format: "json",
		Report: Report{Context: 3, MaxBytes: 2_000_000},
	}
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, errors.New("root must not be empty"))
	}
	if _, err := encode.ForFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Report.Context < 0 {
		errs = append(errs, fmt.Errorf("report.context must be >= 0, got %d", c.Report.Context))
	}
	if c.Report.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("report.maxbytes must be >= 0, got %d", c.Report.MaxBytes))
	}
	return errors.Join(errs...)
}

// Encoder returns the encoder named by Format.
func (c Config) Encoder() (encode.Encoder, error) {
	return encode.ForFormat(c.Format)
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *loader) { l.envPrefix = prefix }
}

// WithConfigFile sets the YAML file to load. The file must exist.
func WithConfigFile(path string) Option {
	return func(l *loader) { l.filePath = path }
}

// Load builds a Config from defaults, the optional file and the environment.
func Load(opts ...Option) (Config, error) {
	l := &loader{k: koanf.New("."), envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(l)
	}
	if l.filePath == "" {
		l.filePath = os.Getenv(l.envPrefix + "CONFIG")
	}

	if l.filePath != "" {
		if err := l.k.Load(file.Provider(l.filePath), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", l.filePath, err)
		}
	}

	// SNAPSHOT_REPORT_UNIFIED -> report.unified
	transform := func(s string) string {
		s = strings.TrimPrefix(s, l.envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}
	if err := l.k.Load(env.Provider(l.envPrefix, ".", transform), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
