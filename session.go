// Package snapshotmatcher provides snapshot assertions for Go tests.
//
// The first time an assertion runs, the actual value is encoded (JSON by
// default) and stored under testdata/snapshots/<package>/<test>-<n>.json.
// Later runs encode the value again and fail with a line diff when it no
// longer matches. Delete a snapshot file to regenerate it.
//
//	func TestRender(t *testing.T) {
//		snapshotmatcher.Assert(t, render())
//	}
//
// Each Session numbers repeated assertions with the same name, so several
// snapshots in one test get -0, -1, ... suffixes in call order.
package snapshotmatcher

import (
	"fmt"
	"io"
	"reflect"
	"sync"

	"snapshot-matcher/internal/compare"
	"snapshot-matcher/internal/config"
	"snapshot-matcher/internal/diff"
	"snapshot-matcher/internal/identity"
	"snapshot-matcher/internal/log"
	"snapshot-matcher/internal/registry"
	"snapshot-matcher/internal/store"
)

type (
	// Config holds session settings; see DefaultConfig and LoadConfig.
	Config = config.Config
	// Site names the test code that owns a snapshot.
	Site = identity.Site
	// Identity is a resolved snapshot location.
	Identity = identity.Identity
	// Result is the verdict of one snapshot evaluation.
	Result = compare.Result

	WriteError    = compare.WriteError
	ReadError     = compare.ReadError
	MismatchError = compare.MismatchError
)

// ErrResolution is returned when no assertion site can be determined.
var ErrResolution = identity.ErrResolution

// pkgPath is skipped when inferring the caller's site.
var pkgPath = reflect.TypeOf(Session{}).PkgPath()

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config { return config.Default() }

// LoadConfig reads settings from SNAPSHOT_* environment variables and, when
// present, the .snapshot.yaml file in the working directory.
func LoadConfig() (Config, error) {
	var opts []config.Option
	if ok, _ := store.Exists(config.DefaultFile); ok {
		opts = append(opts, config.WithConfigFile(config.DefaultFile))
	}
	return config.Load(opts...)
}

// Session owns the sequence counter and the comparator shared by the
// matchers it creates.
type Session struct {
	cfg        Config
	counter    *registry.Counter
	resolver   *identity.Resolver
	comparator *compare.Comparator
}

// NewSession validates cfg and returns a session with a fresh counter.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot session: %w", err)
	}
	enc, err := cfg.Encoder()
	if err != nil {
		return nil, err
	}
	counter := registry.New()
	comp := compare.New(enc)
	comp.Unified = cfg.Report.Unified
	comp.Diff = diff.Options{Context: cfg.Report.Context, MaxBytes: cfg.Report.MaxBytes}

	return &Session{
		cfg:        cfg,
		counter:    counter,
		resolver:   identity.NewResolver(cfg.Root, enc.Ext(), counter),
		comparator: comp,
	}, nil
}

var (
	defaultOnce    sync.Once
	defaultSession *Session
)

// Default returns the process-wide session, created on first use from
// LoadConfig. Invalid configuration is logged and replaced by defaults.
func Default() *Session {
	defaultOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			log.Warn("snapshot config ignored", "error", err)
			cfg = config.Default()
		}
		if cfg.Log.Verbose || cfg.Log.JSON {
			log.Init(log.Options{Verbose: cfg.Log.Verbose, JSONFormat: cfg.Log.JSON})
		}
		s, err := NewSession(cfg)
		if err != nil {
			log.Warn("snapshot config ignored", "error", err)
			s, _ = NewSession(config.Default())
		}
		defaultSession = s
	})
	return defaultSession
}

// Config returns the session settings.
func (s *Session) Config() Config { return s.cfg }

// SetOutput redirects mismatch reports, stdout by default. nil discards them.
func (s *Session) SetOutput(w io.Writer) { s.comparator.Out = w }

// MatchesSnapshot returns a matcher named after the calling function.
func (s *Session) MatchesSnapshot() (*SnapshotMatcher, error) {
	site, err := identity.CallerSite(pkgPath)
	if err != nil {
		return nil, err
	}
	return s.MatchesSnapshotAt(site, "")
}

// MatchesSnapshotNamed returns a matcher for the calling package that uses
// name instead of the function name.
func (s *Session) MatchesSnapshotNamed(name string) (*SnapshotMatcher, error) {
	site, err := identity.CallerSite(pkgPath)
	if err != nil {
		return nil, err
	}
	return s.MatchesSnapshotAt(site, name)
}

// MatchesSnapshotAt returns a matcher for an explicit site. An empty name
// falls back to site.Method.
func (s *Session) MatchesSnapshotAt(site Site, name string) (*SnapshotMatcher, error) {
	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot matcher for %q: %w", site.String(), err)
	}
	return &SnapshotMatcher{session: s, site: site, name: name}, nil
}

// Evaluate compares value with the snapshot at path, creating it if absent.
func (s *Session) Evaluate(value any, path string) Result {
	return s.comparator.Evaluate(value, path)
}

// MatchesSnapshot is Default().MatchesSnapshot.
func MatchesSnapshot() (*SnapshotMatcher, error) {
	site, err := identity.CallerSite(pkgPath)
	if err != nil {
		return nil, err
	}
	return Default().MatchesSnapshotAt(site, "")
}

// MatchesSnapshotNamed is Default().MatchesSnapshotNamed.
func MatchesSnapshotNamed(name string) (*SnapshotMatcher, error) {
	site, err := identity.CallerSite(pkgPath)
	if err != nil {
		return nil, err
	}
	return Default().MatchesSnapshotAt(site, name)
}
