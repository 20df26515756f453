// Package identity derives the on-disk location of a snapshot from the site
// of the assertion that owns it.
//
// Layout: <root>/<class with dots as slashes>/<name or method>-<seq><ext>.
// The sequence number comes from a registry.Counter keyed by everything
// before the dash, so repeated assertions at one site never share a file.
package identity

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"snapshot-matcher/internal/registry"
)

const (
	// DefaultRoot is relative to the package under test; the go tool ignores
	// testdata directories.
	DefaultRoot = "testdata/snapshots"
	DefaultExt  = ".json"
)

// invalidFileCharsRe contains characters that are invalid in Windows filenames.
var invalidFileCharsRe = regexp.MustCompile(`[\\:*?"<>|]`)

// Identity is one resolved snapshot location.
type Identity struct {
	Key  string // "<class>/<name-or-method>"
	Seq  int64
	Path string
}

// String returns "<key>-<seq>".
func (id Identity) String() string {
	return fmt.Sprintf("%s-%d", id.Key, id.Seq)
}

// Resolver maps assertion sites to snapshot identities.
type Resolver struct {
	Root    string
	Ext     string
	Counter *registry.Counter
}

// NewResolver returns a resolver writing under root with the given extension.
// Empty values fall back to DefaultRoot and DefaultExt; a nil counter gets a
// fresh one.
func NewResolver(root, ext string, c *registry.Counter) *Resolver {
	if root == "" {
		root = DefaultRoot
	}
	if ext == "" {
		ext = DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if c == nil {
		c = registry.New()
	}
	return &Resolver{Root: root, Ext: ext, Counter: c}
}

// Key returns the counter key for site, using name instead of the method
// when name is non-empty. It does not touch the counter.
func (r *Resolver) Key(site Site, name string) (string, error) {
	if err := site.Validate(); err != nil {
		return "", fmt.Errorf("resolve %q: %w", site.String(), err)
	}
	leaf := name
	if leaf == "" {
		leaf = site.Method
	}
	return sanitize(strings.ReplaceAll(site.Class, ".", "/")) + "/" + sanitize(leaf), nil
}

// Resolve issues the next identity for site. Every call advances the
// counter for the key, so callers that need a stable path must cache it.
func (r *Resolver) Resolve(site Site, name string) (Identity, error) {
	key, err := r.Key(site, name)
	if err != nil {
		return Identity{}, err
	}
	seq := r.Counter.Next(key)
	id := Identity{Key: key, Seq: seq}
	id.Path = filepath.Join(r.Root, filepath.FromSlash(id.String())) + r.Ext
	return id, nil
}

// sanitize makes each slash-separated segment filesystem-safe while keeping
// the separators, so subtests ("TestX/case") map to subdirectories.
func sanitize(p string) string {
	segs := strings.Split(filepath.ToSlash(p), "/")
	out := segs[:0]
	for _, s := range segs {
		s = invalidFileCharsRe.ReplaceAllString(strings.TrimSpace(s), "_")
		switch s {
		case "":
			continue
		case ".", "..":
			s = "_"
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return "_"
	}
	return strings.Join(out, "/")
}
