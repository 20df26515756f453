// Package store reads and writes snapshot files.
//
// Snapshot files are write-once: Create never replaces an existing file, and
// nothing in this package rewrites one. Deleting a stale snapshot by hand is
// the only way to regenerate it.
//
// Conventions:
//   - Parent directories are created on demand (0o755).
//   - New files are written to a sibling temp file, synced, then linked
//     into place, so readers never observe a partially-written snapshot.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"snapshot-matcher/internal/sortutil"
	"snapshot-matcher/internal/textutil"
)

// Entry describes one snapshot file found by List.
type Entry struct {
	Path  string `json:"path"` // slash-separated, relative to the listed root
	Lines int    `json:"lines"`
	Bytes int64  `json:"bytes"`
}

// Exists reports whether a regular file is present at path.
func Exists(path string) (bool, error) {
	fi, err := os.Stat(path)
	switch {
	case err == nil:
		if fi.IsDir() {
			return false, fmt.Errorf("snapshot path %s is a directory", path)
		}
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Create writes data as a new file at path, creating parent directories.
// It fails with an error wrapping fs.ErrExist when path is already taken.
func Create(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, f, err := createTempFile(dir, filepath.Base(path))
	if err != nil {
		return err
	}
	defer os.Remove(tmp) // best-effort cleanup; the link keeps the data

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	err = os.Link(tmp, path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("create snapshot %s: %w", path, fs.ErrExist)
	default:
		// Some filesystems refuse hard links; fall back to an exclusive create.
		return writeExclusive(path, data)
	}
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// Read returns the raw content of the snapshot at path.
func Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadLines returns the snapshot at path split into normalized lines.
func ReadLines(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return textutil.Lines(b), nil
}

// List walks root and returns every file whose name ends in ext, sorted by
// relative path. A missing root yields (nil, nil).
func List(root, ext string) ([]Entry, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	var rels []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		if ext != "" && !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(rels))
	for _, rel := range sortutil.SlashPaths(rels) {
		b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Path: rel, Lines: len(textutil.Lines(b)), Bytes: int64(len(b))})
	}
	return out, nil
}

// createTempFile creates a temporary file in the target directory with a
// name derived from base (".tmp-<base>-<rand>"), returning its path
// and an *os.File ready for writing. Caller is responsible for closing it.
func createTempFile(dir, base string) (string, *os.File, error) {
	f, err := os.CreateTemp(dir, ".tmp-"+base+"-")
	if err != nil {
		return "", nil, err
	}
	return f.Name(), f, nil
}
