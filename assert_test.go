package snapshotmatcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	snapshotmatcher "snapshot-matcher"
)

// recorder captures failures so assertions can be checked without failing
// the enclosing test.
type recorder struct {
	name   string
	errors []string
}

func (r *recorder) Helper()      {}
func (r *recorder) Name() string { return r.name }
func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestAssertCreatesThenCompares(t *testing.T) {
	s, _ := newSession(t)
	rec := &recorder{name: "TestWidget/render"}

	require.True(t, s.Assert(rec, []string{"a", "b"}))
	assert.Empty(t, rec.errors)

	path := filepath.Join(s.Config().Root, "snapshot-matcher", "TestWidget", "render-0.json")
	_, err := os.Stat(path)
	require.NoError(t, err)

	// A second assertion in the same test gets the next sequence number.
	require.True(t, s.Assert(rec, []string{"c"}))
	_, err = os.Stat(filepath.Join(s.Config().Root, "snapshot-matcher", "TestWidget", "render-1.json"))
	require.NoError(t, err)

	// A fresh session replays the same names and compares.
	rerun, err := snapshotmatcher.NewSession(s.Config())
	require.NoError(t, err)
	rerun.SetOutput(nil)
	assert.True(t, rerun.Assert(rec, []string{"a", "b"}))
	assert.False(t, rerun.Assert(rec, []string{"d"}))
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "Object should match snapshot at ")
	assert.Contains(t, rec.errors[0], "Expected\t<  \"c\">\nbut found\t<  \"d\">")
}

func TestAssertNamed(t *testing.T) {
	s, _ := newSession(t)
	rec := &recorder{name: "TestNamed"}
	require.True(t, s.AssertNamed(rec, "custom", 42))

	_, err := os.Stat(filepath.Join(s.Config().Root, "snapshot-matcher", "custom-0.json"))
	assert.NoError(t, err)
}

func TestAssertWithoutTestName(t *testing.T) {
	s, _ := newSession(t)
	rec := &recorder{}
	assert.False(t, s.Assert(rec, 1))
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "no assertion site")
}

func TestAssertWriteFailure(t *testing.T) {
	cfg := snapshotmatcher.DefaultConfig()
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.Root = blocker
	s, err := snapshotmatcher.NewSession(cfg)
	require.NoError(t, err)

	rec := &recorder{name: "TestBlocked"}
	assert.False(t, s.Assert(rec, 1))
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "write snapshot")
}
