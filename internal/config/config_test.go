package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapshot-matcher/internal/encode"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithEnvPrefix("SNAPTEST_NONE_"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	enc, err := cfg.Encoder()
	require.NoError(t, err)
	assert.Equal(t, ".json", enc.Ext())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.yaml")
	content := `
root: fixtures/snaps
format: yaml
report:
  unified: true
  context: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("SNAPTEST_FORMAT", "json")
	t.Setenv("SNAPTEST_LOG_VERBOSE", "true")

	cfg, err := Load(WithEnvPrefix("SNAPTEST_"), WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, "fixtures/snaps", cfg.Root)
	assert.Equal(t, "json", cfg.Format, "env overrides file")
	assert.True(t, cfg.Report.Unified)
	assert.Equal(t, 5, cfg.Report.Context)
	assert.Equal(t, 2_000_000, cfg.Report.MaxBytes, "untouched keys keep defaults")
	assert.True(t, cfg.Log.Verbose)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: from-file\n"), 0o644))
	t.Setenv("SNAPTEST2_CONFIG", path)

	cfg, err := Load(WithEnvPrefix("SNAPTEST2_"))
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Root)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(WithEnvPrefix("SNAPTEST_NONE_"), WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	t.Setenv("SNAPTEST3_FORMAT", "xml")
	_, err := Load(WithEnvPrefix("SNAPTEST3_"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, encode.ErrUnknownFormat))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Root = " "
	cfg.Report.Context = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root")
	assert.Contains(t, err.Error(), "report.context")
}
