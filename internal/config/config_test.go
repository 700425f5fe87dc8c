package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erbindent/internal/config"
	"erbindent/internal/lint"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, lint.DefaultConfig(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".erbindent.yml")
	require.NoError(t, os.WriteFile(path, []byte("width: 4\nenforced_style_end_align_with: variable\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, "variable", cfg.EndAlignWith)
	// untouched fields keep their defaults
	assert.Equal(t, "start_of_line", cfg.BlockAlignWith)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".erbindent.yml")
	require.NoError(t, os.WriteFile(path, []byte("width: 4\n"), 0o644))

	t.Setenv("ERBINDENT_WIDTH", "8")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".erbindent.yml")
	require.NoError(t, os.WriteFile(path, []byte("enforced_style_block_align_with: diagonal\n"), 0o644))

	_, err := config.Load(path)
	var cerr *lint.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{"enforced_style_block_align_with"}, cerr.Fields)
}

func TestDiscoverWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "app", "views")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	path := filepath.Join(root, ".erbindent.yml")
	require.NoError(t, os.WriteFile(path, []byte("width: 2\n"), 0o644))

	assert.Equal(t, path, config.Discover(nested))
}

func TestDiscoverReturnsEmptyWhenAbsent(t *testing.T) {
	assert.Equal(t, "", config.Discover(t.TempDir()))
}
