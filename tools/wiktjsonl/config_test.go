package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "output", cfg.OutDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, int64(10000), cfg.ReportFreq)
	assert.Empty(t, cfg.Languages)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "wiktjsonl.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(`out_dir: /tmp/entries
languages:
  - Spanish
  - French
workers: 3
`), 0o644))

	cfg, err := loadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/entries", cfg.OutDir)
	assert.Equal(t, []string{"Spanish", "French"}, cfg.Languages)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, int64(10000), cfg.ReportFreq)

	t.Setenv("WIKT_WORKERS", "5")
	cfg, err = loadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Workers)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("WIKT_WORKERS", "0")
	_, err := loadConfig("")
	assert.Error(t, err)
}
