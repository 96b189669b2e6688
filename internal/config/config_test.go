package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dal.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"asset_dir":"/a","workers":4}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/a", cfg.AssetDir)
	assert.Equal(t, 4, cfg.Workers)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	cfg := Config{AssetDir: "/from-file", Workers: 2}
	cfg.Resolve(Flags{AssetDir: "/from-flag", Workers: 8})

	assert.Equal(t, "/from-flag", cfg.AssetDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "brotli", cfg.Compression)
	assert.Equal(t, filepath.Join("/from-flag", "out"), cfg.OutputDir)
}

func TestResolveDefaultsWhenEmpty(t *testing.T) {
	cfg := Config{}
	cfg.Resolve(Flags{})

	assert.Equal(t, "brotli", cfg.Compression)
	assert.Greater(t, cfg.Workers, 0)
	assert.NotEmpty(t, cfg.OutputDir)
}

func TestResolveRelativeOutputDirJoinedWithAssetDir(t *testing.T) {
	cfg := Config{AssetDir: "/assets", OutputDir: "build"}
	cfg.Resolve(Flags{})
	assert.Equal(t, filepath.Join("/assets", "build"), cfg.OutputDir)
}
