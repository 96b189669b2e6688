// Package config resolves the toolkit's asset directory, default
// compression method, output directory, and worker count from a JSON
// config file overlaid with CLI flags and an auto-detect fallback.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// projectMarker is the file whose presence identifies an asset
// directory, used by detectAssetDir the way the teacher probed for a
// "Data/Item" subdirectory.
const projectMarker = ".dal-project"

// Config holds the toolkit's resolved settings.
type Config struct {
	AssetDir    string `json:"asset_dir"`
	OutputDir   string `json:"output_dir"`
	Compression string `json:"compression"` // "none" | "deflate" | "brotli"
	Workers     int    `json:"workers"`
	KeyFile     string `json:"key_file"`
}

// Flags holds CLI flag values that override the config file.
type Flags struct {
	AssetDir    string
	OutputDir   string
	Compression string
	Workers     int
	KeyFile     string
}

// Load reads a JSON config file. Fields absent from the file keep
// their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve overlays flags onto c (flag wins when set), then fills any
// still-empty field with an auto-detected or hardcoded default.
func (c *Config) Resolve(flags Flags) {
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Compression != "" {
		c.Compression = flags.Compression
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.KeyFile != "" {
		c.KeyFile = flags.KeyFile
	}

	if c.AssetDir == "" {
		c.AssetDir = detectAssetDir()
	}
	if c.OutputDir == "" {
		if c.AssetDir != "" {
			c.OutputDir = filepath.Join(c.AssetDir, "out")
		} else {
			c.OutputDir = "out"
		}
	} else if c.AssetDir != "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.AssetDir, c.OutputDir)
	}

	if c.Compression == "" {
		c.Compression = "brotli"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// detectAssetDir looks for a projectMarker file in the running
// executable's directory and its parent, then walks upward from the
// working directory, mirroring the teacher's executable-relative then
// cwd-relative probe chain.
func detectAssetDir() string {
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			if hasMarker(base) {
				return base
			}
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for dir := cwd; ; {
		if hasMarker(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func hasMarker(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, projectMarker))
	return err == nil
}
