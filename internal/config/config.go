package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the upward search looks for.
const ManifestName = "canonfmt.toml"

// Config is the decoded canonfmt.toml manifest.
type Config struct {
	Format FormatConfig `toml:"format"`
	Cache  CacheConfig  `toml:"cache"`
}

// FormatConfig maps file extensions to dialects and lists exclude globs.
type FormatConfig struct {
	JSONCExtensions []string `toml:"jsonc_extensions"`
	YAMLExtensions  []string `toml:"yaml_extensions"`
	Exclude         []string `toml:"exclude"`
}

// CacheConfig controls the formatted-content cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no manifest is found.
func Default() *Config {
	return &Config{
		Format: FormatConfig{
			JSONCExtensions: []string{".json", ".jsonc"},
			YAMLExtensions:  []string{".yaml", ".yml"},
		},
		Cache: CacheConfig{Enabled: true},
	}
}

// Find walks up from startDir to locate canonfmt.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes and validates a manifest file. Absent fields fall back to the
// defaults; unknown keys are rejected.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	def := Default()
	if !meta.IsDefined("format", "jsonc_extensions") {
		cfg.Format.JSONCExtensions = def.Format.JSONCExtensions
	}
	if !meta.IsDefined("format", "yaml_extensions") {
		cfg.Format.YAMLExtensions = def.Format.YAMLExtensions
	}
	if !meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = true
	}

	for _, ext := range append(cfg.Format.JSONCExtensions, cfg.Format.YAMLExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("%s: extension %q must start with a dot", path, ext)
		}
	}
	for _, a := range cfg.Format.JSONCExtensions {
		for _, b := range cfg.Format.YAMLExtensions {
			if a == b {
				return nil, fmt.Errorf("%s: extension %q mapped to both dialects", path, a)
			}
		}
	}
	if _, err := NewMatcher(cfg.Format.Exclude); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Discover locates and loads the manifest governing startDir. Without a
// manifest it returns the defaults and an empty root.
func Discover(startDir string) (cfg *Config, root string, err error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err = Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, filepath.Dir(path), nil
}
