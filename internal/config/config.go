// Package config loads and validates a lint.Config for the erbindent CLI,
// following the layered-sources pattern of wharflab-tally's
// internal/config loader: defaults, then an optional
// config file, then environment variables, each layer overriding the last.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"erbindent/internal/lint"
)

// FileNames are the config file names searched for, in priority order.
var FileNames = []string{".erbindent.yml", ".erbindent.yaml", "erbindent.yml"}

// EnvPrefix is the prefix recognized for environment variable overrides,
// e.g. ERBINDENT_WIDTH=4.
const EnvPrefix = "ERBINDENT_"

func defaultsMap(d lint.Config) map[string]interface{} {
	return map[string]interface{}{
		"width":                               d.Width,
		"enforced_style_block_align_with":     d.BlockAlignWith,
		"enforced_style_begin_end_align_with": d.BeginEndAlignWith,
		"enforced_style_end_align_with":       d.EndAlignWith,
		"enforced_style_argument_alignment":   d.ArgumentAlignment,
	}
}

// Load builds a validated lint.Config by layering built-in defaults, an
// optional discovered config file, and ERBINDENT_*-prefixed environment
// variables, in that priority order (later layers win).
func Load(configPath string) (lint.Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(lint.DefaultConfig()), "."), nil); err != nil {
		return lint.Config{}, fmt.Errorf("config: loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return lint.Config{}, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyTransform), nil); err != nil {
		return lint.Config{}, fmt.Errorf("config: reading environment: %w", err)
	}

	var cfg lint.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return lint.Config{}, fmt.Errorf("config: decoding: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return lint.Config{}, err
	}
	return cfg, nil
}

// envKeyTransform maps ERBINDENT_WIDTH -> width,
// ERBINDENT_ENFORCED_STYLE_BLOCK_ALIGN_WITH -> enforced_style_block_align_with.
func envKeyTransform(k string) string {
	return strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
}

// Discover walks up from dir looking for one of FileNames, returning the
// first match or "" if none is found, mirroring wharflab-tally's cascading
// config-file discovery.
func Discover(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(abs, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}
