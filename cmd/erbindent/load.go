package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"erbindent/internal/config"
	"erbindent/internal/erbparse"
	"erbindent/internal/lint"
	"erbindent/internal/source"
)

// lintFile reads and parses path, resolves its configuration, and runs the
// linter driver over it, matching spec §4.4's top-level composition.
func lintFile(path string) (*source.Buffer, []lint.Offense, error) {
	color.NoColor = noColor

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cp := configPath
	if cp == "" {
		cp = config.Discover(filepath.Dir(path))
	}
	cfg, err := config.Load(cp)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("loaded config: %+v (file=%q)", cfg, cp)

	buf := source.NewBuffer(path, string(raw))
	doc := erbparse.Parse(buf.Content)
	if err := erbparse.Validate(doc, buf.Len()); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	offenses, err := lint.Run(buf, doc, cfg)
	if err != nil {
		return nil, nil, err
	}
	return buf, offenses, nil
}
