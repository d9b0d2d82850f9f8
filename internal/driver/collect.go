package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"canonfmt/internal/config"
)

// CollectFiles expands the argument paths into formatting inputs.
// Directories are walked recursively with files classified by extension and
// filtered through the exclude globs. An explicitly named file bypasses the
// excludes but must map to a configured dialect.
func CollectFiles(ctx context.Context, paths []string, cfg *config.Config) ([]Input, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	exclude, err := config.NewMatcher(cfg.Format.Exclude)
	if err != nil {
		return nil, err
	}

	var inputs []Input
	seen := make(map[string]struct{})
	addFile := func(path string, dialect Dialect) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		inputs = append(inputs, Input{Path: path, Dialect: dialect})
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			root := p
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					return relErr
				}
				rel = filepath.ToSlash(rel)
				if d.IsDir() {
					if rel != "." && exclude.MatchDir(rel) {
						return filepath.SkipDir
					}
					return nil
				}
				if exclude.Match(rel) {
					return nil
				}
				if dialect, ok := Classify(cfg, path); ok {
					addFile(path, dialect)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		dialect, ok := Classify(cfg, p)
		if !ok {
			return nil, fmt.Errorf("cannot determine dialect for %q: extension not configured", p)
		}
		addFile(p, dialect)
	}

	// Сортируем для детерминированного порядка
	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Path < inputs[j].Path })
	return inputs, nil
}

// Classify maps a path to its dialect by extension, case-insensitively.
func Classify(cfg *config.Config, path string) (Dialect, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range cfg.Format.JSONCExtensions {
		if ext == e {
			return DialectJSONC, true
		}
	}
	for _, e := range cfg.Format.YAMLExtensions {
		if ext == e {
			return DialectYAML, true
		}
	}
	return "", false
}
