package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"canonfmt/internal/config"
	"canonfmt/internal/driver"
	"canonfmt/internal/watch"
)

// watchScope separates directory arguments, which are watched recursively,
// from explicitly named files, which are watched through their parent
// directory but matched exactly.
type watchScope struct {
	dirs    []string
	parents []string
	files   map[string]struct{}
}

func buildWatchScope(args []string) (watchScope, error) {
	sc := watchScope{files: make(map[string]struct{})}
	seenRoot := make(map[string]struct{})
	addRoot := func(list *[]string, dir string) {
		if _, ok := seenRoot[dir]; ok {
			return
		}
		seenRoot[dir] = struct{}{}
		*list = append(*list, dir)
	}

	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return sc, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return sc, err
		}
		if info.IsDir() {
			addRoot(&sc.dirs, abs)
			continue
		}
		sc.files[abs] = struct{}{}
		addRoot(&sc.parents, filepath.Dir(abs))
	}
	return sc, nil
}

// relUnder returns the slash-separated path of target relative to the first
// root that contains it.
func relUnder(roots []string, target string) (string, bool) {
	for _, root := range roots {
		rel, err := filepath.Rel(root, target)
		if err != nil {
			continue
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}

func runFmtWatch(ctx context.Context, args []string, cfg *config.Config, opts driver.Options, quiet, useColor bool) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Начальный полный проход до подписки на события
	inputs, err := driver.CollectFiles(ctx, args, cfg)
	if err != nil {
		return err
	}
	results, err := driver.FormatPaths(ctx, inputs, opts)
	if err != nil {
		return err
	}
	renderFmtText(os.Stdout, os.Stderr, results, false, quiet, new(bool))
	renderFmtFailures(os.Stderr, results, useColor)

	sc, err := buildWatchScope(args)
	if err != nil {
		return err
	}
	exclude, err := config.NewMatcher(cfg.Format.Exclude)
	if err != nil {
		return err
	}

	allRoots := append(append([]string(nil), sc.dirs...), sc.parents...)
	w, err := watch.New(watch.Config{
		Roots: allRoots,
		Match: func(path string) bool {
			if _, ok := sc.files[path]; ok {
				return true
			}
			if _, ok := driver.Classify(cfg, path); !ok {
				return false
			}
			// файлы за пределами каталогов-аргументов формату не подлежат
			rel, ok := relUnder(sc.dirs, path)
			if !ok {
				return false
			}
			return !exclude.Match(rel)
		},
		SkipDir: func(path string) bool {
			rel, ok := relUnder(sc.dirs, path)
			if !ok {
				return false
			}
			return rel != "." && exclude.MatchDir(rel)
		},
		OnBatch: func(ctx context.Context, paths []string) {
			batch := make([]driver.Input, 0, len(paths))
			for _, p := range paths {
				dialect, ok := driver.Classify(cfg, p)
				if !ok {
					continue
				}
				batch = append(batch, driver.Input{Path: p, Dialect: dialect})
			}
			if len(batch) == 0 {
				return
			}
			res, err := driver.FormatPaths(ctx, batch, opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "watch: %v\n", err)
				return
			}
			renderFmtText(os.Stdout, os.Stderr, res, false, quiet, new(bool))
			renderFmtFailures(os.Stderr, res, useColor)
		},
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		},
	})
	if err != nil {
		return err
	}

	w.Start(ctx)
	defer w.Stop()

	if !quiet {
		fmt.Fprintln(os.Stdout, "watching for changes (ctrl-c to stop)")
	}
	<-ctx.Done()
	return nil
}
