package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"canonfmt/internal/watch"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func waitForBatch(t *testing.T, batches <-chan []string, base string) []string {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case batch := <-batches:
			for _, p := range batch {
				if filepath.Base(p) == base {
					return batch
				}
			}
		case <-deadline:
			t.Fatalf("no batch containing %s within timeout", base)
		}
	}
}

func startWatcher(t *testing.T, cfg watch.Config) *watch.Watcher {
	t.Helper()
	w, err := watch.New(cfg)
	if err != nil {
		t.Fatalf("watch.New failed: %v", err)
	}
	t.Cleanup(w.Stop)
	w.Start(context.Background())
	return w
}

func TestWatcherDeliversMatchingFiles(t *testing.T) {
	root := t.TempDir()
	batches := make(chan []string, 8)

	startWatcher(t, watch.Config{
		Roots:    []string{root},
		Debounce: 50 * time.Millisecond,
		Match:    func(path string) bool { return filepath.Ext(path) == ".yaml" },
		OnBatch:  func(_ context.Context, paths []string) { batches <- paths },
	})

	writeFile(t, filepath.Join(root, "a.yaml"), "x: 1\n")
	writeFile(t, filepath.Join(root, "b.txt"), "plain\n")

	batch := waitForBatch(t, batches, "a.yaml")
	for _, p := range batch {
		if filepath.Base(p) == "b.txt" {
			t.Fatalf("non-matching file delivered: %v", batch)
		}
	}
}

func TestWatcherSkipsPrunedDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "ignored"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	batches := make(chan []string, 8)

	startWatcher(t, watch.Config{
		Roots:    []string{root},
		Debounce: 50 * time.Millisecond,
		SkipDir:  func(path string) bool { return strings.HasSuffix(path, "ignored") },
		OnBatch:  func(_ context.Context, paths []string) { batches <- paths },
	})

	writeFile(t, filepath.Join(root, "ignored", "x.yaml"), "x: 1\n")
	writeFile(t, filepath.Join(root, "keep.yaml"), "x: 1\n")

	batch := waitForBatch(t, batches, "keep.yaml")
	for _, p := range batch {
		if filepath.Base(p) == "x.yaml" {
			t.Fatalf("pruned directory leaked events: %v", batch)
		}
	}
}

func TestWatcherPicksUpNewDirectories(t *testing.T) {
	root := t.TempDir()
	batches := make(chan []string, 8)

	startWatcher(t, watch.Config{
		Roots:    []string{root},
		Debounce: 50 * time.Millisecond,
		OnBatch:  func(_ context.Context, paths []string) { batches <- paths },
	})

	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	// даём циклу время зарегистрировать новый каталог
	time.Sleep(time.Second)
	writeFile(t, filepath.Join(root, "sub", "c.yaml"), "x: 1\n")

	waitForBatch(t, batches, "c.yaml")
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	root := t.TempDir()
	w, err := watch.New(watch.Config{Roots: []string{root}})
	if err != nil {
		t.Fatalf("watch.New failed: %v", err)
	}
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
