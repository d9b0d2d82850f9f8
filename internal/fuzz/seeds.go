package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addBuiltinSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем файлы обоих диалектов
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".json", ".jsonc", ".yaml", ".yml":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func addBuiltinSeeds(f *testing.F) {
	// минимальные примеры на случай пустого testdata
	seeds := []string{
		"",
		"{}\n",
		"{\n  // note\n  \"a\": 1\n}\n",
		"[1, 2, 3] // trailing\n",
		"{ \"url\": \"http://x//y\" }\n",
		"# header\nname: demo # inline\n",
		"ports:\n  - 8080\n  - 9090\n",
		"script: |\n  echo one\n  echo two\n",
		"a: ~\nb: NULL\nc:\n",
		"base: &defaults\n  x: 1\nprod:\n  <<: *defaults\n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
