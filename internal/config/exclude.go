package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern    string
	glob       glob.Glob
	simplified glob.Glob // паттерн без префикса "**/" для файлов в корне
}

// Matcher checks slash-separated relative paths against exclude globs.
// A nil Matcher excludes nothing.
type Matcher struct {
	patterns []compiledPattern
}

// NewMatcher compiles the patterns with '/' as the separator.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		cp := compiledPattern{pattern: pattern, glob: g}
		// "**/*.bak" должен ловить и "top.bak" в корне
		if strings.HasPrefix(pattern, "**/") {
			if sg, err := glob.Compile(strings.TrimPrefix(pattern, "**/"), '/'); err == nil {
				cp.simplified = sg
			}
		}
		m.patterns = append(m.patterns, cp)
	}
	return m, nil
}

// Match reports whether relPath matches any exclude pattern.
func (m *Matcher) Match(relPath string) bool {
	if m == nil {
		return false
	}
	for _, cp := range m.patterns {
		if cp.glob.Match(relPath) {
			return true
		}
		if cp.simplified != nil && !strings.Contains(relPath, "/") && cp.simplified.Match(relPath) {
			return true
		}
	}
	return false
}

// MatchDir reports whether a directory is excluded as a whole, so the walk
// can prune it. "node_modules" matches both "node_modules" and
// "node_modules/**".
func (m *Matcher) MatchDir(relPath string) bool {
	if m == nil {
		return false
	}
	return m.Match(relPath) || m.Match(relPath+"/**")
}
