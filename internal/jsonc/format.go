package jsonc

import (
	"fmt"
	"strings"

	"canonfmt/internal/comment"
	"canonfmt/internal/source"
)

// Format renders src in canonical form with all comments preserved.
// Warnings report comments that had to be re-anchored; a non-nil error means
// the document is not valid JSON once comments are stripped, and the input
// must be left untouched.
func Format(src []byte) ([]byte, []string, error) {
	lines := source.Lines(src)

	idx, hasContent := Extract(lines)
	if !hasContent {
		return Passthrough(lines), nil, nil
	}

	canonical, empty, err := Canonicalize(lines)
	if err != nil {
		return nil, nil, err
	}
	if empty {
		return Passthrough(lines), nil, nil
	}

	var warnings []string
	for _, p := range idx.Collisions() {
		warnings = append(warnings, fmt.Sprintf("duplicate key path %q: comments merged onto first occurrence", p))
	}

	out, orphaned := Reinject(canonical, idx)
	return out, append(warnings, orphaned...), nil
}

// Passthrough renders lines without re-serializing: each line is trimmed on
// both sides and blank lines are dropped. Used for pure-comment files and
// empty documents, where there is no structure to canonicalize.
func Passthrough(lines []string) []byte {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return comment.Join(out)
}
