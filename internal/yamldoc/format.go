package yamldoc

import (
	"fmt"
	"strings"

	"canonfmt/internal/comment"
	"canonfmt/internal/source"
)

// Format renders src in canonical form with all comments preserved.
// Warnings report comments that had to be re-anchored; a non-nil error means
// the document failed to parse and the input must be left untouched.
func Format(src []byte) ([]byte, []string, error) {
	lines := source.Lines(src)

	idx, hasContent := Extract(lines)
	if !hasContent {
		out := Passthrough(lines)
		if out == nil {
			// пустой или пробельный файл остаётся как есть
			return src, nil, nil
		}
		return out, nil, nil
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

// Passthrough renders a document with no structural content: comment lines
// are left-aligned, runs of blank lines collapse to one, trailing whitespace
// goes away. Empty input yields nil so a file holding nothing stays as it is.
func Passthrough(lines []string) []byte {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
		case strings.HasPrefix(trimmed, "#"):
			out = append(out, trimmed)
		default:
			out = append(out, strings.TrimRight(line, " \t"))
		}
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil
	}
	return comment.Join(out)
}
