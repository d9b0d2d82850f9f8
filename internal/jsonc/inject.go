package jsonc

import (
	"fmt"
	"strings"

	"canonfmt/internal/comment"
)

// Reinject splices the recorded comments back into the canonical lines. The
// walk mirrors Extract: the same key pattern, the same container condition,
// the same path stack, so every recorded path resolves to the same key.
//
// Entries that were not consumed (duplicate keys collapsed by the parser)
// are appended after the bottom buffer and reported as warnings so the
// mismatch never drops content silently.
func Reinject(canonical []string, idx *comment.Index) ([]byte, []string) {
	out := make([]string, 0, len(canonical)+len(idx.Top)+len(idx.Bottom)+8)
	out = append(out, idx.Top...)

	if len(canonical) > 0 {
		out = append(out, canonical[0])
	}

	if len(canonical) > 1 {
		var stack comment.PathStack
		for _, line := range canonical[1 : len(canonical)-1] {
			stripped := strings.TrimSpace(line)
			if strings.HasPrefix(stripped, "}") {
				stack.Pop()
				out = append(out, line)
				continue
			}

			m := keyRe.FindStringSubmatch(line)
			if m == nil {
				out = append(out, line)
				continue
			}

			key := m[1]
			path := stack.PathFor(key)
			indent := line[:strings.Index(line, `"`)]

			if block := idx.TakeLeading(path); block != nil {
				out = append(out, comment.Reindent(indent, block)...)
			}
			out = append(out, line)
			if c, ok := idx.TakeInline(path); ok {
				out[len(out)-1] += " " + c
			}
			if opensContainer(line) {
				stack.Push(key)
			}
		}
		out = append(out, canonical[len(canonical)-1])
	}

	out = append(out, idx.Bottom...)

	var warnings []string
	if orphans := idx.Orphans(); len(orphans) > 0 {
		for _, p := range orphans {
			warnings = append(warnings, fmt.Sprintf("comment for %q re-anchored at end of file: key not found after canonicalization", p))
		}
		out = append(out, idx.DrainOrphans()...)
	}

	return comment.Join(comment.DropBlank(out)), warnings
}
