package yamldoc

import (
	"fmt"
	"strings"

	"canonfmt/internal/comment"
)

// Reinject splices the recorded comments back into the canonical lines via
// the same walker Extract used. Leading blocks are re-indented to the key's
// canonical position. An inline comment goes onto the key's own line; when
// the value wraps onto continuation lines, the comment is deferred to the
// last continuation so it cannot land inside the value. Wrapped quoted
// values are the one spot where no line is safe: those comments move to the
// end of the file with a warning.
//
// Entries that were never consumed are also appended after the bottom buffer
// and reported, so an addressing mismatch never drops content.
func Reinject(canonical []string, idx *comment.Index) ([]byte, []string) {
	out := make([]string, 0, len(canonical)+len(idx.Top)+len(idx.Bottom)+8)
	out = append(out, idx.Top...)

	var warnings []string
	var salvaged []string

	pendingInline := ""
	pendingPath := ""
	pendingQuoted := false
	flushInline := func() {
		if pendingInline != "" {
			out[len(out)-1] += " " + pendingInline
			pendingInline = ""
		}
	}

	walkLines(canonical, func(st lineStep) {
		if st.kind == stepScalarBody {
			if pendingInline != "" && pendingQuoted {
				// перенос закавыченного значения: вклеивать некуда
				salvaged = append(salvaged, pendingInline)
				warnings = append(warnings, fmt.Sprintf("inline comment for %q moved to end of file: quoted value wraps across lines", pendingPath))
				pendingInline = ""
			}
			out = append(out, st.raw)
			return
		}
		flushInline()

		switch st.kind {
		case stepBlank:
			// канонический вывод не содержит пустых строк вне скаляров

		case stepKey:
			indent := strings.Repeat(" ", lineIndent(st.content))
			if block := idx.TakeLeading(st.path); block != nil {
				out = append(out, comment.Reindent(indent, block)...)
			}
			out = append(out, st.content)
			if c, ok := idx.TakeInline(st.path); ok {
				if st.scalar == valueBlockScalar {
					// после индикатора |/> комментарий легален сразу
					out[len(out)-1] += " " + c
				} else {
					pendingInline = c
					pendingPath = st.path
					pendingQuoted = st.quoted
				}
			}

		case stepComment:
			// в каноническом выводе комментариев нет, кроме строк переноса
			// внутри кавычек, которые выглядят как комментарий
			out = append(out, st.raw)

		default:
			out = append(out, st.content)
		}
	})
	flushInline()

	out = append(out, idx.Bottom...)

	if orphans := idx.Orphans(); len(orphans) > 0 {
		for _, p := range orphans {
			warnings = append(warnings, fmt.Sprintf("comment for %q re-anchored at end of file: key not found after canonicalization", p))
		}
		salvaged = append(salvaged, idx.DrainOrphans()...)
	}
	out = append(out, salvaged...)

	return comment.Join(out), warnings
}
