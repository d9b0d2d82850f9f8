package yamldoc

import (
	"strings"

	"canonfmt/internal/comment"
)

// Extract walks the raw lines and records every comment in an Index keyed by
// structural path. The bool result reports whether the document has any
// structural content: false means a blank or pure-comment file that must
// bypass parsing entirely.
//
// Placement mirrors the JSONC extractor: comments before the first
// structural line go to the top buffer, full-line comments inside the body
// become the leading block of the next key, a trailing comment on a key line
// is that key's inline comment, and everything left at the end lands in the
// bottom buffer. Comments on sequence entries and other unaddressable lines
// accumulate for the next key.
func Extract(lines []string) (*comment.Index, bool) {
	idx := comment.NewIndex()
	var pending []string
	hasContent := false

	walkLines(lines, func(st lineStep) {
		switch st.kind {
		case stepBlank:
			// пустые строки не переносятся

		case stepComment:
			if !hasContent {
				idx.Top = append(idx.Top, strings.TrimRight(st.raw, " \t"))
			} else {
				pending = append(pending, st.trailing)
			}

		case stepKey:
			hasContent = true
			if len(pending) > 0 {
				idx.AddLeading(st.path, pending)
				pending = nil
			}
			if st.trailing != "" {
				idx.AddInline(st.path, st.trailing)
			}

		case stepEntry, stepOther:
			hasContent = true
			if st.trailing != "" {
				pending = append(pending, st.trailing)
			}

		case stepScalarBody:
			hasContent = true
			// хвостовой комментарий на продолжении скаляра принадлежит ключу
			if st.trailing != "" {
				if st.path != "" {
					idx.AddInline(st.path, st.trailing)
				} else {
					pending = append(pending, st.trailing)
				}
			}
		}
	})

	idx.Bottom = append(idx.Bottom, pending...)
	return idx, hasContent
}
