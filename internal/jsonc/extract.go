package jsonc

import (
	"regexp"
	"strings"

	"canonfmt/internal/comment"
)

// keyRe matches an object member line and captures the key name. Keys with
// embedded escaped quotes fall through on purpose: such lines are treated as
// plain content by both the extraction and reinjection walks, so the two
// passes stay in agreement.
var keyRe = regexp.MustCompile(`^\s*"([^"]+)":`)

// opensContainer reports whether a member line introduces a nested object
// whose children continue on the following lines. Содержимое уже без
// комментария и хвостовых пробелов, так что достаточно последнего символа.
func opensContainer(content string) bool {
	return strings.HasSuffix(content, "{")
}

// Extract walks the raw lines and records every comment in an Index keyed by
// structural path. The bool result reports whether the document has any
// structural content at all: false means a blank or pure-comment file that
// must bypass parsing entirely.
//
// Comment placement rules:
//   - comments before the first content line go to the top buffer;
//   - full-line comments after it accumulate and become the leading block of
//     the next member line;
//   - a trailing comment on a member line is that member's inline comment;
//   - trailing comments on brace-only lines (including the opening one)
//     accumulate for the next member, comments after the last member go to
//     the bottom buffer.
func Extract(lines []string) (*comment.Index, bool) {
	idx := comment.NewIndex()
	var stack comment.PathStack
	var pending []string
	hasContent := false

	for _, line := range lines {
		content, trailing := SplitComment(line)
		stripped := strings.TrimSpace(content)

		if stripped == "" {
			if trailing == "" {
				continue
			}
			if !hasContent {
				idx.Top = append(idx.Top, strings.TrimRight(line, " \t"))
			} else {
				pending = append(pending, trailing)
			}
			continue
		}

		hasContent = true

		if strings.HasPrefix(stripped, "{") {
			if trailing != "" {
				pending = append(pending, trailing)
			}
			continue
		}

		if strings.HasPrefix(stripped, "}") {
			if trailing != "" {
				pending = append(pending, trailing)
			}
			stack.Pop()
			continue
		}

		if m := keyRe.FindStringSubmatch(content); m != nil {
			key := m[1]
			path := stack.PathFor(key)
			if len(pending) > 0 {
				idx.AddLeading(path, pending)
				pending = nil
			}
			if trailing != "" {
				idx.AddInline(path, trailing)
			}
			if opensContainer(content) {
				stack.Push(key)
			}
			continue
		}

		if trailing != "" {
			pending = append(pending, trailing)
		}
	}

	idx.Bottom = append(idx.Bottom, pending...)
	return idx, hasContent
}
