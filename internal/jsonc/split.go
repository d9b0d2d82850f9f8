// Package jsonc formats JSONC documents: JSON with // line comments. The
// pipeline detaches comments by structural path, re-serializes the bare JSON
// through encoding/json, then splices the comments back in.
package jsonc

import "strings"

// SplitComment splits a raw line into its structural content and a trailing
// // comment. The scanner tracks double-quoted strings and backslash escapes,
// so // inside a string literal never counts as a comment delimiter.
// Content keeps its indentation but loses trailing whitespace; the comment
// is returned trimmed, empty when the line has none.
func SplitComment(line string) (content, trailing string) {
	inString := false
	escaped := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"' && !escaped:
			inString = !inString
		case ch == '\\' && !escaped:
			escaped = true
			continue
		case !inString && ch == '/' && i+1 < len(line) && line[i+1] == '/':
			return strings.TrimRight(line[:i], " \t\r"), strings.TrimSpace(line[i:])
		}
		escaped = false
	}

	return strings.TrimRight(line, " \t\r"), ""
}
