// Package yamldoc formats YAML documents: comments are detached by
// structural path, the bare document is re-serialized through yaml.v3, and
// the comments are spliced back in. Both the extraction and the reinjection
// pass run the same line walker, so they always agree on which line is a key
// and which path it has.
package yamldoc

import "strings"

// SplitComment splits a raw line into its structural content and a trailing
// # comment. A # starts a comment only at the beginning of the line or when
// preceded by whitespace, and never inside a quoted scalar: single quotes
// escape by doubling, double quotes by backslash. Content keeps its
// indentation but loses trailing whitespace; the comment is returned
// trimmed, empty when the line has none.
func SplitComment(line string) (content, trailing string) {
	inSingle := false
	inDouble := false
	escaped := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case escaped:
			escaped = false
		case inDouble && ch == '\\':
			escaped = true
		case ch == '"' && !inSingle:
			inDouble = !inDouble
		case ch == '\'' && !inDouble:
			if inSingle && i+1 < len(line) && line[i+1] == '\'' {
				i++ // '' внутри одинарных кавычек означает экранированную кавычку
				continue
			}
			inSingle = !inSingle
		case ch == '#' && !inSingle && !inDouble:
			if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
				return strings.TrimRight(line[:i], " \t\r"), strings.TrimSpace(line[i:])
			}
		}
	}

	return strings.TrimRight(line, " \t\r"), ""
}
