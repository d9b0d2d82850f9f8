package comment

import "strings"

// Reindent prefixes each comment line with indent, trimming whatever
// indentation the line carried before. Used when splicing a leading block
// above a key so the comments line up with the key's canonical position.
func Reindent(indent string, lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, indent+strings.TrimSpace(line))
	}
	return out
}

// DropBlank removes empty and whitespace-only lines.
func DropBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Join renders lines as file content with exactly one trailing newline.
func Join(lines []string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}
