package jsonc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"canonfmt/internal/source"
)

// ErrParse marks documents that are not valid JSON once comments are removed.
var ErrParse = errors.New("jsonc: invalid document")

// Canonicalize strips the comments off the raw lines, validates the bare
// JSON and re-renders it in canonical layout: two-space indent, one member
// or element per line, key order preserved. String and number spellings are
// kept as written.
//
// The bool result reports an empty document (empty object or array, null,
// false, zero or the empty string at the top level); callers pass those
// through verbatim instead of re-serializing.
func Canonicalize(lines []string) ([]string, bool, error) {
	stripped := make([]string, 0, len(lines))
	for _, line := range lines {
		content, _ := SplitComment(line)
		stripped = append(stripped, content)
	}
	raw := []byte(strings.Join(stripped, "\n"))

	var doc json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if isEmptyValue(doc) {
		return nil, true, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return source.Lines(buf.Bytes()), false, nil
}

// isEmptyValue reports top-level values with no content worth reflowing.
func isEmptyValue(doc json.RawMessage) bool {
	var buf bytes.Buffer
	if err := json.Compact(&buf, doc); err != nil {
		return false
	}
	switch s := buf.String(); s {
	case "{}", "[]", "null", "false", `""`:
		return true
	default:
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == 0 {
			return true
		}
	}
	return false
}
