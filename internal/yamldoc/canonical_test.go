package yamldoc

import (
	"errors"
	"strings"
	"testing"
)

func TestCanonicalizeNormalizesIndent(t *testing.T) {
	lines := []string{
		"a:",
		"    b: 1",
		"items:",
		"- x",
		"- y",
	}

	canonical, empty, err := Canonicalize(lines)
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}
	if empty {
		t.Fatalf("document is not empty")
	}

	want := []string{
		"a:",
		"  b: 1",
		"items:",
		"  - x",
		"  - y",
	}
	if strings.Join(canonical, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected canonical layout:\n%s\nwant:\n%s", strings.Join(canonical, "\n"), strings.Join(want, "\n"))
	}
}

func TestCanonicalizeDropsComments(t *testing.T) {
	lines := []string{
		"# header",
		"a: 1 # tail",
		"# footer",
	}

	canonical, _, err := Canonicalize(lines)
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}
	joined := strings.Join(canonical, "\n")
	if strings.Contains(joined, "#") {
		t.Fatalf("canonical output must have no comments:\n%s", joined)
	}
}

func TestCanonicalizeNormalizesNullSpellings(t *testing.T) {
	lines := []string{
		"a: ~",
		"b:",
		"c: NULL",
		"d: Null",
	}

	canonical, _, err := Canonicalize(lines)
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}

	want := []string{
		"a: null",
		"b: null",
		"c: null",
		"d: null",
	}
	if strings.Join(canonical, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected null normalization:\n%s\nwant:\n%s", strings.Join(canonical, "\n"), strings.Join(want, "\n"))
	}
}

func TestCanonicalizeKeepsScalarStyles(t *testing.T) {
	lines := []string{
		`double: "hello"`,
		"single: 'world'",
		"plain: value",
		"flow: {a: 1, b: 2}",
	}

	canonical, _, err := Canonicalize(lines)
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}

	want := []string{
		`double: "hello"`,
		"single: 'world'",
		"plain: value",
		"flow: {a: 1, b: 2}",
	}
	if strings.Join(canonical, "\n") != strings.Join(want, "\n") {
		t.Fatalf("scalar styles must survive:\n%s\nwant:\n%s", strings.Join(canonical, "\n"), strings.Join(want, "\n"))
	}
}

func TestCanonicalizeKeepsLiteralBlocks(t *testing.T) {
	lines := []string{
		"run: |",
		"  echo one",
		"  echo two",
	}

	canonical, _, err := Canonicalize(lines)
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}

	joined := strings.Join(canonical, "\n")
	if !strings.Contains(joined, "run: |") {
		t.Fatalf("literal style lost:\n%s", joined)
	}
	if !strings.Contains(joined, "  echo one\n  echo two") {
		t.Fatalf("literal body changed:\n%s", joined)
	}
}

func TestCanonicalizeKeepsAnchorsAndAliases(t *testing.T) {
	lines := []string{
		"base: &b",
		"  x: 1",
		"copy: *b",
	}

	canonical, _, err := Canonicalize(lines)
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}

	joined := strings.Join(canonical, "\n")
	if !strings.Contains(joined, "&b") || !strings.Contains(joined, "*b") {
		t.Fatalf("anchor or alias lost:\n%s", joined)
	}
}

func TestCanonicalizeKeepsKeyOrder(t *testing.T) {
	canonical, _, err := Canonicalize([]string{"z: 1", "a: 2", "m: 3"})
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}

	joined := strings.Join(canonical, "\n")
	z := strings.Index(joined, "z:")
	a := strings.Index(joined, "a:")
	m := strings.Index(joined, "m:")
	if !(z < a && a < m) {
		t.Fatalf("source order must be preserved:\n%s", joined)
	}
}

func TestCanonicalizeEmptyDocuments(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		empty bool
	}{
		{"no lines", nil, true},
		{"empty mapping", []string{"{}"}, true},
		{"empty sequence", []string{"[]"}, true},
		{"null word", []string{"null"}, true},
		{"tilde", []string{"~"}, true},
		{"zero", []string{"0"}, true},
		{"false", []string{"false"}, true},
		{"empty quoted string", []string{"''"}, true},
		{"value present", []string{"a: 1"}, false},
		{"non-zero scalar", []string{"42"}, false},
		{"string zero is content", []string{"'0'"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, empty, err := Canonicalize(tt.lines)
			if err != nil {
				t.Fatalf("Canonicalize returned error: %v", err)
			}
			if empty != tt.empty {
				t.Fatalf("expected empty=%v", tt.empty)
			}
		})
	}
}

func TestCanonicalizeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"unclosed flow", []string{"a: [1, 2"}},
		{"tab indentation", []string{"a:", "\tb: 1"}},
		{"second document", []string{"a: 1", "---", "b: 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Canonicalize(tt.lines)
			if err == nil {
				t.Fatalf("expected parse error")
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}
