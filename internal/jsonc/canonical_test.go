package jsonc

import (
	"errors"
	"strings"
	"testing"
)

func TestCanonicalizeLayout(t *testing.T) {
	lines := []string{
		`{"b": 1, "a": [1, 2], // tail`,
		`"nested": {"x": true}}`,
	}

	canonical, empty, err := Canonicalize(lines)
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}
	if empty {
		t.Fatalf("document is not empty")
	}

	want := []string{
		"{",
		`  "b": 1,`,
		`  "a": [`,
		"    1,",
		"    2",
		"  ],",
		`  "nested": {`,
		`    "x": true`,
		"  }",
		"}",
	}
	if strings.Join(canonical, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected canonical layout:\n%s\nwant:\n%s", strings.Join(canonical, "\n"), strings.Join(want, "\n"))
	}
}

func TestCanonicalizeKeepsKeyOrder(t *testing.T) {
	canonical, _, err := Canonicalize([]string{`{"z": 1, "a": 2, "m": 3}`})
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}

	joined := strings.Join(canonical, "\n")
	z := strings.Index(joined, `"z"`)
	a := strings.Index(joined, `"a"`)
	m := strings.Index(joined, `"m"`)
	if !(z < a && a < m) {
		t.Fatalf("insertion order must be preserved:\n%s", joined)
	}
}

func TestCanonicalizeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing value", `{"a": }`},
		{"trailing comma", `{"a": 1,}`},
		{"unclosed brace", `{"a": 1`},
		{"garbage after document", `{"a": 1} trailing`},
		{"bare word", `nonsense`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Canonicalize([]string{tt.src})
			if err == nil {
				t.Fatalf("expected parse error")
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestCanonicalizeEmptyDocuments(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		empty bool
	}{
		{"empty object", "{}", true},
		{"empty array", "[]", true},
		{"null", "null", true},
		{"false", "false", true},
		{"zero", "0", true},
		{"float zero", "0.0", true},
		{"empty string", `""`, true},
		{"true", "true", false},
		{"non-zero", "1", false},
		{"string zero is content", `"0"`, false},
		{"object with member", `{"a": 0}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, empty, err := Canonicalize([]string{tt.src})
			if err != nil {
				t.Fatalf("Canonicalize returned error: %v", err)
			}
			if empty != tt.empty {
				t.Fatalf("expected empty=%v for %q", tt.empty, tt.src)
			}
		})
	}
}

func TestCanonicalizeStripsCommentsBeforeParsing(t *testing.T) {
	lines := []string{
		"// header",
		"{",
		`  "a": 1 // tail`,
		"}",
	}

	_, empty, err := Canonicalize(lines)
	if err != nil {
		t.Fatalf("comments must not break parsing: %v", err)
	}
	if empty {
		t.Fatalf("document has content")
	}
}
