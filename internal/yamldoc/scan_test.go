package yamldoc

import (
	"strings"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		key   string
		value string
		ok    bool
	}{
		{"plain key with value", "name: demo", "name", "demo", true},
		{"plain key without value", "name:", "name", "", true},
		{"colon inside key", "a:b: c", "a:b", "c", true},
		{"no colon", "just a scalar", "", "", false},
		{"colon without space", "a:b", "", "", false},
		{"double quoted key", `"a b": 1`, "a b", "1", true},
		{"single quoted key", "'a b': 1", "a b", "1", true},
		{"doubled quote unescaped", "'it''s': 1", "it's", "1", true},
		{"unterminated quote", `"abc: 1`, "", "", false},
		{"sequence entry is not a key", "- a: 1", "", "", false},
		{"lone dash is not a key", "-", "", "", false},
		{"dash prefixed plain key", "-flag: on", "-flag", "on", true},
		{"flow mapping is opaque", "{a: 1}", "", "", false},
		{"flow sequence is opaque", "[1, 2]", "", "", false},
		{"alias value line is opaque", "*anchor", "", "", false},
		{"key with spaces before colon", "name : demo", "name", "demo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := parseKey(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok: expected %v, got %v", tt.ok, ok)
			}
			if key != tt.key || value != tt.value {
				t.Fatalf("expected (%q, %q), got (%q, %q)", tt.key, tt.value, key, value)
			}
		})
	}
}

func TestClassifyValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  valueKind
	}{
		{"empty opens block", "", valueOpensBlock},
		{"scalar is leaf", "demo", valueLeaf},
		{"flow mapping is leaf", "{a: 1}", valueLeaf},
		{"anchor alone opens block", "&defaults", valueOpensBlock},
		{"tag alone opens block", "!custom", valueOpensBlock},
		{"anchor and tag open block", "&a !custom", valueOpensBlock},
		{"anchor with value is leaf", "&a 42", valueLeaf},
		{"literal indicator", "|", valueBlockScalar},
		{"folded indicator", ">", valueBlockScalar},
		{"literal with chomping", "|-", valueBlockScalar},
		{"folded with indent hint", ">2+", valueBlockScalar},
		{"anchored literal", "&a |", valueBlockScalar},
		{"pipe glued to text is leaf", "|x", valueLeaf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyValue(tt.value); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func collectSteps(src string) []lineStep {
	var steps []lineStep
	walkLines(strings.Split(src, "\n"), func(st lineStep) {
		steps = append(steps, st)
	})
	return steps
}

func stepByIndex(t *testing.T, steps []lineStep, index int) lineStep {
	t.Helper()
	for _, st := range steps {
		if st.index == index {
			return st
		}
	}
	t.Fatalf("no step for line %d", index)
	return lineStep{}
}

func TestWalkLinesPaths(t *testing.T) {
	src := strings.Join([]string{
		"server:",          // 0
		"  tls:",           // 1
		"    cert: a.pem",  // 2
		"  port: 443",      // 3
		"logging:",         // 4
		"  level: info",    // 5
	}, "\n")

	steps := collectSteps(src)

	wantPaths := map[int]string{
		0: "server",
		1: "server.tls",
		2: "server.tls.cert",
		3: "server.port",
		4: "logging",
		5: "logging.level",
	}
	for index, want := range wantPaths {
		st := stepByIndex(t, steps, index)
		if st.kind != stepKey {
			t.Fatalf("line %d: expected stepKey, got %v", index, st.kind)
		}
		if st.path != want {
			t.Fatalf("line %d: expected path %q, got %q", index, want, st.path)
		}
	}
}

func TestWalkLinesBlockScalarBodyIsOpaque(t *testing.T) {
	src := strings.Join([]string{
		"run: |",               // 0
		"  echo hi",            // 1
		"  # not a comment",    // 2
		"  key: not a key",     // 3
		"next: 1",              // 4
	}, "\n")

	steps := collectSteps(src)

	if st := stepByIndex(t, steps, 0); st.kind != stepKey || st.scalar != valueBlockScalar {
		t.Fatalf("line 0 must be a block scalar key, got kind=%v scalar=%v", st.kind, st.scalar)
	}
	for _, index := range []int{1, 2, 3} {
		if st := stepByIndex(t, steps, index); st.kind != stepScalarBody {
			t.Fatalf("line %d must be scalar body, got %v", index, st.kind)
		}
	}
	if st := stepByIndex(t, steps, 4); st.kind != stepKey || st.path != "next" {
		t.Fatalf("line 4 must be key %q, got kind=%v path=%q", "next", st.kind, st.path)
	}
}

func TestWalkLinesBlockScalarKeepsBlankBodyLines(t *testing.T) {
	src := strings.Join([]string{
		"script: |", // 0
		"  a",       // 1
		"",          // 2
		"  b",       // 3
		"done: 1",   // 4
	}, "\n")

	steps := collectSteps(src)

	if st := stepByIndex(t, steps, 2); st.kind != stepScalarBody {
		t.Fatalf("blank line inside block scalar must stay in the body, got %v", st.kind)
	}
	if st := stepByIndex(t, steps, 4); st.kind != stepKey {
		t.Fatalf("line 4 must close the body, got %v", st.kind)
	}
}

func TestWalkLinesSequenceEntries(t *testing.T) {
	src := strings.Join([]string{
		"steps:",                  // 0
		"  - uses: checkout",      // 1
		"  - name: test",          // 2
		"    with:",               // 3
		"      arg: 1",            // 4
	}, "\n")

	steps := collectSteps(src)

	for _, index := range []int{1, 2} {
		if st := stepByIndex(t, steps, index); st.kind != stepEntry {
			t.Fatalf("line %d must be a sequence entry, got %v", index, st.kind)
		}
	}
	if st := stepByIndex(t, steps, 3); st.path != "steps.with" {
		t.Fatalf("line 3: expected path %q, got %q", "steps.with", st.path)
	}
	if st := stepByIndex(t, steps, 4); st.path != "steps.with.arg" {
		t.Fatalf("line 4: expected path %q, got %q", "steps.with.arg", st.path)
	}
}

func TestWalkLinesAnchorOnlyValueOpensBlock(t *testing.T) {
	src := strings.Join([]string{
		"base: &defaults", // 0
		"  retries: 3",    // 1
	}, "\n")

	steps := collectSteps(src)
	if st := stepByIndex(t, steps, 1); st.path != "base.retries" {
		t.Fatalf("anchored mapping must nest, got path %q", st.path)
	}
}

func TestWalkLinesLeafContinuationStopsAtComment(t *testing.T) {
	src := strings.Join([]string{
		"desc: a long value", // 0
		"  that continues",   // 1
		"  # real comment",   // 2
		"next: 1",            // 3
	}, "\n")

	steps := collectSteps(src)

	if st := stepByIndex(t, steps, 1); st.kind != stepScalarBody || st.path != "desc" {
		t.Fatalf("line 1 must be a continuation owned by desc, got kind=%v path=%q", st.kind, st.path)
	}
	if st := stepByIndex(t, steps, 2); st.kind != stepComment {
		t.Fatalf("line 2 must be a comment, got %v", st.kind)
	}
	if st := stepByIndex(t, steps, 3); st.kind != stepKey || st.path != "next" {
		t.Fatalf("line 3 must be key %q, got %v", "next", st.path)
	}
}

func TestWalkLinesContinuationTrailingCommentIsSplit(t *testing.T) {
	src := strings.Join([]string{
		"desc: a long value", // 0
		"  that wraps # note", // 1
		"next: 1",             // 2
	}, "\n")

	steps := collectSteps(src)
	st := stepByIndex(t, steps, 1)
	if st.kind != stepScalarBody {
		t.Fatalf("line 1 must be scalar body, got %v", st.kind)
	}
	if st.trailing != "# note" {
		t.Fatalf("trailing comment must be split off, got %q", st.trailing)
	}
	if st.path != "desc" {
		t.Fatalf("continuation owner must be desc, got %q", st.path)
	}
}

func TestWalkLinesDocumentMarkerIsOther(t *testing.T) {
	steps := collectSteps("---\na: 1")
	if st := stepByIndex(t, steps, 0); st.kind != stepOther {
		t.Fatalf("--- must be stepOther, got %v", st.kind)
	}
	if st := stepByIndex(t, steps, 1); st.path != "a" {
		t.Fatalf("key after marker must be at root, got %q", st.path)
	}
}

func TestWalkLinesSiblingAfterNestedBlockPopsStack(t *testing.T) {
	src := strings.Join([]string{
		"a:",       // 0
		"  b: 1",   // 1
		"c: 2",     // 2
	}, "\n")

	steps := collectSteps(src)
	if st := stepByIndex(t, steps, 2); st.path != "c" {
		t.Fatalf("sibling at root must pop nested frames, got %q", st.path)
	}
}
