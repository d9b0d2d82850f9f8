package yamldoc

import "strings"

// stepKind classifies one line of a document walk.
type stepKind int

const (
	// stepBlank is an empty or whitespace-only line.
	stepBlank stepKind = iota
	// stepComment is a line holding nothing but a comment.
	stepComment
	// stepKey is a mapping entry; the step carries its key, path and value
	// classification.
	stepKey
	// stepEntry is a sequence entry line ("- ..."). Sequence items have no
	// addressable path; their comments travel to the next key.
	stepEntry
	// stepOther is structural content the walker does not address: document
	// markers, flow collections spanning the whole line, stray scalars.
	stepOther
	// stepScalarBody is a line inside a block scalar or a wrapped scalar
	// continuation. The line is opaque: nothing in it is a comment or a key.
	stepScalarBody
)

// lineStep describes one classified line.
type lineStep struct {
	index    int
	kind     stepKind
	raw      string
	content  string // без комментария и хвостовых пробелов
	trailing string
	key      string    // только для stepKey
	path     string    // ключ для stepKey; владелец для продолжений скаляра
	scalar   valueKind // только для stepKey
	quoted   bool      // stepKey: значение начинается с кавычки
}

// valueKind classifies what follows a mapping key on its own line.
type valueKind int

const (
	// valueLeaf means the value completes on the line (scalar or flow).
	valueLeaf valueKind = iota
	// valueOpensBlock means children follow on deeper lines: the value part
	// is empty or holds only anchors and tags.
	valueOpensBlock
	// valueBlockScalar means a | or > indicator: a raw scalar body follows.
	valueBlockScalar
)

type frame struct {
	indent int
	key    string
}

// lineIndent counts the leading spaces of a line. YAML never indents with
// tabs; tabbed lines fail later during parsing.
func lineIndent(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// parseKey recognizes a mapping entry at the start of s (indentation already
// removed) and returns the key text plus the value part after the colon.
// Quoted keys are unwrapped: the path uses the text between the quotes.
func parseKey(s string) (key, value string, ok bool) {
	if s == "" {
		return "", "", false
	}

	switch s[0] {
	case '{', '[', '#', '*':
		return "", "", false
	case '-':
		// "- " открывает элемент последовательности, не ключ
		if len(s) == 1 || s[1] == ' ' || s[1] == '\t' {
			return "", "", false
		}
	case '"':
		inner, after, closed := scanDoubleQuoted(s)
		if !closed {
			return "", "", false
		}
		value, ok = expectColon(s[after:])
		if !ok {
			return "", "", false
		}
		return inner, value, true
	case '\'':
		inner, after, closed := scanSingleQuoted(s)
		if !closed {
			return "", "", false
		}
		value, ok = expectColon(s[after:])
		if !ok {
			return "", "", false
		}
		return inner, value, true
	}

	// Плоский ключ: первое ":" с пробелом или концом строки после него.
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}
		if i+1 == len(s) || s[i+1] == ' ' || s[i+1] == '\t' {
			return strings.TrimRight(s[:i], " \t"), strings.TrimSpace(s[i+1:]), true
		}
	}
	return "", "", false
}

// scanDoubleQuoted scans a double-quoted scalar at s[0] and returns the raw
// inner text, the index past the closing quote, and whether it closed.
func scanDoubleQuoted(s string) (inner string, after int, closed bool) {
	escaped := false
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '"' {
			return s[1:i], i + 1, true
		}
	}
	return "", 0, false
}

// scanSingleQuoted scans a single-quoted scalar at s[0]; doubled quotes are
// unescaped in the returned text.
func scanSingleQuoted(s string) (inner string, after int, closed bool) {
	i := 1
	for i < len(s) {
		if s[i] != '\'' {
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			i += 2
			continue
		}
		return strings.ReplaceAll(s[1:i], "''", "'"), i + 1, true
	}
	return "", 0, false
}

// expectColon consumes ":" (with optional spaces before it) and requires a
// space or end of line after it, returning the trimmed value part.
func expectColon(s string) (value string, ok bool) {
	s = strings.TrimLeft(s, " ")
	if s == "" || s[0] != ':' {
		return "", false
	}
	s = s[1:]
	if s != "" && s[0] != ' ' && s[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// classifyValue decides how the value part of a key line continues.
func classifyValue(value string) valueKind {
	if value == "" {
		return valueOpensBlock
	}

	fields := strings.Fields(value)
	props := 0
	for _, f := range fields {
		if f[0] == '&' || f[0] == '!' {
			props++
			continue
		}
		break
	}
	if props == len(fields) {
		// только якоря и теги: значение на следующих строках
		return valueOpensBlock
	}
	if props == len(fields)-1 && isBlockIndicator(fields[props]) {
		return valueBlockScalar
	}
	return valueLeaf
}

// isBlockIndicator matches | and > with optional chomping and indentation
// modifiers.
func isBlockIndicator(tok string) bool {
	if tok == "" || (tok[0] != '|' && tok[0] != '>') {
		return false
	}
	rest := tok[1:]
	if len(rest) > 2 {
		return false
	}
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		if ch != '+' && ch != '-' && (ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}

// skipBody returns the index of the first line after an opaque scalar zone
// anchored at indent. Block scalar bodies (blanks allowed) own every deeper
// line; plain continuations stop at blanks and at comment lines.
func skipBody(lines []string, from, indent int, blanksBelong bool) int {
	i := from
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if !blanksBelong {
				break
			}
			i++
			continue
		}
		if lineIndent(line) <= indent {
			break
		}
		if !blanksBelong && strings.HasPrefix(trimmed, "#") {
			break
		}
		i++
	}
	return i
}

// walkLines classifies every line in order and invokes fn per line. The walk
// keeps the indentation stack of open block mappings, so stepKey lines carry
// full dot-joined paths. Extraction and reinjection both run this walker;
// a single classifier is what keeps their path resolution identical.
func walkLines(lines []string, fn func(st lineStep)) {
	var stack []frame

	pathFor := func(key string) string {
		if len(stack) == 0 {
			return key
		}
		parts := make([]string, 0, len(stack)+1)
		for _, f := range stack {
			parts = append(parts, f.key)
		}
		return strings.Join(append(parts, key), ".")
	}

	// emitBody emits the lines of an opaque scalar zone. Continuations of a
	// plain (unquoted) scalar get their trailing comments split off: a plain
	// scalar cannot contain " #", so the split never bites into the value.
	// Quoted continuations and block scalar bodies stay untouched.
	emitBody := func(from, to int, owner string, split bool) {
		for j := from; j < to; j++ {
			st := lineStep{index: j, kind: stepScalarBody, raw: lines[j], content: lines[j], path: owner}
			if split {
				st.content, st.trailing = SplitComment(lines[j])
			}
			fn(st)
		}
	}

	quotedValue := func(value string) bool {
		return value != "" && (value[0] == '"' || value[0] == '\'')
	}

	i := 0
	for i < len(lines) {
		raw := lines[i]
		content, trailing := SplitComment(raw)

		if strings.TrimSpace(content) == "" {
			kind := stepBlank
			if trailing != "" {
				kind = stepComment
			}
			fn(lineStep{index: i, kind: kind, raw: raw, content: content, trailing: trailing})
			i++
			continue
		}

		indent := lineIndent(content)
		trimmed := content[indent:]

		if trimmed == "-" || strings.HasPrefix(trimmed, "- ") {
			fn(lineStep{index: i, kind: stepEntry, raw: raw, content: content, trailing: trailing})

			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
			end, split := i+1, false
			if rest != "" && rest != "-" && !strings.HasPrefix(rest, "- ") {
				innerValue, innerKey := "", false
				if _, v, ok := parseKey(rest); ok {
					innerValue, innerKey = v, true
				}
				switch {
				case innerKey && classifyValue(innerValue) == valueBlockScalar:
					end = skipBody(lines, i+1, indent, true)
				case innerKey:
					// "- key: значение": глубже могут идти соседние ключи
					// вложенного блока, пропускать нельзя
				case classifyValue(rest) == valueBlockScalar:
					end = skipBody(lines, i+1, indent, true)
				default:
					// скалярный элемент: глубже могут быть только продолжения
					end = skipBody(lines, i+1, indent, false)
					split = !quotedValue(rest)
				}
			}
			emitBody(i+1, end, "", split)
			i = end
			continue
		}

		key, value, ok := parseKey(trimmed)
		if !ok {
			fn(lineStep{index: i, kind: stepOther, raw: raw, content: content, trailing: trailing})
			i++
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}

		kind := classifyValue(value)
		path := pathFor(key)
		fn(lineStep{
			index:    i,
			kind:     stepKey,
			raw:      raw,
			content:  content,
			trailing: trailing,
			key:      key,
			path:     path,
			scalar:   kind,
			quoted:   quotedValue(value),
		})

		end, split := i+1, false
		switch kind {
		case valueOpensBlock:
			stack = append(stack, frame{indent: indent, key: key})
		case valueBlockScalar:
			end = skipBody(lines, i+1, indent, true)
		case valueLeaf:
			end = skipBody(lines, i+1, indent, false)
			split = !quotedValue(value)
		}
		emitBody(i+1, end, path, split)
		i = end
	}
}
