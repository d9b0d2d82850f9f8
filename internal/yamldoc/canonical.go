package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"canonfmt/internal/source"
)

// ErrParse marks documents that yaml.v3 refuses to load, including streams
// with more than one document.
var ErrParse = errors.New("yaml: invalid document")

// Canonicalize parses the document into a node tree and re-renders it in
// canonical layout: two-space indent, comments dropped, every null scalar
// spelled "null". Scalar styles (quoting, flow collections, block scalars)
// survive the round trip, so values come back the way they were written.
//
// The bool result reports an empty document (null, empty mapping or
// sequence, empty string, zero, false at the top level); callers pass those
// through verbatim instead of re-serializing.
func Canonicalize(lines []string) ([]string, bool, error) {
	src := []byte(strings.Join(lines, "\n"))

	// yaml.Unmarshal молча берёт первый документ потока; декодер позволяет
	// убедиться, что второго нет
	dec := yaml.NewDecoder(bytes.NewReader(src))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, false, fmt.Errorf("%w: stream holds more than one document", ErrParse)
	}

	if isEmptyTree(&root) {
		return nil, true, nil
	}

	scrub(&root, make(map[*yaml.Node]bool))

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		_ = enc.Close()
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := enc.Close(); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return source.Lines(buf.Bytes()), false, nil
}

// scrub drops the comments yaml.v3 collected during parsing and normalizes
// null spellings ("", "~", "Null") to "null". The seen map guards against
// alias loops.
func scrub(n *yaml.Node, seen map[*yaml.Node]bool) {
	if n == nil || seen[n] {
		return
	}
	seen[n] = true

	n.HeadComment = ""
	n.LineComment = ""
	n.FootComment = ""

	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		n.Value = "null"
	}

	for _, c := range n.Content {
		scrub(c, seen)
	}
}

// isEmptyTree reports documents with no content worth reflowing, mirroring
// the JSONC empty-value rule.
func isEmptyTree(root *yaml.Node) bool {
	if root.Kind == 0 {
		return true
	}

	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return true
		}
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return len(node.Content) == 0
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return true
		case "!!str":
			return node.Value == ""
		case "!!bool":
			v := strings.ToLower(node.Value)
			return v == "false"
		case "!!int":
			i, err := strconv.ParseInt(node.Value, 0, 64)
			return err == nil && i == 0
		case "!!float":
			f, err := strconv.ParseFloat(node.Value, 64)
			return err == nil && f == 0
		}
	}
	return false
}
