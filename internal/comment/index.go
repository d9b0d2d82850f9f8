// Package comment holds the positional comment model shared by the dialect
// pipelines: comments are detached from a document before canonical
// re-serialization and reattached afterwards by structural path.
package comment

import "strings"

// Index is the positional record of every comment found in a document.
//
// Comments before the first structural line land in Top, comments after the
// last one in Bottom. Everything else is keyed by the dot-joined path of the
// mapping key it belongs to: full lines that precede a key are its leading
// block, a trailing comment on the key's own line is its inline comment.
type Index struct {
	Top    []string
	Bottom []string

	leading map[string][]string
	inline  map[string]string
	order   []string // пути в порядке первой записи, для детерминированного обхода

	collided  map[string]bool
	collision []string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		leading:  make(map[string][]string),
		inline:   make(map[string]string),
		collided: make(map[string]bool),
	}
}

func (x *Index) noteCollision(path string) {
	if x.collided[path] {
		return
	}
	x.collided[path] = true
	x.collision = append(x.collision, path)
}

func (x *Index) notePath(path string) {
	if _, seenLeading := x.leading[path]; seenLeading {
		return
	}
	if _, seenInline := x.inline[path]; seenInline {
		return
	}
	x.order = append(x.order, path)
}

// AddLeading records full-line comments preceding the key at path. When the
// path already has a leading block (duplicate keys in the source), the new
// lines are appended so nothing is overwritten.
func (x *Index) AddLeading(path string, lines []string) {
	if len(lines) == 0 {
		return
	}
	x.notePath(path)
	if _, ok := x.leading[path]; ok {
		x.noteCollision(path)
	}
	x.leading[path] = append(x.leading[path], lines...)
}

// AddInline records the trailing comment of the key's own line. A second
// inline comment for the same path (duplicate keys again) is joined onto the
// first with a single space.
func (x *Index) AddInline(path, comment string) {
	if comment == "" {
		return
	}
	x.notePath(path)
	if prev, ok := x.inline[path]; ok {
		x.noteCollision(path)
		x.inline[path] = prev + " " + comment
		return
	}
	x.inline[path] = comment
}

// Collisions lists the paths that received comments more than once, meaning
// the document has duplicate keys at the same nesting level. Comments for
// such paths are merged rather than dropped; callers surface the paths as
// warnings.
func (x *Index) Collisions() []string {
	return x.collision
}

// TakeLeading consumes and returns the leading block for path. Repeated calls
// for the same path return nil, so a duplicate key in the canonical output
// cannot duplicate comments.
func (x *Index) TakeLeading(path string) []string {
	lines, ok := x.leading[path]
	if !ok {
		return nil
	}
	delete(x.leading, path)
	return lines
}

// TakeInline consumes and returns the inline comment for path, if any.
func (x *Index) TakeInline(path string) (string, bool) {
	c, ok := x.inline[path]
	if !ok {
		return "", false
	}
	delete(x.inline, path)
	return c, true
}

// Orphans lists the paths whose comments were recorded but never consumed,
// in the order they were first seen. Non-empty after reinjection means the
// extraction and reinjection passes disagreed about the document shape.
func (x *Index) Orphans() []string {
	var paths []string
	for _, p := range x.order {
		_, hasLeading := x.leading[p]
		_, hasInline := x.inline[p]
		if hasLeading || hasInline {
			paths = append(paths, p)
		}
	}
	return paths
}

// DrainOrphans consumes every unconsumed entry and returns its comment lines
// in first-seen order, leading blocks before inline comments per path. The
// caller appends them after the bottom buffer so no comment text is lost.
func (x *Index) DrainOrphans() []string {
	var lines []string
	for _, p := range x.order {
		if block, ok := x.leading[p]; ok {
			lines = append(lines, block...)
			delete(x.leading, p)
		}
		if c, ok := x.inline[p]; ok {
			lines = append(lines, c)
			delete(x.inline, p)
		}
	}
	return lines
}

// Empty reports whether the index holds no comments at all.
func (x *Index) Empty() bool {
	return len(x.Top) == 0 && len(x.Bottom) == 0 && len(x.leading) == 0 && len(x.inline) == 0
}

// PathStack tracks the chain of open container keys during a line walk and
// renders dot-joined paths for the keys encountered.
type PathStack struct {
	parts []string
}

// Push enters a nested container introduced by key.
func (s *PathStack) Push(key string) {
	s.parts = append(s.parts, key)
}

// Pop leaves the innermost container. Popping an empty stack is a no-op:
// stray closers in malformed input must not panic the walker.
func (s *PathStack) Pop() {
	if len(s.parts) > 0 {
		s.parts = s.parts[:len(s.parts)-1]
	}
}

// Depth returns the number of open containers.
func (s *PathStack) Depth() int {
	return len(s.parts)
}

// PathFor renders the full path of key inside the currently open containers.
func (s *PathStack) PathFor(key string) string {
	if len(s.parts) == 0 {
		return key
	}
	return strings.Join(s.parts, ".") + "." + key
}
