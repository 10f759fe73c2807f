package jsonpath

import (
	"slices"
	"strconv"
	"strings"

	"github.com/jacoelho/jpq/internal/value"
)

// PathElement is a single step of a normalized path: an object member name or
// an array index.
type PathElement struct {
	IsIndex bool
	Name    string // member name for objects
	Index   int    // index for arrays
}

// NormalizedPath locates a node inside the queried value. It only ever holds
// names and non-negative indices.
type NormalizedPath []PathElement

// Child returns a copy of p extended with a member name.
func (p NormalizedPath) Child(name string) NormalizedPath {
	return append(slices.Clip(p), PathElement{Name: name})
}

// Element returns a copy of p extended with an array index.
func (p NormalizedPath) Element(index int) NormalizedPath {
	return append(slices.Clip(p), PathElement{IsIndex: true, Index: index})
}

// Last returns the final element, if any.
func (p NormalizedPath) Last() (PathElement, bool) {
	if len(p) == 0 {
		return PathElement{}, false
	}
	return p[len(p)-1], true
}

// String renders the normalized path form, e.g. $['a'][0].
func (p NormalizedPath) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, pe := range p {
		b.WriteByte('[')
		if pe.IsIndex {
			b.WriteString(strconv.Itoa(pe.Index))
		} else {
			b.WriteString(quoteString(pe.Name, '\''))
		}
		b.WriteByte(']')
	}
	return b.String()
}

// Pointer renders the location as an RFC 6901 JSON Pointer.
func (p NormalizedPath) Pointer() string {
	var b strings.Builder
	for _, pe := range p {
		b.WriteByte('/')
		if pe.IsIndex {
			b.WriteString(strconv.Itoa(pe.Index))
			continue
		}
		for _, r := range pe.Name {
			switch r {
			case '~':
				b.WriteString("~0")
			case '/':
				b.WriteString("~1")
			default:
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// Path converts the location into a singular query rooted at $.
func (p NormalizedPath) Path() *Path {
	path := &Path{Identifier: Root}
	for _, pe := range p {
		var sel Selector = NameSelector{Name: pe.Name, Quote: '\''}
		if pe.IsIndex {
			sel = IndexSelector{Index: pe.Index}
		}
		path.Segments = append(path.Segments, Segment{Kind: ChildSegment, Selectors: []Selector{sel}})
	}
	return path
}

// Node is a matched value together with its location.
type Node struct {
	Value value.Value
	Path  NormalizedPath
}

// NodeList is the ordered result of evaluating a path. Nodes reachable more
// than once are listed once per match.
type NodeList []Node

func (nl NodeList) Values() []value.Value {
	values := make([]value.Value, len(nl))
	for i, n := range nl {
		values[i] = n.Value
	}
	return values
}

func (nl NodeList) Paths() []NormalizedPath {
	paths := make([]NormalizedPath, len(nl))
	for i, n := range nl {
		paths[i] = n.Path
	}
	return paths
}
