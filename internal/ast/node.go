// Package ast provides syntax tree types for parsed Smithy IDL files.
package ast

import (
	"github.com/gosmithy/gosmithy/internal/types"
)

// Node is a parsed value: null, boolean, string, number, array, or object.
// Every node carries the source span it was parsed from. Nodes are built
// once by the parser and never mutated afterwards, with one exception: the
// assembler rewrites the Value of a shape-reference StringNode to the
// absolute shape ID once forward references are resolved.
type Node interface {
	Span() types.Span
	node()
}

// NullNode is an explicit or implicit null value.
type NullNode struct {
	Loc types.Span
}

// BoolNode is a boolean keyword value.
type BoolNode struct {
	Value bool
	Loc   types.Span
}

// StringNode is a string value. IsShapeRef marks strings produced from a
// bare identifier whose resolution is deferred to the assembler.
type StringNode struct {
	Value      string
	IsShapeRef bool
	Loc        types.Span
}

// NumberNode is a numeric value. Text preserves the literal as written;
// IsFloat selects between Int and Float.
type NumberNode struct {
	Text    string
	Int     int64
	Float   float64
	IsFloat bool
	Loc     types.Span
}

// ArrayNode is an ordered list of values.
type ArrayNode struct {
	Elems []Node
	Loc   types.Span
}

// ObjectNode is an ordered string-keyed mapping with unique keys.
// For a structured trait body the span is the span of the first key,
// not of any enclosing delimiter.
type ObjectNode struct {
	Entries []ObjectEntry
	Loc     types.Span
}

// ObjectEntry is a single key/value pair of an ObjectNode.
type ObjectEntry struct {
	Key   StringNode
	Value Node
}

func (n *NullNode) Span() types.Span   { return n.Loc }
func (n *BoolNode) Span() types.Span   { return n.Loc }
func (n *StringNode) Span() types.Span { return n.Loc }
func (n *NumberNode) Span() types.Span { return n.Loc }
func (n *ArrayNode) Span() types.Span  { return n.Loc }
func (n *ObjectNode) Span() types.Span { return n.Loc }

func (*NullNode) node()   {}
func (*BoolNode) node()   {}
func (*StringNode) node() {}
func (*NumberNode) node() {}
func (*ArrayNode) node()  {}
func (*ObjectNode) node() {}

// Get returns the value for key, or nil and false if absent.
func (n *ObjectNode) Get(key string) (Node, bool) {
	for i := range n.Entries {
		if n.Entries[i].Key.Value == key {
			return n.Entries[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (n *ObjectNode) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}
