package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Node is a JSON-like value attached to traits, metadata entries, and
// shape properties. Object nodes preserve the member order of the source
// text, which is why this is not simply map[string]any.
type Node interface {
	json.Marshaler
	node()
}

// NullNode is an explicit null value. Annotation traits carry one.
type NullNode struct{}

// BoolNode is a boolean value.
type BoolNode struct {
	Value bool
}

// StringNode is a string value. IsShapeRef marks values that were written
// as bare shape references in the source; for those, Value holds the
// resolved absolute shape ID.
type StringNode struct {
	Value      string
	IsShapeRef bool
}

// NumberNode is a numeric value. IsFloat selects between Int and Float;
// Text preserves the source spelling.
type NumberNode struct {
	Text    string
	Int     int64
	Float   float64
	IsFloat bool
}

// ArrayNode is an ordered list of values.
type ArrayNode struct {
	Elems []Node
}

// ObjectNode is a set of key/value members in source order.
type ObjectNode struct {
	Entries []ObjectEntry
}

// ObjectEntry is one member of an object node.
type ObjectEntry struct {
	Key   string
	Value Node
}

func (NullNode) node()   {}
func (BoolNode) node()   {}
func (StringNode) node() {}
func (NumberNode) node() {}
func (ArrayNode) node()  {}
func (ObjectNode) node() {}

// Get returns the value for key, or nil if the object has no such member.
func (o ObjectNode) Get(key string) Node {
	for _, e := range o.Entries {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Has reports whether the object has a member with the given key.
func (o ObjectNode) Has(key string) bool {
	return o.Get(key) != nil
}

func (NullNode) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (n BoolNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

func (n StringNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

func (n NumberNode) MarshalJSON() ([]byte, error) {
	if n.IsFloat {
		return json.Marshal(n.Float)
	}
	return strconv.AppendInt(nil, n.Int, 10), nil
}

func (n ArrayNode) MarshalJSON() ([]byte, error) {
	if n.Elems == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(n.Elems)
}

// MarshalJSON writes members in source order.
func (o ObjectNode) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NodeToAny converts a node to plain Go values: nil, bool, int64, float64,
// string, []any, or map-free ordered pairs flattened to map[string]any.
// Object member order is lost; use the node types directly when order
// matters.
func NodeToAny(n Node) any {
	switch v := n.(type) {
	case NullNode:
		return nil
	case BoolNode:
		return v.Value
	case StringNode:
		return v.Value
	case NumberNode:
		if v.IsFloat {
			return v.Float
		}
		return v.Int
	case ArrayNode:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = NodeToAny(e)
		}
		return out
	case ObjectNode:
		out := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			out[e.Key] = NodeToAny(e.Value)
		}
		return out
	default:
		return nil
	}
}
