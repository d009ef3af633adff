package model

import (
	"encoding/json"
	"testing"
)

func TestParseShapeID(t *testing.T) {
	cases := []struct {
		text string
		want ShapeID
	}{
		{"Foo", ShapeID{Name: "Foo"}},
		{"ns.a#Foo", ShapeID{Namespace: "ns.a", Name: "Foo"}},
		{"Foo$bar", ShapeID{Name: "Foo", Member: "bar"}},
		{"ns.a#Foo$bar", ShapeID{Namespace: "ns.a", Name: "Foo", Member: "bar"}},
	}
	for _, c := range cases {
		if got := ParseShapeID(c.text); got != c.want {
			t.Errorf("ParseShapeID(%q) = %+v, want %+v", c.text, got, c.want)
		}
		if got := c.want.String(); got != c.text {
			t.Errorf("%+v.String() = %q, want %q", c.want, got, c.text)
		}
	}
}

func TestShapeIDCompare(t *testing.T) {
	a := ShapeID{Namespace: "a", Name: "X"}
	b := ShapeID{Namespace: "b", Name: "A"}
	if a.Compare(b) >= 0 {
		t.Error("namespace ordering dominates name ordering")
	}
	if a.Compare(a) != 0 {
		t.Error("equal IDs compare to zero")
	}
}

func TestShapeIDText(t *testing.T) {
	var id ShapeID
	if err := id.UnmarshalText([]byte("ns#Foo$m")); err != nil {
		t.Fatal(err)
	}
	if id.Member != "m" {
		t.Errorf("member = %q, want %q", id.Member, "m")
	}
	if err := id.UnmarshalText([]byte("ns#")); err == nil {
		t.Error("empty name must fail")
	}
}

func TestObjectNodeMarshalOrder(t *testing.T) {
	obj := ObjectNode{Entries: []ObjectEntry{
		{Key: "zeta", Value: NumberNode{Int: 1}},
		{Key: "alpha", Value: StringNode{Value: "x"}},
		{Key: "mid", Value: BoolNode{Value: true}},
	}}
	out, err := json.Marshal(obj)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"zeta":1,"alpha":"x","mid":true}`
	if string(out) != want {
		t.Errorf("marshal = %s, want %s", out, want)
	}
}

func TestNodeMarshal(t *testing.T) {
	arr := ArrayNode{Elems: []Node{
		NullNode{},
		NumberNode{IsFloat: true, Float: 2.5},
		StringNode{Value: "s"},
	}}
	out, err := json.Marshal(arr)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `[null,2.5,"s"]` {
		t.Errorf("marshal = %s", out)
	}
}

func TestNodeToAny(t *testing.T) {
	obj := ObjectNode{Entries: []ObjectEntry{
		{Key: "n", Value: NumberNode{Int: 3}},
		{Key: "list", Value: ArrayNode{Elems: []Node{BoolNode{Value: false}}}},
	}}
	v := NodeToAny(obj).(map[string]any)
	if v["n"] != int64(3) {
		t.Errorf("n = %v", v["n"])
	}
	list := v["list"].([]any)
	if list[0] != false {
		t.Errorf("list[0] = %v", list[0])
	}
}

func TestModelAccessors(t *testing.T) {
	m := New()
	m.AddShape(&Shape{ID: ShapeID{Namespace: "b", Name: "B"}, Type: ShapeTypeString})
	m.AddShape(&Shape{ID: ShapeID{Namespace: "a", Name: "A"}, Type: ShapeTypeInteger})

	if m.NumShapes() != 2 {
		t.Fatalf("NumShapes = %d", m.NumShapes())
	}
	shapes := m.Shapes()
	if shapes[0].ID.Namespace != "a" || shapes[1].ID.Namespace != "b" {
		t.Error("Shapes() not sorted by ID")
	}
	namespaces := m.Namespaces()
	if len(namespaces) != 2 || namespaces[0] != "a" {
		t.Errorf("Namespaces = %v", namespaces)
	}
	if len(m.ShapesInNamespace("a")) != 1 {
		t.Error("ShapesInNamespace filter")
	}
	if added := m.AddShape(&Shape{ID: ShapeID{Namespace: "a", Name: "A"}}); added {
		t.Error("duplicate AddShape must report false")
	}
}

func TestShapeTraitLookup(t *testing.T) {
	s := &Shape{
		ID: ShapeID{Namespace: "x", Name: "S"},
		Traits: []Trait{
			{ID: DocumentationTraitID, Value: StringNode{Value: "docs"}},
			{ID: ShapeID{Namespace: "smithy.api", Name: "required"}, Value: NullNode{}},
		},
	}
	if !s.HasTrait(DocumentationTraitID) {
		t.Error("HasTrait")
	}
	if s.Documentation() != "docs" {
		t.Errorf("Documentation() = %q", s.Documentation())
	}
	if s.Trait(ShapeID{Name: "nope"}) != nil {
		t.Error("missing trait must return nil")
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityError,
		Code:     "duplicate-member",
		Message:  `duplicate member "a"`,
		Location: SourceLocation{File: "m.smithy", Line: 3, Column: 7},
	}
	want := `m.smithy:3:7: error: duplicate member "a" [duplicate-member]`
	if d.String() != want {
		t.Errorf("String() = %q, want %q", d.String(), want)
	}
	if !d.IsError() {
		t.Error("IsError")
	}
	if (Diagnostic{Severity: SeverityWarning}).IsError() {
		t.Error("warnings are not errors")
	}
}
