package model

import "fmt"

// ShapeType is the kind of a shape.
type ShapeType int

const (
	ShapeTypeBlob ShapeType = iota
	ShapeTypeBoolean
	ShapeTypeString
	ShapeTypeByte
	ShapeTypeShort
	ShapeTypeInteger
	ShapeTypeLong
	ShapeTypeFloat
	ShapeTypeDouble
	ShapeTypeBigInteger
	ShapeTypeBigDecimal
	ShapeTypeTimestamp
	ShapeTypeDocument
	ShapeTypeList
	ShapeTypeMap
	ShapeTypeStructure
	ShapeTypeUnion
	ShapeTypeEnum
	ShapeTypeIntEnum
	ShapeTypeService
	ShapeTypeOperation
	ShapeTypeResource
)

var shapeTypeNames = [...]string{
	ShapeTypeBlob:       "blob",
	ShapeTypeBoolean:    "boolean",
	ShapeTypeString:     "string",
	ShapeTypeByte:       "byte",
	ShapeTypeShort:      "short",
	ShapeTypeInteger:    "integer",
	ShapeTypeLong:       "long",
	ShapeTypeFloat:      "float",
	ShapeTypeDouble:     "double",
	ShapeTypeBigInteger: "bigInteger",
	ShapeTypeBigDecimal: "bigDecimal",
	ShapeTypeTimestamp:  "timestamp",
	ShapeTypeDocument:   "document",
	ShapeTypeList:       "list",
	ShapeTypeMap:        "map",
	ShapeTypeStructure:  "structure",
	ShapeTypeUnion:      "union",
	ShapeTypeEnum:       "enum",
	ShapeTypeIntEnum:    "intEnum",
	ShapeTypeService:    "service",
	ShapeTypeOperation:  "operation",
	ShapeTypeResource:   "resource",
}

func (t ShapeType) String() string {
	if int(t) < len(shapeTypeNames) {
		return shapeTypeNames[t]
	}
	return fmt.Sprintf("ShapeType(%d)", int(t))
}

func (t ShapeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// DocumentationTraitID is the trait carrying shape documentation. Doc
// comments in the IDL compile down to it.
var DocumentationTraitID = ShapeID{Namespace: "smithy.api", Name: "documentation"}

// Trait is one trait applied to a shape or member. Annotation traits and
// doc comments carry a NullNode and StringNode value respectively.
type Trait struct {
	ID       ShapeID
	Value    Node
	Location SourceLocation
}

// Member is a named member of an aggregate shape. Target is empty for enum
// and intEnum members, which carry an EnumValue instead.
type Member struct {
	Name      string
	Target    ShapeID
	EnumValue Node
	Traits    []Trait
	Location  SourceLocation
}

// Property is a node-valued entry of a service, operation, or resource
// shape body, e.g. 'input', 'output', 'version', or 'operations'.
type Property struct {
	Name  string
	Value Node
}

// Shape is one shape of the assembled model.
type Shape struct {
	ID       ShapeID
	Type     ShapeType
	Traits   []Trait
	Members  []*Member // in declaration order
	Props    []Property
	Location SourceLocation
}

// Trait returns the applied trait with the given ID, or nil.
func (s *Shape) Trait(id ShapeID) *Trait {
	for i := range s.Traits {
		if s.Traits[i].ID == id {
			return &s.Traits[i]
		}
	}
	return nil
}

// HasTrait reports whether the shape carries the given trait.
func (s *Shape) HasTrait(id ShapeID) bool {
	return s.Trait(id) != nil
}

// Documentation returns the shape's documentation text, or "" if the
// shape has no documentation trait.
func (s *Shape) Documentation() string {
	t := s.Trait(DocumentationTraitID)
	if t == nil {
		return ""
	}
	if str, ok := t.Value.(StringNode); ok {
		return str.Value
	}
	return ""
}

// Member returns the named member, or nil.
func (s *Shape) Member(name string) *Member {
	for _, m := range s.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Property returns the named property value, or nil.
func (s *Shape) Property(name string) Node {
	for _, p := range s.Props {
		if p.Name == name {
			return p.Value
		}
	}
	return nil
}
