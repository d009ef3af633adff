package ast

import (
	"fmt"

	"github.com/gosmithy/gosmithy/internal/types"
)

// ShapeType identifies the kind of a shape statement.
type ShapeType int

const (
	ShapeTypeUnknown ShapeType = iota

	// Simple types.
	ShapeTypeBlob
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

	// Aggregate types.
	ShapeTypeList
	ShapeTypeMap
	ShapeTypeStructure
	ShapeTypeUnion
	ShapeTypeEnum
	ShapeTypeIntEnum

	// Service types.
	ShapeTypeService
	ShapeTypeOperation
	ShapeTypeResource
)

// shapeTypeNames maps keyword text to shape type, in declaration order.
var shapeTypeNames = map[string]ShapeType{
	"blob":       ShapeTypeBlob,
	"boolean":    ShapeTypeBoolean,
	"string":     ShapeTypeString,
	"byte":       ShapeTypeByte,
	"short":      ShapeTypeShort,
	"integer":    ShapeTypeInteger,
	"long":       ShapeTypeLong,
	"float":      ShapeTypeFloat,
	"double":     ShapeTypeDouble,
	"bigInteger": ShapeTypeBigInteger,
	"bigDecimal": ShapeTypeBigDecimal,
	"timestamp":  ShapeTypeTimestamp,
	"document":   ShapeTypeDocument,
	"list":       ShapeTypeList,
	"map":        ShapeTypeMap,
	"structure":  ShapeTypeStructure,
	"union":      ShapeTypeUnion,
	"enum":       ShapeTypeEnum,
	"intEnum":    ShapeTypeIntEnum,
	"service":    ShapeTypeService,
	"operation":  ShapeTypeOperation,
	"resource":   ShapeTypeResource,
}

// ShapeTypeFromKeyword returns the shape type for an IDL keyword,
// or ShapeTypeUnknown if the text is not a shape keyword.
func ShapeTypeFromKeyword(text string) ShapeType {
	return shapeTypeNames[text]
}

func (t ShapeType) String() string {
	for name, st := range shapeTypeNames {
		if st == t {
			return name
		}
	}
	return fmt.Sprintf("ShapeType(%d)", int(t))
}

// IsSimple reports whether this is a simple (memberless) type.
func (t ShapeType) IsSimple() bool {
	return t >= ShapeTypeBlob && t <= ShapeTypeDocument
}

// HasNamedMembers reports whether the shape body is a member block
// (list, map, structure, union, enum, intEnum).
func (t ShapeType) HasNamedMembers() bool {
	return t >= ShapeTypeList && t <= ShapeTypeIntEnum
}

// HasProperties reports whether the shape body is a node-valued property
// block (service, operation, resource).
func (t ShapeType) HasProperties() bool {
	return t >= ShapeTypeService && t <= ShapeTypeResource
}

// ShapeStatement is one shape definition.
type ShapeStatement struct {
	Type    ShapeType
	Name    Ident
	Traits  []TraitApplication
	Members []*MemberStatement  // list/map/structure/union/enum/intEnum
	Props   []PropertyStatement // service/operation/resource
	Span    types.Span
}

// MemberStatement is a member of an aggregate shape. Target is the raw
// (possibly relative) shape ID text for structure/union/list/map members;
// Value is the optional '= node' of enum and intEnum members.
type MemberStatement struct {
	Name       Ident
	Target     string
	TargetSpan types.Span
	Value      Node
	Traits     []TraitApplication
	Span       types.Span
}

// PropertyStatement is a 'key: node' entry of a service, operation, or
// resource body.
type PropertyStatement struct {
	Name  Ident
	Value Node
	Span  types.Span
}
