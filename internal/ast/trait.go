package ast

import (
	"github.com/gosmithy/gosmithy/internal/types"
)

// DocumentationTraitID is the absolute ID of the trait synthesized from
// '///' documentation comments.
const DocumentationTraitID = "smithy.api#documentation"

// TraitKind distinguishes how a trait application was written.
type TraitKind int

const (
	// TraitKindValue is a trait with an explicit argument: @t(...).
	TraitKindValue TraitKind = iota
	// TraitKindAnnotation is a bare trait or empty parens: @t or @t().
	// Annotation applications always carry a NullNode value.
	TraitKindAnnotation
	// TraitKindDocComment is a documentation trait synthesized from
	// '///' comments. At most one per application list, always last.
	TraitKindDocComment
)

func (k TraitKind) String() string {
	switch k {
	case TraitKindValue:
		return "value"
	case TraitKindAnnotation:
		return "annotation"
	case TraitKindDocComment:
		return "doc-comment"
	default:
		return "unknown"
	}
}

// TraitApplication is a pending trait whose name has not yet been resolved
// to an absolute shape ID. It is built while parsing the traits preceding a
// declaration, consumed by the assembler, and discarded.
type TraitApplication struct {
	Name  string // possibly relative; resolved by the assembler
	Value Node
	Kind  TraitKind
	Loc   types.Span
}
