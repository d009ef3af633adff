package ast

import (
	"slices"

	"github.com/gosmithy/gosmithy/internal/types"
)

// Ident is an identifier with source span.
type Ident struct {
	Name string
	Span types.Span
}

// NewIdent creates a new identifier.
func NewIdent(name string, span types.Span) Ident {
	return Ident{Name: name, Span: span}
}

// File is the top-level AST node for one parsed IDL file.
type File struct {
	Path        string
	Controls    []ControlStatement
	Metadata    []MetadataStatement
	Namespace   Ident // empty Name if the file declared no namespace
	Uses        []UseStatement
	Shapes      []*ShapeStatement
	Applies     []ApplyStatement
	ShapeRefs   []*ForwardRef
	Diagnostics []types.SpanDiagnostic
}

// HasErrors reports whether any diagnostic has error severity or worse.
func (f *File) HasErrors() bool {
	return slices.ContainsFunc(f.Diagnostics, func(d types.SpanDiagnostic) bool {
		return d.Severity <= types.SeverityError
	})
}

// ControlStatement is a '$key: value' statement from the control section.
type ControlStatement struct {
	Key   Ident
	Value Node
	Span  types.Span
}

// MetadataStatement is a 'metadata key = value' statement.
type MetadataStatement struct {
	Key   string
	Value Node
	Span  types.Span
}

// UseStatement imports an absolute shape ID into the file's namespace.
type UseStatement struct {
	Target string // absolute shape ID text
	Span   types.Span
}

// ShortName returns the name part of the use target (after '#').
func (u UseStatement) ShortName() string {
	for i := len(u.Target) - 1; i >= 0; i-- {
		if u.Target[i] == '#' {
			return u.Target[i+1:]
		}
	}
	return u.Target
}

// ApplyStatement attaches traits to an already-defined shape.
type ApplyStatement struct {
	Target     string // possibly relative shape ID text
	TargetSpan types.Span
	Traits     []TraitApplication
	Span       types.Span
}

// ForwardRef is a bare identifier used in value position whose shape
// resolution is deferred until all files are parsed. Node points at the
// StringNode the parser produced so the assembler can rewrite its value
// to the absolute ID.
type ForwardRef struct {
	Name string
	Span types.Span
	Node *StringNode
}
