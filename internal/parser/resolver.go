package parser

import (
	"github.com/gosmithy/gosmithy/internal/ast"
	"github.com/gosmithy/gosmithy/internal/types"
)

// ReferenceResolver turns a bare identifier in value position into a node.
// Implementations handle the keyword literals (true, false, null) and
// record everything else as a forward shape reference to be resolved once
// all files are parsed.
type ReferenceResolver interface {
	ResolveBareIdentifier(name string, span types.Span) ast.Node
}

// forwardRefResolver is the default ReferenceResolver. Keyword literals
// become value nodes; anything else is recorded on the file as a forward
// shape reference carrying the raw name.
type forwardRefResolver struct {
	file *ast.File
}

func (r *forwardRefResolver) ResolveBareIdentifier(name string, span types.Span) ast.Node {
	switch name {
	case "true":
		return &ast.BoolNode{Value: true, Loc: span}
	case "false":
		return &ast.BoolNode{Value: false, Loc: span}
	case "null":
		return &ast.NullNode{Loc: span}
	}
	node := &ast.StringNode{Value: name, IsShapeRef: true, Loc: span}
	r.file.ShapeRefs = append(r.file.ShapeRefs, &ast.ForwardRef{
		Name: name,
		Span: span,
		Node: node,
	})
	return node
}
