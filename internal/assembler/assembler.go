// Package assembler turns parsed IDL files into one semantic model. It
// registers shapes across files, resolves relative trait names and
// forward shape references, applies 'apply' statements, merges metadata,
// and lowers span-based diagnostics to file/line/column locations.
package assembler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gosmithy/gosmithy/internal/ast"
	"github.com/gosmithy/gosmithy/internal/types"
	"github.com/gosmithy/gosmithy/model"
)

// File is one parsed source file handed to the assembler.
type File struct {
	Path   string
	Source []byte
	AST    *ast.File
}

// Assemble builds a model from parsed files. The returned model always
// carries all diagnostics found along the way; callers decide whether an
// erroneous model is still usable.
func Assemble(files []File, logger *slog.Logger) *model.Model {
	a := &assembler{
		model:   model.New(),
		files:   files,
		index:   make([]*lineIndex, len(files)),
		uses:    make([]map[string]model.ShapeID, len(files)),
		defined: make(map[model.ShapeID]struct{}),
		Logger:  types.Logger{L: logger},
	}
	for i, f := range files {
		a.index[i] = newLineIndex(f.Path, f.Source)
	}

	a.lowerParseDiagnostics()
	a.checkVersions()
	a.collectShapeIDs()
	a.buildUseTables()
	a.resolveForwardRefs()
	a.buildShapes()
	a.applyStatements()
	a.mergeMetadata()

	a.model.SortDiagnostics()

	a.Log(slog.LevelDebug, "assembly complete",
		slog.Int("files", len(files)),
		slog.Int("shapes", a.model.NumShapes()),
		slog.Int("diagnostics", len(a.model.Diagnostics)))

	return a.model
}

type assembler struct {
	model *model.Model
	files []File
	index []*lineIndex
	// uses maps, per file, the short name of each use statement to its
	// absolute ID.
	uses []map[string]model.ShapeID
	// defined holds every shape ID declared by any file, available before
	// shapes are built so forward references can resolve.
	defined map[model.ShapeID]struct{}
	types.Logger
}

func (a *assembler) report(fi int, span types.Span, severity model.Severity, code, format string, args ...any) {
	a.model.Diagnostics = append(a.model.Diagnostics, model.Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: a.index[fi].locate(span),
	})
}

func (a *assembler) errorf(fi int, span types.Span, code, format string, args ...any) {
	a.report(fi, span, model.SeverityError, code, format, args...)
}

// lowerParseDiagnostics converts the per-file span diagnostics collected
// by the lexer and parser into located model diagnostics.
func (a *assembler) lowerParseDiagnostics() {
	for fi, f := range a.files {
		for _, d := range f.AST.Diagnostics {
			a.model.Diagnostics = append(a.model.Diagnostics, model.Diagnostic{
				Severity: model.Severity(d.Severity),
				Code:     d.Code,
				Message:  d.Message,
				Location: a.index[fi].locate(d.Span),
			})
		}
	}
}

// checkVersions validates '$version' control statements. The model's
// version is taken from the first file that declares one.
func (a *assembler) checkVersions() {
	for fi, f := range a.files {
		for _, c := range f.AST.Controls {
			if c.Key.Name != "version" {
				continue
			}
			str, ok := c.Value.(*ast.StringNode)
			if !ok || !supportedVersion(str.Value) {
				a.errorf(fi, c.Value.Span(), types.DiagUnsupportedVersion,
					"unsupported IDL version in $version statement")
				continue
			}
			if a.model.Version == "" {
				a.model.Version = str.Value
			}
		}
	}
}

// supportedVersion accepts the 2.x line.
func supportedVersion(v string) bool {
	return v == "2" || strings.HasPrefix(v, "2.")
}

func (a *assembler) collectShapeIDs() {
	for _, f := range a.files {
		ns := f.AST.Namespace.Name
		if ns == "" {
			continue
		}
		for _, s := range f.AST.Shapes {
			a.defined[model.ShapeID{Namespace: ns, Name: s.Name.Name}] = struct{}{}
		}
	}
}

func (a *assembler) buildUseTables() {
	for fi, f := range a.files {
		table := make(map[string]model.ShapeID, len(f.AST.Uses))
		for _, u := range f.AST.Uses {
			id := model.ParseShapeID(u.Target)
			if !id.IsAbsolute() || id.Member != "" {
				a.errorf(fi, u.Span, types.DiagBadUseTarget,
					"use target %q must be an absolute shape ID without a member", u.Target)
				continue
			}
			if _, dup := table[id.Name]; dup {
				a.errorf(fi, u.Span, types.DiagDuplicateUse,
					"duplicate use statement for name %q", id.Name)
				continue
			}
			table[id.Name] = id
		}
		a.uses[fi] = table
	}
}

// resolveShapeName resolves possibly-relative shape ID text against a
// file's context: use statements first, then the file's own namespace,
// then the prelude. Unresolvable names produce a diagnostic and fall back
// to the file's namespace so downstream consumers still see an absolute ID.
func (a *assembler) resolveShapeName(fi int, name string, span types.Span) model.ShapeID {
	id := model.ParseShapeID(name)
	if id.IsAbsolute() {
		return id
	}
	base := id.WithoutMember()
	if use, ok := a.uses[fi][base.Name]; ok {
		return use.WithMember(id.Member)
	}
	ns := a.files[fi].AST.Namespace.Name
	local := model.ShapeID{Namespace: ns, Name: base.Name}
	if _, ok := a.defined[local]; ok {
		return local.WithMember(id.Member)
	}
	if isPreludeShape(base.Name) {
		return model.ShapeID{Namespace: PreludeNamespace, Name: base.Name, Member: id.Member}
	}
	a.errorf(fi, span, types.DiagUnresolvedShape,
		"unresolved shape reference %q", name)
	return local.WithMember(id.Member)
}

// resolveTraitName is like resolveShapeName but falls back to prelude
// trait names.
func (a *assembler) resolveTraitName(fi int, name string, span types.Span) model.ShapeID {
	id := model.ParseShapeID(name)
	if id.IsAbsolute() {
		return id
	}
	if use, ok := a.uses[fi][id.Name]; ok {
		return use
	}
	ns := a.files[fi].AST.Namespace.Name
	local := model.ShapeID{Namespace: ns, Name: id.Name}
	if _, ok := a.defined[local]; ok {
		return local
	}
	if isPreludeTrait(id.Name) {
		return model.ShapeID{Namespace: PreludeNamespace, Name: id.Name}
	}
	a.errorf(fi, span, types.DiagUnresolvedTrait,
		"unresolved trait %q", name)
	return local
}

// resolveForwardRefs rewrites the string nodes recorded for bare
// identifiers in value position so they carry absolute shape IDs. This
// runs before shapes are converted, so the converted nodes inherit the
// resolved values.
func (a *assembler) resolveForwardRefs() {
	for fi, f := range a.files {
		for _, ref := range f.AST.ShapeRefs {
			resolved := a.resolveShapeName(fi, ref.Name, ref.Span)
			ref.Node.Value = resolved.String()
			if a.TraceEnabled() {
				a.Trace("forward reference resolved",
					slog.String("name", ref.Name),
					slog.String("id", ref.Node.Value))
			}
		}
	}
}

func (a *assembler) buildShapes() {
	for fi, f := range a.files {
		ns := f.AST.Namespace.Name
		if ns == "" {
			// Already diagnosed by the parser.
			continue
		}
		for _, stmt := range f.AST.Shapes {
			a.buildShape(fi, ns, stmt)
		}
	}
}

func (a *assembler) buildShape(fi int, ns string, stmt *ast.ShapeStatement) {
	shape := &model.Shape{
		ID:       model.ShapeID{Namespace: ns, Name: stmt.Name.Name},
		Type:     shapeType(stmt.Type),
		Traits:   a.convertTraits(fi, nil, stmt.Traits),
		Location: a.index[fi].locate(stmt.Name.Span),
	}

	for _, m := range stmt.Members {
		member := &model.Member{
			Name:     m.Name.Name,
			Traits:   a.convertTraits(fi, nil, m.Traits),
			Location: a.index[fi].locate(m.Name.Span),
		}
		if m.Target != "" {
			member.Target = a.resolveShapeName(fi, m.Target, m.TargetSpan)
		}
		if m.Value != nil {
			member.EnumValue = convertNode(m.Value)
		}
		shape.Members = append(shape.Members, member)
	}

	for _, p := range stmt.Props {
		shape.Props = append(shape.Props, model.Property{
			Name:  p.Name.Name,
			Value: convertNode(p.Value),
		})
	}

	if !a.model.AddShape(shape) {
		a.errorf(fi, stmt.Name.Span, types.DiagDuplicateShape,
			"shape %s is already defined", shape.ID)
	}
}

// convertTraits resolves and converts trait applications, dropping
// duplicates. existing seeds the duplicate check with traits already
// attached to the target, which matters for apply statements.
func (a *assembler) convertTraits(fi int, existing []model.Trait, traits []ast.TraitApplication) []model.Trait {
	if len(traits) == 0 {
		return nil
	}
	seen := make(map[model.ShapeID]struct{}, len(existing)+len(traits))
	for _, t := range existing {
		seen[t.ID] = struct{}{}
	}
	out := make([]model.Trait, 0, len(traits))
	for _, t := range traits {
		id := a.resolveTraitName(fi, t.Name, t.Loc)
		if _, dup := seen[id]; dup {
			a.errorf(fi, t.Loc, types.DiagDuplicateTrait,
				"trait %s is already applied to this target", id)
			continue
		}
		seen[id] = struct{}{}
		out = append(out, model.Trait{
			ID:       id,
			Value:    convertNode(t.Value),
			Location: a.index[fi].locate(t.Loc),
		})
	}
	return out
}

// applyStatements attaches 'apply' traits to their targets. Targets may
// address a member with the $member syntax.
func (a *assembler) applyStatements() {
	for fi, f := range a.files {
		for _, apply := range f.AST.Applies {
			target := a.resolveShapeName(fi, apply.Target, apply.TargetSpan)
			shape := a.model.Shape(target)
			if shape == nil {
				a.errorf(fi, apply.TargetSpan, types.DiagUnresolvedShape,
					"apply target %s is not defined", target)
				continue
			}
			if target.Member == "" {
				shape.Traits = append(shape.Traits,
					a.convertTraits(fi, shape.Traits, apply.Traits)...)
				continue
			}
			member := shape.Member(target.Member)
			if member == nil {
				a.errorf(fi, apply.TargetSpan, types.DiagUnresolvedShape,
					"apply target %s is not defined", target)
				continue
			}
			member.Traits = append(member.Traits,
				a.convertTraits(fi, member.Traits, apply.Traits)...)
		}
	}
}

// mergeMetadata merges metadata statements across files. The first
// definition of a key wins; later definitions conflict.
func (a *assembler) mergeMetadata() {
	for fi, f := range a.files {
		for _, md := range f.AST.Metadata {
			if _, exists := a.model.Metadata[md.Key]; exists {
				a.errorf(fi, md.Span, types.DiagMetadataConflict,
					"metadata key %q is already defined", md.Key)
				continue
			}
			a.model.Metadata[md.Key] = convertNode(md.Value)
		}
	}
}

// convertNode converts a syntax node to its model representation.
func convertNode(n ast.Node) model.Node {
	switch v := n.(type) {
	case *ast.NullNode:
		return model.NullNode{}
	case *ast.BoolNode:
		return model.BoolNode{Value: v.Value}
	case *ast.StringNode:
		return model.StringNode{Value: v.Value, IsShapeRef: v.IsShapeRef}
	case *ast.NumberNode:
		return model.NumberNode{Text: v.Text, Int: v.Int, Float: v.Float, IsFloat: v.IsFloat}
	case *ast.ArrayNode:
		out := model.ArrayNode{Elems: make([]model.Node, len(v.Elems))}
		for i, e := range v.Elems {
			out.Elems[i] = convertNode(e)
		}
		return out
	case *ast.ObjectNode:
		out := model.ObjectNode{Entries: make([]model.ObjectEntry, len(v.Entries))}
		for i, e := range v.Entries {
			out.Entries[i] = model.ObjectEntry{
				Key:   e.Key.Value,
				Value: convertNode(e.Value),
			}
		}
		return out
	default:
		return model.NullNode{}
	}
}

var shapeTypes = map[ast.ShapeType]model.ShapeType{
	ast.ShapeTypeBlob:       model.ShapeTypeBlob,
	ast.ShapeTypeBoolean:    model.ShapeTypeBoolean,
	ast.ShapeTypeString:     model.ShapeTypeString,
	ast.ShapeTypeByte:       model.ShapeTypeByte,
	ast.ShapeTypeShort:      model.ShapeTypeShort,
	ast.ShapeTypeInteger:    model.ShapeTypeInteger,
	ast.ShapeTypeLong:       model.ShapeTypeLong,
	ast.ShapeTypeFloat:      model.ShapeTypeFloat,
	ast.ShapeTypeDouble:     model.ShapeTypeDouble,
	ast.ShapeTypeBigInteger: model.ShapeTypeBigInteger,
	ast.ShapeTypeBigDecimal: model.ShapeTypeBigDecimal,
	ast.ShapeTypeTimestamp:  model.ShapeTypeTimestamp,
	ast.ShapeTypeDocument:   model.ShapeTypeDocument,
	ast.ShapeTypeList:       model.ShapeTypeList,
	ast.ShapeTypeMap:        model.ShapeTypeMap,
	ast.ShapeTypeStructure:  model.ShapeTypeStructure,
	ast.ShapeTypeUnion:      model.ShapeTypeUnion,
	ast.ShapeTypeEnum:       model.ShapeTypeEnum,
	ast.ShapeTypeIntEnum:    model.ShapeTypeIntEnum,
	ast.ShapeTypeService:    model.ShapeTypeService,
	ast.ShapeTypeOperation:  model.ShapeTypeOperation,
	ast.ShapeTypeResource:   model.ShapeTypeResource,
}

func shapeType(t ast.ShapeType) model.ShapeType {
	return shapeTypes[t]
}
