package parser

import (
	"fmt"
	"log/slog"

	"github.com/gosmithy/gosmithy/internal/ast"
	"github.com/gosmithy/gosmithy/internal/lexer"
	"github.com/gosmithy/gosmithy/internal/types"
)

// ParseFile parses a complete IDL file and returns its AST.
// Statement-level parse errors are collected in the file's diagnostics
// and parsing resumes at the next statement; a resource-limit failure
// aborts the rest of the file.
func (p *Parser) ParseFile() *ast.File {
	p.parseControlSection()

	for !p.isEOF() {
		traits, diag := p.parseLeadingTraits()
		if diag != nil {
			p.recordParseError(*diag)
			if diag.IsFatal() {
				break
			}
			p.recoverToStatement()
			continue
		}
		if p.isEOF() {
			// Trailing doc comments or traits with nothing to attach to.
			if hasExplicitTraits(traits) {
				p.recordParseError(p.makeErrorAt(traits[0].Loc,
					"expected a shape statement after trait applications"))
			}
			break
		}
		if diag := p.parseStatement(traits); diag != nil {
			p.recordParseError(*diag)
			if diag.IsFatal() {
				break
			}
			p.recoverToStatement()
		}
	}

	p.file.Diagnostics = append(p.lex.Diagnostics(), p.file.Diagnostics...)

	p.Log(slog.LevelDebug, "parsing complete",
		slog.String("path", p.path),
		slog.Int("shapes", len(p.file.Shapes)),
		slog.Int("diagnostics", len(p.file.Diagnostics)))

	return p.file
}

// parseControlSection parses leading '$key: value' statements.
func (p *Parser) parseControlSection() {
	p.skipWs()
	for p.check(lexer.TokDollar) {
		span := p.currentSpan()
		p.advance()
		key, diag := p.expect(lexer.TokIdentifier)
		if diag != nil {
			p.recordParseError(*diag)
			p.recoverToStatement()
			p.skipWs()
			continue
		}
		p.skipWs()
		if _, diag := p.expect(lexer.TokColon); diag != nil {
			p.recordParseError(*diag)
			p.recoverToStatement()
			p.skipWs()
			continue
		}
		p.skipWs()
		value, vdiag := p.parseNode()
		if vdiag != nil {
			p.recordParseError(*vdiag)
			p.recoverToStatement()
			p.skipWs()
			continue
		}
		p.file.Controls = append(p.file.Controls, ast.ControlStatement{
			Key:   p.makeIdent(key),
			Value: value,
			Span:  types.NewSpan(span.Start, value.Span().End),
		})
		p.skipWs()
	}
}

// parseStatement dispatches one statement. The leading traits were already
// parsed; only shape statements may carry them.
func (p *Parser) parseStatement(traits []ast.TraitApplication) *types.SpanDiagnostic {
	// A '$' past the control section is a misplaced control statement.
	// It must be consumed here: recoverToStatement treats '$' as a
	// statement start and would otherwise never move past it.
	if p.check(lexer.TokDollar) {
		tok := p.advance()
		d := p.makeErrorAt(tok.Span, "control statements must appear before any other statement")
		return &d
	}

	tok, diag := p.expect(lexer.TokIdentifier)
	if diag != nil {
		return diag
	}
	keyword := p.text(tok.Span)

	if shapeType := ast.ShapeTypeFromKeyword(keyword); shapeType != ast.ShapeTypeUnknown {
		if p.file.Namespace.Name == "" {
			d := types.SpanDiagnostic{
				Severity: types.SeverityError,
				Code:     types.DiagMissingNamespace,
				Span:     tok.Span,
				Message:  "a namespace must be declared before any shape statement",
			}
			p.recordParseError(d)
		}
		return p.parseShapeStatement(shapeType, tok.Span, traits)
	}

	if hasExplicitTraits(traits) {
		d := types.SpanDiagnostic{
			Severity: types.SeverityError,
			Code:     types.DiagTraitNotAllowed,
			Span:     traits[0].Loc,
			Message:  fmt.Sprintf("traits cannot be applied to a %q statement", keyword),
		}
		return &d
	}

	switch keyword {
	case "namespace":
		return p.parseNamespaceStatement()
	case "metadata":
		return p.parseMetadataStatement(tok.Span)
	case "use":
		return p.parseUseStatement(tok.Span)
	case "apply":
		return p.parseApplyStatement(tok.Span)
	default:
		d := p.makeErrorAt(tok.Span, fmt.Sprintf("unexpected statement %q", keyword))
		return &d
	}
}

func (p *Parser) parseNamespaceStatement() *types.SpanDiagnostic {
	p.skipWs()
	name, span, diag := p.parseNamespaceName()
	if diag != nil {
		return diag
	}
	if p.file.Namespace.Name != "" {
		d := p.makeErrorAt(span, "only one namespace can be declared per file")
		return &d
	}
	p.file.Namespace = ast.NewIdent(name, span)
	p.Log(slog.LevelDebug, "namespace", slog.String("name", name))
	return nil
}

func (p *Parser) parseMetadataStatement(start types.Span) *types.SpanDiagnostic {
	p.skipWs()
	if diag := p.expectCurrent(lexer.TokIdentifier, lexer.TokString); diag != nil {
		return diag
	}
	key, _, diag := p.parseNodeKey()
	if diag != nil {
		return diag
	}
	p.skipWs()
	if _, diag := p.expect(lexer.TokEqual); diag != nil {
		return diag
	}
	p.skipWs()
	value, diag2 := p.parseNode()
	if diag2 != nil {
		return diag2
	}
	p.file.Metadata = append(p.file.Metadata, ast.MetadataStatement{
		Key:   key,
		Value: value,
		Span:  types.NewSpan(start.Start, value.Span().End),
	})
	return nil
}

func (p *Parser) parseUseStatement(start types.Span) *types.SpanDiagnostic {
	p.skipWs()
	target, span, diag := p.parseShapeID()
	if diag != nil {
		return diag
	}
	p.file.Uses = append(p.file.Uses, ast.UseStatement{
		Target: target,
		Span:   types.NewSpan(start.Start, span.End),
	})
	return nil
}

// parseApplyStatement parses 'apply Target @trait' or the block form
// 'apply Target { @a @b ... }'. Each apply statement yields its own
// trait-application list.
func (p *Parser) parseApplyStatement(start types.Span) *types.SpanDiagnostic {
	p.skipWs()
	target, targetSpan, diag := p.parseShapeID()
	if diag != nil {
		return diag
	}
	p.skipWs()

	var traits []ast.TraitApplication
	if p.check(lexer.TokLBrace) {
		p.advance()
		traits, diag = p.parseLeadingTraits()
		if diag != nil {
			return diag
		}
		if _, diag := p.expect(lexer.TokRBrace); diag != nil {
			return diag
		}
	} else {
		trait, diag := p.parseTrait()
		if diag != nil {
			return diag
		}
		traits = []ast.TraitApplication{trait}
	}

	p.file.Applies = append(p.file.Applies, ast.ApplyStatement{
		Target:     target,
		TargetSpan: targetSpan,
		Traits:     traits,
		Span:       types.NewSpan(start.Start, p.currentSpan().Start),
	})
	return nil
}

// parseShapeStatement parses a shape definition. The keyword token was
// already consumed.
func (p *Parser) parseShapeStatement(shapeType ast.ShapeType, start types.Span, traits []ast.TraitApplication) *types.SpanDiagnostic {
	p.skipWs()
	nameTok, diag := p.expect(lexer.TokIdentifier)
	if diag != nil {
		return diag
	}

	shape := &ast.ShapeStatement{
		Type:   shapeType,
		Name:   p.makeIdent(nameTok),
		Traits: traits,
		Span:   types.NewSpan(start.Start, nameTok.Span.End),
	}

	if p.TraceEnabled() {
		p.Trace("shape",
			slog.String("type", shapeType.String()),
			slog.String("name", shape.Name.Name))
	}

	switch {
	case shapeType.IsSimple():
		// No body.
	case shapeType.HasNamedMembers():
		if diag := p.parseMemberBlock(shape); diag != nil {
			return diag
		}
	case shapeType.HasProperties():
		if diag := p.parsePropertyBlock(shape); diag != nil {
			return diag
		}
	}

	p.file.Shapes = append(p.file.Shapes, shape)
	return nil
}

// parseMemberBlock parses '{ member* }' for aggregate shapes. Each member
// carries its own leading traits and doc comment. Structure, union, list,
// and map members are 'name: Target'; enum and intEnum members are a bare
// name with an optional '= value'.
func (p *Parser) parseMemberBlock(shape *ast.ShapeStatement) *types.SpanDiagnostic {
	p.skipWs()
	if _, diag := p.expect(lexer.TokLBrace); diag != nil {
		return diag
	}

	isEnum := shape.Type == ast.ShapeTypeEnum || shape.Type == ast.ShapeTypeIntEnum
	seen := make(map[string]struct{})

	for {
		traits, diag := p.parseLeadingTraits()
		if diag != nil {
			return diag
		}
		if p.check(lexer.TokRBrace) {
			p.advance()
			if hasExplicitTraits(traits) {
				d := types.SpanDiagnostic{
					Severity: types.SeverityError,
					Code:     types.DiagTraitNotAllowed,
					Span:     traits[0].Loc,
					Message:  "trait applications must precede a member",
				}
				return &d
			}
			return nil
		}
		nameTok, diag2 := p.expect(lexer.TokIdentifier)
		if diag2 != nil {
			return diag2
		}
		member := &ast.MemberStatement{
			Name:   p.makeIdent(nameTok),
			Traits: traits,
			Span:   nameTok.Span,
		}
		// A redefined member is diagnosed and dropped; the first
		// definition and the rest of the block survive.
		_, dup := seen[member.Name.Name]
		if dup {
			p.recordParseError(p.duplicateMemberError(member.Name.Name, nameTok.Span))
		}
		seen[member.Name.Name] = struct{}{}

		if isEnum {
			p.skipWs()
			if p.check(lexer.TokEqual) {
				p.advance()
				p.skipWs()
				value, vdiag := p.parseNode()
				if vdiag != nil {
					return vdiag
				}
				member.Value = value
				member.Span = types.NewSpan(nameTok.Span.Start, value.Span().End)
			}
		} else {
			p.skipWs()
			if _, diag := p.expect(lexer.TokColon); diag != nil {
				return diag
			}
			p.skipWs()
			target, targetSpan, tdiag := p.parseShapeID()
			if tdiag != nil {
				return tdiag
			}
			member.Target = target
			member.TargetSpan = targetSpan
			member.Span = types.NewSpan(nameTok.Span.Start, targetSpan.End)
		}

		if !dup {
			shape.Members = append(shape.Members, member)
		}
	}
}

// parsePropertyBlock parses '{ key: node ... }' for service, operation,
// and resource shapes. Values go through the generic node grammar, so
// shape references inside them become forward references.
func (p *Parser) parsePropertyBlock(shape *ast.ShapeStatement) *types.SpanDiagnostic {
	p.skipWs()
	if _, diag := p.expect(lexer.TokLBrace); diag != nil {
		return diag
	}

	seen := make(map[string]struct{})
	p.skipWsAndDocs()
	for !p.check(lexer.TokRBrace) {
		nameTok, diag := p.expect(lexer.TokIdentifier)
		if diag != nil {
			return diag
		}
		p.skipWs()
		if _, diag := p.expect(lexer.TokColon); diag != nil {
			return diag
		}
		p.skipWs()
		value, vdiag := p.parseNode()
		if vdiag != nil {
			return vdiag
		}
		name := p.text(nameTok.Span)
		if _, dup := seen[name]; dup {
			p.recordParseError(p.duplicateMemberError(name, nameTok.Span))
			p.skipWsAndDocs()
			continue
		}
		seen[name] = struct{}{}
		shape.Props = append(shape.Props, ast.PropertyStatement{
			Name:  p.makeIdent(nameTok),
			Value: value,
			Span:  types.NewSpan(nameTok.Span.Start, value.Span().End),
		})
		p.skipWsAndDocs()
	}
	p.advance() // closing brace
	return nil
}

func (p *Parser) makeIdent(token lexer.Token) ast.Ident {
	return ast.NewIdent(p.internString(p.text(token.Span)), token.Span)
}

// hasExplicitTraits reports whether the list contains anything other than
// a synthesized doc comment record.
func hasExplicitTraits(traits []ast.TraitApplication) bool {
	for _, t := range traits {
		if t.Kind != ast.TraitKindDocComment {
			return true
		}
	}
	return false
}

// recoverToStatement skips tokens until something that plausibly starts a
// new statement, so one malformed statement does not cascade.
func (p *Parser) recoverToStatement() {
	for !p.isEOF() {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokAt, lexer.TokDocComment, lexer.TokDollar:
			return
		case lexer.TokIdentifier:
			text := p.text(tok.Span)
			if ast.ShapeTypeFromKeyword(text) != ast.ShapeTypeUnknown {
				return
			}
			switch text {
			case "namespace", "metadata", "use", "apply":
				return
			}
		}
		p.advance()
	}
}
