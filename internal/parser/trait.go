package parser

import (
	"log/slog"

	"github.com/gosmithy/gosmithy/internal/ast"
	"github.com/gosmithy/gosmithy/internal/lexer"
	"github.com/gosmithy/gosmithy/internal/types"
)

// parseLeadingTraits parses the documentation comment and trait
// applications that precede a shape or member declaration, returning them
// as ordered pending applications for the assembler to resolve.
//
// A captured doc comment becomes a DocComment-kind application appended
// after all explicit traits, regardless of where the '///' lines appeared
// relative to the '@' lines. A doc marker that yields no text produces no
// record. The returned list may be empty; any error comes from an
// individual trait parse and is fatal to the declaration.
func (p *Parser) parseLeadingTraits() ([]ast.TraitApplication, *types.SpanDiagnostic) {
	p.skipWs()

	var docComment *ast.TraitApplication

	// Mark where the documentation starts if positioned on a doc comment.
	if p.check(lexer.TokDocComment) {
		docSpan := p.currentSpan()
		p.skipWsAndDocs()
		docComment = p.makeDocComment(docSpan)
	} else {
		p.skipWsAndDocs()
	}

	var traits []ast.TraitApplication
	for p.check(lexer.TokAt) {
		trait, diag := p.parseTrait()
		if diag != nil {
			return nil, diag
		}
		traits = append(traits, trait)
		p.skipWsAndDocs()
	}
	if docComment != nil {
		traits = append(traits, *docComment)
	}
	// Doc comments interleaved with or trailing the traits attach to
	// nothing; drop them so they cannot bleed into the next declaration.
	p.takePendingDocText()

	return traits, nil
}

func (p *Parser) makeDocComment(span types.Span) *ast.TraitApplication {
	text, ok := p.takePendingDocText()
	if !ok || text == "" {
		return nil
	}
	return &ast.TraitApplication{
		Name:  ast.DocumentationTraitID,
		Value: &ast.StringNode{Value: text, Loc: span},
		Kind:  ast.TraitKindDocComment,
		Loc:   span,
	}
}

// parseTrait parses a single trait application: "@" shape_id ["(" body ")"].
func (p *Parser) parseTrait() (ast.TraitApplication, *types.SpanDiagnostic) {
	loc := p.currentSpan()
	if _, diag := p.expect(lexer.TokAt); diag != nil {
		return ast.TraitApplication{}, diag
	}
	name, _, diag := p.parseShapeID()
	if diag != nil {
		return ast.TraitApplication{}, diag
	}

	if p.TraceEnabled() {
		p.Trace("trait", slog.String("name", name))
	}

	// No parens: an annotation trait.
	if !p.check(lexer.TokLParen) {
		return annotation(name, loc), nil
	}

	p.advance()
	p.skipWsAndDocs()

	// Empty parens: also an annotation trait.
	if p.check(lexer.TokRParen) {
		p.advance()
		return annotation(name, loc), nil
	}

	value, diag := p.parseTraitValueBody(loc)
	if diag != nil {
		return ast.TraitApplication{}, diag
	}
	p.skipWsAndDocs()
	if _, diag := p.expect(lexer.TokRParen); diag != nil {
		return ast.TraitApplication{}, diag
	}

	return ast.TraitApplication{
		Name:  name,
		Value: value,
		Kind:  ast.TraitKindValue,
		Loc:   loc,
	}, nil
}

// annotation builds an Annotation-kind application. Annotation
// applications always carry a null value; a downstream consumer reads
// null here as "zero-argument trait".
func annotation(name string, loc types.Span) ast.TraitApplication {
	return ast.TraitApplication{
		Name:  name,
		Value: &ast.NullNode{Loc: loc},
		Kind:  ast.TraitKindAnnotation,
		Loc:   loc,
	}
}

// parseTraitValueBody parses the single value between a trait's parens.
// A leading quoted string or identifier followed by ':' is reinterpreted
// as the first key of a structured (brace-free) object body; that one
// token of lookahead is what lets trait authors omit '{}' around
// map-valued arguments.
func (p *Parser) parseTraitValueBody(loc types.Span) (ast.Node, *types.SpanDiagnostic) {
	if diag := p.expectCurrent(lexer.TokLBrace, lexer.TokLBracket, lexer.TokTextBlock,
		lexer.TokString, lexer.TokNumber, lexer.TokIdentifier); diag != nil {
		return nil, diag
	}

	switch p.peek().Kind {
	case lexer.TokLBrace, lexer.TokLBracket:
		result, diag := p.parseNodeAt(loc)
		if diag != nil {
			return nil, diag
		}
		p.skipWsAndDocs()
		return result, nil

	case lexer.TokTextBlock:
		tok := p.advance()
		p.skipWsAndDocs()
		return &ast.StringNode{Value: lexer.TextBlockValue(p.source, tok), Loc: loc}, nil

	case lexer.TokNumber:
		tok := p.advance()
		n, diag := p.numberNode(tok, loc)
		if diag != nil {
			return nil, diag
		}
		p.skipWsAndDocs()
		return n, nil

	case lexer.TokString:
		tok := p.advance()
		value := lexer.StringValue(p.source, tok)
		p.skipWsAndDocs()
		if p.check(lexer.TokColon) {
			p.advance()
			p.skipWsAndDocs()
			// The key, and the object it opens, sit at the key's own
			// text rather than at the trait.
			return p.parseStructuredTrait(&ast.StringNode{Value: value, Loc: tok.Span})
		}
		return &ast.StringNode{Value: value, Loc: loc}, nil

	default: // TokIdentifier
		tok := p.advance()
		name := p.internString(p.text(tok.Span))
		p.skipWsAndDocs()
		if p.check(lexer.TokColon) {
			p.advance()
			p.skipWsAndDocs()
			return p.parseStructuredTrait(&ast.StringNode{Value: name, Loc: tok.Span})
		}
		return p.resolver.ResolveBareIdentifier(name, loc), nil
	}
}

// parseStructuredTrait parses the key/value entries of a brace-free trait
// body. The first key was already consumed by parseTraitValueBody along
// with its ':'. The produced object is located at the first key, and every
// key past the first is checked against earlier ones before its value is
// installed, so a duplicate never overwrites.
func (p *Parser) parseStructuredTrait(firstKey *ast.StringNode) (ast.Node, *types.SpanDiagnostic) {
	if diag := p.increaseNesting(); diag != nil {
		return nil, diag
	}
	defer p.decreaseNesting()

	obj := &ast.ObjectNode{Loc: firstKey.Loc}
	seen := map[string]struct{}{firstKey.Value: {}}

	// The first insertion cannot collide; the mapping is empty.
	firstValue, diag := p.parseNode()
	if diag != nil {
		return nil, diag
	}
	obj.Entries = append(obj.Entries, ast.ObjectEntry{Key: *firstKey, Value: firstValue})
	p.skipWsAndDocs()

	for !p.check(lexer.TokRParen) {
		if diag := p.expectCurrent(lexer.TokIdentifier, lexer.TokString); diag != nil {
			return nil, diag
		}
		key, keySpan, diag := p.parseNodeKey()
		if diag != nil {
			return nil, diag
		}
		p.skipWsAndDocs()
		if _, diag := p.expect(lexer.TokColon); diag != nil {
			return nil, diag
		}
		p.skipWsAndDocs()
		value, diag := p.parseNode()
		if diag != nil {
			return nil, diag
		}
		if _, dup := seen[key]; dup {
			diag := p.duplicateMemberError(key, keySpan)
			return nil, &diag
		}
		seen[key] = struct{}{}
		obj.Entries = append(obj.Entries, ast.ObjectEntry{
			Key:   ast.StringNode{Value: key, Loc: keySpan},
			Value: value,
		})
		p.skipWsAndDocs()
	}

	return obj, nil
}
